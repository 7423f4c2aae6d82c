package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"recruitment-platform/pkg/auth"
)

func TestTokenManager(t *testing.T) {
	manager := auth.NewTokenManager("test-secret-at-least-32-characters", time.Hour)

	t.Run("Should round-trip the subject and username", func(t *testing.T) {
		token, err := manager.Generate("user-1", "alice")
		assert.NoError(t, err)

		claims, err := manager.Parse(token)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("Should reject tokens signed with another secret", func(t *testing.T) {
		other := auth.NewTokenManager("a-completely-different-secret-value", time.Hour)
		token, err := other.Generate("user-1", "alice")
		assert.NoError(t, err)

		_, err = manager.Parse(token)
		assert.Error(t, err)
	})

	t.Run("Should reject expired tokens", func(t *testing.T) {
		expired := auth.NewTokenManager("test-secret-at-least-32-characters", -time.Minute)
		token, err := expired.Generate("user-1", "alice")
		assert.NoError(t, err)

		_, err = manager.Parse(token)
		assert.Error(t, err)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := manager.Parse("not.a.token")
		assert.Error(t, err)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.True(t, auth.CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, auth.CheckPassword(hash, "wrong password"))
}
