package domain

type CtxKey string

const (
	KeyUserID CtxKey = "UserID"
	// KeyUser holds the authenticated *User with grants loaded.
	KeyUser CtxKey = "User"
)
