package filecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recruitment-platform/pkg/filecheck"
)

func TestValidate(t *testing.T) {
	t.Run("Should accept a pdf with matching magic bytes", func(t *testing.T) {
		contentType, err := filecheck.Validate("cv.pdf", []byte("%PDF-1.7 content"))
		assert.NoError(t, err)
		assert.Equal(t, "application/pdf", contentType)
	})

	t.Run("Should accept docx regardless of extension casing", func(t *testing.T) {
		contentType, err := filecheck.Validate("CV.DOCX", []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00})
		assert.NoError(t, err)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", contentType)
	})

	t.Run("Should reject a renamed executable", func(t *testing.T) {
		_, err := filecheck.Validate("cv.pdf", []byte{0x4D, 0x5A, 0x90, 0x00})
		assert.ErrorIs(t, err, filecheck.ErrContentMismatch)
	})

	t.Run("Should reject disallowed extensions", func(t *testing.T) {
		_, err := filecheck.Validate("cv.exe", []byte{0x4D, 0x5A})
		assert.ErrorIs(t, err, filecheck.ErrExtensionNotAllowed)
	})

	t.Run("Should reject files without an extension", func(t *testing.T) {
		_, err := filecheck.Validate("resume", []byte("%PDF-1.7"))
		assert.ErrorIs(t, err, filecheck.ErrNoExtension)
	})

	t.Run("Should allow txt without magic bytes", func(t *testing.T) {
		contentType, err := filecheck.Validate("notes.txt", []byte("plain text"))
		assert.NoError(t, err)
		assert.Equal(t, "text/plain", contentType)
	})
}
