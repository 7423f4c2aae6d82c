package filecheck

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
)

// Magic byte signatures for allowed resume file types.
// Maps lowercase extension to possible magic byte prefixes.
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                                 // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},        // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                                // ZIP (PK..)
	".txt":  {},                                                        // no magic bytes
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},        // avatars
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
}

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

var (
	ErrNoExtension         = errors.New("file has no extension")
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
	ErrContentMismatch     = errors.New("file content does not match extension")
)

// Validate checks the filename's extension against a whitelist and verifies
// the content's magic bytes match it. Returns the content type to store the
// object with.
func Validate(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", ErrNoExtension
	}
	signatures, ok := magicBytes[ext]
	if !ok {
		return "", ErrExtensionNotAllowed
	}
	if len(signatures) > 0 {
		if len(data) < 4 {
			return "", ErrContentMismatch
		}
		matched := false
		for _, sig := range signatures {
			if len(data) >= len(sig) && bytes.HasPrefix(data, sig) {
				matched = true
				break
			}
		}
		if !matched {
			return "", ErrContentMismatch
		}
	}
	return contentTypes[ext], nil
}
