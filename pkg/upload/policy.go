// Package upload enforces the attachment policy for contact submissions.
// Files are validated in memory and never written to disk.
package upload

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
)

// MaxAttachmentBytes caps a single uploaded file at 10 MiB.
const MaxAttachmentBytes = 10 << 20

var (
	// ErrTooLarge means the attachment exceeds MaxAttachmentBytes.
	ErrTooLarge = errors.New("upload: file too large")
	// ErrDisallowedType means the attachment failed the type allow-list.
	ErrDisallowedType = errors.New("upload: file type not allowed")
)

// Allow-list for contact-form attachments.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Magic byte signatures per extension. An empty list means the format has no
// reliable signature (plain text) and content sniffing is skipped.
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                                 // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},         // OLE compound document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                                 // ZIP (PK..)
	".txt":  {},
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
}

var allowedMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
	"image/jpeg": true,
	"image/png":  true,
	// DOCX is ZIP-based and often declared as such
	"application/zip": true,
}

// ValidateAttachment checks size, extension allow-list, magic bytes and the
// declared MIME type. Returns ErrTooLarge or ErrDisallowedType on violation.
func ValidateAttachment(filename string, data []byte, declaredMIME string) error {
	if len(data) > MaxAttachmentBytes {
		return ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || !allowedExtensions[ext] {
		return ErrDisallowedType
	}

	if !matchesMagicBytes(ext, data) {
		return ErrDisallowedType
	}

	if declaredMIME != "" && !mimeAllowed(ext, declaredMIME) {
		return ErrDisallowedType
	}

	return nil
}

func matchesMagicBytes(ext string, data []byte) bool {
	signatures := magicBytes[ext]
	if len(signatures) == 0 {
		return true
	}
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

func mimeAllowed(ext, declaredMIME string) bool {
	// Strip any ;charset=... parameter before matching.
	if idx := strings.Index(declaredMIME, ";"); idx >= 0 {
		declaredMIME = declaredMIME[:idx]
	}
	declaredMIME = strings.TrimSpace(strings.ToLower(declaredMIME))

	if allowedMIMETypes[declaredMIME] {
		return true
	}
	// Word documents are frequently uploaded as octet-stream; the magic byte
	// check above already pinned the content.
	if declaredMIME == "application/octet-stream" && (ext == ".doc" || ext == ".docx") {
		return true
	}
	return false
}
