package security

import (
	"bytes"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/webp"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // Declared MIME type
	Error        string // Error message if validation failed
}

// Magic byte signatures per extension.
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".webp": {{0x52, 0x49, 0x46, 0x46}}, // RIFF header
	".pdf":  {{0x25, 0x50, 0x44, 0x46}}, // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}}, // ZIP (PK..)
}

// AvatarExtensions and ResumeExtensions are the strict whitelists for
// the two upload surfaces.
var (
	AvatarExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	}
	ResumeExtensions = map[string]bool{
		".pdf":  true,
		".doc":  true,
		".docx": true,
	}
)

var avatarMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var resumeMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	// ZIP-based documents (DOCX detection fallback)
	"application/zip": true,
}

// ValidateAvatar performs 4-layer validation on an avatar upload:
// 1. Extension whitelist check
// 2. MIME type whitelist (application/octet-stream rejected)
// 3. Magic byte verification (content matches extension)
// 4. Full image decode (content is actually a displayable image)
func ValidateAvatar(filename string, data []byte, declaredMIME string) FileValidationResult {
	result := validateCommon(filename, data, declaredMIME, AvatarExtensions, avatarMIMETypes)
	if !result.Valid {
		return result
	}

	if err := decodeImage(result.Extension, data); err != nil {
		result.Valid = false
		result.Error = "file content is not a decodable image"
		return result
	}
	return result
}

// ValidateResume performs the same layered validation for resume uploads
// (pdf/doc/docx), without the image-decode layer.
func ValidateResume(filename string, data []byte, declaredMIME string) FileValidationResult {
	return validateCommon(filename, data, declaredMIME, ResumeExtensions, resumeMIMETypes)
}

func validateCommon(filename string, data []byte, declaredMIME string, allowedExt, allowedMIME map[string]bool) FileValidationResult {
	result := FileValidationResult{
		DetectedMIME: declaredMIME,
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	// Layer 1: Extension whitelist
	if !allowedExt[ext] {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	// Layer 2: MIME type whitelist
	// application/octet-stream allows arbitrary binary uploads; reject it
	// except for OLE/ZIP documents that browsers commonly mislabel.
	if declaredMIME == "application/octet-stream" {
		if ext != ".docx" && ext != ".doc" {
			result.Error = "binary files not allowed; file type could not be determined"
			return result
		}
	} else if !allowedMIME[declaredMIME] {
		result.Error = "MIME type not allowed: " + declaredMIME
		return result
	}

	// Layer 3: Magic byte validation
	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension (potential file spoofing detected)"
		return result
	}

	result.Valid = true
	return result
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false // File too small to validate
	}

	signatures, ok := magicBytes[ext]
	if !ok {
		return false // Unknown extension
	}

	for _, sig := range signatures {
		if len(data) >= len(sig) && bytes.HasPrefix(data, sig) {
			return true
		}
	}

	return false
}

func decodeImage(ext string, data []byte) error {
	var err error
	switch ext {
	case ".png":
		_, err = png.DecodeConfig(bytes.NewReader(data))
	case ".webp":
		_, err = webp.DecodeConfig(bytes.NewReader(data))
	default:
		_, err = jpeg.DecodeConfig(bytes.NewReader(data))
	}
	return err
}

// IsPDF reports whether the extension denotes a PDF resume; only PDFs go
// through AI text extraction.
func IsPDF(ext string) bool {
	return strings.ToLower(ext) == ".pdf"
}
