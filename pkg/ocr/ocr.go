// Package ocr digitizes scanned chromatogram images into peak lists by
// delegating to an external OCR engine, with a content-addressed result cache.
package ocr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const HashLength = 16

var (
	ErrUnsupportedType = errors.New("ocr: only PNG and JPG images are accepted")
	ErrEmptyUpload     = errors.New("ocr: uploaded file is empty")
	ErrTooLarge        = errors.New("ocr: uploaded file exceeds the size limit")
	ErrUpstream        = errors.New("ocr: engine request failed")
)

// HashKey is the cache key for an upload: SHA-256 truncated to 16 hex chars.
func HashKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:HashLength]
}

var allowedExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// ValidateUpload checks extension, declared content type and size.
// contentType may be empty when the client does not send one.
func ValidateUpload(filename, contentType string, size, max int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	want, ok := allowedExt[ext]
	if !ok {
		return ErrUnsupportedType
	}
	if contentType != "" {
		ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
		if ct != want && !(ct == "image/jpg" && want == "image/jpeg") {
			return ErrUnsupportedType
		}
	}
	if size <= 0 {
		return ErrEmptyUpload
	}
	if size > max {
		return fmt.Errorf("%w (%d > %d bytes)", ErrTooLarge, size, max)
	}
	return nil
}

// ContentTypeFor returns the canonical image type for filename.
func ContentTypeFor(filename string) string {
	return allowedExt[strings.ToLower(filepath.Ext(filename))]
}

type Peak struct {
	RetentionTime float64 `json:"retention_time"`
	Height        float64 `json:"height"`
	Area          float64 `json:"area"`
	Width         float64 `json:"width"`
	Name          string  `json:"name,omitempty"`
}

type Analysis struct {
	Hash    string `json:"hash"`
	Peaks   []Peak `json:"peaks"`
	Engine  string `json:"engine,omitempty"`
	RawText string `json:"raw_text,omitempty"`
}

// Engine turns image bytes into a peak list.
type Engine interface {
	Analyze(ctx context.Context, filename string, data []byte) (*Analysis, error)
}
