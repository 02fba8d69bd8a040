package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/klauspost/compress/gzip"
)

// Calculator computes checksums of transformed output files.
// This abstraction allows for different checksum strategies and algorithms.
type Calculator interface {
	// CalculateRaw computes a checksum of the file bytes as written.
	CalculateRaw(content []byte) string

	// CalculateContent computes a checksum of the logical content: gzip
	// files are hashed after decompression, so the checksum identifies the
	// records regardless of compression settings.
	CalculateContent(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple
// goroutines. Using value semantics (pass by value) eliminates heap
// allocations.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateContent computes SHA-256 of content after gzip decompression.
// Content that is not gzip (or does not decompress cleanly) is hashed as-is.
func (c SHA256) CalculateContent(content []byte) string {
	if isGzip(content) {
		if decompressed, err := gunzip(content); err == nil {
			return c.CalculateRaw(decompressed)
		}
	}
	return c.CalculateRaw(content)
}

// isGzip checks for the gzip magic header.
func isGzip(content []byte) bool {
	return len(content) >= 2 && content[0] == 0x1f && content[1] == 0x8b
}

func gunzip(content []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(zr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
