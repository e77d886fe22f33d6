// Package security provides path and input-size guards for silcolour.
package security

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrSizeLimit is returned by LimitedReader once its budget is exhausted.
var ErrSizeLimit = errors.New("input size limit exceeded")

// ValidateOutputName checks that a derived output file name stays inside
// outputDir once joined to it.
func ValidateOutputName(name, outputDir string) error {
	if name == "" {
		return fmt.Errorf("empty output file name")
	}

	// Check for dangerous patterns
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("output file name %q contains a path separator", name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("output file name %q is not a file name", name)
	}

	// Ensure the final path would be within outputDir
	cleanBase := filepath.Clean(outputDir)
	cleanFinal := filepath.Clean(filepath.Join(outputDir, name))
	if filepath.Dir(cleanFinal) != cleanBase {
		return fmt.Errorf("output file name %q would escape %s", name, outputDir)
	}

	return nil
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// It guards decompression of compressed catalogs.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits. A stream that ends exactly
// on the limit reads as io.EOF; only data beyond it is ErrSizeLimit.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		var next [1]byte
		n, err := l.R.Read(next[:])
		if n > 0 {
			return 0, ErrSizeLimit
		}
		return 0, err
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
