// Package compression wraps compressed input streams in a decompressing,
// size-limited reader chosen by file extension.
package compression

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/silcolour/internal/security"
)

// Format identifies a compression format.
type Format string

// Supported formats.
const (
	None  Format = ""
	Gzip  Format = "gz"
	Bzip2 Format = "bz2"
	XZ    Format = "xz"
)

// DefaultMaxBytes caps the decompressed size of a stream.
const DefaultMaxBytes int64 = 100 * 1024 * 1024

// ErrUnknownFormat is returned by NewReader for an unsupported Format.
var ErrUnknownFormat = errors.New("unknown compression format")

// Detect returns the compression format of name from its final extension
// and the name with that extension removed. Names without a recognised
// extension return None and are unchanged.
func Detect(name string) (Format, string) {
	lower := strings.ToLower(name)
	for _, f := range []Format{Gzip, Bzip2, XZ} {
		suffix := "." + string(f)
		if strings.HasSuffix(lower, suffix) {
			return f, name[:len(name)-len(suffix)]
		}
	}
	return None, name
}

// NewReader returns a reader that decompresses r according to format.
// Decompressed output beyond maxBytes fails with security.ErrSizeLimit;
// maxBytes <= 0 selects DefaultMaxBytes. For None, r is returned as is.
func NewReader(r io.Reader, format Format, maxBytes int64) (io.Reader, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	var dr io.Reader
	switch format {
	case None:
		return r, nil
	case Gzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		dr = gzr
	case Bzip2:
		dr = bzip2.NewReader(r)
	case XZ:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		dr = xzr
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}

	return security.NewLimitedReader(dr, maxBytes), nil
}
