// Package catalog loads the tabular colour catalog that maps cell
// identifiers to a cluster label and a target colour.
package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/silcolour/internal/compression"
)

// Required column names.
const (
	ColumnCellID  = "cell_ID"
	ColumnCluster = "cluster"
	ColumnColor   = "color"
)

var (
	// ErrEmpty is returned when a catalog has a header but no rows.
	ErrEmpty = errors.New("catalog is empty")

	// ErrMissingColumns is returned when required columns are absent.
	ErrMissingColumns = errors.New("catalog is missing required columns")

	// ErrDuplicateKey is returned in strict mode when a cell_ID repeats.
	ErrDuplicateKey = errors.New("duplicate cell_ID in catalog")

	// ErrUnsupportedFormat is returned for files that are not CSV.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// RequiredColumns returns the columns every catalog must provide, in the
// order they are reported when missing.
func RequiredColumns() []string {
	return []string{ColumnCellID, ColumnCluster, ColumnColor}
}

// MissingColumnsError lists the required columns a catalog lacks.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// Entry is one catalog row.
type Entry struct {
	CellID  string `json:"cell_id"`
	Cluster string `json:"cluster"`
	Color   string `json:"color"`
}

// LoadOptions controls catalog loading.
type LoadOptions struct {
	// Strict rejects catalogs in which a cell_ID appears more than once.
	// Otherwise the first row wins and later ones are reported by Duplicates.
	Strict bool

	// MaxBytes caps the decompressed size of compressed catalogs.
	// Zero means compression.DefaultMaxBytes.
	MaxBytes int64
}

// Catalog is a read-only mapping from cell_ID to its entry. It is safe for
// concurrent use once built.
type Catalog struct {
	entries    []Entry
	index      map[string]int
	duplicates []string
}

// New builds a catalog from entries in row order.
func New(entries []Entry, strict bool) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	c := &Catalog{
		entries: entries,
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if _, seen := c.index[e.CellID]; seen {
			if strict {
				return nil, fmt.Errorf("%w: %q (row %d)", ErrDuplicateKey, e.CellID, i+2)
			}
			c.duplicates = append(c.duplicates, e.CellID)
			continue
		}
		c.index[e.CellID] = i
	}
	return c, nil
}

// Load reads a catalog from a .csv file, optionally compressed as .csv.gz,
// .csv.bz2 or .csv.xz.
func Load(path string, opts LoadOptions) (*Catalog, error) {
	format, base := compression.Detect(path)
	if !strings.EqualFold(filepath.Ext(base), ".csv") {
		return nil, fmt.Errorf("%w: catalog '%s' is not a CSV file", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path) // #nosec G304 - User-specified catalog path, intended to be read
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog path '%s' does not exist", path)
		}
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	r, err := compression.NewReader(bufio.NewReader(f), format, opts.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("catalog '%s': %w", path, err)
	}

	c, err := Parse(r, opts)
	if err != nil {
		return nil, fmt.Errorf("catalog '%s': %w", path, err)
	}
	return c, nil
}

// Parse reads CSV catalog data. The header must contain cell_ID, cluster
// and color in any order; other columns are ignored.
func Parse(r io.Reader, opts LoadOptions) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns() {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	idCol, clusterCol, colorCol := cols[ColumnCellID], cols[ColumnCluster], cols[ColumnColor]

	var entries []Entry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		entries = append(entries, Entry{
			CellID:  strings.TrimSpace(record[idCol]),
			Cluster: strings.TrimSpace(record[clusterCol]),
			Color:   strings.TrimSpace(record[colorCol]),
		})
	}

	return New(entries, opts.Strict)
}

// Lookup returns the first entry whose cell_ID equals cellID.
func (c *Catalog) Lookup(cellID string) (Entry, bool) {
	i, ok := c.index[cellID]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Len returns the number of rows in the catalog, duplicates included.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Duplicates returns the cell_IDs of rows shadowed by an earlier row.
func (c *Catalog) Duplicates() []string {
	return append([]string(nil), c.duplicates...)
}
