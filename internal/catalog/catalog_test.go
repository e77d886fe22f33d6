package catalog

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/silcolour/internal/security"
)

const validCSV = `cell_ID,cluster,color
cellA,1,#FF0000
cellB,2,#00FF00
cellC,3,#0000FF
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeFile(t, "colours.csv", validCSV), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	got, ok := c.Lookup("cellB")
	if !ok {
		t.Fatal("Lookup(cellB) not found")
	}
	want := Entry{CellID: "cellB", Cluster: "2", Color: "#00FF00"}
	if got != want {
		t.Errorf("Lookup(cellB) = %+v, want %+v", got, want)
	}

	if _, ok := c.Lookup("cellZ"); ok {
		t.Error("Lookup(cellZ) should not be found")
	}
}

func TestLoadColumnOrderAndExtras(t *testing.T) {
	content := "\ufeffcolor, extra ,cell_ID,cluster\n #123456 ,x, 42 ,7\n"
	c, err := Load(writeFile(t, "colours.csv", content), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got, ok := c.Lookup("42")
	if !ok {
		t.Fatal("Lookup(42) not found")
	}
	if got.Cluster != "7" || got.Color != "#123456" {
		t.Errorf("Lookup(42) = %+v", got)
	}
}

func TestLoadXZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colours.csv.xz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := xz.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(validCSV)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	_, err = Load(path, LoadOptions{MaxBytes: 10})
	if !errors.Is(err, security.ErrSizeLimit) {
		t.Errorf("Load() with small MaxBytes error = %v, want ErrSizeLimit", err)
	}
}

func TestLoadGzip(t *testing.T) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(validCSV)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	c, err := Load(writeFile(t, "colours.CSV.gz", buf.String()), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := c.Lookup("cellC"); !ok {
		t.Error("Lookup(cellC) not found")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{name: "wrong extension", file: "colours.txt", content: validCSV, want: ErrUnsupportedFormat},
		{name: "compressed non-csv", file: "colours.txt.gz", content: validCSV, want: ErrUnsupportedFormat},
		{name: "header only", file: "colours.csv", content: "cell_ID,cluster,color\n", want: ErrEmpty},
		{name: "empty file", file: "colours.csv", content: "", want: ErrEmpty},
		{name: "missing columns", file: "colours.csv", content: "cell_Isd,clustfer,colsour\n1,1,#000000\n", want: ErrMissingColumns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content), LoadOptions{})
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), LoadOptions{})
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Load() error = %v, want does not exist", err)
	}
}

func TestMissingColumnsError(t *testing.T) {
	_, err := Parse(strings.NewReader("cluster,other\n1,2\n"), LoadOptions{})

	var mce *MissingColumnsError
	if !errors.As(err, &mce) {
		t.Fatalf("Parse() error = %v, want *MissingColumnsError", err)
	}
	if want := []string{"cell_ID", "color"}; !reflect.DeepEqual(mce.Columns, want) {
		t.Errorf("missing columns = %v, want %v", mce.Columns, want)
	}

	_, err = Parse(strings.NewReader("a,b,c\n1,2,3\n"), LoadOptions{})
	if !errors.As(err, &mce) {
		t.Fatalf("Parse() error = %v, want *MissingColumnsError", err)
	}
	if want := RequiredColumns(); !reflect.DeepEqual(mce.Columns, want) {
		t.Errorf("missing columns = %v, want %v", mce.Columns, want)
	}
}

func TestDuplicates(t *testing.T) {
	content := "cell_ID,cluster,color\ncellA,1,#FF0000\ncellA,2,#00FF00\ncellB,3,#0000FF\n"

	c, err := Parse(strings.NewReader(content), LoadOptions{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got, _ := c.Lookup("cellA")
	if got.Cluster != "1" {
		t.Errorf("Lookup(cellA).Cluster = %q, want first row's cluster 1", got.Cluster)
	}
	if dups := c.Duplicates(); !reflect.DeepEqual(dups, []string{"cellA"}) {
		t.Errorf("Duplicates() = %v, want [cellA]", dups)
	}

	_, err = Parse(strings.NewReader(content), LoadOptions{Strict: true})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("Parse() strict error = %v, want ErrDuplicateKey", err)
	}
}
