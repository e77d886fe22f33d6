package image

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var (
	transparent = color.NRGBA{}
	lightBlue   = color.NRGBA{R: 128, G: 128, B: 255, A: 255}
	darkBlue    = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
)

// writeSilhouetteGIF writes a 4x4 paletted GIF with a transparent border,
// a light fill and a single dark pixel.
func writeSilhouetteGIF(t *testing.T, path string) {
	t.Helper()

	pal := color.Palette{color.RGBA{}, color.RGBA{R: 128, G: 128, B: 255, A: 255}, color.RGBA{B: 255, A: 255}}
	img := image.NewPaletted(image.Rect(0, 0, 4, 4), pal)
	for y := 1; y < 3; y++ {
		for x := 1; x < 3; x++ {
			img.SetColorIndex(x, y, 1)
		}
	}
	img.SetColorIndex(2, 2, 2)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := gif.Encode(f, img, nil); err != nil {
		t.Fatalf("failed to encode gif: %v", err)
	}
}

func TestFileLoaderLoadGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cellA-sil.gif")
	writeSilhouetteGIF(t, path)

	img, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if img.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Errorf("Load() bounds = %v, want 4x4", img.Bounds())
	}
	if got := img.NRGBAAt(1, 1); got != lightBlue {
		t.Errorf("pixel (1,1) = %v, want %v", got, lightBlue)
	}
	if got := img.NRGBAAt(2, 2); got != darkBlue {
		t.Errorf("pixel (2,2) = %v, want %v", got, darkBlue)
	}
	if got := img.NRGBAAt(0, 0); got.A != 0 {
		t.Errorf("pixel (0,0) = %v, want transparent", got)
	}
}

func TestFileLoaderLoadErrors(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "notes.gif")
	if err := os.WriteFile(notImage, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty path", path: "", want: "cannot be empty"},
		{name: "missing", path: filepath.Join(dir, "missing.gif"), want: "not found"},
		{name: "directory", path: dir, want: "directory"},
		{name: "undecodable", path: notImage, want: "failed to decode"},
	}

	loader := NewFileLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load(%q) error = %v, want containing %q", tt.path, err, tt.want)
			}
		})
	}
}

func TestToNRGBAFromRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	dst := ToNRGBA(src)
	if got := dst.NRGBAAt(0, 0); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestFileSaverGIFPreservesColours(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, transparent)
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{R: 204, A: 255})

	path := filepath.Join(t.TempDir(), "out.gif")
	if err := NewFileSaver().Save(path, img); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c := got.NRGBAAt(1, 0); c != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("pixel (1,0) = %v, want pure red", c)
	}
	if c := got.NRGBAAt(2, 0); c != (color.NRGBA{R: 204, A: 255}) {
		t.Errorf("pixel (2,0) = %v, want dark red", c)
	}
	if c := got.NRGBAAt(0, 0); c.A != 0 {
		t.Errorf("pixel (0,0) = %v, want transparent", c)
	}
}

func TestFileSaverPNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	path := filepath.Join(t.TempDir(), "out.png")
	if err := NewFileSaver().Save(path, img); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if c := ToNRGBA(decoded).NRGBAAt(0, 0); c != (color.NRGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("pixel = %v", c)
	}
}

func TestFileSaverUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	err := NewFileSaver().Save(filepath.Join(dir, "out.bmp"), image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	if err == nil {
		t.Fatal("Save() with .bmp extension should fail")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Save() left %d files behind", len(entries))
	}
}

func TestToPalettedExact(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, lightBlue)
	img.SetNRGBA(1, 0, lightBlue)
	img.SetNRGBA(0, 1, darkBlue)

	p := ToPaletted(img)
	if len(p.Palette) != 3 {
		t.Fatalf("palette size = %d, want 3", len(p.Palette))
	}
	if p.At(0, 0) != color.Color(lightBlue) {
		t.Errorf("At(0,0) = %v, want %v", p.At(0, 0), lightBlue)
	}
	if p.At(0, 1) != color.Color(darkBlue) {
		t.Errorf("At(0,1) = %v, want %v", p.At(0, 1), darkBlue)
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.gif", "a.gif", "c.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.gif"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := ScanDirectory(dir, "*.gif")
	if err != nil {
		t.Fatalf("ScanDirectory() error = %v", err)
	}
	want := []string{filepath.Join(dir, "a.gif"), filepath.Join(dir, "b.gif")}
	if len(files) != len(want) {
		t.Fatalf("ScanDirectory() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("ScanDirectory()[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestScanDirectoryErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.txt")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		dir     string
		pattern string
	}{
		{name: "missing directory", dir: filepath.Join(dir, "missing"), pattern: "*.gif"},
		{name: "not a directory", dir: file, pattern: "*.gif"},
		{name: "no matches", dir: dir, pattern: "*.gif"},
		{name: "bad pattern", dir: dir, pattern: "[a-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ScanDirectory(tt.dir, tt.pattern); err == nil {
				t.Errorf("ScanDirectory(%q, %q) should fail", tt.dir, tt.pattern)
			}
		})
	}
}
