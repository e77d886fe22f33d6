// Package image provides utilities for loading, saving and discovering
// silhouette images.
package image

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/silcolour/internal/colour"
)

// Loader handles loading images as non-premultiplied RGBA rasters.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (*image.NRGBA, error)
}

// Saver writes rasters to disk.
type Saver interface {
	// Save encodes img to path, choosing the format from the extension.
	Save(path string, img image.Image) error
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path and converts it to NRGBA.
// Supported formats: GIF, PNG, JPEG, WebP.
func (l *FileLoader) Load(path string) (*image.NRGBA, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	return ToNRGBA(img), nil
}

// ToNRGBA converts img to a non-premultiplied RGBA raster with the same bounds.
// An *image.NRGBA is returned as-is.
func ToNRGBA(img image.Image) *image.NRGBA {
	switch src := img.(type) {
	case *image.NRGBA:
		return src
	case *image.Paletted:
		return palettedToNRGBA(src)
	}

	b := img.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}

// palettedToNRGBA expands a paletted image without the premultiplied round
// trip of the generic draw path, so fully transparent entries keep their RGB.
func palettedToNRGBA(src *image.Paletted) *image.NRGBA {
	lut := make([]color.NRGBA, len(src.Palette))
	for i, c := range src.Palette {
		lut[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}

	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			idx := src.ColorIndexAt(x, y)
			if int(idx) < len(lut) {
				dst.SetNRGBA(x, y, lut[idx])
			}
		}
	}
	return dst
}

// FileSaver writes images to the local filesystem.
type FileSaver struct{}

// NewFileSaver creates a new FileSaver instance.
func NewFileSaver() *FileSaver {
	return &FileSaver{}
}

// Save encodes img to path. The file is written to a temporary name in the
// same directory and renamed into place, so a failed encode leaves nothing
// behind.
func (s *FileSaver) Save(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(SupportedOutputExtensions(), ext) {
		return fmt.Errorf("unsupported output format %q (supported: %v)", ext, SupportedOutputExtensions())
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".silcolour-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpPath := tmp.Name()

	encodeErr := encode(tmp, ext, img)
	closeErr := tmp.Close()
	if encodeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to encode %s: %w", ext, encodeErr)
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close output file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

func encode(f *os.File, ext string, img image.Image) error {
	switch ext {
	case ".gif":
		return gif.Encode(f, ToPaletted(img), nil)
	case ".png":
		return png.Encode(f, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		return fmt.Errorf("no encoder for %s", ext)
	}
}

// ToPaletted converts img to a paletted image for GIF output. When the image
// has at most 256 distinct colours the palette is exact; otherwise colours
// are mapped to their nearest Plan 9 palette entry without dithering.
func ToPaletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	hist := colour.NewHistogram(img)

	if hist.Overflow() > 0 {
		dst := image.NewPaletted(b, palette.Plan9)
		draw.Draw(dst, b, img, b.Min, draw.Src)
		return dst
	}

	ranked := hist.Ranked()
	pal := make(color.Palette, len(ranked))
	index := make(map[colour.Colour]uint8, len(ranked))
	for i, rc := range ranked {
		pal[i] = rc.Colour.NRGBA()
		index[rc.Colour] = uint8(i)
	}

	dst := image.NewPaletted(b, pal)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetColorIndex(x, y, index[colour.FromColor(img.At(x, y))])
		}
	}
	return dst
}

// SupportedOutputExtensions returns the image file extensions that can be written.
func SupportedOutputExtensions() []string {
	return []string{".gif", ".png", ".jpg", ".jpeg"}
}

// ScanDirectory returns the files in dirPath whose names match the glob
// pattern, in lexical order. It does not recurse into subdirectories, but
// follows symlinks.
func ScanDirectory(dirPath, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}

	info, err := os.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input directory not found: %s", dirPath)
		}
		return nil, fmt.Errorf("failed to access input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path is not a directory: %s", dirPath)
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if ok, _ := filepath.Match(pattern, entry.Name()); !ok {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())

		// For symlinks, stat the target to determine if it's a file.
		info, err := os.Stat(fullPath)
		if err != nil {
			// Skip entries we can't stat (broken symlinks, permission issues).
			continue
		}
		if info.IsDir() {
			continue
		}

		files = append(files, fullPath)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files matching %q found in directory: %s", pattern, dirPath)
	}

	return files, nil
}
