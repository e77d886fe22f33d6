package colour

import (
	"fmt"
	"image"
	"sort"
)

// MaxSampledColours bounds the number of distinct colours a Histogram tracks.
const MaxSampledColours = 256

// ColourCount pairs a colour with the number of pixels that carry it.
type ColourCount struct {
	Colour Colour
	Count  int
}

// BaseColours is the pair of silhouette colours slated for substitution:
// Light is the fill, Dark the outline or nucleus.
type BaseColours struct {
	Light Colour `yaml:"light"`
	Dark  Colour `yaml:"dark"`
}

// String returns a human-readable form of the pair.
func (b BaseColours) String() string {
	return fmt.Sprintf("light=%s dark=%s", b.Light.Channels(), b.Dark.Channels())
}

// Histogram counts the distinct colours of an image in row-major order.
// Only the first MaxSampledColours distinct colours are tracked; pixels of
// colours first met after that are counted as overflow.
type Histogram struct {
	counts   map[Colour]int
	order    []Colour
	overflow int
}

// NewHistogram scans img and returns its colour histogram.
func NewHistogram(img image.Image) *Histogram {
	h := &Histogram{
		counts: make(map[Colour]int, MaxSampledColours),
		order:  make([]Colour, 0, MaxSampledColours),
	}

	if nrgba, ok := img.(*image.NRGBA); ok {
		h.scanNRGBA(nrgba)
		return h
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			h.add(FromColor(img.At(x, y)))
		}
	}
	return h
}

func (h *Histogram) scanNRGBA(img *image.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			h.add(Colour{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]})
			i += 4
		}
	}
}

func (h *Histogram) add(c Colour) {
	if _, ok := h.counts[c]; ok {
		h.counts[c]++
		return
	}
	if len(h.order) >= MaxSampledColours {
		h.overflow++
		return
	}
	h.counts[c] = 1
	h.order = append(h.order, c)
}

// Len returns the number of distinct colours tracked.
func (h *Histogram) Len() int {
	return len(h.order)
}

// Overflow returns the number of pixels whose colour was not tracked.
func (h *Histogram) Overflow() int {
	return h.overflow
}

// Contains reports whether c was seen among the tracked colours.
func (h *Histogram) Contains(c Colour) bool {
	_, ok := h.counts[c]
	return ok
}

// Count returns the number of pixels carrying c.
func (h *Histogram) Count(c Colour) int {
	return h.counts[c]
}

// Ranked returns the tracked colours ordered by descending pixel count.
// Colours with equal counts keep their first-appearance order.
func (h *Histogram) Ranked() []ColourCount {
	ranked := make([]ColourCount, len(h.order))
	for i, c := range h.order {
		ranked[i] = ColourCount{Colour: c, Count: h.counts[c]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// BaseColours infers the silhouette colours from the histogram. The most
// frequent colour is taken to be background; the second becomes Light and
// the third Dark.
func (h *Histogram) BaseColours() (BaseColours, error) {
	if h.Len() < 3 {
		return BaseColours{}, fmt.Errorf("%w: need at least 3 distinct colours, found %d", ErrInsufficientPalette, h.Len())
	}
	ranked := h.Ranked()
	return BaseColours{Light: ranked[1].Colour, Dark: ranked[2].Colour}, nil
}

// Discover infers the light and dark base colours of img.
func Discover(img image.Image) (BaseColours, error) {
	return NewHistogram(img).BaseColours()
}
