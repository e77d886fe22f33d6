package colour

import (
	"image"
)

// Replacer substitutes a silhouette's base colours with a target colour and
// its darkened shade.
type Replacer struct {
	base  BaseColours
	light Colour
	dark  Colour
}

// ReplaceStats counts the substitutions made by a single Apply call.
type ReplaceStats struct {
	Light int
	Dark  int
}

// NewReplacer prepares a replacement of base with target. The dark base
// colour is mapped to target darkened by factor.
func NewReplacer(base BaseColours, target Colour, factor float64) (*Replacer, error) {
	dark, err := Darken(target, factor)
	if err != nil {
		return nil, err
	}
	return &Replacer{
		base:  base,
		light: target.Opaque(),
		dark:  dark,
	}, nil
}

// Target returns the colours written for the light and dark base colours.
func (r *Replacer) Target() BaseColours {
	return BaseColours{Light: r.light, Dark: r.dark}
}

// Apply returns a copy of src in which every pixel exactly equal to the
// light base colour becomes the target, every pixel equal to the dark base
// colour becomes the darkened target, and all other pixels are unchanged.
// src is not modified.
func (r *Replacer) Apply(src *image.NRGBA) (*image.NRGBA, ReplaceStats) {
	var stats ReplaceStats

	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		di := dst.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			px := Colour{R: src.Pix[si], G: src.Pix[si+1], B: src.Pix[si+2], A: src.Pix[si+3]}
			switch px {
			case r.base.Light:
				px = r.light
				stats.Light++
			case r.base.Dark:
				px = r.dark
				stats.Dark++
			}
			dst.Pix[di] = px.R
			dst.Pix[di+1] = px.G
			dst.Pix[di+2] = px.B
			dst.Pix[di+3] = px.A
			si += 4
			di += 4
		}
	}

	return dst, stats
}

// Replace is a convenience wrapper around NewReplacer and Apply.
func Replace(src *image.NRGBA, base BaseColours, target Colour, factor float64) (*image.NRGBA, error) {
	r, err := NewReplacer(base, target, factor)
	if err != nil {
		return nil, err
	}
	dst, _ := r.Apply(src)
	return dst, nil
}
