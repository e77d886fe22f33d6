package cli

import (
	"github.com/spf13/pflag"

	"github.com/jmylchreest/silcolour/internal/colour"
)

// colourFlag is a pflag.Value holding an "R,G,B[,A]" colour. Malformed
// values are rejected while flags are parsed.
type colourFlag struct {
	text   string
	colour colour.Colour
}

var _ pflag.Value = (*colourFlag)(nil)

func (f *colourFlag) String() string {
	return f.text
}

func (f *colourFlag) Set(value string) error {
	c, err := colour.ParseChannelList(value)
	if err != nil {
		return err
	}
	f.text = value
	f.colour = c
	return nil
}

func (f *colourFlag) Type() string {
	return "R,G,B[,A]"
}

// changed reports whether the named flag was set on the command line.
func changed(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed
}
