package chart

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
)

// ASCIIChart renders the series with asciigraph for terminals.
type ASCIIChart struct {
	base
	series Series
	height int
}

// NewASCII is the terminal Factory.
func NewASCII(s Series) Chart {
	return &ASCIIChart{series: s, height: 10}
}

// Render writes the plot followed by the first and last x labels.
func (c *ASCIIChart) Render(w io.Writer) error {
	if c.Destroyed() {
		return ErrDestroyed
	}

	if len(c.series.Values) == 0 {
		_, err := fmt.Fprintf(w, "%s: -\n", c.series.Label)
		return err
	}

	plot := asciigraph.Plot(c.series.Values,
		asciigraph.Height(c.height),
		asciigraph.Precision(0),
		asciigraph.Caption(c.series.Label),
	)
	if _, err := fmt.Fprintln(w, plot); err != nil {
		return err
	}

	if n := len(c.series.Labels); n > 0 {
		_, err := fmt.Fprintf(w, "%s … %s\n", c.series.Labels[0], c.series.Labels[n-1])
		return err
	}
	return nil
}
