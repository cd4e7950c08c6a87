// Package chart draws the click timeline of a campaign, as SVG for the web front end and as
// text for the terminal, and holds the single live chart of a dashboard view.
package chart

import (
	"errors"
	"io"
	"sync"
)

// ClicksLabel is the dataset label of the timeline chart.
const ClicksLabel = "Clicks"

// ErrDestroyed is returned when rendering a chart that was replaced.
var ErrDestroyed = errors.New("chart: destroyed")

// Series is a line chart dataset: Labels[i] is the x label of Values[i].
type Series struct {
	Label  string
	Labels []string
	Values []float64
}

// Chart is a rendered line chart. Destroy releases it; a destroyed chart no longer renders.
type Chart interface {
	Render(w io.Writer) error
	Destroy()
	Destroyed() bool
}

// Factory builds a chart for a series.
type Factory func(Series) Chart

// base carries the destroyed flag shared by the renderers.
type base struct {
	mu        sync.Mutex
	destroyed bool
}

func (b *base) Destroy() {
	b.mu.Lock()
	b.destroyed = true
	b.mu.Unlock()
}

func (b *base) Destroyed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.destroyed
}

// Slot holds at most one live chart. Installing a new chart destroys the previous one first.
type Slot struct {
	mu      sync.Mutex
	current Chart
}

// Replace destroys the held chart, if any, and installs c.
func (s *Slot) Replace(c Chart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.Destroy()
	}
	s.current = c
}

// Swap destroys the held chart, then builds and installs its successor. No other chart is
// live while build runs.
func (s *Slot) Swap(build func() Chart) Chart {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.Destroy()
		s.current = nil
	}
	s.current = build()
	return s.current
}

// Current returns the live chart, or nil.
func (s *Slot) Current() Chart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Clear destroys and removes the held chart.
func (s *Slot) Clear() {
	s.Replace(nil)
}
