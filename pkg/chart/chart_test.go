package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = Series{
	Label:  ClicksLabel,
	Labels: []string{"2024-05-01", "2024-05-02", "2024-05-03"},
	Values: []float64{1, 4, 2},
}

func TestSlot_AtMostOneLiveChart(t *testing.T) {
	var slot Slot
	assert.Nil(t, slot.Current())

	first := NewSVG(sample)
	slot.Replace(first)
	assert.Same(t, first, slot.Current())
	assert.False(t, first.Destroyed())

	second := NewASCII(sample)
	slot.Replace(second)
	assert.True(t, first.Destroyed(), "previous chart is destroyed before the new one is installed")
	assert.False(t, second.Destroyed())
	assert.Same(t, second, slot.Current())

	slot.Clear()
	assert.True(t, second.Destroyed())
	assert.Nil(t, slot.Current())
}

func TestSlot_SwapDestroysBeforeBuilding(t *testing.T) {
	var slot Slot
	first := slot.Swap(func() Chart { return NewSVG(sample) })
	assert.Same(t, first, slot.Current())

	second := slot.Swap(func() Chart {
		assert.True(t, first.Destroyed(), "held chart is destroyed before its successor is built")
		return NewASCII(sample)
	})
	assert.False(t, second.Destroyed())
	assert.Same(t, second, slot.Current())
}

func TestRender_DestroyedChart(t *testing.T) {
	for name, factory := range map[string]Factory{"svg": NewSVG, "ascii": NewASCII} {
		t.Run(name, func(t *testing.T) {
			c := factory(sample)
			c.Destroy()
			var buf bytes.Buffer
			assert.ErrorIs(t, c.Render(&buf), ErrDestroyed)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestSVG_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSVG(sample).Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "<polyline")
	assert.Contains(t, out, ">Clicks</text>")
	for _, label := range sample.Labels {
		assert.Contains(t, out, label)
	}
	assert.Equal(t, 3, bytes.Count(buf.Bytes(), []byte("<circle")))
}

func TestSVG_Layout(t *testing.T) {
	d := NewSVG(sample).(*SVGChart).layout()

	assert.Equal(t, float64(4), d.Max)
	require.Len(t, d.Ticks, 3)
	assert.Equal(t, "40.0", d.Ticks[0].X)
	assert.Equal(t, "620.0", d.Ticks[2].X)
	assert.Equal(t, "20.0", d.Ticks[1].Y, "the maximum touches the top")

	empty := NewSVG(Series{Label: ClicksLabel}).(*SVGChart).layout()
	assert.Empty(t, empty.Points)
	assert.Empty(t, empty.Ticks)

	zeros := NewSVG(Series{Values: []float64{0, 0}}).(*SVGChart).layout()
	assert.Equal(t, "200.0", zeros.Ticks[0].Y, "all zero values sit on the axis")
}

func TestASCII_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewASCII(sample).Render(&buf))
	out := buf.String()
	assert.Contains(t, out, "Clicks")
	assert.Contains(t, out, "2024-05-01 … 2024-05-03")

	buf.Reset()
	require.NoError(t, NewASCII(Series{Label: ClicksLabel}).Render(&buf))
	assert.Equal(t, "Clicks: -\n", buf.String())
}
