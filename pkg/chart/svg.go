package chart

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

const (
	svgWidth   = 640
	svgHeight  = 240
	svgPadLeft = 40
	svgPadTop  = 20
	svgPadX    = 20
	svgPadBot  = 40
)

var svgTemplate = template.Must(template.New("chart").Parse(`<svg class="timeline-chart" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 {{.Width}} {{.Height}}" role="img" aria-label="{{.Label}}">
  <line x1="{{.Left}}" y1="{{.Bottom}}" x2="{{.Right}}" y2="{{.Bottom}}" stroke="#9ca3af"/>
  <line x1="{{.Left}}" y1="{{.Top}}" x2="{{.Left}}" y2="{{.Bottom}}" stroke="#9ca3af"/>
  <text x="{{.Left}}" y="{{.Top}}" dx="-6" text-anchor="end" font-size="11">{{.Max}}</text>
  <text x="{{.Left}}" y="{{.Bottom}}" dx="-6" text-anchor="end" font-size="11">0</text>
  {{- if .Points}}
  <polyline fill="none" stroke="#2563eb" stroke-width="2" points="{{.Points}}"/>
  {{- end}}
  {{- range .Ticks}}
  <circle cx="{{.X}}" cy="{{.Y}}" r="3" fill="#2563eb"><title>{{.Label}}: {{.Value}}</title></circle>
  <text x="{{.X}}" y="{{$.LabelY}}" text-anchor="middle" font-size="10">{{.Label}}</text>
  {{- end}}
  <text x="{{.Right}}" y="{{.Top}}" text-anchor="end" font-size="12">{{.Label}}</text>
</svg>
`))

type svgTick struct {
	X, Y  string
	Label string
	Value float64
}

type svgData struct {
	Width, Height            int
	Left, Right, Top, Bottom int
	LabelY                   int
	Label                    string
	Max                      float64
	Points                   string
	Ticks                    []svgTick
}

// SVGChart renders the series as an inline SVG line chart.
type SVGChart struct {
	base
	series Series
}

// NewSVG is the web Factory.
func NewSVG(s Series) Chart {
	return &SVGChart{series: s}
}

// Render writes the SVG markup.
func (c *SVGChart) Render(w io.Writer) error {
	if c.Destroyed() {
		return ErrDestroyed
	}
	return svgTemplate.Execute(w, c.layout())
}

func (c *SVGChart) layout() svgData {
	d := svgData{
		Width:  svgWidth,
		Height: svgHeight,
		Left:   svgPadLeft,
		Right:  svgWidth - svgPadX,
		Top:    svgPadTop,
		Bottom: svgHeight - svgPadBot,
		LabelY: svgHeight - svgPadBot + 16,
		Label:  c.series.Label,
	}

	for _, v := range c.series.Values {
		if v > d.Max {
			d.Max = v
		}
	}
	scale := d.Max
	if scale == 0 {
		scale = 1
	}

	n := len(c.series.Values)
	step := 0.0
	if n > 1 {
		step = float64(d.Right-d.Left) / float64(n-1)
	}

	points := make([]string, 0, n)
	for i, v := range c.series.Values {
		x := float64(d.Left) + step*float64(i)
		if n == 1 {
			x = float64(d.Left+d.Right) / 2
		}
		y := float64(d.Bottom) - v/scale*float64(d.Bottom-d.Top)

		xs, ys := fmt.Sprintf("%.1f", x), fmt.Sprintf("%.1f", y)
		points = append(points, xs+","+ys)

		label := ""
		if i < len(c.series.Labels) {
			label = c.series.Labels[i]
		}
		d.Ticks = append(d.Ticks, svgTick{X: xs, Y: ys, Label: label, Value: v})
	}
	d.Points = strings.Join(points, " ")
	return d
}
