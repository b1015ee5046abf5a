package clock

import (
	"bytes"
	"fmt"
	"math"
	"text/template"
)

// RenderSize is the default edge length of a rendered clock in pixels.
const RenderSize = 200

var svgTemplate = template.Must(template.New("clock").Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Size}}" height="{{.Size}}" viewBox="0 0 {{.Size}} {{.Size}}">
<title>{{html .Title}}</title>
{{- range .Wedges}}
<path d="{{.Path}}" fill="{{if .Filled}}{{$.Fill}}{{else}}none{{end}}" stroke="#000000" stroke-width="2"/>
{{- end}}
</svg>
`))

type wedge struct {
	Path   string
	Filled bool
}

// RenderSVG draws c as a pie of Segments wedges; the first Filled wedges,
// clockwise from twelve o'clock, are painted in the clock's color.
func RenderSVG(c ProgressClock, size int) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if size <= 0 {
		size = RenderSize
	}
	center := float64(size) / 2
	radius := center - 4

	wedges := make([]wedge, c.Segments)
	step := 2 * math.Pi / float64(c.Segments)
	for i := range wedges {
		wedges[i].Filled = i < c.Filled
		if c.Segments == 1 {
			wedges[i].Path = circlePath(center, radius)
			continue
		}
		start := float64(i)*step - math.Pi/2
		end := start + step
		wedges[i].Path = fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 0 1 %.2f %.2f Z",
			center, center,
			center+radius*math.Cos(start), center+radius*math.Sin(start),
			radius, radius,
			center+radius*math.Cos(end), center+radius*math.Sin(end))
	}

	var buf bytes.Buffer
	err := svgTemplate.Execute(&buf, struct {
		Size   int
		Title  string
		Fill   string
		Wedges []wedge
	}{Size: size, Title: c.Title(), Fill: c.Fill(), Wedges: wedges})
	if err != nil {
		return nil, fmt.Errorf("render clock: %w", err)
	}
	return buf.Bytes(), nil
}

// circlePath draws a full circle as two half arcs.
func circlePath(center, radius float64) string {
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 1 1 %.2f %.2f A %.2f %.2f 0 1 1 %.2f %.2f Z",
		center, center-radius,
		radius, radius, center, center+radius,
		radius, radius, center, center-radius)
}
