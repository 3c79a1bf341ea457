package export

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/experiment"
)

var palette = []string{"#00ff88", "#ffaa00", "#00aaff", "#ff4477", "#cc88ff", "#ffff66"}

type point struct{ X, Y float64 }

type bounds struct {
	minX, maxX, minY, maxY float64
}

func (b *bounds) add(x, y, r float64) {
	b.minX = math.Min(b.minX, x-r)
	b.maxX = math.Max(b.maxX, x+r)
	b.minY = math.Min(b.minY, y-r)
	b.maxY = math.Max(b.maxY, y+r)
}

// SVG draws each body's path across the frames and the final bodies as
// discs sized by radius. Screen y grows downward, matching the UIs.
func SVG(w io.Writer, frames []experiment.Frame, width, height int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to export")
	}

	paths := make(map[dynamo.BodyID][]point)
	bb := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, f := range frames {
		for _, b := range f.Bodies {
			paths[b.ID] = append(paths[b.ID], point{b.X, b.Y})
			bb.add(b.X, b.Y, b.Radius)
		}
	}
	if math.IsInf(bb.minX, 1) {
		bb = bounds{-1, 1, -1, 1}
	}

	// Add padding
	rangeX := bb.maxX - bb.minX
	rangeY := bb.maxY - bb.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	span := math.Max(rangeX, rangeY) * 1.2
	cx := (bb.minX + bb.maxX) / 2
	cy := (bb.minY + bb.maxY) / 2
	scale := math.Min(float64(width), float64(height)) / span

	project := func(x, y float64) (float64, float64) {
		return float64(width)/2 + (x-cx)*scale, float64(height)/2 + (y-cy)*scale
	}

	ids := make([]dynamo.BodyID, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, id := range ids {
		pts := paths[id]
		if len(pts) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.7" d="`, color(id)))
		for i, p := range pts {
			x, y := project(p.X, p.Y)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	for _, b := range frames[len(frames)-1].Bodies {
		x, y := project(b.X, b.Y)
		r := math.Max(b.Radius*scale, 1)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, r, color(b.ID)))
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func color(id dynamo.BodyID) string {
	return palette[int(id)%len(palette)]
}
