package graph

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/google/uuid"
	"golang.org/x/image/font/basicfont"
)

const (
	pngMargin   = 40.0
	pngColWidth = 200.0
	pngRowGap   = 110.0
	pngBoxW     = 170.0
	pngBoxH     = 44.0
	pngMaxRunes = 22
	pngMaxCols  = 12
	pngMaxRows  = 30
	pngFooterH  = 24.0
)

// Depths assigns each node its distance from a root along structural edges.
func Depths(g Graph) map[uuid.UUID]int {
	parent := make(map[uuid.UUID]uuid.UUID, len(g.Edges))
	for _, e := range g.Edges {
		if e.Kind == EdgeStructural {
			parent[e.Target] = e.Source
		}
	}
	out := make(map[uuid.UUID]int, len(g.Nodes))
	for _, n := range g.Nodes {
		d := 0
		cur := n.ID
		for d < len(g.Nodes) {
			p, ok := parent[cur]
			if !ok {
				break
			}
			cur = p
			d++
		}
		out[n.ID] = d
	}
	return out
}

// RenderPNG draws nodes in rows by depth, wrapping a level past pngMaxCols boxes.
// Rows beyond pngMaxRows are left out and counted in a footer. Structural edges
// are solid, explicit edges dashed, both colored from the palette by position.
func RenderPNG(g Graph) ([]byte, error) {
	if g.Empty() {
		dc := gg.NewContext(520, 120)
		dc.SetRGB(1, 1, 1)
		dc.Clear()
		dc.SetFontFace(basicfont.Face7x13)
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(EmptyPlaceholder, 260, 60, 0.5, 0.5)
		return encode(dc)
	}

	depths := Depths(g)
	levels := map[int][]uuid.UUID{}
	maxDepth := 0
	for _, n := range g.Nodes {
		d := depths[n.ID]
		levels[d] = append(levels[d], n.ID)
		if d > maxDepth {
			maxDepth = d
		}
	}
	var lines [][]uuid.UUID
	for d := 0; d <= maxDepth; d++ {
		level := levels[d]
		for len(level) > 0 {
			n := min(len(level), pngMaxCols)
			lines = append(lines, level[:n])
			level = level[n:]
		}
	}
	hidden := 0
	if len(lines) > pngMaxRows {
		for _, l := range lines[pngMaxRows:] {
			hidden += len(l)
		}
		lines = lines[:pngMaxRows]
	}
	widest := 0
	for _, l := range lines {
		widest = max(widest, len(l))
	}

	width := int(2*pngMargin + float64(widest)*pngColWidth)
	height := int(2*pngMargin + float64(len(lines)-1)*pngRowGap + pngBoxH)
	if hidden > 0 {
		height += int(pngFooterH)
	}
	centers := make(map[uuid.UUID][2]float64, len(g.Nodes))
	for r, line := range lines {
		offset := (float64(widest-len(line)) * pngColWidth) / 2
		for i, id := range line {
			x := pngMargin + offset + float64(i)*pngColWidth + pngColWidth/2
			y := pngMargin + float64(r)*pngRowGap + pngBoxH/2
			centers[id] = [2]float64{x, y}
		}
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetLineWidth(2)
	for i, e := range g.Edges {
		from, okA := centers[e.Source]
		to, okB := centers[e.Target]
		if !okA || !okB {
			continue
		}
		dc.SetHexColor(Colors[i%len(Colors)])
		if e.Kind == EdgeExplicit {
			dc.SetDash(6, 4)
		} else {
			dc.SetDash()
		}
		dc.DrawLine(from[0], from[1]+pngBoxH/2, to[0], to[1]-pngBoxH/2)
		dc.Stroke()
		drawArrowHead(dc, from[0], from[1]+pngBoxH/2, to[0], to[1]-pngBoxH/2)
	}
	dc.SetDash()

	labels := make(map[uuid.UUID]string, len(g.Nodes))
	for _, n := range g.Nodes {
		labels[n.ID] = n.Label
	}
	for _, n := range g.Nodes {
		c, ok := centers[n.ID]
		if !ok {
			continue
		}
		dc.DrawRoundedRectangle(c[0]-pngBoxW/2, c[1]-pngBoxH/2, pngBoxW, pngBoxH, 8)
		dc.SetHexColor("#F7F9FC")
		dc.FillPreserve()
		dc.SetHexColor("#4A5568")
		dc.SetLineWidth(1.5)
		dc.Stroke()
		dc.SetHexColor("#1A202C")
		dc.DrawStringAnchored(truncate(labels[n.ID], pngMaxRunes), c[0], c[1], 0.5, 0.35)
	}
	if hidden > 0 {
		dc.SetHexColor("#4A5568")
		dc.DrawStringAnchored(fmt.Sprintf("+%d more nodes not shown", hidden), float64(width)/2, float64(height)-pngMargin/2, 0.5, 0.5)
	}
	return encode(dc)
}

func drawArrowHead(dc *gg.Context, x1, y1, x2, y2 float64) {
	angle := math.Atan2(y2-y1, x2-x1)
	const size = 8.0
	dc.MoveTo(x2, y2)
	dc.LineTo(x2-size*math.Cos(angle-math.Pi/6), y2-size*math.Sin(angle-math.Pi/6))
	dc.LineTo(x2-size*math.Cos(angle+math.Pi/6), y2-size*math.Sin(angle+math.Pi/6))
	dc.ClosePath()
	dc.Fill()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
