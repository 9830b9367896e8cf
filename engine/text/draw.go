package text

import (
	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/gfx/renderer2d"
)

// QuadSink receives one textured quad per visible glyph, top-left origin.
type QuadSink interface {
	Quad(x, y, w, h float32, sub renderer2d.SubTexture2D, color colors.Color)
}

// Draw lays s out with its top-left corner at (x,y). Positive Y goes down.
func Draw(sink QuadSink, f *Font, x, y float32, s string, color colors.Color) {
	penX := x
	baseY := y + f.Ascent
	prev := rune(-1)

	for _, r := range s {
		if r == '\n' {
			penX = x
			baseY += LineHeight(f)
			prev = -1
			continue
		}
		g, ok := f.Glyphs[r]
		if !ok {
			if sp, ok := f.Glyphs[' ']; ok {
				penX += sp.Advance
			}
			prev = r
			continue
		}
		if prev >= 0 {
			penX += f.Kern(prev, r)
		}
		if g.W > 0 && g.H > 0 {
			sink.Quad(penX+g.BearingX, baseY-g.BearingY, float32(g.W), float32(g.H), g.Sub, color)
		}
		penX += g.Advance
		prev = r
	}
}

// Measure returns the bounding size of s in pixels.
func Measure(f *Font, s string) (width, height float32) {
	var lineW float32
	prev := rune(-1)
	lineH := LineHeight(f)
	height = lineH

	for _, r := range s {
		if r == '\n' {
			width = max(width, lineW)
			lineW = 0
			height += lineH
			prev = -1
			continue
		}
		g, ok := f.Glyphs[r]
		if !ok {
			if sp, ok := f.Glyphs[' ']; ok {
				lineW += sp.Advance
			}
			prev = r
			continue
		}
		if prev >= 0 {
			lineW += f.Kern(prev, r)
		}
		lineW += g.Advance
		prev = r
	}
	return max(width, lineW), height
}

func LineHeight(f *Font) float32 { return f.Ascent - f.Descent + f.LineGap }
