package text

import (
	"fmt"
	"image"
	"os"

	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/gfx/renderer2d"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // distance from baseline to glyph top
	W, H     int     // glyph bitmap size
	Sub      renderer2d.SubTexture2D
}

// Font is a rasterized face packed into a single white-on-transparent atlas.
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Texture                  core.Texture
	AtlasW, AtlasH           int

	face font.Face
}

const (
	atlasPadding = 2
	maxAtlasSize = 4096
)

// Load reads a TTF/OTF file and builds its atlas at sizePx.
func Load(r core.Renderer, path string, sizePx float32) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return Parse(r, data, sizePx)
}

// Default builds an atlas from the embedded Go Regular face.
func Default(r core.Renderer, sizePx float32) (*Font, error) {
	return Parse(r, goregular.TTF, sizePx)
}

// Parse builds an atlas for Latin-1 from font data and uploads it to r.
func Parse(r core.Renderer, data []byte, sizePx float32) (*Font, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	var measure []meas
	for rr := rune(32); rr <= 255; rr++ {
		if rr >= 127 && rr < 160 {
			continue
		}
		br, adv, ok := face.GlyphBounds(rr)
		if !ok {
			continue
		}
		measure = append(measure, meas{
			r:   rr,
			w:   (br.Max.X - br.Min.X).Ceil(),
			h:   (br.Max.Y - br.Min.Y).Ceil(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Floor()),
			by:  float32(-br.Min.Y.Floor()),
		})
	}

	// Shelf packer; grow the square atlas until every glyph fits.
	atlasSize := 128
	var pos map[rune]image.Point
	for {
		x, y, rowH := atlasPadding, atlasPadding, 0
		fits := true
		pos = make(map[rune]image.Point, len(measure))
		for _, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if x+g.w+atlasPadding > atlasSize {
				x = atlasPadding
				y += rowH + atlasPadding
				rowH = 0
			}
			if g.w+2*atlasPadding > atlasSize || y+g.h+atlasPadding > atlasSize {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + atlasPadding
			rowH = max(rowH, g.h)
		}
		if fits {
			break
		}
		atlasSize *= 2
		if atlasSize > maxAtlasSize {
			_ = face.Close()
			return nil, fmt.Errorf("font atlas too large (>%d)", maxAtlasSize)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	glyphs := make(map[rune]Glyph, len(measure))
	for _, g := range measure {
		gl := Glyph{Rune: g.r, Advance: g.adv, BearingX: g.bx, BearingY: g.by, W: g.w, H: g.h}
		if p, ok := pos[g.r]; ok {
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
			gl.Sub = renderer2d.FromPixels(nil, p.X, p.Y, g.w, g.h, atlasSize, atlasSize)
		}
		glyphs[g.r] = gl
	}

	tex, err := r.CreateTexture(core.TextureDesc{
		Width: atlasSize, Height: atlasSize,
		Format:    core.TextureRGBA8,
		Pixels:    dst.Pix,
		MinFilter: "nearest",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		_ = face.Close()
		return nil, fmt.Errorf("upload font atlas: %w", err)
	}
	for k, g := range glyphs {
		g.Sub.Texture = tex
		glyphs[k] = g
	}

	return &Font{
		SizePx: sizePx,
		Ascent: ascent, Descent: descent, LineGap: lineGap,
		Glyphs:  glyphs,
		Texture: tex,
		AtlasW:  atlasSize, AtlasH: atlasSize,
		face: face,
	}, nil
}

// Kern is the horizontal adjustment in pixels between a and b.
func (f *Font) Kern(a, b rune) float32 {
	if f.face == nil {
		return 0
	}
	return float32(f.face.Kern(a, b)) / 64
}

// Close releases the face and the atlas texture.
func (f *Font) Close() {
	if f == nil {
		return
	}
	if f.face != nil {
		_ = f.face.Close()
		f.face = nil
	}
	if f.Texture != nil {
		f.Texture.Release()
		f.Texture = nil
	}
}
