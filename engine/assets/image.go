package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/hubastard/groveui/engine/core"
	"golang.org/x/image/draw"
)

// LoadPNG returns width, height, and tightly packed RGBA8 pixels (row-major,
// top-left origin).
func (s *Store) LoadPNG(rel string) (w, h int, rgba []byte, err error) {
	b, err := s.Read(rel)
	if err != nil {
		return 0, 0, nil, err
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode png %q: %w", rel, err)
	}
	m := toRGBA(img)
	return m.Rect.Dx(), m.Rect.Dy(), m.Pix, nil
}

// LoadTexture decodes a PNG and uploads it with linear filtering.
func (s *Store) LoadTexture(r core.Renderer, rel string) (core.Texture, error) {
	w, h, pix, err := s.LoadPNG(rel)
	if err != nil {
		return nil, err
	}
	tex, err := r.CreateTexture(core.TextureDesc{
		Width: w, Height: h,
		Format:    core.TextureRGBA8,
		Pixels:    pix,
		MinFilter: "linear",
		MagFilter: "linear",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		return nil, fmt.Errorf("upload %q: %w", rel, err)
	}
	return tex, nil
}

// toRGBA returns img as an RGBA image whose stride is exactly 4*width.
func toRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
