package text

import (
	"testing"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/gfx/gfxtest"
	"github.com/hubastard/groveui/engine/gfx/renderer2d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quadRecorder struct{ quads []renderer2d.SubTexture2D }

func (q *quadRecorder) Quad(_, _, _, _ float32, sub renderer2d.SubTexture2D, _ colors.Color) {
	q.quads = append(q.quads, sub)
}

func TestDefaultFontBuildsAtlas(t *testing.T) {
	rec := gfxtest.New()
	f, err := Default(rec, 16)
	require.NoError(t, err)
	defer f.Close()

	require.NotNil(t, f.Texture)
	assert.Greater(t, f.Ascent, float32(0))
	g, ok := f.Glyphs['A']
	require.True(t, ok)
	assert.Greater(t, g.W, 0)
	assert.Greater(t, g.Advance, float32(0))
	assert.Same(t, f.Texture, g.Sub.Texture)
	assert.Less(t, g.Sub.U0, g.Sub.U1)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(gfxtest.New(), []byte("not a font"), 12)
	assert.Error(t, err)
}

func TestDrawSkipsBlankGlyphs(t *testing.T) {
	f, err := Default(gfxtest.New(), 14)
	require.NoError(t, err)
	defer f.Close()

	var sink quadRecorder
	Draw(&sink, f, 0, 0, "a b\nc", colors.White)
	assert.Len(t, sink.quads, 3)
}

func TestMeasure(t *testing.T) {
	f, err := Default(gfxtest.New(), 14)
	require.NoError(t, err)
	defer f.Close()

	w, h := Measure(f, "A")
	assert.Equal(t, f.Glyphs['A'].Advance, w)
	assert.Equal(t, LineHeight(f), h)

	_, h2 := Measure(f, "A\nA")
	assert.Equal(t, 2*LineHeight(f), h2)
}

func TestCloseReleasesAtlas(t *testing.T) {
	f, err := Default(gfxtest.New(), 12)
	require.NoError(t, err)
	tex := f.Texture.(*gfxtest.Texture)
	f.Close()
	assert.True(t, tex.Released)
	assert.Nil(t, f.Texture)
}
