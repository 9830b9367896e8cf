package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/hubastard/groveui/engine/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestReadMissingWrapsNotExist(t *testing.T) {
	s := FromFS(fstest.MapFS{})
	_, err := s.Read("forms/missing.yaml")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadShaderTerminates(t *testing.T) {
	s := FromFS(fstest.MapFS{"shaders/ui.vert": {Data: []byte("void main(){}")}})
	src, err := s.LoadShader("ui.vert")
	require.NoError(t, err)
	assert.Equal(t, byte(0), src[len(src)-1])
}

func TestLoadPNGPacksRows(t *testing.T) {
	s := FromFS(fstest.MapFS{"atlas.png": {Data: pngBytes(t, 3, 2)}})
	w, h, pix, err := s.LoadPNG("atlas.png")
	require.NoError(t, err)
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
	require.Len(t, pix, 3*2*4)
	assert.Equal(t, []byte{255, 0, 0, 255}, pix[4:8])
}

func TestLoadTexture(t *testing.T) {
	rec := gfxtest.New()
	s := FromFS(fstest.MapFS{
		"atlas.png": {Data: pngBytes(t, 4, 4)},
		"bad.png":   {Data: []byte("nope")},
	})
	tex, err := s.LoadTexture(rec, "atlas.png")
	require.NoError(t, err)
	w, h := tex.Size()
	assert.Equal(t, [2]int{4, 4}, [2]int{w, h})

	_, err = s.LoadTexture(rec, "bad.png")
	assert.Error(t, err)
}
