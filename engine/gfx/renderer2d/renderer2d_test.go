package renderer2d

import (
	"bytes"
	"testing"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/gfx/gfxtest"
	"github.com/hubastard/groveui/engine/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchIsSharedPerTexture(t *testing.T) {
	rec := gfxtest.New()
	rd, err := New(rec, "", "", 16)
	require.NoError(t, err)

	atlas := rec.NewTexture("atlas", 64, 64)
	a, err := rd.Batch(atlas)
	require.NoError(t, err)
	b, err := rd.Batch(atlas)
	require.NoError(t, err)
	assert.Same(t, a, b)

	w, err := rd.Batch(nil)
	require.NoError(t, err)
	assert.Equal(t, rd.White(), w.Texture())
	assert.Equal(t, 2, rd.Stats().TextureCount)
}

func TestSessionIssuesOneDrawCall(t *testing.T) {
	rec := gfxtest.New()
	rd, err := New(rec, "", "", 16)
	require.NoError(t, err)
	b, err := rd.Batch(nil)
	require.NoError(t, err)

	assert.Zero(t, b.Finish(), "finishing an unopened batch draws nothing")

	b.Start([16]float32{})
	for i := 0; i < 5; i++ {
		b.Draw(float32(i), 0, 1, 1, 0, 0, 1, 1, colors.White)
	}
	assert.True(t, b.Started())
	assert.Equal(t, 1, b.Finish())
	assert.False(t, b.Started())

	require.Len(t, rec.Draws, 1)
	assert.Equal(t, 5*indsPerQuad, rec.Draws[0].Indices)
	assert.Equal(t, 1, rd.Stats().DrawCalls)
	assert.Equal(t, 5, rd.Stats().QuadCount)
	assert.Equal(t, 20, rd.Stats().TotalVertexCount())
}

func TestEmptySessionDrawsNothing(t *testing.T) {
	rec := gfxtest.New()
	rd, err := New(rec, "", "", 16)
	require.NoError(t, err)
	b, err := rd.Batch(nil)
	require.NoError(t, err)

	b.Start([16]float32{})
	assert.Zero(t, b.Finish())
	assert.Empty(t, rec.Draws)
}

func TestFailedUploadIsLoggedAndDropped(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.LevelInfo, &buf)
	defer logging.Init(logging.LevelInfo, nil)

	rec := gfxtest.New()
	rd, err := New(rec, "", "", 16)
	require.NoError(t, err)
	b, err := rd.Batch(nil)
	require.NoError(t, err)

	rec.FailUpdateMesh = true
	b.Start([16]float32{})
	b.Draw(0, 0, 1, 1, 0, 0, 1, 1, colors.White)
	assert.Zero(t, b.Finish())
	assert.Empty(t, rec.Draws)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "subsystem=renderer2d")
	assert.Contains(t, buf.String(), "dropping 1 quads")

	rec.FailUpdateMesh = false
	b.Start([16]float32{})
	b.Draw(0, 0, 1, 1, 0, 0, 1, 1, colors.White)
	assert.Equal(t, 1, b.Finish(), "the batch recovers once uploads succeed")
}

func TestFullBatchFlushes(t *testing.T) {
	rec := gfxtest.New()
	rd, err := New(rec, "", "", 2)
	require.NoError(t, err)
	b, err := rd.Batch(nil)
	require.NoError(t, err)

	b.Start([16]float32{})
	calls := 0
	for i := 0; i < 3; i++ {
		calls += b.Draw(0, 0, 1, 1, 0, 0, 1, 1, colors.White)
	}
	calls += b.Finish()
	assert.Equal(t, 2, calls)
	assert.Len(t, rec.Draws, 2)
}

func TestFromPixels(t *testing.T) {
	sub := FromPixels(nil, 16, 0, 16, 32, 64, 64)
	assert.InDelta(t, 0.25, sub.U0, 1e-6)
	assert.InDelta(t, 0.5, sub.U1, 1e-6)
	assert.InDelta(t, 0.5, sub.V1, 1e-6)

	flipped := FlippedV(nil)
	assert.Equal(t, float32(1), flipped.V0)
	assert.Equal(t, float32(0), flipped.V1)
}

func TestReleaseFreesResources(t *testing.T) {
	rec := gfxtest.New()
	rd, err := New(rec, "", "", 4)
	require.NoError(t, err)
	atlas := rec.NewTexture("atlas", 8, 8)
	_, err = rd.Batch(atlas)
	require.NoError(t, err)

	rd.ReleaseBatch(atlas)
	assert.Equal(t, 0, rd.Stats().TextureCount)

	white := rd.White().(*gfxtest.Texture)
	rd.Release()
	assert.True(t, white.Released)
}
