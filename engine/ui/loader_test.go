package ui

import (
	"testing"
	"testing/fstest"

	"github.com/hubastard/groveui/engine/assets"
	"github.com/hubastard/groveui/engine/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menuDoc = `
forms:
  menu:
    layout: vertical
    alignment: center
    consumeEvents: true
    batching: false
    size: [300, 200]
    padding: [8, 4]
    gap: 6
    controls:
      - type: label
        id: title
        text: Main menu
      - type: button
        id: play
        text: Play
        width: expand
        height: 40
      - type: slider
        id: volume
      - type: container
        id: row
        layout: horizontal
        controls:
          - type: button
            id: quit
            text: Quit
            enabled: false
          - type: button
            id: secret
            text: Secret
            visible: false
  hud:
    position: [10, 20]
    size: [100, 50]
`

const themedDoc = `
theme: themes/dark.yaml
forms:
  dialog:
    style: panel
    controls:
      - type: button
        id: ok
        text: OK
        style: primary
`

const darkTheme = `
font:
  size: 12
styles:
  panel:
    states:
      normal: {color: "#101010"}
  primary:
    states:
      normal: {color: "#2060c0", text: "#ffffff"}
`

func loaderSystem(t *testing.T, files fstest.MapFS) *System {
	t.Helper()
	s, _ := newTestSystem(t)
	s.SetAssets(assets.FromFS(files))
	return s
}

func TestLoadForm(t *testing.T) {
	s := loaderSystem(t, fstest.MapFS{"forms/menu.yaml": {Data: []byte(menuDoc)}})

	f, err := s.LoadForm("forms/menu.yaml#menu")
	require.NoError(t, err)
	assert.Equal(t, "menu", f.ID())
	assert.Same(t, f, s.Form("menu"))
	assert.True(t, f.ConsumeEvents())
	assert.False(t, f.BatchingEnabled())
	assert.Equal(t, LayoutVertical, f.LayoutType())
	assert.Equal(t, [4]float32{8, 4, 8, 4}, f.Node().Padding())
	assert.Equal(t, AnchorCenter, f.Anchor())

	w, h := f.Node().Size()
	assert.Equal(t, float32(300), w)
	assert.Equal(t, float32(200), h)
	x, y := f.Position()
	assert.Equal(t, float32(250), x)
	assert.Equal(t, float32(200), y)

	title, ok := f.ControlByID("title").(*Label)
	require.True(t, ok)
	assert.Equal(t, "Main menu", title.Text())

	play, ok := f.ControlByID("play").(*Button)
	require.True(t, ok)
	assert.Equal(t, "Play", play.Caption())
	pw, ph := play.Node().Size()
	assert.Equal(t, float32(300-16), pw, "expands across the padded form")
	assert.Equal(t, float32(40), ph)

	assert.Nil(t, f.ControlByID("volume"), "unknown types are skipped")

	quit := f.ControlByID("quit")
	require.NotNil(t, quit)
	assert.False(t, quit.Node().Enabled())
	assert.Equal(t, Disabled, quit.Node().State())
	assert.Same(t, f.ControlByID("row"), quit.Node().Parent())
	assert.False(t, f.ControlByID("secret").Node().Visible())

	assert.True(t, s.SetFocusControl(play))
	assert.False(t, s.SetFocusControl(quit))
}

func TestLoadSingleFormWithoutID(t *testing.T) {
	s := loaderSystem(t, fstest.MapFS{"forms/dialog.yaml": {Data: []byte(`
forms:
  only:
    size: [10, 10]
`)}})
	f, err := s.LoadForm("forms/dialog.yaml")
	require.NoError(t, err)
	assert.Equal(t, "only", f.ID())
}

func TestLoadFormPosition(t *testing.T) {
	s := loaderSystem(t, fstest.MapFS{"forms/menu.yaml": {Data: []byte(menuDoc)}})
	f, err := s.LoadForm("forms/menu.yaml#hud")
	require.NoError(t, err)
	x, y := f.Position()
	assert.Equal(t, float32(10), x)
	assert.Equal(t, float32(20), y)
	assert.False(t, f.ConsumeEvents())
	assert.True(t, f.BatchingEnabled())
}

func TestLoadFormUsesDocumentTheme(t *testing.T) {
	s := loaderSystem(t, fstest.MapFS{
		"forms/dialog.yaml": {Data: []byte(themedDoc)},
		"themes/dark.yaml":  {Data: []byte(darkTheme)},
	})

	f, err := s.LoadForm("forms/dialog.yaml#dialog")
	require.NoError(t, err)
	require.NotNil(t, f.Theme())
	assert.NotSame(t, s.Theme(), f.Theme())
	assert.Equal(t, "panel", f.Node().Style().ID)
	assert.Equal(t, "primary", f.ControlByID("ok").Node().Style().ID)

	// A second form from the same document shares the cached theme.
	g, err := s.LoadForm("forms/dialog.yaml#dialog")
	require.NoError(t, err)
	assert.Same(t, f.Theme(), g.Theme())
}

func TestLoadFormErrors(t *testing.T) {
	s := loaderSystem(t, fstest.MapFS{
		"forms/menu.yaml":   {Data: []byte(menuDoc)},
		"forms/broken.yaml": {Data: []byte("forms: [")},
		"forms/style.yaml": {Data: []byte(`
forms:
  bad:
    controls:
      - type: button
        style: nope
`)},
		"forms/layout.yaml": {Data: []byte(`
forms:
  bad:
    layout: diagonal
`)},
		"forms/theme.yaml": {Data: []byte(`
theme: themes/missing.yaml
forms:
  bad: {}
`)},
	})

	_, err := s.LoadForm("forms/missing.yaml#menu")
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = s.LoadForm("forms/menu.yaml#nope")
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = s.LoadForm("forms/menu.yaml")
	assert.ErrorIs(t, err, ErrResourceNotFound, "two forms and no ID")

	_, err = s.LoadForm("forms/style.yaml#bad")
	assert.ErrorIs(t, err, theme.ErrStyleNotFound)

	_, err = s.LoadForm("forms/layout.yaml#bad")
	assert.ErrorIs(t, err, ErrUnknownLayout)

	_, err = s.LoadForm("forms/theme.yaml#bad")
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = s.LoadForm("forms/broken.yaml#x")
	assert.Error(t, err)

	assert.Nil(t, s.CreateForm("forms/missing.yaml#menu"))
	assert.Empty(t, s.Forms(), "failed loads leave no forms behind")
	assert.Empty(t, s.controls)
}

func TestRegisterControlType(t *testing.T) {
	RegisterControlType("test-spacer", func(d *ControlDesc) (Control, error) {
		h, _ := d.Props["thickness"].(int)
		return NewContainer(LayoutAbsolute).Size(0, float32(h)), nil
	})
	s := loaderSystem(t, fstest.MapFS{"forms/f.yaml": {Data: []byte(`
forms:
  f:
    controls:
      - type: Test-Spacer
        id: gap
        thickness: 12
`)}})

	f := s.CreateForm("forms/f.yaml#f")
	require.NotNil(t, f)
	gap := f.ControlByID("gap")
	require.NotNil(t, gap)
	_, h := gap.Node().Size()
	assert.Equal(t, float32(12), h)
}

func TestParseLayoutAndAnchor(t *testing.T) {
	for in, want := range map[string]LayoutType{
		"":                LayoutAbsolute,
		"vertical":        LayoutVertical,
		"Horizontal":      LayoutHorizontal,
		"layout_flow":     LayoutFlow,
		" scroll ":        LayoutScroll,
		"LAYOUT_ABSOLUTE": LayoutAbsolute,
	} {
		got, err := ParseLayout(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	assert.Equal(t, "scroll", LayoutScroll.String())
	_, err := ParseLayout("grid")
	assert.ErrorIs(t, err, ErrUnknownLayout)

	a, ok := ParseAnchor("bottom_right")
	assert.True(t, ok)
	assert.Equal(t, AnchorBottomRight, a)
	a, ok = ParseAnchor("Top-Left")
	assert.True(t, ok)
	assert.Equal(t, AnchorTopLeft, a)
	_, ok = ParseAnchor("middle")
	assert.False(t, ok)
}
