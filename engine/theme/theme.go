// Package theme resolves style IDs to per-state skins on an atlas texture.
package theme

import (
	"errors"
	"fmt"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/gfx/renderer2d"
	"github.com/hubastard/groveui/engine/text"
)

var ErrStyleNotFound = errors.New("style not found")

// Skin is how a control looks in one state. A nil Region texture draws the
// flat Color.
type Skin struct {
	Region    renderer2d.SubTexture2D
	Color     colors.Color
	TextColor colors.Color
}

// Style groups the skins for each control state, keyed by state name
// ("normal", "focus", "active", "disabled", "hover").
type Style struct {
	ID      string
	Padding float32
	Skins   map[string]Skin
}

// Skin returns the skin for state, falling back to "normal".
func (s *Style) Skin(state string) Skin {
	if sk, ok := s.Skins[state]; ok {
		return sk
	}
	return s.Skins["normal"]
}

type Theme struct {
	Atlas core.Texture // nil when every skin is flat
	Font  *text.Font

	styles map[string]*Style
}

func New(atlas core.Texture, font *text.Font) *Theme {
	return &Theme{Atlas: atlas, Font: font, styles: make(map[string]*Style)}
}

func (t *Theme) AddStyle(s *Style) { t.styles[s.ID] = s }

func (t *Theme) Style(id string) (*Style, error) {
	s, ok := t.styles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStyleNotFound, id)
	}
	return s, nil
}

// Release frees the atlas and font.
func (t *Theme) Release() {
	if t.Atlas != nil {
		t.Atlas.Release()
		t.Atlas = nil
	}
	t.Font.Close()
}

func flat(c colors.Color, textColor colors.Color) Skin {
	return Skin{Color: c, TextColor: textColor}
}

// Default builds a flat theme on the embedded Go font.
func Default(r core.Renderer) (*Theme, error) {
	font, err := text.Default(r, 16)
	if err != nil {
		return nil, fmt.Errorf("default theme font: %w", err)
	}
	t := New(nil, font)
	panel := colors.Color{0.12, 0.14, 0.17, 0.92}
	btn := colors.Color{0.22, 0.42, 0.66, 1}
	t.AddStyle(&Style{ID: "form", Padding: 8, Skins: map[string]Skin{
		"normal": flat(panel, colors.White),
	}})
	t.AddStyle(&Style{ID: "container", Skins: map[string]Skin{
		"normal": flat(colors.Transparent, colors.White),
	}})
	t.AddStyle(&Style{ID: "label", Padding: 2, Skins: map[string]Skin{
		"normal":   flat(colors.Transparent, colors.White),
		"disabled": flat(colors.Transparent, colors.Gray),
	}})
	t.AddStyle(&Style{ID: "button", Padding: 6, Skins: map[string]Skin{
		"normal":   flat(btn, colors.White),
		"hover":    flat(btn.Shade(1.15), colors.White),
		"focus":    flat(btn.Shade(1.3), colors.White),
		"active":   flat(btn.Shade(0.7), colors.White),
		"disabled": flat(colors.Gray, colors.DarkGray),
	}})
	return t, nil
}
