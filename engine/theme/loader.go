package theme

import (
	"fmt"

	"github.com/hubastard/groveui/engine/assets"
	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/gfx/renderer2d"
	"github.com/hubastard/groveui/engine/text"
	"gopkg.in/yaml.v3"
)

type fileSkin struct {
	Region []int  `yaml:"region"` // x, y, w, h in atlas pixels
	Color  string `yaml:"color"`
	Text   string `yaml:"text"`
}

type fileStyle struct {
	Padding float32             `yaml:"padding"`
	States  map[string]fileSkin `yaml:"states"`
}

type fileTheme struct {
	Atlas string `yaml:"atlas"`
	Font  struct {
		Path string  `yaml:"path"`
		Size float32 `yaml:"size"`
	} `yaml:"font"`
	Styles map[string]fileStyle `yaml:"styles"`
}

// Load reads a YAML theme document from store and uploads its atlas and font.
func Load(r core.Renderer, store *assets.Store, rel string) (*Theme, error) {
	data, err := store.Read(rel)
	if err != nil {
		return nil, err
	}
	var doc fileTheme
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse theme %q: %w", rel, err)
	}

	size := doc.Font.Size
	if size <= 0 {
		size = 16
	}
	var font *text.Font
	if doc.Font.Path != "" {
		b, err := store.Read(doc.Font.Path)
		if err != nil {
			return nil, err
		}
		font, err = text.Parse(r, b, size)
		if err != nil {
			return nil, fmt.Errorf("theme %q font: %w", rel, err)
		}
	} else if font, err = text.Default(r, size); err != nil {
		return nil, fmt.Errorf("theme %q font: %w", rel, err)
	}

	t := New(nil, font)
	atlasW, atlasH := 0, 0
	if doc.Atlas != "" {
		tex, err := store.LoadTexture(r, doc.Atlas)
		if err != nil {
			t.Release()
			return nil, err
		}
		t.Atlas = tex
		atlasW, atlasH = tex.Size()
	}

	for id, fs := range doc.Styles {
		st := &Style{ID: id, Padding: fs.Padding, Skins: make(map[string]Skin, len(fs.States))}
		for state, sk := range fs.States {
			skin, err := parseSkin(sk, t.Atlas, atlasW, atlasH)
			if err != nil {
				t.Release()
				return nil, fmt.Errorf("theme %q style %q state %q: %w", rel, id, state, err)
			}
			st.Skins[state] = skin
		}
		t.AddStyle(st)
	}
	return t, nil
}

func parseSkin(fs fileSkin, atlas core.Texture, atlasW, atlasH int) (Skin, error) {
	skin := Skin{Color: colors.White, TextColor: colors.White}
	if fs.Color != "" {
		c, ok := colors.Hex(fs.Color)
		if !ok {
			return skin, fmt.Errorf("bad color %q", fs.Color)
		}
		skin.Color = c
	}
	if fs.Text != "" {
		c, ok := colors.Hex(fs.Text)
		if !ok {
			return skin, fmt.Errorf("bad text color %q", fs.Text)
		}
		skin.TextColor = c
	}
	if len(fs.Region) > 0 {
		if len(fs.Region) != 4 {
			return skin, fmt.Errorf("region wants 4 values, got %d", len(fs.Region))
		}
		if atlas == nil {
			return skin, fmt.Errorf("region without an atlas")
		}
		skin.Region = renderer2d.FromPixels(atlas, fs.Region[0], fs.Region[1], fs.Region[2], fs.Region[3], atlasW, atlasH)
	}
	return skin, nil
}
