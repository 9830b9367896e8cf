package ui

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/hubastard/groveui/engine/logging"
	"github.com/hubastard/groveui/engine/theme"
	"gopkg.in/yaml.v3"
)

// ErrResourceNotFound is returned when a form description or one of the
// forms it names does not exist.
var ErrResourceNotFound = errors.New("resource not found")

// ControlDesc is one entry of a form description's controls list. Keys the
// built-in fields don't cover are kept in Props for custom control types.
type ControlDesc struct {
	Type      string         `yaml:"type"`
	ID        string         `yaml:"id"`
	Text      string         `yaml:"text"`
	Style     string         `yaml:"style"`
	Layout    string         `yaml:"layout"`
	Gap       *float32       `yaml:"gap"`
	Wrap      bool           `yaml:"wrap"`
	Position  []float32      `yaml:"position"`
	Size      []float32      `yaml:"size"`
	Width     dimension      `yaml:"width"`
	Height    dimension      `yaml:"height"`
	Padding   padding        `yaml:"padding"`
	Enabled   *bool          `yaml:"enabled"`
	Visible   *bool          `yaml:"visible"`
	Focusable *bool          `yaml:"focusable"`
	Controls  []ControlDesc  `yaml:"controls"`
	Props     map[string]any `yaml:",inline"`
}

// FormDesc describes one form of a description document.
type FormDesc struct {
	Theme         string        `yaml:"theme"`
	Layout        string        `yaml:"layout"`
	Style         string        `yaml:"style"`
	Position      []float32     `yaml:"position"`
	Alignment     string        `yaml:"alignment"`
	AutoWidth     bool          `yaml:"autoWidth"`
	AutoHeight    bool          `yaml:"autoHeight"`
	Size          []float32     `yaml:"size"`
	Width         dimension     `yaml:"width"`
	Height        dimension     `yaml:"height"`
	Padding       padding       `yaml:"padding"`
	Gap           *float32      `yaml:"gap"`
	ConsumeEvents *bool         `yaml:"consumeEvents"`
	Batching      *bool         `yaml:"batching"`
	Controls      []ControlDesc `yaml:"controls"`
}

type formDocument struct {
	Theme string              `yaml:"theme"`
	Forms map[string]FormDesc `yaml:"forms"`
}

// dimension is "fit", "expand" or a pixel count.
type dimension struct {
	mode  SizeMode
	value float32
	set   bool
}

func (d *dimension) UnmarshalYAML(n *yaml.Node) error {
	switch v := strings.ToLower(strings.TrimSpace(n.Value)); v {
	case "fit":
		d.mode = SizeModeFit
	case "expand":
		d.mode = SizeModeExpand
	default:
		px, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("line %d: dimension %q: want fit, expand or pixels", n.Line, n.Value)
		}
		d.mode, d.value = SizeModeFixed, float32(px)
	}
	d.set = true
	return nil
}

// padding accepts one value, [horizontal, vertical] or
// [left, top, right, bottom].
type padding []float32

func (p *padding) UnmarshalYAML(n *yaml.Node) error {
	var vals []float32
	if n.Kind == yaml.ScalarNode {
		var v float32
		if err := n.Decode(&v); err != nil {
			return err
		}
		vals = []float32{v}
	} else if err := n.Decode(&vals); err != nil {
		return err
	}
	switch len(vals) {
	case 1:
		*p = padding{vals[0], vals[0], vals[0], vals[0]}
	case 2:
		*p = padding{vals[0], vals[1], vals[0], vals[1]}
	case 4:
		*p = padding(vals)
	default:
		return fmt.Errorf("line %d: padding wants 1, 2 or 4 values, got %d", n.Line, len(vals))
	}
	return nil
}

// ControlFactory builds a control from its description. The loader applies
// the common fields (id, style, geometry, padding, flags, children) after
// the factory returns.
type ControlFactory func(desc *ControlDesc) (Control, error)

var (
	factoriesMu sync.RWMutex
	factories   = map[string]ControlFactory{
		"container": func(d *ControlDesc) (Control, error) {
			layout, err := ParseLayout(d.Layout)
			if err != nil {
				return nil, err
			}
			return NewContainer(layout), nil
		},
		"label": func(d *ControlDesc) (Control, error) {
			return NewLabel(d.Text).Wrap(d.Wrap), nil
		},
		"button": func(d *ControlDesc) (Control, error) {
			return NewButton(d.Text), nil
		},
	}
)

// RegisterControlType makes name usable as a control type in form
// descriptions, replacing any previous factory for it.
func RegisterControlType(name string, factory ControlFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[strings.ToLower(name)] = factory
}

func controlFactory(name string) (ControlFactory, bool) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	f, ok := factories[strings.ToLower(name)]
	return f, ok
}

func splitURL(url string) (path, id string) {
	path, id, _ = strings.Cut(url, "#")
	return path, id
}

// LoadForm builds the form named by url, "<path>#<formID>", from a YAML
// description in the system's asset store. Without a form ID the document
// must describe exactly one form.
func (s *System) LoadForm(url string) (*Form, error) {
	path, id := splitURL(url)
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load form %q: %w: %w", url, ErrResourceNotFound, err)
		}
		return nil, fmt.Errorf("load form %q: %w", url, err)
	}
	var doc formDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse form %q: %w", url, err)
	}

	if id == "" {
		if len(doc.Forms) != 1 {
			ids := make([]string, 0, len(doc.Forms))
			for k := range doc.Forms {
				ids = append(ids, k)
			}
			sort.Strings(ids)
			return nil, fmt.Errorf("load form %q: %w: name one of %v", url, ErrResourceNotFound, ids)
		}
		for k := range doc.Forms {
			id = k
		}
	}
	desc, ok := doc.Forms[id]
	if !ok {
		return nil, fmt.Errorf("load form %q: %w: no form %q", url, ErrResourceNotFound, id)
	}
	if desc.Theme == "" {
		desc.Theme = doc.Theme
	}
	return s.buildForm(url, id, &desc)
}

// CreateForm is LoadForm for callers that only care whether a form came
// back. Failures are logged.
func (s *System) CreateForm(url string) *Form {
	f, err := s.LoadForm(url)
	if err != nil {
		logging.Warn("ui", "create form: %v", err)
		return nil
	}
	return f
}

func (s *System) loadTheme(path string) (*theme.Theme, error) {
	if t, ok := s.themes[path]; ok {
		return t, nil
	}
	t, err := theme.Load(s.renderer, s.store, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("theme %q: %w: %w", path, ErrResourceNotFound, err)
		}
		return nil, err
	}
	s.themes[path] = t
	logging.Debug("ui", "theme %q loaded", path)
	return t, nil
}

func (s *System) buildForm(url, id string, desc *FormDesc) (*Form, error) {
	th := s.theme
	if desc.Theme != "" {
		t, err := s.loadTheme(desc.Theme)
		if err != nil {
			return nil, fmt.Errorf("load form %q: %w", url, err)
		}
		th = t
	}
	layout, err := ParseLayout(desc.Layout)
	if err != nil {
		return nil, fmt.Errorf("load form %q: %w", url, err)
	}
	style, _ := resolveStyle(th, "form")
	if desc.Style != "" {
		if style, err = resolveStyle(th, desc.Style); err != nil {
			return nil, fmt.Errorf("load form %q: %w", url, err)
		}
	}
	anchor, ok := ParseAnchor(desc.Alignment)
	if !ok {
		return nil, fmt.Errorf("load form %q: unknown alignment %q", url, desc.Alignment)
	}

	// Build the control tree before the form goes live so a bad
	// description leaves nothing behind.
	kids := make([]Control, 0, len(desc.Controls))
	for i := range desc.Controls {
		c, err := buildControl(th, &desc.Controls[i])
		if err != nil {
			return nil, fmt.Errorf("load form %q: %w", url, err)
		}
		if c != nil {
			kids = append(kids, c)
		}
	}

	f := s.NewForm(id, style, layout)
	if desc.Theme != "" {
		f.theme = th
	}
	b := &f.base
	applyGeometry(b, desc.Size, desc.Width, desc.Height, nil)
	if len(desc.Position) == 2 {
		f.x, f.y = desc.Position[0], desc.Position[1]
	}
	f.anchor = anchor
	f.autoWidth, f.autoHeight = desc.AutoWidth, desc.AutoHeight
	if desc.Padding != nil {
		b.padding = [4]float32(desc.Padding)
	}
	if desc.Gap != nil {
		f.gap = *desc.Gap
	}
	if desc.ConsumeEvents != nil {
		f.consumeEvents = *desc.ConsumeEvents
	}
	if desc.Batching != nil {
		f.batched = *desc.Batching
	}
	for _, k := range kids {
		f.AddControl(k)
	}
	f.relayout()
	logging.Info("ui", "form %q loaded from %q", id, url)
	return f, nil
}

func resolveStyle(th *theme.Theme, id string) (*theme.Style, error) {
	if th == nil {
		return nil, fmt.Errorf("style %q: %w", id, theme.ErrStyleNotFound)
	}
	return th.Style(id)
}

// buildControl returns nil without an error for unknown control types.
func buildControl(th *theme.Theme, d *ControlDesc) (Control, error) {
	factory, ok := controlFactory(d.Type)
	if !ok {
		logging.Warn("ui", "control %q: unknown type %q, skipped", d.ID, d.Type)
		return nil, nil
	}
	c, err := factory(d)
	if err != nil {
		return nil, fmt.Errorf("control %q: %w", d.ID, err)
	}
	b := c.Node()
	if d.ID != "" {
		b.id = d.ID
	}
	if d.Style != "" {
		if b.style, err = resolveStyle(th, d.Style); err != nil {
			return nil, fmt.Errorf("control %q: %w", d.ID, err)
		}
	}
	applyGeometry(b, d.Size, d.Width, d.Height, d.Position)
	if d.Padding != nil {
		b.padding = [4]float32(d.Padding)
	}
	if d.Focusable != nil {
		b.canFocus = *d.Focusable
	}
	if ct, ok := c.(*Container); ok && d.Gap != nil {
		ct.gap = *d.Gap
	}

	if len(d.Controls) > 0 {
		parent, ok := c.(interface{ AddControl(Control) })
		if !ok {
			return nil, fmt.Errorf("control %q: type %q takes no children", d.ID, d.Type)
		}
		for i := range d.Controls {
			k, err := buildControl(th, &d.Controls[i])
			if err != nil {
				return nil, err
			}
			if k != nil {
				parent.AddControl(k)
			}
		}
	}

	// Not registered yet, so there is nothing to release.
	if d.Enabled != nil && !*d.Enabled {
		b.SetEnabled(false)
	}
	if d.Visible != nil && !*d.Visible {
		b.SetVisible(false)
	}
	return c, nil
}

func applyGeometry(b *Base, size []float32, width, height dimension, pos []float32) {
	if len(size) == 2 {
		b.widthMod, b.widthVal = SizeModeFixed, size[0]
		b.heightMod, b.heightVal = SizeModeFixed, size[1]
	}
	if width.set {
		b.widthMod, b.widthVal = width.mode, width.value
	}
	if height.set {
		b.heightMod, b.heightVal = height.mode, height.value
	}
	if len(pos) == 2 {
		b.position = [2]float32{pos[0], pos[1]}
	}
}
