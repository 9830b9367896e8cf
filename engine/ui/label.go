package ui

import (
	"strings"

	"github.com/hubastard/groveui/engine/text"
)

// Label shows text. It never takes input, so presses fall through to the
// control underneath.
type Label struct {
	Common[*Label]
	text      string
	font      *text.Font
	wrap      bool
	maxWidth  float32
	layoutStr string
}

func NewLabel(str string) *Label {
	l := &Label{text: str}
	l.Common = NewCommon(l)
	return l
}

func (l *Label) Text() string                { return l.text }
func (l *Label) SetText(s string)            { l.text = s; l.layoutStr = "" }
func (l *Label) Font(font *text.Font) *Label { l.font = font; return l }
func (l *Label) Wrap(enabled bool) *Label    { l.wrap = enabled; return l }
func (l *Label) MaxWidth(width float32) *Label {
	l.maxWidth = width
	if width > 0 {
		l.wrap = true
	}
	return l
}

func (l *Label) Layout(ctx *LayoutContext, constraints Constraints) LayoutResult {
	if l.font == nil {
		l.font = ctx.Font
	}
	if l.font == nil {
		l.base.SetSize(0, 0)
		return LayoutResult{}
	}

	padding := l.base.Padding()
	effectiveMax := constraints.Max[0]
	if l.maxWidth > 0 && (effectiveMax == 0 || l.maxWidth < effectiveMax) {
		effectiveMax = l.maxWidth
	}
	if effectiveMax > 0 {
		effectiveMax = maxf(0, effectiveMax-padding[0]-padding[2])
	}

	contentW, contentH, laidOut := l.measureText(effectiveMax)
	l.layoutStr = laidOut

	w, h := l.base.resolveSize(contentW, contentH, constraints)
	l.base.SetSize(w, h)
	return LayoutResult{Size: l.base.size}
}

func (l *Label) Draw(d *Drawer) {
	if l.layoutStr == "" {
		l.layoutStr = l.text
	}
	font := l.font
	if font == nil {
		font = d.Font()
	}
	if l.layoutStr == "" || font == nil {
		return
	}
	skin := d.Skin(&l.base, "label")
	x, y, _, _ := l.base.Bounds()
	padding := l.base.Padding()
	d.Text(font, x+padding[0], y+padding[1], l.layoutStr, skin.TextColor)
}

func (l *Label) measureText(maxWidth float32) (float32, float32, string) {
	if l.text == "" {
		return 0, 0, ""
	}
	if !l.wrap || maxWidth <= 0 {
		w, h := text.Measure(l.font, l.text)
		return w, h, l.text
	}

	spaceWidth, _ := text.Measure(l.font, " ")
	var wrapped []string
	var maxLineWidth float32

	for _, raw := range strings.Split(l.text, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			wrapped = append(wrapped, "")
			continue
		}
		current := words[0]
		currentWidth, _ := text.Measure(l.font, current)
		for _, word := range words[1:] {
			wordWidth, _ := text.Measure(l.font, word)
			if currentWidth+spaceWidth+wordWidth > maxWidth {
				wrapped = append(wrapped, current)
				maxLineWidth = maxf(maxLineWidth, currentWidth)
				current = word
				currentWidth = wordWidth
				continue
			}
			current += " " + word
			currentWidth += spaceWidth + wordWidth
		}
		wrapped = append(wrapped, current)
		maxLineWidth = maxf(maxLineWidth, currentWidth)
	}

	height := text.LineHeight(l.font) * float32(len(wrapped))
	return maxLineWidth, height, strings.Join(wrapped, "\n")
}
