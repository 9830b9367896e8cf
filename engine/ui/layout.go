package ui

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/hubastard/groveui/engine/text"
	"github.com/hubastard/groveui/engine/theme"
)

var ErrUnknownLayout = errors.New("unknown layout")

type SizeMode int

const (
	SizeModeFit SizeMode = iota
	SizeModeFixed
	SizeModeExpand
)

// Constraints bound a control's size. A zero Max means unbounded.
type Constraints struct {
	Min [2]float32
	Max [2]float32
}

type LayoutResult struct {
	Size [2]float32
}

// LayoutContext carries what controls need to measure themselves.
type LayoutContext struct {
	Viewport [4]float32
	Theme    *theme.Theme
	Font     *text.Font
}

// LayoutType selects how a container places its children.
type LayoutType int

const (
	LayoutAbsolute LayoutType = iota
	LayoutVertical
	LayoutHorizontal
	LayoutFlow
	LayoutScroll // vertical, scrolled by the wheel
)

func (l LayoutType) String() string {
	switch l {
	case LayoutAbsolute:
		return "absolute"
	case LayoutVertical:
		return "vertical"
	case LayoutHorizontal:
		return "horizontal"
	case LayoutFlow:
		return "flow"
	case LayoutScroll:
		return "scroll"
	}
	return "unknown"
}

// ParseLayout accepts the lowercase names, with or without a "layout_" prefix.
func ParseLayout(s string) (LayoutType, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "layout_") {
	case "", "absolute":
		return LayoutAbsolute, nil
	case "vertical":
		return LayoutVertical, nil
	case "horizontal":
		return LayoutHorizontal, nil
	case "flow":
		return LayoutFlow, nil
	case "scroll":
		return LayoutScroll, nil
	}
	return LayoutAbsolute, fmt.Errorf("%w: %q", ErrUnknownLayout, s)
}

type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func resolveConstraint(max float32) float32 {
	if max == 0 {
		return float32(math.MaxFloat32)
	}
	return max
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func (b *Base) resolveAxis(mode SizeMode, fixed, content, min, max float32) float32 {
	switch mode {
	case SizeModeFixed:
		if fixed > 0 {
			return clamp(fixed, min, resolveConstraint(max))
		}
		return clamp(content, min, resolveConstraint(max))
	case SizeModeExpand:
		if max == 0 {
			return maxf(content, min)
		}
		return maxf(max, min)
	default:
		return clamp(content, min, resolveConstraint(max))
	}
}

func (b *Base) resolveSize(contentW, contentH float32, c Constraints) (float32, float32) {
	w := b.resolveAxis(b.widthMod, b.widthVal, contentW+b.padding[0]+b.padding[2], c.Min[0], c.Max[0])
	h := b.resolveAxis(b.heightMod, b.heightVal, contentH+b.padding[1]+b.padding[3], c.Min[1], c.Max[1])
	return w, h
}

func (b *Base) childConstraints(c Constraints) Constraints {
	var out Constraints
	for i := 0; i < 2; i++ {
		if c.Max[i] == 0 {
			continue
		}
		out.Max[i] = maxf(0, c.Max[i]-b.padding[i]-b.padding[i+2])
	}
	if b.widthMod == SizeModeFixed && b.widthVal > 0 {
		out.Max[0] = maxf(0, b.widthVal-b.padding[0]-b.padding[2])
	}
	if b.heightMod == SizeModeFixed && b.heightVal > 0 {
		out.Max[1] = maxf(0, b.heightVal-b.padding[1]-b.padding[3])
	}
	return out
}

// layoutAbsolute keeps each child at its own position, relative to the
// container's top-left, and sizes the container to fit them.
func layoutAbsolute(c *Container, ctx *LayoutContext, constraints Constraints) LayoutResult {
	b := &c.base
	inner := b.childConstraints(constraints)
	var right, bottom float32
	for _, child := range b.children {
		cb := child.Node()
		res := child.Layout(ctx, inner)
		cb.SetSize(res.Size[0], res.Size[1])
		right = maxf(right, cb.position[0]+res.Size[0])
		bottom = maxf(bottom, cb.position[1]+res.Size[1])
	}
	w, h := b.resolveSize(right, bottom, constraints)
	b.SetSize(w, h)
	return LayoutResult{Size: b.size}
}

// layoutStack places children one after another along one axis, sharing
// leftover space between expanding children.
func layoutStack(c *Container, ctx *LayoutContext, constraints Constraints, vertical bool) LayoutResult {
	b := &c.base
	padding := b.padding
	main, cross := 0, 1
	if vertical {
		main, cross = 1, 0
	}

	childConstraints := b.childConstraints(constraints)
	if c.layout == LayoutScroll {
		childConstraints.Max[main] = 0
	}

	children := b.children
	childSizes := make([][2]float32, len(children))
	var mainSum, maxCross float32
	var expandCount int
	for i, child := range children {
		res := child.Layout(ctx, childConstraints)
		childSizes[i] = res.Size
		mainSum += res.Size[main]
		maxCross = maxf(maxCross, res.Size[cross])
		if expands(child.Node(), main) {
			expandCount++
		}
	}

	gapTotal := float32(0)
	if len(children) > 1 {
		gapTotal = c.gap * float32(len(children)-1)
	}

	var content [2]float32
	content[main] = mainSum + gapTotal
	content[cross] = maxCross
	outer := [2]float32{}
	outer[0], outer[1] = b.resolveSize(content[0], content[1], constraints)
	if c.layout == LayoutScroll && b.heightMod == SizeModeFit && constraints.Max[1] > 0 {
		outer[1] = minf(outer[1], constraints.Max[1])
	}
	b.SetSize(outer[0], outer[1])
	c.contentHeight = content[1] + padding[1] + padding[3]
	c.clampScroll()

	innerW, innerH := b.innerSize()
	inner := [2]float32{innerW, innerH}

	if expandCount > 0 && c.layout != LayoutScroll {
		extra := maxf(0, inner[main]-(mainSum+gapTotal))
		share := extra / float32(expandCount)
		for i, child := range children {
			if expands(child.Node(), main) {
				childSizes[i][main] += share
			}
		}
	}

	mainUsed := gapTotal
	for i := range children {
		mainUsed += childSizes[i][main]
	}
	remaining := maxf(0, inner[main]-mainUsed)
	var cursor float32
	switch c.mainAlign {
	case AlignCenter:
		cursor = remaining * 0.5
	case AlignEnd:
		cursor = remaining
	}

	ox, oy := b.innerPosition()
	origin := [2]float32{ox, oy}
	for i, child := range children {
		size := childSizes[i]
		cb := child.Node()
		if c.crossAlign == AlignStretch || expands(cb, cross) {
			size[cross] = inner[cross]
		}
		size[cross] = clamp(size[cross], 0, inner[cross])

		var pos [2]float32
		pos[main] = origin[main] + cursor
		switch c.crossAlign {
		case AlignCenter:
			pos[cross] = origin[cross] + (inner[cross]-size[cross])/2
		case AlignEnd:
			pos[cross] = origin[cross] + inner[cross] - size[cross]
		default:
			pos[cross] = origin[cross]
		}
		cb.SetPos(pos[0], pos[1])
		if size != childSizes[i] {
			// Re-run layout so the child's own children see the final size.
			child.Layout(ctx, Constraints{Min: size, Max: size})
		}
		cb.SetSize(size[0], size[1])
		cursor += size[main]
		if i < len(children)-1 {
			cursor += c.gap
		}
	}
	return LayoutResult{Size: b.size}
}

// layoutFlow fills rows left to right and wraps when a row is full.
func layoutFlow(c *Container, ctx *LayoutContext, constraints Constraints) LayoutResult {
	b := &c.base
	childConstraints := b.childConstraints(constraints)
	limit := resolveConstraint(childConstraints.Max[0])

	ox, oy := b.innerPosition()
	var x, y, rowH, widest float32
	for _, child := range b.children {
		res := child.Layout(ctx, childConstraints)
		w, h := res.Size[0], res.Size[1]
		if x > 0 && x+w > limit {
			x = 0
			y += rowH + c.gap
			rowH = 0
		}
		child.Node().SetPos(ox+x, oy+y)
		child.Node().SetSize(w, h)
		widest = maxf(widest, x+w)
		rowH = maxf(rowH, h)
		x += w + c.gap
	}
	w, h := b.resolveSize(widest, y+rowH, constraints)
	b.SetSize(w, h)
	return LayoutResult{Size: b.size}
}

func expands(b *Base, axis int) bool {
	if axis == 0 {
		return b.widthMod == SizeModeExpand
	}
	return b.heightMod == SizeModeExpand
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// arrange resolves form-local positions for c's subtree; ox,oy is the
// parent's form-local origin.
func arrange(c Control, ox, oy float32) {
	b := c.Node()
	b.abs = [2]float32{ox + b.position[0], oy + b.position[1]}
	cx, cy := b.abs[0], b.abs[1]
	if sc, ok := c.(*Container); ok && sc.layout == LayoutScroll {
		cy -= sc.scrollY
	}
	for _, k := range b.children {
		arrange(k, cx, cy)
	}
}
