// Package snap settles a fling onto the nearest item boundary.
//
// A snap runs in two phases. The fling phase decays the release velocity
// along the spline trajectory. The settle phase then measures the distance
// from the nearest visible item to the viewport's snap point and animates the
// remainder with a settle.Motion, seeded with some of the velocity left over
// from the fling.
package snap

import (
	"fmt"
	"math"
)

// Position selects which edge of an item aligns with which point of the viewport.
type Position int

const (
	// Start aligns item starts with the viewport start.
	Start Position = iota

	// Center aligns item centres with the viewport centre.
	Center

	// End aligns item ends with the viewport end.
	End
)

// String returns the position name.
func (p Position) String() string {
	switch p {
	case Start:
		return "start"
	case Center:
		return "center"
	case End:
		return "end"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// ParsePosition is the inverse of String.
func ParsePosition(s string) (Position, error) {
	switch s {
	case "start":
		return Start, nil
	case "center":
		return Center, nil
	case "end":
		return End, nil
	default:
		return 0, fmt.Errorf("unknown snap position %q", s)
	}
}

// Item is a visible item, in the same coordinates as the viewport.
type Item struct {
	Offset float64
	Size   float64
}

// Viewport is the visible window along the scroll axis.
type Viewport struct {
	Start float64
	End   float64
}

// Provider reports the layout at the moment it is asked. It is consulted once,
// after the fling phase ends.
type Provider interface {
	VisibleItems() []Item
	Viewport() Viewport
}

// StaticProvider is a Provider over a fixed layout.
type StaticProvider struct {
	Items  []Item
	Window Viewport
}

// VisibleItems implements Provider.
func (p StaticProvider) VisibleItems() []Item { return p.Items }

// Viewport implements Provider.
func (p StaticProvider) Viewport() Viewport { return p.Window }

func (p Position) itemPoint(it Item) float64 {
	switch p {
	case Center:
		return it.Offset + it.Size/2
	case End:
		return it.Offset + it.Size
	default:
		return it.Offset
	}
}

func (p Position) viewportPoint(v Viewport) float64 {
	switch p {
	case Center:
		return (v.Start + v.End) / 2
	case End:
		return v.End
	default:
		return v.Start
	}
}

// Offset returns the signed scroll distance that brings the nearest item onto
// the viewport's snap point: the item point minus the viewport point, for the
// item with the smallest absolute difference. Ties go to the earlier item. ok
// is false when items is empty.
func Offset(items []Item, viewport Viewport, pos Position) (offset float64, ok bool) {
	target := pos.viewportPoint(viewport)
	best := math.Inf(1)
	for _, it := range items {
		d := pos.itemPoint(it) - target
		if math.Abs(d) < best {
			best = math.Abs(d)
			offset = d
			ok = true
		}
	}
	return offset, ok
}
