package town

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// AreaDefinition describes one interactable area in the town's level data.
// Definitions are loaded as storage assets; the asset id becomes the area id.
type AreaDefinition struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// AreaKind returns the parsed kind, AreaKind("") if unknown.
func (d *AreaDefinition) AreaKind() AreaKind {
	switch AreaKind(d.Kind) {
	case AreaKindGrocery, AreaKindTrading, AreaKindInventory:
		return AreaKind(d.Kind)
	default:
		return ""
	}
}

// Validate satisfies storage.ValidatingSpec. Level data missing its geometry
// must fail before a half-valid area can be constructed from it.
func (d *AreaDefinition) Validate() error {
	el := errors.NewErrorList()

	if d.Name == "" {
		el.Add(fmt.Errorf("area name is required"))
	}
	if d.Kind == "" {
		el.Add(fmt.Errorf("area kind is required"))
	} else if d.AreaKind() == "" {
		el.Add(fmt.Errorf("area kind %q is invalid", d.Kind))
	}
	if d.Width <= 0 {
		el.Add(fmt.Errorf("area width must be a positive number"))
	}
	if d.Height <= 0 {
		el.Add(fmt.Errorf("area height must be a positive number"))
	}

	if err := el.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedAreaDefinition, err)
	}
	return nil
}

// Bounds returns the definition's bounding box.
func (d *AreaDefinition) Bounds() Rect {
	return Rect{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height}
}
