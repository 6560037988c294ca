package pricing

import (
	"fmt"

	"pricewatch/internal/model"
)

// Change is the result of comparing two price observations.
type Change struct {
	Changed bool
	Delta   int64
	Percent float64
}

// Detect compares the stored baseline with a new observation. Prices are in
// the smallest currency unit and must be non-negative. The percentage is
// undefined for a zero baseline, so a movement away from zero fails instead
// of dividing by zero.
func Detect(oldPrice int64, newPrice int64) (Change, error) {
	if oldPrice < 0 || newPrice < 0 {
		return Change{}, fmt.Errorf("%w: prices must be non-negative, got old=%d new=%d", model.ErrValidation, oldPrice, newPrice)
	}

	if newPrice == oldPrice {
		return Change{}, nil
	}

	if oldPrice == 0 {
		return Change{}, fmt.Errorf("%w: percent change from a zero baseline is undefined", model.ErrValidation)
	}

	delta := newPrice - oldPrice

	return Change{
		Changed: true,
		Delta:   delta,
		Percent: float64(delta) / float64(oldPrice) * 100,
	}, nil
}
