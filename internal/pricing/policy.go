package pricing

import (
	"fmt"

	"pricewatch/internal/model"
)

// Policy is a subscription's notification mode: either notify on every
// change, or notify once when the price falls to or below a threshold.
type Policy struct {
	IsAnyChange    bool
	ThresholdPrice int64
}

// Decision is the outcome of evaluating one observation against a policy.
type Decision struct {
	Notify          bool
	AdvanceBaseline bool
	Fulfilled       bool
	Change          Change
}

// Evaluate decides whether the observation warrants a notification, whether
// the product baseline moves to the new price, and whether a threshold watch
// has served its purpose.
//
// The baseline advances only together with a notification. An unchanged
// price or a threshold not yet reached leaves both the baseline and the
// subscription untouched. A threshold watch that fires is fulfilled and must
// stop generating notifications; the caller removes it.
func (p Policy) Evaluate(oldPrice int64, newPrice int64) (Decision, error) {
	if p.ThresholdPrice < 0 {
		return Decision{}, fmt.Errorf("%w: threshold must be non-negative, got %d", model.ErrValidation, p.ThresholdPrice)
	}

	change, err := Detect(oldPrice, newPrice)
	if err != nil {
		return Decision{}, err
	}

	if !change.Changed {
		return Decision{}, nil
	}

	if p.IsAnyChange {
		return Decision{Notify: true, AdvanceBaseline: true, Change: change}, nil
	}

	if newPrice <= p.ThresholdPrice {
		return Decision{Notify: true, AdvanceBaseline: true, Fulfilled: true, Change: change}, nil
	}

	// Still watching: the price moved but not far enough.
	return Decision{Change: change}, nil
}
