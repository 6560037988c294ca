package pricing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"pricewatch/internal/model"
)

type Composer struct {
	bundle *i18n.Bundle
}

func NewComposer(bundle *i18n.Bundle) *Composer {
	return &Composer{bundle: bundle}
}

// Compose renders the change summary sent to the user: product name and URL,
// direction of the change, absolute delta, percentage rounded to one decimal
// place, and the old and new prices. Equal prices are a caller bug, not a
// normal branch.
func (that *Composer) Compose(languageCode string, name string, url string, oldPrice int64, newPrice int64) (string, error) {
	change, err := Detect(oldPrice, newPrice)
	if err != nil {
		return "", err
	}

	if !change.Changed {
		return "", fmt.Errorf("%w: price did not change", model.ErrValidation)
	}

	messageID := "priceDecreased"
	if change.Delta > 0 {
		messageID = "priceIncreased"
	}

	localizer := i18n.NewLocalizer(that.bundle, languageCode)

	direction, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID: messageID,
		TemplateData: map[string]string{
			"Amount":  strconv.FormatInt(absInt64(change.Delta), 10),
			"Percent": strconv.FormatFloat(math.Abs(change.Percent), 'f', 1, 64),
		},
	})
	if err != nil {
		return "", fmt.Errorf("localize direction: %w", err)
	}

	prices, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID: "oldNewPrices",
		TemplateData: map[string]string{
			"OldPrice": strconv.FormatInt(oldPrice, 10),
			"NewPrice": strconv.FormatInt(newPrice, 10),
		},
	})
	if err != nil {
		return "", fmt.Errorf("localize prices: %w", err)
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", name, url, direction, prices), nil
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}
