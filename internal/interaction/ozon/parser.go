package ozon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pricewatch/internal/model"
)

// The storefront renders prices under rotating obfuscated class names. Each
// entry is a full class set an element must carry. New sets show up after
// layout rotations; keep the stale ones, they cost nothing.
var (
	cardPriceSelectors = []string{
		".l8o.ol8.l2p", ".l8o.o8l.p12", ".o3l.lo2", ".lo4.l3o", ".lp.l8o",
		".pl0.l9o", ".pl1.pl", ".ln5.l3n", ".nl5.n3l", ".n7l.ln6",
		".ln8.l6n", ".l8n.nl6", ".ln9.l7n",
	}

	listPriceSelectors = []string{
		".l6p.pl6.ql",
	}

	nameSelectors = []string{
		"h1.pl9", "h1.lq0", "h1.lq1", "h1.ol49", "h1.l6o.tsHeadline550Medium",
		"h1.ol8.tsHeadline550Medium", "h1.o8l.tsHeadline550Medium", "h1.o7l",
		"h1.o9l.tsHeadline550Medium", "h1",
	}
)

// ParseOffer extracts the price and name from a product page. The
// considerBonuses flag picks the loyalty-card price element over the list
// price one. A page where neither a price nor a name can be located fails
// with model.ErrNotFound.
func ParseOffer(html string, considerBonuses bool) (Offer, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Offer{}, fmt.Errorf("parse html: %w", err)
	}

	priceSelectors := listPriceSelectors
	if considerBonuses {
		priceSelectors = cardPriceSelectors
	}

	priceText, ok := firstText(doc, priceSelectors)
	if !ok {
		return Offer{}, fmt.Errorf("price element: %w", model.ErrNotFound)
	}

	price, err := parsePrice(priceText)
	if err != nil {
		return Offer{}, fmt.Errorf("price element %q: %w", priceText, model.ErrNotFound)
	}

	name, ok := firstText(doc, nameSelectors)
	if !ok {
		return Offer{}, fmt.Errorf("name element: %w", model.ErrNotFound)
	}

	return Offer{Price: price, Name: name}, nil
}

func firstText(doc *goquery.Document, selectors []string) (string, bool) {
	for _, selector := range selectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			return text, true
		}
	}

	return "", false
}

// parsePrice turns a rendered price like "12 526 ₽" into an integer. Digit
// groups are separated with thin spaces or non-breaking spaces.
func parsePrice(text string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)

	if cleaned == "" {
		return 0, fmt.Errorf("no digits in price")
	}

	price, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price: %w", err)
	}

	return price, nil
}
