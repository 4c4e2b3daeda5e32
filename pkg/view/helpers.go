package view

import (
	"github.com/bcdanielvega/seofficehours/internal/commerce"
	"github.com/bcdanielvega/seofficehours/templates/shared"
)

// Money renders m for display, e.g. "$1,234.50".
func Money(m commerce.Money) string {
	return shared.FormatMoney(m.CurrencyCode, m.Value)
}

// Layout is what every full page shares: title, flash and the header badge.
type Layout struct {
	Title     string
	Flash     *Flash
	CartCount int
}

const storeName = "SE Office Hours"

func PageTitle(title string) string {
	if title == "" {
		return storeName
	}
	return title + " | " + storeName
}
