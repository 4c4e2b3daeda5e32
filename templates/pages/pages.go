// Package pages holds the full storefront pages. Markup lives in the .templ
// files next to this one; run `mage gen` after editing them.
package pages

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/bcdanielvega/seofficehours/pkg/view"
)

// defaultQuantityMax bounds the quantity input when the product sets no
// purchase limit.
const defaultQuantityMax = 99

func Home(l view.Layout, p view.HomePage) templ.Component {
	return homePage(l, p)
}

func Product(l view.Layout, p view.ProductPage) templ.Component {
	if l.Title == "" {
		l.Title = p.Name
	}
	return productPage(l, p)
}

func Cart(l view.Layout, p view.CartPage) templ.Component {
	if l.Title == "" {
		l.Title = "Cart"
	}
	return cartPage(l, p)
}

func Error(l view.Layout, p view.ErrorPage) templ.Component {
	if p.Title == "" {
		p.Title = errorTitle(p.Status)
	}
	if l.Title == "" {
		l.Title = p.Title
	}
	return errorPage(l, p)
}

func errorTitle(status int) string {
	switch status {
	case http.StatusNotFound:
		return "Page not found"
	case http.StatusBadRequest:
		return "Something is off with that request"
	case http.StatusBadGateway:
		return "The store is taking a break"
	default:
		return "Something went wrong"
	}
}

func quantityMax(p view.ProductPage) string {
	if p.QuantityMax > 0 {
		return strconv.Itoa(p.QuantityMax)
	}
	return strconv.Itoa(defaultQuantityMax)
}
