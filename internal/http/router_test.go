package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
	"github.com/bcdanielvega/seofficehours/internal/modules/marketing"
)

type fakeCatalog struct {
	mu         sync.Mutex
	products   map[int64]commerce.Product
	related    []commerce.ProductCard
	relatedErr error
	gotSels    []commerce.OptionValueID
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int64, sels []commerce.OptionValueID) (commerce.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotSels = sels
	p, ok := f.products[id]
	if !ok {
		return commerce.Product{}, commerce.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalog) GetRelatedProducts(context.Context, int64, []commerce.OptionValueID) ([]commerce.ProductCard, error) {
	return f.related, f.relatedErr
}

func (f *fakeCatalog) GetReviewSummary(_ context.Context, id int64) (commerce.ReviewSummary, error) {
	if _, ok := f.products[id]; !ok {
		return commerce.ReviewSummary{}, commerce.ErrNotFound
	}
	return commerce.ReviewSummary{NumberOfReviews: 2, SummationOfRatings: 9}, nil
}

func (f *fakeCatalog) GetReviews(_ context.Context, id int64, _ int) ([]commerce.Review, error) {
	if _, ok := f.products[id]; !ok {
		return nil, commerce.ErrNotFound
	}
	return []commerce.Review{{Author: "Ana", Title: "Lovely", Rating: 5}}, nil
}

// memCarts keeps carts in memory and prices lines off the fake catalog.
type memCarts struct {
	mu      sync.Mutex
	catalog *fakeCatalog
	carts   map[string][]commerce.LineItem
	next    int
}

func (m *memCarts) build(id string) commerce.Cart {
	c := commerce.Cart{EntityID: id, LineItems: m.carts[id], Amount: commerce.Money{Value: decimal.Zero, CurrencyCode: "USD"}}
	for _, li := range c.LineItems {
		c.Amount.Value = c.Amount.Value.Add(li.ListPrice.Value.Mul(decimal.NewFromInt(int64(li.Quantity))))
	}
	return c
}

func (m *memCarts) GetCart(_ context.Context, id string) (commerce.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.carts[id]; !ok {
		return commerce.Cart{}, commerce.ErrNotFound
	}
	return m.build(id), nil
}

func (m *memCarts) CreateCart(ctx context.Context, item commerce.CartLineItemInput) (commerce.Cart, error) {
	m.mu.Lock()
	m.next++
	id := "cart-" + strconv.Itoa(m.next)
	m.carts[id] = nil
	m.mu.Unlock()
	return m.AddCartLineItem(ctx, id, item)
}

func (m *memCarts) AddCartLineItem(ctx context.Context, id string, item commerce.CartLineItemInput) (commerce.Cart, error) {
	p, err := m.catalog.GetProduct(ctx, item.ProductEntityID, item.SelectedOptions)
	if err != nil {
		return commerce.Cart{}, err
	}
	if p.Availability.Status == commerce.Unavailable {
		return commerce.Cart{}, commerce.ErrNotPurchasable
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	lines, ok := m.carts[id]
	if !ok {
		return commerce.Cart{}, commerce.ErrNotFound
	}
	m.carts[id] = append(lines, commerce.LineItem{
		EntityID:        "li-" + strconv.Itoa(len(lines)+1),
		ProductEntityID: p.EntityID,
		Name:            p.Name,
		Quantity:        item.Quantity,
		ListPrice:       p.Prices.Price,
	})
	return m.build(id), nil
}

func (m *memCarts) DeleteCartLineItem(_ context.Context, id, lineID string) (commerce.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []commerce.LineItem
	for _, li := range m.carts[id] {
		if li.EntityID != lineID {
			kept = append(kept, li)
		}
	}
	if len(kept) == 0 {
		delete(m.carts, id)
		return commerce.Cart{}, commerce.ErrNotFound
	}
	m.carts[id] = kept
	return m.build(id), nil
}

func money(v string) commerce.Money {
	return commerce.Money{Value: decimal.RequireFromString(v), CurrencyCode: "USD"}
}

type testApp struct {
	router  *gin.Engine
	catalog *fakeCatalog
	carts   *memCarts
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := &fakeCatalog{products: map[int64]commerce.Product{
		77: {
			EntityID:     77,
			Name:         "Orbit Terrarium - Large",
			Brand:        &commerce.Brand{Name: "OFS"},
			Prices:       &commerce.Prices{Price: money("1109.00")},
			Availability: commerce.Availability{Status: commerce.Available},
			Options: []commerce.ProductOption{{EntityID: 112, DisplayName: "Size", Values: []commerce.OptionValue{
				{EntityID: 69, Label: "Small", IsDefault: true},
				{EntityID: 70, Label: "Large"},
			}}},
		},
		78: {
			EntityID:     78,
			Name:         "Sold Out Planter",
			Availability: commerce.Availability{Status: commerce.Unavailable},
		},
	}}
	carts := &memCarts{catalog: cat, carts: map[string][]commerce.LineItem{}}

	r := NewRouter(Deps{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Catalog:      cat,
		Carts:        carts,
		Slides:       marketing.NewService(nil, nil),
		CookieSecret: []byte(strings.Repeat("s", 32)),
		ReviewLimit:  5,
	})
	return &testApp{router: r, catalog: cat, carts: carts}
}

func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(t *testing.T, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return a.do(t, req)
}

func (a *testApp) post(t *testing.T, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return a.do(t, req)
}

func parse(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestProductPage(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/product/77")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	doc := parse(t, w)
	assert.Equal(t, "Orbit Terrarium - Large", doc.Find("h1").Text())
	assert.Contains(t, doc.Text(), "$1,109.00")
	_, disabled := doc.Find("button.btn-primary").Attr("disabled")
	assert.False(t, disabled)
}

func TestProductPage_notFound(t *testing.T) {
	app := newTestApp(t)

	for _, target := range []string{"/product/4040", "/product/orbit-terrarium", "/product/0"} {
		w := app.get(t, target)
		assert.Equal(t, http.StatusNotFound, w.Code, target)
		assert.Contains(t, w.Body.String(), "We couldn&#39;t find that product.", target)
	}
}

func TestProductPage_dropsNonNumericSelections(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/product/77?112=70&color=red&113=x&slug=77")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []commerce.OptionValueID{{OptionEntityID: 112, ValueEntityID: 70}}, app.catalog.gotSels)

	doc := parse(t, w)
	assert.Equal(t, "Large", doc.Find(".variant-selected").Text())
}

func TestProductPage_unavailableDisablesAddToCart(t *testing.T) {
	app := newTestApp(t)

	doc := parse(t, app.get(t, "/product/78"))
	_, disabled := doc.Find("button.btn-primary").Attr("disabled")
	assert.True(t, disabled)
	assert.Zero(t, doc.Find(".text-h4").Length(), "no prices, no price block")
}

func TestRelatedFragment(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/product/77/related")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Related Products")

	app.catalog.related = []commerce.ProductCard{{EntityID: 81, Name: "Trowel", Prices: &commerce.Prices{Price: money("19")}}}
	doc := parse(t, app.get(t, "/product/77/related"))
	assert.Equal(t, "Related Products", doc.Find("h2").Text())
	assert.Contains(t, doc.Find(".product-card").Text(), "$19.00")

	app.catalog.relatedErr = errors.New("upstream timeout")
	w = app.get(t, "/product/77/related")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestReviewFragments(t *testing.T) {
	app := newTestApp(t)

	doc := parse(t, app.get(t, "/product/77/review-summary"))
	href, _ := doc.Find("a").Attr("href")
	assert.Equal(t, "#write-a-review", href)

	doc = parse(t, app.get(t, "/product/77/reviews"))
	assert.Equal(t, 1, doc.Find("section#write-a-review").Length())
	assert.Contains(t, doc.Find(".review").Text(), "Lovely")

	w := app.get(t, "/product/4040/reviews")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestCart_addThenView(t *testing.T) {
	app := newTestApp(t)

	w := app.post(t, "/cart/add", url.Values{
		"product_id":  {"77"},
		"quantity":    {"2"},
		"option[112]": {"70"},
		"option[abc]": {"1"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/product/77?112=70", w.Header().Get("Location"))
	assert.Equal(t, []commerce.OptionValueID{{OptionEntityID: 112, ValueEntityID: 70}}, app.catalog.gotSels)

	cartCookie := cookieNamed(w, "seo_cart")
	require.NotNil(t, cartCookie)
	flashCookie := cookieNamed(w, "seo_flash")
	require.NotNil(t, flashCookie)

	w = app.post(t, "/cart/add", url.Values{"product_id": {"77"}}, cartCookie)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = app.get(t, "/cart", cartCookie, flashCookie)
	require.Equal(t, http.StatusOK, w.Code)
	doc := parse(t, w)
	assert.Equal(t, 2, doc.Find(".cart-line").Length())
	assert.Equal(t, "$3,327.00", doc.Find(".cart-total").Text())
	assert.Equal(t, "3", doc.Find("#cart-badge .badge").Text())
	assert.Equal(t, "Added to your cart.", doc.Find(".flash").Text())

	w = app.get(t, "/cart/badge", cartCookie)
	assert.Contains(t, w.Body.String(), `<span class="badge">3</span>`)
}

func TestCart_addRejectsBadForms(t *testing.T) {
	app := newTestApp(t)

	w := app.post(t, "/cart/add", url.Values{"quantity": {"1"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.post(t, "/cart/add", url.Values{"product_id": {"77"}, "quantity": {"120"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/product/77", w.Header().Get("Location"))
	assert.Nil(t, cookieNamed(w, "seo_cart"))

	w = app.post(t, "/cart/add", url.Values{"product_id": {"4040"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Nil(t, cookieNamed(w, "seo_cart"))
}

func TestCart_addUnavailableExplainsWhy(t *testing.T) {
	app := newTestApp(t)

	w := app.post(t, "/cart/add", url.Values{"product_id": {"78"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/product/78", w.Header().Get("Location"))
	assert.Nil(t, cookieNamed(w, "seo_cart"))
	flashCookie := cookieNamed(w, "seo_flash")
	require.NotNil(t, flashCookie)

	doc := parse(t, app.get(t, "/product/78", flashCookie))
	flash := doc.Find(".flash")
	assert.True(t, flash.HasClass("flash-error"))
	assert.Equal(t, "That product is not available for purchase right now.", flash.Text())
}

func TestCart_expiredCartIsRecreated(t *testing.T) {
	app := newTestApp(t)

	w := app.post(t, "/cart/add", url.Values{"product_id": {"77"}})
	first := cookieNamed(w, "seo_cart")
	require.NotNil(t, first)

	app.carts.mu.Lock()
	app.carts.carts = map[string][]commerce.LineItem{}
	app.carts.mu.Unlock()

	w = app.post(t, "/cart/add", url.Values{"product_id": {"77"}}, first)
	second := cookieNamed(w, "seo_cart")
	require.NotNil(t, second)
	assert.NotEqual(t, first.Value, second.Value)
}

func TestCart_remove(t *testing.T) {
	app := newTestApp(t)

	w := app.post(t, "/cart/add", url.Values{"product_id": {"77"}})
	ck := cookieNamed(w, "seo_cart")
	require.NotNil(t, ck)

	w = app.post(t, "/cart/remove", url.Values{"line_item_id": {"li-1"}}, ck)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	cleared := cookieNamed(w, "seo_cart")
	require.NotNil(t, cleared)
	assert.Equal(t, "", cleared.Value)

	doc := parse(t, app.get(t, "/cart", ck))
	assert.Contains(t, doc.Find("main").Text(), "Your cart is empty.")
}

func TestHome_slideWraps(t *testing.T) {
	app := newTestApp(t)

	doc := parse(t, app.get(t, "/?slide=4"))
	assert.Equal(t, "Timeless Staples, Everyday Style", doc.Find(".slide h2").Text())

	doc = parse(t, app.get(t, "/?slide=nope"))
	assert.Equal(t, "Inside the Mind of a Solution Engineer", doc.Find(".slide h2").Text())

	doc = parse(t, app.get(t, "/?slide=3"))
	assert.Equal(t, "Coffee is for Closers", doc.Find(".slide h2").Text())
	assert.Contains(t, doc.Find(".slide p").Text(), "relentless—just like you. Because greatness doesn’t brew itself.")
}

func TestNoRoute(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/does-not-exist")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	req.Header.Set("Accept", "application/json")
	w = app.do(t, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"request_id"`)
}
