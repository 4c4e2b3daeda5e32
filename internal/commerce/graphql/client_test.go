package graphql

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
)

type capturedRequest struct {
	Auth      string
	Query     string
	Variables map[string]any
}

// newTestServer answers every request with body and records what it got.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	got := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		var req request
		_ = json.Unmarshal(raw, &req)
		got.Auth = r.Header.Get("Authorization")
		got.Query = req.Query
		got.Variables = req.Variables

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

const productResponse = `{"data":{"site":{"product":{
  "entityId": 77,
  "name": "Orbit Terrarium - Large",
  "path": "/orbit-terrarium-large/",
  "sku": "OTL",
  "upc": null,
  "condition": "New",
  "plainTextDescription": "A glass terrarium.",
  "warranty": "",
  "minPurchaseQuantity": 1,
  "maxPurchaseQuantity": null,
  "brand": {"name": "OFS"},
  "availabilityV2": {"status": "Available", "description": "Ships in 2 days"},
  "prices": {"price": {"value": 109, "currencyCode": "USD"}, "basePrice": {"value": 109, "currencyCode": "USD"}, "salePrice": null, "retailPrice": null},
  "images": {"edges": [{"node": {"url": "https://cdn.example.com/a.jpg", "altText": "front", "isDefault": true}}]},
  "productOptions": {"edges": [
    {"node": {"__typename": "MultipleChoiceOption", "entityId": 112, "displayName": "Size", "isRequired": true,
      "values": {"edges": [{"node": {"entityId": 69, "label": "S", "isDefault": true}}, {"node": {"entityId": 70, "label": "L", "isDefault": false}}]}}},
    {"node": {"__typename": "CheckboxOption", "entityId": 113, "displayName": "Gift wrap", "isRequired": false}}
  ]},
  "categories": {"edges": [{"node": {"name": "Garden", "path": "/garden/", "breadcrumbs": {"edges": [
    {"node": {"name": "Shop All", "path": "/shop-all/"}},
    {"node": {"name": "Garden", "path": "/garden/"}}
  ]}}}]}
}}}}`

func TestClient_GetProduct_mapsFields(t *testing.T) {
	t.Parallel()

	srv, got := newTestServer(t, http.StatusOK, productResponse)
	c := New(srv.URL, "tok", WithTimeout(time.Second))

	p, err := c.GetProduct(context.Background(), 77, []commerce.OptionValueID{{OptionEntityID: 112, ValueEntityID: 70}})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", got.Auth)
	assert.Contains(t, got.Query, "query getProduct")
	assert.EqualValues(t, 77, got.Variables["productId"])
	sels, ok := got.Variables["optionValueIds"].([]any)
	require.True(t, ok)
	require.Len(t, sels, 1)
	assert.EqualValues(t, 112, sels[0].(map[string]any)["optionEntityId"])

	assert.Equal(t, int64(77), p.EntityID)
	assert.Equal(t, "Orbit Terrarium - Large", p.Name)
	assert.Equal(t, "", p.UPC)
	require.NotNil(t, p.Brand)
	assert.Equal(t, "OFS", p.Brand.Name)
	require.NotNil(t, p.Prices)
	assert.Equal(t, "109", p.Prices.Price.Value.String())
	assert.Equal(t, "USD", p.Prices.Price.CurrencyCode)
	assert.Nil(t, p.Prices.SalePrice)
	assert.Equal(t, commerce.Available, p.Availability.Status)
	require.NotNil(t, p.MinPurchaseQuantity)
	assert.Equal(t, 1, *p.MinPurchaseQuantity)
	assert.Nil(t, p.MaxPurchaseQuantity)
	require.Len(t, p.Images, 1)

	require.Len(t, p.Options, 1, "checkbox option has no values and is skipped")
	assert.Equal(t, "Size", p.Options[0].DisplayName)
	assert.Len(t, p.Options[0].Values, 2)

	assert.Equal(t, []commerce.Breadcrumb{
		{Name: "Shop All", Path: "/shop-all/"},
		{Name: "Garden", Path: "/garden/"},
	}, p.Breadcrumbs)
}

func TestClient_GetProduct_nullProductIsNotFound(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, http.StatusOK, `{"data":{"site":{"product":null}}}`)
	c := New(srv.URL, "")

	_, err := c.GetProduct(context.Background(), 1, nil)
	assert.ErrorIs(t, err, commerce.ErrNotFound)
}

func TestClient_GetProduct_sendsEmptySelectionList(t *testing.T) {
	t.Parallel()

	srv, got := newTestServer(t, http.StatusOK, `{"data":{"site":{"product":null}}}`)
	c := New(srv.URL, "")

	_, _ = c.GetProduct(context.Background(), 1, nil)
	sels, ok := got.Variables["optionValueIds"].([]any)
	assert.True(t, ok)
	assert.Empty(t, sels)
	assert.Equal(t, "", got.Auth)
}

func TestClient_graphQLErrors(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, http.StatusOK, `{"data":null,"errors":[{"message":"bad token"},{"message":"rate limited"}]}`)
	c := New(srv.URL, "")

	_, err := c.GetProduct(context.Background(), 1, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, commerce.ErrNotFound)
	assert.Contains(t, err.Error(), "bad token; rate limited")
}

func TestClient_nonOKStatus(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, http.StatusUnauthorized, `unauthorized`)
	c := New(srv.URL, "")

	_, err := c.GetReviewSummary(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestClient_GetRelatedProducts(t *testing.T) {
	t.Parallel()

	body := `{"data":{"site":{"product":{"relatedProducts":{"edges":[
	  {"node":{"entityId":80,"name":"Sample Pot","path":"/pot/","brand":null,"defaultImage":{"url":"https://cdn.example.com/p.jpg","altText":"pot"},"prices":{"price":{"value":"12.5","currencyCode":"USD"}}}},
	  {"node":{"entityId":81,"name":"Trowel","path":"/trowel/","brand":{"name":"OFS"},"defaultImage":null,"prices":null}}
	]}}}}}`
	srv, got := newTestServer(t, http.StatusOK, body)
	c := New(srv.URL, "", WithRelatedLimit(4))

	cards, err := c.GetRelatedProducts(context.Background(), 77, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 4, got.Variables["first"])

	require.Len(t, cards, 2)
	assert.Equal(t, "Sample Pot", cards[0].Name)
	assert.Nil(t, cards[0].Brand)
	require.NotNil(t, cards[0].Image)
	assert.Equal(t, "12.5", cards[0].Prices.Price.Value.String())
	assert.Nil(t, cards[1].Image)
	assert.Nil(t, cards[1].Prices)
}

func TestClient_GetRelatedProducts_missingProduct(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, http.StatusOK, `{"data":{"site":{"product":null}}}`)
	c := New(srv.URL, "")

	cards, err := c.GetRelatedProducts(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestClient_Reviews(t *testing.T) {
	t.Parallel()

	body := `{"data":{"site":{"product":{
	  "reviewSummary":{"numberOfReviews":2,"summationOfRatings":9},
	  "reviews":{"edges":[{"node":{"entityId":5,"author":{"name":"Ana"},"title":"Great","text":"Love it","rating":5,"createdAt":{"utc":"2024-03-01T10:00:00Z"}}}]}
	}}}}`
	srv, got := newTestServer(t, http.StatusOK, body)
	c := New(srv.URL, "")

	sum, err := c.GetReviewSummary(context.Background(), 77)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.NumberOfReviews)
	assert.InDelta(t, 4.5, sum.AverageRating(), 0.001)

	reviews, err := c.GetReviews(context.Background(), 77, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.Variables["first"])
	require.Len(t, reviews, 1)
	assert.Equal(t, "Ana", reviews[0].Author)
	assert.Equal(t, 2024, reviews[0].CreatedAt.Year())
}

const cartResponse = `{"data":{"cart":{"createCart":{"cart":{
  "entityId":"c-1",
  "amount":{"value":218,"currencyCode":"USD"},
  "lineItems":{"physicalItems":[{"entityId":"li-1","productEntityId":77,"name":"Orbit Terrarium - Large","url":"/orbit/","imageUrl":"","quantity":2,"listPrice":{"value":109,"currencyCode":"USD"},
    "selectedOptions":[{"entityId":112,"name":"Size","value":"L","valueEntityId":70}]}],"digitalItems":[]}
}}}}}`

func TestClient_CreateCart(t *testing.T) {
	t.Parallel()

	srv, got := newTestServer(t, http.StatusOK, cartResponse)
	c := New(srv.URL, "")

	cart, err := c.CreateCart(context.Background(), commerce.CartLineItemInput{
		ProductEntityID: 77,
		Quantity:        2,
		SelectedOptions: []commerce.OptionValueID{{OptionEntityID: 112, ValueEntityID: 70}},
	})
	require.NoError(t, err)

	assert.True(t, strings.Contains(got.Query, "mutation createCart"))
	input := got.Variables["input"].(map[string]any)
	items := input["lineItems"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.EqualValues(t, 77, item["productEntityId"])
	choices := item["selectedOptions"].(map[string]any)["multipleChoices"].([]any)
	assert.EqualValues(t, 70, choices[0].(map[string]any)["optionValueEntityId"])

	assert.Equal(t, "c-1", cart.EntityID)
	assert.Equal(t, 2, cart.Count())
	require.Len(t, cart.LineItems, 1)
	assert.Equal(t, "L", cart.LineItems[0].SelectedOptions[0].Value)
}

func TestClient_GetCart_missing(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, http.StatusOK, `{"data":{"site":{"cart":null}}}`)
	c := New(srv.URL, "")

	_, err := c.GetCart(context.Background(), "nope")
	assert.ErrorIs(t, err, commerce.ErrNotFound)
}

func TestClient_DeleteCartLineItem_lastLineDropsCart(t *testing.T) {
	t.Parallel()

	srv, got := newTestServer(t, http.StatusOK, `{"data":{"cart":{"deleteCartLineItem":{"cart":null}}}}`)
	c := New(srv.URL, "")

	_, err := c.DeleteCartLineItem(context.Background(), "c-1", "li-1")
	assert.ErrorIs(t, err, commerce.ErrNotFound)

	input := got.Variables["input"].(map[string]any)
	assert.Equal(t, "c-1", input["cartEntityId"])
	assert.Equal(t, "li-1", input["lineItemEntityId"])
}
