package graphql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
)

func (c *Client) GetCart(ctx context.Context, cartID string) (commerce.Cart, error) {
	var data struct {
		Site struct {
			Cart *cartNode `json:"cart"`
		} `json:"site"`
	}
	if err := c.do(ctx, cartQuery, map[string]any{"cartId": cartID}, &data); err != nil {
		return commerce.Cart{}, fmt.Errorf("get cart: %w", err)
	}
	if data.Site.Cart == nil {
		return commerce.Cart{}, commerce.ErrNotFound
	}
	return data.Site.Cart.toCart(), nil
}

func (c *Client) CreateCart(ctx context.Context, item commerce.CartLineItemInput) (commerce.Cart, error) {
	var data struct {
		Cart struct {
			CreateCart struct {
				Cart *cartNode `json:"cart"`
			} `json:"createCart"`
		} `json:"cart"`
	}
	vars := map[string]any{
		"input": map[string]any{
			"lineItems": []lineItemInput{toLineItemInput(item)},
		},
	}
	if err := c.do(ctx, createCartMutation, vars, &data); err != nil {
		return commerce.Cart{}, fmt.Errorf("create cart: %w", err)
	}
	if data.Cart.CreateCart.Cart == nil {
		return commerce.Cart{}, errors.New("create cart: no cart returned")
	}
	return data.Cart.CreateCart.Cart.toCart(), nil
}

func (c *Client) AddCartLineItem(ctx context.Context, cartID string, item commerce.CartLineItemInput) (commerce.Cart, error) {
	var data struct {
		Cart struct {
			AddCartLineItems struct {
				Cart *cartNode `json:"cart"`
			} `json:"addCartLineItems"`
		} `json:"cart"`
	}
	vars := map[string]any{
		"input": map[string]any{
			"cartEntityId": cartID,
			"data": map[string]any{
				"lineItems": []lineItemInput{toLineItemInput(item)},
			},
		},
	}
	if err := c.do(ctx, addCartLineItemsMutation, vars, &data); err != nil {
		return commerce.Cart{}, fmt.Errorf("add cart line item: %w", err)
	}
	if data.Cart.AddCartLineItems.Cart == nil {
		return commerce.Cart{}, commerce.ErrNotFound
	}
	return data.Cart.AddCartLineItems.Cart.toCart(), nil
}

func (c *Client) DeleteCartLineItem(ctx context.Context, cartID, lineItemID string) (commerce.Cart, error) {
	var data struct {
		Cart struct {
			DeleteCartLineItem struct {
				Cart *cartNode `json:"cart"`
			} `json:"deleteCartLineItem"`
		} `json:"cart"`
	}
	vars := map[string]any{
		"input": map[string]any{
			"cartEntityId":     cartID,
			"lineItemEntityId": lineItemID,
		},
	}
	if err := c.do(ctx, deleteCartLineItemMutation, vars, &data); err != nil {
		return commerce.Cart{}, fmt.Errorf("delete cart line item: %w", err)
	}
	if data.Cart.DeleteCartLineItem.Cart == nil {
		return commerce.Cart{}, commerce.ErrNotFound
	}
	return data.Cart.DeleteCartLineItem.Cart.toCart(), nil
}
