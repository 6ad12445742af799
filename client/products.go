package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/princinho/tradecatalog/dto"
	"github.com/princinho/tradecatalog/models"
	"github.com/princinho/tradecatalog/store"
)

var _ store.ProductBackend = (*Client)(nil)

const (
	manufacturedPath = "/manufactured"
	tradingPath      = "/trading"
)

func (c *Client) ListManufactured(ctx context.Context) ([]models.ManufacturedProduct, error) {
	return list[models.ManufacturedProduct](ctx, c, manufacturedPath)
}

func (c *Client) CreateManufactured(ctx context.Context, in dto.CreateProductDTO) (models.ManufacturedProduct, error) {
	var out models.ManufacturedProduct
	err := c.do(ctx, http.MethodPost, manufacturedPath, in, &out)
	return out, err
}

func (c *Client) UpdateManufactured(ctx context.Context, id string, patch dto.UpdateProductDTO) (models.ManufacturedProduct, error) {
	var out models.ManufacturedProduct
	err := c.do(ctx, http.MethodPatch, itemPath(manufacturedPath, id), patch, &out)
	return out, err
}

func (c *Client) DeleteManufactured(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, itemPath(manufacturedPath, id), nil, nil)
}

func (c *Client) ListTrading(ctx context.Context) ([]models.TradingProduct, error) {
	return list[models.TradingProduct](ctx, c, tradingPath)
}

func (c *Client) CreateTrading(ctx context.Context, in dto.CreateProductDTO) (models.TradingProduct, error) {
	var out models.TradingProduct
	err := c.do(ctx, http.MethodPost, tradingPath, in, &out)
	return out, err
}

func (c *Client) UpdateTrading(ctx context.Context, id string, patch dto.UpdateProductDTO) (models.TradingProduct, error) {
	var out models.TradingProduct
	err := c.do(ctx, http.MethodPatch, itemPath(tradingPath, id), patch, &out)
	return out, err
}

func (c *Client) DeleteTrading(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, itemPath(tradingPath, id), nil, nil)
}

func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	out := make([]T, 0)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func itemPath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}
