package rest

import (
	"context"
	"net/http"
	"time"

	"krishiCMS/business/product"
	jsonres "krishiCMS/pkg/response"

	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetProductsByCategories(ctx context.Context, categoryIDs []uint64) ([]product.CategoryProducts, error)
}

type ProductHandler struct {
	productService ProductService
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		timeout:        10 * time.Second,
	}
}

// GetProductsByCategories serves ?ids=1,2 as one group per requested category.
func (h *ProductHandler) GetProductsByCategories(c echo.Context) error {
	ids, err := parseIDs(c.QueryParams()["ids"])
	if err != nil {
		return respondError(c, "category", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	groups, err := h.productService.GetProductsByCategories(ctx, ids)
	if err != nil {
		return respondError(c, "product", err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("successfully get products by categories", groups))
}
