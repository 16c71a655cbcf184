package rest

import (
	"context"
	"net/http"
	"time"

	jsonres "krishiCMS/pkg/response"

	"github.com/labstack/echo/v4"
)

type CommonService interface {
	DeleteItem(ctx context.Context, model string, id uint64) error
	ActivateItem(ctx context.Context, model string, id uint64) error
	DeactivateItem(ctx context.Context, model string, id uint64) error
}

// CommonHandler flips the is_deleted and status flags of any registered table.
type CommonHandler struct {
	service CommonService
	timeout time.Duration
}

func NewCommonHandler(service CommonService) *CommonHandler {
	return &CommonHandler{
		service: service,
		timeout: 10 * time.Second,
	}
}

func (h *CommonHandler) Delete(c echo.Context) error {
	return h.apply(c, h.service.DeleteItem, "Record deleted successfully")
}

func (h *CommonHandler) Activate(c echo.Context) error {
	return h.apply(c, h.service.ActivateItem, "Record activated successfully")
}

func (h *CommonHandler) Deactivate(c echo.Context) error {
	return h.apply(c, h.service.DeactivateItem, "Record deactivated successfully")
}

func (h *CommonHandler) apply(c echo.Context, op func(context.Context, string, uint64) error, message string) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, "record", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := op(ctx, c.Param("model"), id); err != nil {
		return respondError(c, "record", err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(message, nil))
}
