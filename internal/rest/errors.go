package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"krishiCMS/business/auth"
	"krishiCMS/domain"
	"krishiCMS/pkg/filestore"
	jsonres "krishiCMS/pkg/response"
	"krishiCMS/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCase = cases.Title(language.English)

// respondError maps domain errors to their status codes. Anything it does
// not recognise is returned for the shared error handler to render as 500.
func respondError(c echo.Context, label string, err error) error {
	var verrs validator.ValidationErrors
	var ferrs validation.Errors

	switch {
	case errors.As(err, &verrs), errors.As(err, &ferrs):
		return c.JSON(http.StatusBadRequest, jsonres.Error("Validation failed", validation.Fields(err)))
	case errors.Is(err, filestore.ErrTooLarge), errors.Is(err, filestore.ErrUnsupportedType):
		return c.JSON(http.StatusBadRequest, jsonres.Error("Validation failed", validation.Fields(err)))
	case errors.Is(err, domain.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, jsonres.Fail("Invalid "+label+" id"))
	case errors.Is(err, domain.ErrUnknownModel):
		return c.JSON(http.StatusBadRequest, jsonres.Fail("Unknown model"))
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, jsonres.Fail(titleCase.String(label)+" not found"))
	case errors.Is(err, domain.ErrDuplicate):
		return c.JSON(http.StatusOK, jsonres.Fail(titleCase.String(label)+" already exists"))
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, jsonres.Fail(err.Error()))
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, jsonres.Fail("Request timed out"))
	}

	return err
}

func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// parseIDs accepts "1,2,3" and repeated parameters.
func parseIDs(values []string) ([]uint64, error) {
	var ids []uint64
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return nil, domain.ErrInvalidID
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
