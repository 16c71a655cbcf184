package rest

import (
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type healthStatus struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// Health reports liveness with the service name and version.
func Health(name, version string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, fres.Response.StatusOK(healthStatus{
			Name:    name,
			Version: version,
			Status:  "ok",
		}))
	}
}
