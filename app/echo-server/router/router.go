package router

import (
	"net/http"

	"krishiCMS/domain"
	"krishiCMS/internal/rest"

	"github.com/labstack/echo/v4"
)

// RouteOptions adjusts the default entity route set: public reads and list,
// authenticated writes.
type RouteOptions struct {
	PublicCreate bool
	PrivateRead  bool
	NoUpdate     bool
}

// SetupEntityRoutes mounts the admin endpoints of one table under /<group>.
func SetupEntityRoutes[T domain.Record](api *echo.Group, group string, h *rest.EntityHandler[T], authRequired echo.MiddlewareFunc, opts RouteOptions) *echo.Group {
	g := api.Group("/" + group)

	var read, create []echo.MiddlewareFunc
	if opts.PrivateRead {
		read = append(read, authRequired)
	}
	if !opts.PublicCreate {
		create = append(create, authRequired)
	}

	g.GET("/"+h.Plural, h.GetAll, read...)
	g.GET("/get-"+h.Singular+"/:id", h.GetByID, read...)
	g.GET("/check-unique", h.CheckUnique, read...)
	g.POST("/ajax/"+h.Singular+"-list", h.AjaxList, read...)

	g.POST("/add-"+h.Singular, h.Create, create...)
	if !opts.NoUpdate {
		g.PUT("/add-"+h.Singular+"/:id", h.Update, authRequired)
	}
	g.DELETE("/delete-"+h.Singular+"/:id", h.Destroy, authRequired)

	return g
}

func SetupCommonRoutes(api *echo.Group, handler *rest.CommonHandler, authRequired echo.MiddlewareFunc) {
	methods := []string{http.MethodGet, http.MethodPut, http.MethodDelete}

	api.Match(methods, "/delete/:model/:id", handler.Delete, authRequired)
	api.Match(methods, "/active/:model/:id", handler.Activate, authRequired)
	api.Match(methods, "/inactive/:model/:id", handler.Deactivate, authRequired)
}

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler, authRequired echo.MiddlewareFunc) {
	auth := api.Group("/auth")

	auth.POST("/login", handler.Login)
	auth.POST("/logout", handler.Logout)
	auth.GET("/me", handler.Me, authRequired)
}

func SetupProductRoutes(products *echo.Group, handler *rest.ProductHandler) {
	products.GET("/by-categories", handler.GetProductsByCategories)
}

// SetupGalleryRoutes exposes the public media gallery, active rows only.
func SetupGalleryRoutes(media *echo.Group, gallery *rest.EntityHandler[domain.MediaModule]) {
	media.POST("/ajax/gallery-list", gallery.AjaxList)
}

// SetupContactRoutes replaces the generic create with the public submission
// endpoint that also notifies the admin.
func SetupContactRoutes(api *echo.Group, h *rest.EntityHandler[domain.ContactMessage], submit *rest.ContactHandler, authRequired echo.MiddlewareFunc) {
	g := api.Group("/contact")

	g.POST("/add-"+h.Singular, submit.Submit)
	g.GET("/"+h.Plural, h.GetAll, authRequired)
	g.GET("/get-"+h.Singular+"/:id", h.GetByID, authRequired)
	g.POST("/ajax/"+h.Singular+"-list", h.AjaxList, authRequired)
	g.DELETE("/delete-"+h.Singular+"/:id", h.Destroy, authRequired)
}
