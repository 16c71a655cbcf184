package rest

import (
	"context"
	"net/http"
	"time"

	"krishiCMS/domain"
	"krishiCMS/pkg/filestore"
	jsonres "krishiCMS/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ContactService interface {
	Submit(ctx context.Context, msg *domain.ContactMessage, attachment *filestore.Upload) (domain.ContactMessage, error)
}

// ContactHandler accepts the public contact form.
type ContactHandler struct {
	contactService ContactService
	bind           Binder[domain.ContactMessage]
	timeout        time.Duration
}

func NewContactHandler(contactService ContactService, v *validator.Validate) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		bind:           FormBinder(v, ApplyContact),
		timeout:        10 * time.Second,
	}
}

func (h *ContactHandler) Submit(c echo.Context) error {
	var msg domain.ContactMessage
	if err := h.bind(c, &msg); err != nil {
		return respondError(c, "contact message", err)
	}

	uploads, err := uploadsFor[domain.ContactMessage](c)
	if err != nil {
		return respondError(c, "contact message", err)
	}

	var attachment *filestore.Upload
	if len(uploads) > 0 {
		attachment = &uploads[0]
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	saved, err := h.contactService.Submit(ctx, &msg, attachment)
	if err != nil {
		return respondError(c, "contact message", err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success("Thank you, your message has been received", saved))
}
