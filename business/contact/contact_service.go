package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"krishiCMS/domain"
	"krishiCMS/pkg/filestore"
	"krishiCMS/pkg/logger"
)

const notifyTimeout = 10 * time.Second

// MessageStore persists submissions through the generic entity service.
type MessageStore interface {
	Create(ctx context.Context, owner string, rec *domain.ContactMessage, uploads []filestore.Upload) (domain.ContactMessage, error)
}

// Notifier contract interface
type Notifier interface {
	SendContactMessage(ctx context.Context, adminEmail string, msg domain.ContactMessage) error
}

type contactService struct {
	store      MessageStore
	notifier   Notifier
	adminEmail string
}

// NewContactService wires the inbox. A nil notifier or empty admin email
// disables the email copy.
func NewContactService(store MessageStore, notifier Notifier, adminEmail string) *contactService {
	return &contactService{
		store:      store,
		notifier:   notifier,
		adminEmail: adminEmail,
	}
}

// Submit stores a public submission as unread and emails a copy to the admin.
// Email failures are logged and do not fail the submission.
func (s *contactService) Submit(ctx context.Context, msg *domain.ContactMessage, attachment *filestore.Upload) (domain.ContactMessage, error) {
	if err := ctx.Err(); err != nil {
		return domain.ContactMessage{}, fmt.Errorf("context error: %w", err)
	}

	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Status = domain.FlagOn
	msg.IsDeleted = domain.FlagOff

	var uploads []filestore.Upload
	if attachment != nil {
		attachment.Bucket = filestore.BucketContact
		uploads = append(uploads, *attachment)
	}

	saved, err := s.store.Create(ctx, "guest", msg, uploads)
	if err != nil {
		logger.Error("Failed to store contact message", err)
		return domain.ContactMessage{}, err
	}

	if s.notifier != nil && s.adminEmail != "" {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.notifier.SendContactMessage(notifyCtx, s.adminEmail, saved); err != nil {
			logger.Warn("Failed to email contact message", "id", saved.ID, err)
		}
	}

	return saved, nil
}
