package contact

import (
	"context"
	"errors"
	"testing"

	"krishiCMS/business/entity"
	"krishiCMS/business/entity/entitytest"
	"krishiCMS/domain"
	"krishiCMS/pkg/filestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	sent []domain.ContactMessage
	to   string
	err  error
}

func (f *fakeNotifier) SendContactMessage(_ context.Context, adminEmail string, msg domain.ContactMessage) error {
	f.to = adminEmail
	f.sent = append(f.sent, msg)
	return f.err
}

func newStore() (*entity.Service[domain.ContactMessage], *entitytest.Files) {
	files := &entitytest.Files{}
	repo := entitytest.NewRepo[domain.ContactMessage](domain.ContactMessageDescriptor)
	return entity.NewService[domain.ContactMessage](repo, files), files
}

func TestSubmitStoresUnreadAndNotifies(t *testing.T) {
	store, files := newStore()
	notifier := &fakeNotifier{}
	svc := NewContactService(store, notifier, "admin@example.com")

	saved, err := svc.Submit(context.Background(), &domain.ContactMessage{
		Name:    " Ravi ",
		Email:   "ravi@example.com",
		Message: "Need a dealer near Indore",
	}, &filestore.Upload{
		Field:  "attachment",
		Header: entitytest.FileHeader(t, "attachment", "query.png", entitytest.PNG),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ravi", saved.Name)
	assert.Equal(t, domain.FlagOn, saved.Status)
	assert.Equal(t, files.Saved[0], saved.Attachment)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "admin@example.com", notifier.to)
	assert.Equal(t, saved.ID, notifier.sent[0].ID)
}

func TestSubmitSurvivesNotifierFailure(t *testing.T) {
	store, _ := newStore()
	svc := NewContactService(store, &fakeNotifier{err: errors.New("mailjet down")}, "admin@example.com")

	_, err := svc.Submit(context.Background(), &domain.ContactMessage{Name: "A", Email: "a@example.com", Message: "hi"}, nil)
	assert.NoError(t, err)
}

func TestSubmitWithoutNotifier(t *testing.T) {
	store, _ := newStore()
	svc := NewContactService(store, nil, "")

	saved, err := svc.Submit(context.Background(), &domain.ContactMessage{Name: "A", Email: "a@example.com", Message: "hi"}, nil)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
}
