package repository

import (
	"context"

	"fashionfusion-storefront/db"
	"fashionfusion-storefront/models"
)

// ContactRepository keeps contact messages and newsletter subscribers as two ordered lists
type ContactRepository struct {
	store db.Store
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(store db.Store) *ContactRepository {
	return &ContactRepository{store: store}
}

// Ensure ContactRepository implements ContactRepositoryInterface
var _ ContactRepositoryInterface = (*ContactRepository)(nil)

func (r *ContactRepository) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	messages := []models.ContactMessage{}
	if _, err := getJSON(ctx, r.store, contactMessagesKey, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *ContactRepository) SaveMessages(ctx context.Context, messages []models.ContactMessage) error {
	return setJSON(ctx, r.store, contactMessagesKey, messages)
}

func (r *ContactRepository) ListSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	subscribers := []models.NewsletterSubscriber{}
	if _, err := getJSON(ctx, r.store, newsletterSubscribers, &subscribers); err != nil {
		return nil, err
	}
	return subscribers, nil
}

func (r *ContactRepository) SaveSubscribers(ctx context.Context, subscribers []models.NewsletterSubscriber) error {
	return setJSON(ctx, r.store, newsletterSubscribers, subscribers)
}
