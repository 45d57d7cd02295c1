package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"fashionfusion-storefront/models"
	"fashionfusion-storefront/repository"
	"fashionfusion-storefront/utils"
)

const minContactMessageLength = 10

const (
	ContactSentMessage       = "Message sent successfully! We'll get back to you soon."
	NewsletterSuccessMessage = "Successfully subscribed to newsletter!"
)

// ContactService accepts contact form messages and newsletter signups
type ContactService struct {
	contacts repository.ContactRepositoryInterface
	mu       sync.Mutex // serializes read-modify-write of the stored lists
	now      func() time.Time
}

// NewContactService creates a new ContactService
func NewContactService(contacts repository.ContactRepositoryInterface) *ContactService {
	return &ContactService{contacts: contacts, now: time.Now}
}

// validateContact checks fields in form order and reports the first problem
func validateContact(req models.ContactRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return newValidationError("name", "This field is required")
	}
	if err := ValidateEmail("email", req.Email); err != nil {
		return err
	}
	if strings.TrimSpace(req.Subject) == "" {
		return newValidationError("subject", "Please select a subject")
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return newValidationError("message", "Message is required")
	}
	if utf8.RuneCountInString(message) < minContactMessageLength {
		return newValidationError("message", "Message must be at least 10 characters long")
	}
	return nil
}

// Submit validates and stores a contact form message
func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error) {
	if err := validateContact(req); err != nil {
		return nil, err
	}

	msg := models.ContactMessage{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	messages, err := s.contacts.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contact messages: %w", err)
	}
	if err := s.contacts.SaveMessages(ctx, append(messages, msg)); err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	log.Printf("✉️  Contact: message %s from %s (%s)", msg.ID, msg.Email, msg.Subject)
	return &msg, nil
}

// Subscribe adds email to the newsletter list. Subscribing twice is a no-op.
func (s *ContactService) Subscribe(ctx context.Context, email string) error {
	if err := ValidateEmail("email", email); err != nil {
		return err
	}
	email = utils.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	subscribers, err := s.contacts.ListSubscribers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load subscribers: %w", err)
	}
	for _, sub := range subscribers {
		if sub.Email == email {
			return nil
		}
	}

	subscribers = append(subscribers, models.NewsletterSubscriber{Email: email, SubscribedAt: s.now().UTC()})
	if err := s.contacts.SaveSubscribers(ctx, subscribers); err != nil {
		return fmt.Errorf("failed to save subscriber: %w", err)
	}
	log.Printf("✓ Newsletter: %s subscribed (%d subscribers)", email, len(subscribers))
	return nil
}
