package models

import "time"

// ContactMessage is a message left through the contact form
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactRequest represents the request body for POST /contact
// Example request:
//
//	{
//	  "name": "Jane Doe",
//	  "email": "jane@example.com",
//	  "phone": "+1 555 0100",
//	  "subject": "order",
//	  "message": "Where is my order ORD-1760874000000-3F2A9C?"
//	}
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// NewsletterRequest represents the request body for POST /newsletter
type NewsletterRequest struct {
	Email string `json:"email"`
}

// NewsletterSubscriber is one address on the newsletter list
type NewsletterSubscriber struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
