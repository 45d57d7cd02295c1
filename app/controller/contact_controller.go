package controller

import (
	"log"
	"net/http"

	"fashionfusion-storefront/models"
	"fashionfusion-storefront/service"
)

// ContactController handles the contact form and newsletter signup
type ContactController struct {
	contact *service.ContactService
}

// NewContactController creates a new ContactController
func NewContactController(contact *service.ContactService) *ContactController {
	return &ContactController{contact: contact}
}

// Contact handles POST /contact
// Example response:
//
//	{"id": "7d4e...", "message": "Message sent successfully! We'll get back to you soon."}
func (c *ContactController) Contact(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Contact: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "Contact")
		return
	}

	var req models.ContactRequest
	if !decodeBody(w, r, "Contact", &req) {
		return
	}

	msg, err := c.contact.Submit(r.Context(), req)
	if err != nil {
		writeError(w, "Contact", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": msg.ID, "message": service.ContactSentMessage})
}

// Newsletter handles POST /newsletter
// Example request:
//
//	{"email": "jane@example.com"}
func (c *ContactController) Newsletter(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Newsletter: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "Newsletter")
		return
	}

	var req models.NewsletterRequest
	if !decodeBody(w, r, "Newsletter", &req) {
		return
	}

	if err := c.contact.Subscribe(r.Context(), req.Email); err != nil {
		writeError(w, "Newsletter", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": service.NewsletterSuccessMessage})
}
