package controller

import (
	"log"
	"net/http"

	"fashionfusion-storefront/models"
	"fashionfusion-storefront/service"
)

// AuthController handles registration, login and logout
type AuthController struct {
	auth *service.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(auth *service.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles POST /auth/register
// Example request:
//
//	{
//	  "firstName": "Jane",
//	  "lastName": "Doe",
//	  "email": "jane@example.com",
//	  "password": "Secret123",
//	  "confirmPassword": "Secret123",
//	  "acceptTerms": true
//	}
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Register: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "Register")
		return
	}

	var req models.RegisterRequest
	if !decodeBody(w, r, "Register", &req) {
		return
	}

	user, err := c.auth.Register(r.Context(), sessionID(w, r), req)
	if err != nil {
		writeError(w, "Register", err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
// Example request:
//
//	{"email": "jane@example.com", "password": "Secret123"}
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Login: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "Login")
		return
	}

	var req models.LoginRequest
	if !decodeBody(w, r, "Login", &req) {
		return
	}

	user, err := c.auth.Login(r.Context(), sessionID(w, r), req)
	if err != nil {
		writeError(w, "Login", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout handles POST /auth/logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Logout: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "Logout")
		return
	}

	if err := c.auth.Logout(r.Context(), sessionID(w, r)); err != nil {
		writeError(w, "Logout", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "Me")
		return
	}

	user, err := c.auth.CurrentUser(r.Context(), sessionID(w, r))
	if err != nil {
		writeError(w, "Me", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// PasswordStrength handles POST /auth/password-strength
// Example request:
//
//	{"password": "Secret123"}
//
// Example response:
//
//	{"score": 3, "label": "Strong"}
func (c *AuthController) PasswordStrength(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "PasswordStrength")
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if !decodeBody(w, r, "PasswordStrength", &req) {
		return
	}
	writeJSON(w, http.StatusOK, service.PasswordStrength(req.Password))
}
