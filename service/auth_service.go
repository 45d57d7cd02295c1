package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"fashionfusion-storefront/metrics"
	"fashionfusion-storefront/models"
	"fashionfusion-storefront/repository"
	"fashionfusion-storefront/utils"
)

// loginThrottle limits login attempts per email address
type loginThrottle struct {
	mu        sync.Mutex
	perMinute int
	limiters  map[string]*rate.Limiter
}

func newLoginThrottle(perMinute int) *loginThrottle {
	if perMinute < 1 {
		perMinute = 1
	}
	return &loginThrottle{perMinute: perMinute, limiters: make(map[string]*rate.Limiter)}
}

func (t *loginThrottle) allow(key string) bool {
	t.mu.Lock()
	limiter, ok := t.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(t.perMinute)), t.perMinute)
		t.limiters[key] = limiter
	}
	t.mu.Unlock()
	return limiter.Allow()
}

// AuthService handles registration, login and the session's current user
type AuthService struct {
	users    repository.UserRepositoryInterface
	throttle *loginThrottle
	metrics  *metrics.Registry
	hashCost int
	now      func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepositoryInterface, loginAttemptsPerMinute int, registry *metrics.Registry) *AuthService {
	return &AuthService{
		users:    users,
		throttle: newLoginThrottle(loginAttemptsPerMinute),
		metrics:  registry,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// toSessionUser builds the session view of a registered user
func toSessionUser(user models.User) models.SessionUser {
	first, last := utils.SplitName(user.Name)
	return models.SessionUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		FirstName: first,
		LastName:  last,
		Phone:     user.Phone,
		Birthdate: user.Birthdate,
		Gender:    user.Gender,
		JoinDate:  user.CreatedAt,
	}
}

func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func validateRegistration(req models.RegisterRequest) error {
	if err := ValidateName("firstName", req.FirstName); err != nil {
		return err
	}
	if err := ValidateName("lastName", req.LastName); err != nil {
		return err
	}
	if err := ValidateEmail("email", req.Email); err != nil {
		return err
	}
	if err := ValidateNewPassword("password", req.Password); err != nil {
		return err
	}
	if req.ConfirmPassword == "" {
		return newValidationError("confirmPassword", "Please confirm your password")
	}
	if req.Password != req.ConfirmPassword {
		return newValidationError("confirmPassword", "Passwords do not match")
	}
	if !req.AcceptTerms {
		return newValidationError("acceptTerms", "You must accept the terms and conditions")
	}
	return nil
}

// Register creates an account and logs it in on the session
func (s *AuthService) Register(ctx context.Context, sessionID string, req models.RegisterRequest) (*models.SessionUser, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Printf("❌ Register: email already registered")
		return nil, ErrEmailTaken
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName),
		Email:        utils.NormalizeEmail(req.Email),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	current := toSessionUser(user)
	if err := s.users.SetSessionUser(ctx, sessionID, current); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	log.Printf("✅ Register: user %s registered and logged in", user.ID)
	return &current, nil
}

// Login checks credentials and makes the user current on the session
func (s *AuthService) Login(ctx context.Context, sessionID string, req models.LoginRequest) (*models.SessionUser, error) {
	if err := ValidateEmail("email", req.Email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, newValidationError("password", "Password is required")
	}

	email := utils.NormalizeEmail(req.Email)
	if !s.throttle.allow(email) {
		s.metrics.LoginAttempts.WithLabelValues("throttled").Inc()
		log.Printf("⚠️  Login: throttled attempts for session %s", sessionID)
		return nil, ErrRateLimited
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.metrics.LoginAttempts.WithLabelValues("invalid").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	current := toSessionUser(*user)
	if err := s.users.SetSessionUser(ctx, sessionID, current); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	s.metrics.LoginAttempts.WithLabelValues("success").Inc()
	log.Printf("✅ Login: user %s logged in", user.ID)
	return &current, nil
}

// Logout forgets the session's current user. The cart is kept.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.users.ClearSessionUser(ctx, sessionID)
}

// CurrentUser returns the session's user or ErrNotAuthenticated
func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) (*models.SessionUser, error) {
	return requireUser(ctx, s.users, sessionID)
}

func requireUser(ctx context.Context, users repository.UserRepositoryInterface, sessionID string) (*models.SessionUser, error) {
	user, err := users.GetSessionUser(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	return user, nil
}
