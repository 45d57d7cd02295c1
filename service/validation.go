package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"fashionfusion-storefront/models"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var strengthLabels = [...]string{"Very weak", "Weak", "Medium", "Strong", "Very strong"}

// ValidateName requires at least 2 characters after trimming
func ValidateName(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return newValidationError(field, "This field is required")
	}
	if utf8.RuneCountInString(value) < 2 {
		return newValidationError(field, "Must be at least 2 characters")
	}
	return nil
}

func ValidateEmail(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return newValidationError(field, "Email is required")
	}
	if !emailPattern.MatchString(value) {
		return newValidationError(field, "Please enter a valid email address")
	}
	return nil
}

// ValidatePassword checks presence and minimum length only
func ValidatePassword(field, value string) error {
	if value == "" {
		return newValidationError(field, "Password is required")
	}
	if utf8.RuneCountInString(value) < minPasswordLength {
		return newValidationError(field, "Password must be at least 6 characters")
	}
	return nil
}

// ValidateNewPassword also rejects passwords scoring below Medium
func ValidateNewPassword(field, value string) error {
	if err := ValidatePassword(field, value); err != nil {
		return err
	}
	if PasswordStrength(value).Score < 2 {
		return newValidationError(field, "Password is too weak")
	}
	return nil
}

// PasswordStrength scores one point each for length >= 8, mixed case, a digit and a symbol
func PasswordStrength(password string) models.PasswordStrength {
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	score := 0
	if utf8.RuneCountInString(password) >= 8 {
		score++
	}
	if hasLower && hasUpper {
		score++
	}
	if hasDigit {
		score++
	}
	if hasSymbol {
		score++
	}
	return models.PasswordStrength{Score: score, Label: strengthLabels[score]}
}
