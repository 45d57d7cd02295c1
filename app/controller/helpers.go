package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"fashionfusion-storefront/models"
	"fashionfusion-storefront/service"
	"fashionfusion-storefront/utils"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "session_id"
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// errorResponse is the JSON body of every failed request
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// sessionID returns the caller's session id from the header or cookie.
// A request without a usable id gets a fresh one, echoed back in both.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	sid := strings.TrimSpace(r.Header.Get(SessionHeader))
	if sid == "" {
		if cookie, err := r.Cookie(SessionCookie); err == nil {
			sid = cookie.Value
		}
	}
	if sessionIDPattern.MatchString(sid) {
		return sid
	}

	sid = uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set(SessionHeader, sid)
	return sid
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

// writeError maps service errors onto HTTP status codes
func writeError(w http.ResponseWriter, op string, err error) {
	var verr *service.ValidationError
	status, body := http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "internal_error"}

	switch {
	case errors.As(err, &verr):
		status, body = http.StatusBadRequest, errorResponse{Error: verr.Message, Code: "validation_error", Field: verr.Field}
	case errors.Is(err, service.ErrEmptyCart):
		status, body = http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "empty_cart"}
	case errors.Is(err, service.ErrNotAuthenticated):
		status, body = http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: "not_authenticated"}
	case errors.Is(err, service.ErrInvalidCredentials):
		status, body = http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: "invalid_credentials"}
	case errors.Is(err, service.ErrNotFound):
		status, body = http.StatusNotFound, errorResponse{Error: err.Error(), Code: "not_found"}
	case errors.Is(err, service.ErrEmailTaken):
		status, body = http.StatusConflict, errorResponse{Error: err.Error(), Code: "email_taken"}
	case errors.Is(err, service.ErrRateLimited):
		status, body = http.StatusTooManyRequests, errorResponse{Error: err.Error(), Code: "rate_limited"}
	}

	if status == http.StatusInternalServerError {
		log.Printf("❌ %s: %v", op, err)
	} else {
		log.Printf("⚠️  %s: %v", op, err)
	}
	writeJSON(w, status, body)
}

func badRequest(w http.ResponseWriter, op, message string) {
	log.Printf("❌ %s: %s", op, message)
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message, Code: "bad_request"})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, op string) {
	log.Printf("❌ %s: Method not allowed: %s", op, r.Method)
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// decodeBody decodes the JSON request body into dest, reporting a 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, op string, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		badRequest(w, op, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

// pathSegments returns the non-empty path segments after prefix
func pathSegments(path, prefix string) []string {
	var parts []string
	for _, p := range strings.Split(strings.TrimPrefix(path, prefix), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// parseProductQuery reads filter, sort and paging parameters.
// List parameters accept repeated keys and comma separated values.
func parseProductQuery(r *http.Request) (models.ProductQuery, error) {
	q := r.URL.Query()
	var query models.ProductQuery

	for _, raw := range q["category"] {
		for _, c := range utils.SplitList(raw) {
			category := models.Category(strings.ToLower(c))
			if !category.IsValid() {
				return query, fmt.Errorf("invalid category %q", c)
			}
			query.Criteria.Categories = append(query.Criteria.Categories, category)
		}
	}
	for _, raw := range q["size"] {
		for _, s := range utils.SplitList(raw) {
			query.Criteria.Sizes = append(query.Criteria.Sizes, utils.NormalizeSize(s))
		}
	}
	for _, raw := range q["color"] {
		for _, c := range utils.SplitList(raw) {
			query.Criteria.Colors = append(query.Criteria.Colors, utils.NormalizeColor(c))
		}
	}

	if raw := q.Get("maxPrice"); raw != "" {
		maxPrice, err := utils.ParseMoney(raw)
		if err != nil || maxPrice.IsNegative() {
			return query, fmt.Errorf("invalid maxPrice %q", raw)
		}
		query.Criteria.MaxPrice = &maxPrice
	}

	query.Sort = q.Get("sort")

	var err error
	if query.Page, err = optionalInt(q.Get("page")); err != nil {
		return query, fmt.Errorf("invalid page: %w", err)
	}
	if query.PageSize, err = optionalInt(q.Get("pageSize")); err != nil {
		return query, fmt.Errorf("invalid pageSize: %w", err)
	}
	return query, nil
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
