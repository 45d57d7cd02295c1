package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionfusion-storefront/models"
	"fashionfusion-storefront/service"
)

func TestSessionID(t *testing.T) {
	t.Run("header wins", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/cart", nil)
		r.Header.Set(SessionHeader, "abc-123")
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-1"})
		w := httptest.NewRecorder()

		assert.Equal(t, "abc-123", sessionID(w, r))
		assert.Empty(t, w.Header().Get(SessionHeader))
	})

	t.Run("cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/cart", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-1"})
		assert.Equal(t, "cookie-1", sessionID(httptest.NewRecorder(), r))
	})

	t.Run("missing or malformed ids get a fresh session", func(t *testing.T) {
		for _, sid := range []string{"", "has:colon", "with space"} {
			r := httptest.NewRequest(http.MethodGet, "/cart", nil)
			r.Header.Set(SessionHeader, sid)
			w := httptest.NewRecorder()

			got := sessionID(w, r)
			assert.NotEqual(t, sid, got)
			assert.Equal(t, got, w.Header().Get(SessionHeader))
			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, got, cookies[0].Value)
		}
	})
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &service.ValidationError{Field: "code", Message: "Invalid promo code"}, http.StatusBadRequest, "validation_error"},
		{"empty cart", service.ErrEmptyCart, http.StatusBadRequest, "empty_cart"},
		{"not authenticated", fmt.Errorf("checkout: %w", service.ErrNotAuthenticated), http.StatusUnauthorized, "not_authenticated"},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"not found", fmt.Errorf("product 7: %w", service.ErrNotFound), http.StatusNotFound, "not_found"},
		{"email taken", service.ErrEmailTaken, http.StatusConflict, "email_taken"},
		{"rate limited", service.ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
		{"anything else", errors.New("connection refused"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeError(w, "Test", tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), `"code":"`+tt.code+`"`)
		})
	}

	w := httptest.NewRecorder()
	writeError(w, "Test", errors.New("dsn password=hunter2"))
	assert.NotContains(t, w.Body.String(), "hunter2")

	w = httptest.NewRecorder()
	writeError(w, "Test", &service.ValidationError{Field: "code", Message: "Invalid promo code"})
	assert.JSONEq(t, `{"error":"Invalid promo code","code":"validation_error","field":"code"}`, w.Body.String())
}

func TestParseProductQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet,
		"/products?category=Women,men&size=small&size=XL&color=Navy&maxPrice=$60&sort=price-low&page=2&pageSize=6", nil)

	query, err := parseProductQuery(r)
	require.NoError(t, err)
	assert.Equal(t, []models.Category{models.CategoryWomen, models.CategoryMen}, query.Criteria.Categories)
	assert.Equal(t, []string{"S", "XL"}, query.Criteria.Sizes)
	assert.Equal(t, []string{"blue"}, query.Criteria.Colors)
	require.NotNil(t, query.Criteria.MaxPrice)
	assert.Equal(t, "60", query.Criteria.MaxPrice.String())
	assert.Equal(t, "price-low", query.Sort)
	assert.Equal(t, 2, query.Page)
	assert.Equal(t, 6, query.PageSize)

	empty, err := parseProductQuery(httptest.NewRequest(http.MethodGet, "/products", nil))
	require.NoError(t, err)
	assert.Nil(t, empty.Criteria.MaxPrice)
	assert.Empty(t, empty.Criteria.Categories)

	for _, bad := range []string{"category=pets", "maxPrice=cheap", "maxPrice=-1", "page=two", "pageSize=x"} {
		_, err := parseProductQuery(httptest.NewRequest(http.MethodGet, "/products?"+bad, nil))
		assert.Error(t, err, bad)
	}
}

func TestPathSegments(t *testing.T) {
	assert.Nil(t, pathSegments("/profile/orders", "/profile/orders"))
	assert.Nil(t, pathSegments("/profile/orders/", "/profile/orders"))
	assert.Equal(t, []string{"ORD-1", "reorder"}, pathSegments("/profile/orders/ORD-1/reorder", "/profile/orders"))
}
