package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smartblog/editor-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrDuplicateUsername, http.StatusBadRequest, "Username already exists"},
		{fmt.Errorf("%w: bad", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input: bad"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect username or password"},
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "Not authenticated"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "Could not validate credentials"},
		{fmt.Errorf("update: %w", domain.ErrPostNotFound), http.StatusNotFound, "Post not found"},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts, try again later"},
		{&domain.ProviderError{Message: "AI Service Failed: timeout"}, http.StatusInternalServerError, "AI Service Failed: timeout"},
		{echo.NewHTTPError(http.StatusUnprocessableEntity, "title is required"), http.StatusUnprocessableEntity, "title is required"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		h(tc.err, c)

		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		want := `{"error":"` + tc.msg + `"}` + "\n"
		if rec.Body.String() != want {
			t.Errorf("%v: expected body %q, got %q", tc.err, want, rec.Body.String())
		}
		if tc.code == http.StatusUnauthorized && rec.Header().Get(echo.HeaderWWWAuthenticate) != "Bearer" {
			t.Errorf("%v: missing WWW-Authenticate", tc.err)
		}
	}
}
