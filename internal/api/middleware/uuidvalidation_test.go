package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/fundscope/fundscope-backend/internal/api/middleware"
)

func TestValidateUUIDParam(t *testing.T) {
	newRequest := func(param, value string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		rctx := chi.NewRouteContext()
		if value != "" {
			rctx.URLParams.Add(param, value)
		}
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("allows a valid UUID", func(t *testing.T) {
		handlerCalled := false
		testHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
			w.WriteHeader(http.StatusOK)
		})

		mw := middleware.ValidateUUIDParam("fundId")(testHandler)

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, newRequest("fundId", "550e8400-e29b-41d4-a716-446655440000"))

		if !handlerCalled {
			t.Error("Expected handler to complete.")
		}
	})

	t.Run("rejects a malformed UUID", func(t *testing.T) {
		handlerCalled := false
		testHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
		})

		mw := middleware.ValidateUUIDParam("fundId")(testHandler)

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, newRequest("fundId", "not-a-uuid"))

		if handlerCalled {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("rejects a missing parameter", func(t *testing.T) {
		mw := middleware.ValidateUUIDParam("fundId")(http.NotFoundHandler())

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, newRequest("fundId", ""))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
