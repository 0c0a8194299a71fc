package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/mahjong-scorebook/services"
	"github.com/go-chi/chi/v5"
)

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"Bob"}`, ""},
		{"empty", ``, "body must not be empty"},
		{"syntax", `{"name":`, "badly-formed JSON"},
		{"wrong type", `{"name":5}`, `incorrect JSON type for field "name"`},
		{"unknown key", `{"nick":"Bob"}`, `unknown key "nick"`},
		{"two values", `{"name":"a"}{"name":"b"}`, "single JSON value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst services.CreateUserInput
			err := readJSON(httptest.NewRecorder(), req, &dst)

			if tt.wantErr == "" {
				if err != nil || dst.Name != "Bob" {
					t.Fatalf("readJSON = %v, dst = %+v", err, dst)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("readJSON error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetIDFromURL(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"7", 7, false},
		{"", 0, true},
		{"abc", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("value %q", tt.value), func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("sessionID", tt.value)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			got, err := getIDFromURL(req, "sessionID")
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Fatalf("getIDFromURL = %d, %v; want %d (error %v)", got, err, tt.want, tt.wantErr)
			}
		})
	}
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrUserNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", services.ErrSessionNotFound), http.StatusNotFound},
		{services.ErrMainUserNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: round 2", services.ErrValidationFailed), http.StatusUnprocessableEntity},
		{services.ErrInvalidSettings, http.StatusUnprocessableEntity},
		{services.ErrInvalidQuery, http.StatusBadRequest},
		{services.ErrUserNameRequired, http.StatusBadRequest},
		{services.ErrMainUserProtected, http.StatusConflict},
		{services.ErrExportUnavailable, http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("Content-Type = %q", ct)
			}
		})
	}
}
