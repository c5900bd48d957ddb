package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookreview/internal/httpx"
	"bookreview/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(store *mockUserStore) *HTTPHandler {
	return NewHTTPHandler(NewService(testSecret, time.Hour, store), zap.NewNop())
}

func TestHTTPHandler_Signup(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*mockUserStore)
		wantStatus int
		wantCode   string
	}{
		{
			name: "created",
			body: `{"username":"alice","email":"alice@example.com","password":"secret1"}`,
			setup: func(m *mockUserStore) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", mock.Anything).
					Return(user.User{ID: "u-1", Username: "alice", Email: "alice@example.com", PasswordHash: "h"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed body",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "invalid input",
			body:       `{"username":"al","email":"alice@example.com","password":"secret1"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name: "duplicate",
			body: `{"username":"alice","email":"alice@example.com","password":"secret1"}`,
			setup: func(m *mockUserStore) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", mock.Anything).
					Return(user.User{}, user.ErrAlreadyExists)
			},
			wantStatus: http.StatusConflict,
			wantCode:   "ALREADY_EXISTS",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mockUserStore)
			if tt.setup != nil {
				tt.setup(store)
			}
			h := newTestHandler(store)
			w := httptest.NewRecorder()

			h.Signup(w, httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				var resp httpx.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.wantCode, resp.Error.Code)
				return
			}
			assert.JSONEq(t, `{"id":"u-1","username":"alice","email":"alice@example.com"}`, w.Body.String())
		})
	}
}

func TestHTTPHandler_Login(t *testing.T) {
	stored := user.User{ID: "u-1", Username: "alice", Email: "alice@example.com", PasswordHash: hashed(t, "secret1")}

	tests := []struct {
		name       string
		body       string
		found      bool
		wantStatus int
	}{
		{"ok", `{"email":"alice@example.com","password":"secret1"}`, true, http.StatusOK},
		{"wrong password", `{"email":"alice@example.com","password":"wrong!"}`, true, http.StatusUnauthorized},
		{"unknown email", `{"email":"alice@example.com","password":"secret1"}`, false, http.StatusBadRequest},
		{"missing email", `{"password":"secret1"}`, false, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mockUserStore)
			if tt.found {
				store.On("GetByEmail", mock.Anything, "alice@example.com").Return(stored, nil)
			} else {
				store.On("GetByEmail", mock.Anything, "alice@example.com").Return(user.User{}, user.ErrNotFound)
			}
			h := newTestHandler(store)
			w := httptest.NewRecorder()

			h.Login(w, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var resp loginResp
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.NotEmpty(t, resp.Token)
			}
		})
	}
}
