package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

const userID = "9b2f1c3e-5d4a-4e6f-8a7b-0c1d2e3f4a5b"

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := GetUserID(r.Context())
		role, _ := GetUserRole(r.Context())
		w.Header().Set("X-Seen-User", id)
		w.Header().Set("X-Seen-Role", role)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
		wantRole   string
	}{
		{name: "prospect by default", userID: userID, wantStatus: http.StatusOK, wantRole: RoleProspect},
		{name: "admin", userID: userID, role: "Admin", wantStatus: http.StatusOK, wantRole: RoleAdmin},
		{name: "co-owner", userID: userID, role: "co_owner", wantStatus: http.StatusOK, wantRole: RoleCoOwner},
		{name: "missing user", wantStatus: http.StatusUnauthorized},
		{name: "malformed user", userID: "42", wantStatus: http.StatusUnauthorized},
		{name: "unknown role", userID: userID, role: "root", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me/appointments", nil)
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			if tt.role != "" {
				req.Header.Set(HeaderUserRole, tt.role)
			}
			rec := httptest.NewRecorder()

			Auth(echoUser()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.userID, rec.Header().Get("X-Seen-User"))
				assert.Equal(t, tt.wantRole, rec.Header().Get("X-Seen-Role"))
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	h := Auth(RequireRole(RoleAdmin)(echoUser()))

	for role, want := range map[string]int{
		RoleAdmin:    http.StatusOK,
		RoleProspect: http.StatusForbidden,
		RoleCoOwner:  http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/appointments/x", nil)
		req.Header.Set(HeaderUserID, userID)
		req.Header.Set(HeaderUserRole, role)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, want, rec.Code, role)
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	rec := httptest.NewRecorder()

	RequireRole(RoleAdmin)(echoUser()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := Auth(RateLimit(rl)(echoUser()))

	send := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", nil)
		req.Header.Set(HeaderUserID, user)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send(userID).Code)
	assert.Equal(t, http.StatusOK, send(userID).Code)

	limited := send(userID)
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))

	// У другого пользователя свой лимит
	assert.Equal(t, http.StatusOK, send("1b4e28ba-2fa1-41d2-883f-0016d3cca427").Code)
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("user:a")
	now = now.Add(limiterIdleTTL / 2)
	rl.Allow("user:b")
	now = now.Add(limiterIdleTTL/2 + time.Second)

	rl.sweep()

	assert.NotContains(t, rl.clients, "user:a")
	assert.Contains(t, rl.clients, "user:b")
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	assert.Equal(t, "ip:10.0.0.7", clientKey(req))

	req = req.WithContext(WithUser(req.Context(), userID, RoleProspect))
	assert.Equal(t, "user:"+userID, clientKey(req))
}

func TestRecover(t *testing.T) {
	h := Recover(logger.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("unexpected nil")
	}))
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type fakeRecorder struct {
	mu     sync.Mutex
	paths  []string
	status []int
}

func (f *fakeRecorder) ObserveHTTPRequest(_ string, path string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	f.status = append(f.status, status)
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	recorder := &fakeRecorder{}
	r := mux.NewRouter()
	r.Use(Metrics(recorder))
	r.HandleFunc("/api/v1/appointments/{appointmentId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/appointments/3f1d2c4b", nil))

	require.Len(t, recorder.paths, 1)
	assert.Equal(t, "/api/v1/appointments/{appointmentId}", recorder.paths[0])
	assert.Equal(t, http.StatusNoContent, recorder.status[0])
}
