package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/etfdesk/internal/common"
)

// memStore is an in-memory TokenStore for tests.
type memStore struct {
	mu     sync.Mutex
	token  string
	getErr error
	setErr error
}

func (m *memStore) Get(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.getErr
}

func (m *memStore) Set(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.token = token
	return nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *memStore) current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func newSession(t *testing.T, handler http.Handler, store TokenStore) (*Session, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 3*time.Second, store), srv
}

func futureToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}).
		SignedString([]byte("k"))
	require.NoError(t, err)
	return token
}

func expiredToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}).
		SignedString([]byte("k"))
	require.NoError(t, err)
	return token
}

// ---- Login ----

func TestLogin_StoresNestedToken(t *testing.T) {
	store := &memStore{}
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accessToken":{"token":"NESTED"},"refreshToken":{"token":"R"}}`))
	}), store)

	token, err := s.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "NESTED", token)
	assert.Equal(t, "NESTED", store.current())
}

func TestLogin_FallsBackToFlatToken(t *testing.T) {
	store := &memStore{}
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"FLAT"}`))
	}), store)

	token, err := s.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "FLAT", token)
	assert.Equal(t, "FLAT", store.current())
}

func TestLogin_NestedWinsOverFlat(t *testing.T) {
	store := &memStore{}
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"accessToken":{"token":"NESTED"},"token":"FLAT"}`))
	}), store)

	token, err := s.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "NESTED", token)
}

func TestLogin_BadCredentials(t *testing.T) {
	store := &memStore{}
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), store)

	_, err := s.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Equal(t, "", store.current())
}

func TestLogin_ServerErrorIsNetworkError(t *testing.T) {
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), &memStore{})

	_, err := s.Login(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, common.ErrNetwork)
}

func TestLogin_UnreachableServerIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := New(url, time.Second, &memStore{})

	_, err := s.Login(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, common.ErrNetwork)
}

func TestLogin_NoTokenInResponse(t *testing.T) {
	store := &memStore{}
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"something":"else"}`))
	}), store)

	_, err := s.Login(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, common.ErrNoToken)
	assert.Equal(t, "", store.current())
}

// ---- Register ----

func TestRegister_SuccessLogsIn(t *testing.T) {
	store := &memStore{}
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/register":
			w.Write([]byte("User registered successfully"))
		case "/auth/login":
			w.Write([]byte(`{"accessToken":{"token":"AFTER-REG"}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}), store)

	token, err := s.Register(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "AFTER-REG", token)
	assert.Equal(t, "AFTER-REG", store.current())
}

func TestRegister_ValidationMessageSurfacedVerbatim(t *testing.T) {
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Username is already taken"}`))
	}), &memStore{})

	_, err := s.Register(context.Background(), "alice", "pw")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Username is already taken", validation.Message)
}

func TestRegister_ErrorFieldSurfacedVerbatim(t *testing.T) {
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"username already taken"}`))
	}), &memStore{})

	_, err := s.Register(context.Background(), "alice", "pw")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "username already taken", validation.Message)
}

func TestRegister_RawTextBodySurfacedVerbatim(t *testing.T) {
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Username is required"))
	}), &memStore{})

	_, err := s.Register(context.Background(), "alice", "pw")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Username is required", validation.Message)
}

func TestRegister_MessageFieldWinsOverErrorField(t *testing.T) {
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Username is already taken","error":"ignored"}`))
	}), &memStore{})

	_, err := s.Register(context.Background(), "alice", "pw")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Username is already taken", validation.Message)
}

func TestRegister_RequiredMessageSurfacedVerbatim(t *testing.T) {
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Password is required"}`))
	}), &memStore{})

	_, err := s.Register(context.Background(), "alice", "")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Password is required", validation.Message)
}

func TestRegister_UnknownMessageIsNetworkError(t *testing.T) {
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"weird internal detail"}`))
	}), &memStore{})

	_, err := s.Register(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, common.ErrNetwork)
}

func TestRegister_UnknownErrorFieldIsNetworkError(t *testing.T) {
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"some unrelated issue"}`))
	}), &memStore{})

	_, err := s.Register(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, common.ErrNetwork)
}

// ---- Refresh ----

func TestRefresh_StoresNewToken(t *testing.T) {
	store := &memStore{token: "OLD"}
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/refresh", r.URL.Path)
		require.Equal(t, "Bearer OLD", r.Header.Get(common.AuthorizationHeader))
		w.Write([]byte(`{"token":"NEW"}`))
	}), store)

	token, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "NEW", token)
	assert.Equal(t, "NEW", store.current())
}

func TestRefresh_RejectedLeavesStoreUntouched(t *testing.T) {
	store := &memStore{token: "OLD"}
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), store)

	_, err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, "OLD", store.current())
}

func TestRefresh_NoStoredToken(t *testing.T) {
	s, _ := newSession(t, http.NotFoundHandler(), &memStore{})

	_, err := s.Refresh(context.Background())
	assert.ErrorIs(t, err, common.ErrNoToken)
}

func TestRefresh_NetworkFailureLeavesStoreUntouched(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	store := &memStore{token: "OLD"}
	s := New(url, time.Second, store)

	_, err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, "OLD", store.current())
}

// ---- Logout ----

func TestLogout_ClearsStoreAndCallsServer(t *testing.T) {
	called := false
	store := &memStore{token: futureToken(t)}
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		require.Equal(t, "/auth/logout", r.URL.Path)
	}), store)

	require.NoError(t, s.Logout(context.Background()))
	assert.True(t, called)
	assert.Equal(t, "", store.current())
}

func TestLogout_ClearsStoreEvenWhenServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	store := &memStore{token: "T"}
	s := New(url, time.Second, store)

	require.NoError(t, s.Logout(context.Background()))
	assert.Equal(t, "", store.current())
}

func TestLogout_NoTokenSkipsServerCall(t *testing.T) {
	called := false
	store := &memStore{}
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}), store)

	require.NoError(t, s.Logout(context.Background()))
	assert.False(t, called)
}

// ---- AuthHeaders / IsAuthenticated ----

func TestAuthHeaders_EmptyWithoutToken(t *testing.T) {
	s := New("http://example", time.Second, &memStore{})

	headers := s.AuthHeaders(context.Background())
	assert.Empty(t, headers)
}

func TestAuthHeaders_BearerWithToken(t *testing.T) {
	s := New("http://example", time.Second, &memStore{token: "T"})

	headers := s.AuthHeaders(context.Background())
	assert.Equal(t, map[string]string{common.AuthorizationHeader: "Bearer T"}, headers)
}

func TestIsAuthenticated_ValidToken(t *testing.T) {
	s := New("http://example", time.Second, &memStore{token: futureToken(t)})

	assert.True(t, s.IsAuthenticated(context.Background()))
}

func TestIsAuthenticated_ExpiredTokenClearsStore(t *testing.T) {
	store := &memStore{token: expiredToken(t)}
	s := New("http://example", time.Second, store)

	assert.False(t, s.IsAuthenticated(context.Background()))
	assert.Equal(t, "", store.current())
}

func TestIsAuthenticated_NoToken(t *testing.T) {
	s := New("http://example", time.Second, &memStore{})

	assert.False(t, s.IsAuthenticated(context.Background()))
}

// ---- CurrentUser ----

func TestCurrentUser_OK(t *testing.T) {
	store := &memStore{token: "T"}
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/user", r.URL.Path)
		require.Equal(t, "Bearer T", r.Header.Get(common.AuthorizationHeader))
		w.Write([]byte(`{"id":7,"username":"alice","role":"USER"}`))
	}), store)

	user, err := s.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestCurrentUser_Unauthorized(t *testing.T) {
	s, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), &memStore{token: "T"})

	_, err := s.CurrentUser(context.Background())
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
}
