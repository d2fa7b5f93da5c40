package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/etfdesk/internal/client/models"
	"github.com/dmitrijs2005/etfdesk/internal/client/session"
	"github.com/dmitrijs2005/etfdesk/internal/common"
)

type memStore struct {
	mu    sync.Mutex
	token string
}

func (m *memStore) Get(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memStore) Set(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
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

func newClient(t *testing.T, handler http.Handler, store session.TokenStore) (*Client, *memStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ms, _ := store.(*memStore)
	sess := session.New(srv.URL, 3*time.Second, store)
	return New(srv.URL, 3*time.Second, sess), ms
}

func TestListEtfs_OK(t *testing.T) {
	store := &memStore{token: "T"}
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/etfs", r.URL.Path)
		require.Equal(t, "Bearer T", r.Header.Get(common.AuthorizationHeader))
		require.Equal(t, "vo", r.URL.Query().Get("search"))
		require.Equal(t, "ticker", r.URL.Query().Get("sortBy"))
		w.Write([]byte(`[{"id":1,"ticker":"VOO"}]`))
	}), store)

	etfs, err := c.ListEtfs(context.Background(), "vo", "ticker", "")
	require.NoError(t, err)
	require.Len(t, etfs, 1)
	assert.Equal(t, "VOO", etfs[0].Ticker)
}

func TestDo_RefreshesOnceAndRetriesOn401(t *testing.T) {
	refreshes := 0
	listCalls := 0
	store := &memStore{token: "STALE"}

	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/etfs":
			listCalls++
			if r.Header.Get(common.AuthorizationHeader) == "Bearer FRESH" {
				w.Write([]byte(`[]`))
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
		case "/auth/refresh":
			refreshes++
			require.Equal(t, "Bearer STALE", r.Header.Get(common.AuthorizationHeader))
			w.Write([]byte(`{"token":"FRESH"}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}), store)

	_, err := c.ListEtfs(context.Background(), "", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, refreshes)
	assert.Equal(t, 2, listCalls)
	assert.Equal(t, "FRESH", store.current())
}

func TestDo_FailedRefreshTerminatesSession(t *testing.T) {
	store := &memStore{token: "STALE"}

	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/etfs", "/auth/refresh":
			w.WriteHeader(http.StatusUnauthorized)
		case "/auth/logout":
			// session teardown
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}), store)

	_, err := c.ListEtfs(context.Background(), "", "", "")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Equal(t, "", store.current(), "token must be cleared after a final 401")
}

func TestDo_SecondRejectionTerminatesSession(t *testing.T) {
	refreshes := 0
	store := &memStore{token: "STALE"}

	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/etfs":
			w.WriteHeader(http.StatusUnauthorized)
		case "/auth/refresh":
			refreshes++
			w.Write([]byte(`{"token":"FRESH"}`))
		case "/auth/logout":
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}), store)

	_, err := c.ListEtfs(context.Background(), "", "", "")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Equal(t, 1, refreshes, "only one refresh attempt per call")
	assert.Equal(t, "", store.current())
}

func TestDo_ValidationMessageSurfaced(t *testing.T) {
	store := &memStore{token: "T"}
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Username is required"}`))
	}), store)

	_, err := c.CreateUser(context.Background(), "", "pw", "USER")

	var validation *session.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Username is required", validation.Message)
}

func TestDo_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, common.ErrorNotFound},
		{"forbidden", http.StatusForbidden, common.ErrorForbidden},
		{"conflict", http.StatusConflict, common.ErrorConflict},
		{"server error", http.StatusInternalServerError, common.ErrorInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &memStore{token: "T"}
			c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}), store)

			_, err := c.GetEtf(context.Background(), 1)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDo_NetworkErrorWrapped(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	sess := session.New(url, time.Second, &memStore{token: "T"})
	c := New(url, time.Second, sess)

	_, err := c.ListEtfs(context.Background(), "", "", "")
	assert.ErrorIs(t, err, common.ErrNetwork)
}

func TestCreateEtf_SendsBodyAndDecodesResponse(t *testing.T) {
	store := &memStore{token: "T"}
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":3,"ticker":"VTI","userId":7}`))
	}), store)

	created, err := c.CreateEtf(context.Background(), &models.Etf{Ticker: "VTI"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
}

func TestDeleteEtf_NoContent(t *testing.T) {
	store := &memStore{token: "T"}
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}), store)

	assert.NoError(t, c.DeleteEtf(context.Background(), 1))
}

func TestAddPortfolioEtf_Conflict(t *testing.T) {
	store := &memStore{token: "T"}
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/portfolios/1/etfs/2", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
	}), store)

	err := c.AddPortfolioEtf(context.Background(), 1, 2)
	assert.ErrorIs(t, err, common.ErrorConflict)
}
