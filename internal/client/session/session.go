package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/etfdesk/internal/client/models"
	"github.com/dmitrijs2005/etfdesk/internal/common"
)

// validationPhrases are the server rejection messages worth showing to the
// user verbatim. Anything else from a failed register call is treated as a
// transport problem.
var validationPhrases = []string{"already taken", "required"}

// Session performs the authentication calls against the backend and owns the
// persisted token.
type Session struct {
	baseURL string
	http    *http.Client
	store   TokenStore
}

func New(baseURL string, timeout time.Duration, store TokenStore) *Session {
	return &Session{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
	}
}

// Store exposes the underlying token store.
func (s *Session) Store() TokenStore {
	return s.store
}

// AuthHeaders returns the headers to attach to an authenticated request.
// The map is empty when no token is stored.
func (s *Session) AuthHeaders(ctx context.Context) map[string]string {
	token, err := s.store.Get(ctx)
	if err != nil || token == "" {
		return map[string]string{}
	}
	return map[string]string{common.AuthorizationHeader: "Bearer " + token}
}

// IsAuthenticated reports whether a stored token exists and has not expired.
// A present but invalid token is removed from the store.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	token, err := s.store.Get(ctx)
	if err != nil || token == "" {
		return false
	}
	if !TokenValid(token, time.Now()) {
		_ = s.store.Clear(ctx)
		return false
	}
	return true
}

// loginResponse accepts both token shapes the backend has used: the nested
// accessToken.token form and a flat token field.
type loginResponse struct {
	AccessToken struct {
		Token string `json:"token"`
	} `json:"accessToken"`
	Token string `json:"token"`
}

// Login authenticates, persists the received access token, and returns it.
// Bad credentials come back as common.ErrInvalidCredentials; transport
// failures and unexpected statuses as common.ErrNetwork; a well-formed
// success response without a token as common.ErrNoToken.
func (s *Session) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", common.ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", common.ErrNetwork, resp.StatusCode)
	}

	var payload loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", common.ErrNoToken
	}

	token := payload.AccessToken.Token
	if token == "" {
		token = payload.Token
	}
	if token == "" {
		return "", common.ErrNoToken
	}

	if err := s.store.Set(ctx, token); err != nil {
		return "", err
	}
	return token, nil
}

// Register creates an account and, on success, logs in with the same
// credentials and returns the login token. Server-side validation messages
// matching a known phrase are surfaced verbatim as *ValidationError.
func (s *Session) Register(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/register", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return s.Login(ctx, username, password)
	}

	message := rejectionMessage(resp.Body)
	for _, phrase := range validationPhrases {
		if strings.Contains(message, phrase) {
			return "", &ValidationError{Message: message}
		}
	}

	return "", fmt.Errorf("%w: unexpected status %d", common.ErrNetwork, resp.StatusCode)
}

// rejectionMessage extracts the user-facing text of a failed register call:
// the JSON "message" field, then the JSON "error" field, then the raw body.
func rejectionMessage(body io.Reader) string {
	raw, err := io.ReadAll(body)
	if err != nil {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

// Refresh exchanges the stored token for a fresh one. On any failure the
// store is left untouched and an error is returned; callers treat that as
// "no new token".
func (s *Session) Refresh(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", common.ErrNoToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/auth/refresh", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set(common.AuthorizationHeader, "Bearer "+token)

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", common.ErrorUnauthorized
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Token == "" {
		return "", common.ErrNoToken
	}

	if err := s.store.Set(ctx, payload.Token); err != nil {
		return "", err
	}
	return payload.Token, nil
}

// Logout tells the server to drop the refresh records and clears the stored
// token. A failed server call does not keep the local session alive: the
// store is cleared regardless.
func (s *Session) Logout(ctx context.Context) error {
	headers := s.AuthHeaders(ctx)

	if len(headers) > 0 {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/logout", nil)
		if err == nil {
			for k, v := range headers {
				req.Header.Set(k, v)
			}
			if resp, err := s.http.Do(req); err == nil {
				resp.Body.Close()
			}
		}
	}

	return s.store.Clear(ctx)
}

// CurrentUser fetches the account behind the stored token.
func (s *Session) CurrentUser(ctx context.Context) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/auth/user", nil)
	if err != nil {
		return nil, err
	}
	for k, v := range s.AuthHeaders(ctx) {
		req.Header.Set(k, v)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, common.ErrorUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", common.ErrNetwork, resp.StatusCode)
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
