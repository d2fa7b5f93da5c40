package session

import (
	"context"

	"github.com/dmitrijs2005/etfdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/etfdesk/internal/common"
)

// TokenStore persists the access token between runs. Get returns "" when no
// token is stored. Implementations must not cache: every read goes to the
// underlying storage so concurrent writers are always observed.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MetadataTokenStore keeps the token in the client's metadata key-value
// table under a fixed key.
type MetadataTokenStore struct {
	metadata metadata.Repository
}

func NewMetadataTokenStore(repo metadata.Repository) *MetadataTokenStore {
	return &MetadataTokenStore{metadata: repo}
}

func (s *MetadataTokenStore) Get(ctx context.Context) (string, error) {
	value, err := s.metadata.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func (s *MetadataTokenStore) Set(ctx context.Context, token string) error {
	return s.metadata.Set(ctx, common.TokenStorageKey, []byte(token))
}

func (s *MetadataTokenStore) Clear(ctx context.Context) error {
	return s.metadata.Delete(ctx, common.TokenStorageKey)
}
