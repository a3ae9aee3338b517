// Package identity abstracts the external identity provider the CRM
// delegates authentication to. The core logic never holds identity
// state itself; it reads user records and writes metadata flags through
// this interface.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserRecord is the provider's view of one user.
type UserRecord struct {
	ID       string                 `json:"id"`
	Email    string                 `json:"email"`
	Name     string                 `json:"name"`
	ImageURL string                 `json:"image_url"`
	Metadata map[string]interface{} `json:"public_metadata"`
}

// Provider is the capability surface the services depend on.
type Provider interface {
	// CurrentUser fetches the user record, or nil when unknown.
	CurrentUser(ctx context.Context, userID string) (*UserRecord, error)
	// SetMetadata writes one public-metadata key on the user record.
	SetMetadata(ctx context.Context, userID, key string, value interface{}) error
}

const cacheTTL = 5 * time.Minute

// HTTPProvider talks to the identity API over HTTP with a bearer secret
// and caches user records in redis for a few minutes; profile-check is
// called on every dashboard load.
type HTTPProvider struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	cache      *redis.Client
}

func NewHTTPProvider(baseURL, secretKey string, cache *redis.Client) *HTTPProvider {
	return &HTTPProvider{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache,
	}
}

func (p *HTTPProvider) cacheKey(userID string) string {
	return "identity:user:" + userID
}

func (p *HTTPProvider) CurrentUser(ctx context.Context, userID string) (*UserRecord, error) {
	if p.cache != nil {
		if raw, err := p.cache.Get(ctx, p.cacheKey(userID)).Bytes(); err == nil {
			var user UserRecord
			if json.Unmarshal(raw, &user) == nil {
				return &user, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/users/%s", p.baseURL, userID), nil)
	if err != nil {
		return nil, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity api returned %d", resp.StatusCode)
	}

	var user UserRecord
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}

	if p.cache != nil {
		if raw, err := json.Marshal(&user); err == nil {
			p.cache.Set(ctx, p.cacheKey(userID), raw, cacheTTL)
		}
	}
	return &user, nil
}

func (p *HTTPProvider) SetMetadata(ctx context.Context, userID, key string, value interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"public_metadata": map[string]interface{}{key: value},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		fmt.Sprintf("%s/v1/users/%s/metadata", p.baseURL, userID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build metadata request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("identity api returned %d", resp.StatusCode)
	}

	// The record changed; drop the stale cache entry.
	if p.cache != nil {
		p.cache.Del(ctx, p.cacheKey(userID))
	}
	return nil
}
