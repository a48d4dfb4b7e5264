package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cofre/internal/common"
	"cofre/internal/server/config"
)

// signPrefix is the API-version path segment of the storage service. The
// signing endpoint returns a relative fragment that sometimes already
// carries this segment and sometimes does not, depending on the
// deployment; exactly one copy must end up in the final URL.
const signPrefix = "/storage/v1"

// SupabaseStore implements ObjectStore against the Supabase storage HTTP API.
type SupabaseStore struct {
	baseURL string
	apiKey  string
	bucket  string
	ttl     time.Duration
	client  *http.Client
}

// NewSupabaseStore builds a store from the loaded configuration. Requests
// carry a 10-second timeout so a stuck storage service degrades a single
// page element, not the whole server.
func NewSupabaseStore(cfg *config.Config) *SupabaseStore {
	return &SupabaseStore{
		baseURL: cfg.SupabaseURL,
		apiKey:  cfg.SupabaseKey,
		bucket:  cfg.Bucket,
		ttl:     cfg.SignedURLTTL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type signRequest struct {
	ExpiresIn int `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
}

// SignURL requests a time-limited download URL for the referenced object
// and normalizes the relative fragment the endpoint returns.
func (s *SupabaseStore) SignURL(ctx context.Context, ref string) (string, error) {
	name := bareName(ref)
	if name == "" {
		return "", common.ErrEmptyRef
	}

	endpoint := fmt.Sprintf("%s%s/object/sign/%s/%s", s.baseURL, signPrefix, s.bucket, name)

	payload, err := json.Marshal(signRequest{ExpiresIn: int(s.ttl.Seconds())})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sign request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", common.ErrSigningFailed, res.StatusCode)
	}

	var body signResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("sign response: %w", err)
	}
	if body.SignedURL == "" {
		return "", fmt.Errorf("%w: response carries no signedURL", common.ErrSigningFailed)
	}

	fragment := body.SignedURL
	if !strings.HasPrefix(fragment, signPrefix) {
		fragment = signPrefix + fragment
	}
	return s.baseURL + fragment, nil
}

// Upload stores the raw bytes under name, preserving the submitted content
// type so the signed URL later serves the file with the right MIME type.
func (s *SupabaseStore) Upload(ctx context.Context, name string, contentType string, body io.Reader) error {
	endpoint := fmt.Sprintf("%s%s/object/%s/%s", s.baseURL, signPrefix, s.bucket, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", common.ErrUploadFailed, res.StatusCode)
	}
	return nil
}

type listRequest struct {
	Prefix string `json:"prefix"`
	Limit  int    `json:"limit"`
}

type listEntry struct {
	Name string `json:"name"`
}

// List returns the objects in the attachment bucket. Used as a startup
// reachability probe; the chat itself derives media from message rows.
func (s *SupabaseStore) List(ctx context.Context) ([]Object, error) {
	endpoint := fmt.Sprintf("%s%s/object/list/%s", s.baseURL, signPrefix, s.bucket)

	payload, err := json.Marshal(listRequest{Prefix: "", Limit: 100})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", common.ErrListFailed, res.StatusCode)
	}

	var entries []listEntry
	if err := json.NewDecoder(res.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("list response: %w", err)
	}

	objects := make([]Object, 0, len(entries))
	for _, e := range entries {
		objects = append(objects, Object{Name: e.Name})
	}
	return objects, nil
}
