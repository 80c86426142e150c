// Package profile loads the external knowledge document the chat pipeline
// answers from: a flat JSON object of named sections plus a reserved
// "_metadata" block declaring the routable section keys.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/lebonkosi/foliochat/internal/common"
	"github.com/lebonkosi/foliochat/internal/models"
)

const metadataKey = "_metadata"

// Service fetches and caches the profile document.
type Service struct {
	url        string
	userAgent  string
	cacheTTL   time.Duration
	httpClient *http.Client
	logger     arbor.ILogger

	mu        sync.RWMutex
	cached    *models.ProfileDocument
	fetchedAt time.Time
}

// NewService creates a profile loader from configuration.
func NewService(cfg *common.ProfileConfig, logger arbor.ILogger) *Service {
	return &Service{
		url:       cfg.URL,
		userAgent: cfg.UserAgent,
		cacheTTL:  common.ParseDurationOr(cfg.CacheTTL, 0),
		httpClient: &http.Client{
			Timeout: common.ParseDurationOr(cfg.RequestTimeout, 10*time.Second),
		},
		logger: logger,
	}
}

// Load returns the profile document, serving the cached copy while it is
// within the configured TTL. A TTL of zero disables caching and restores
// fetch-per-request behavior. Answers may lag the upstream document by at
// most one TTL window.
func (s *Service) Load(ctx context.Context) (*models.ProfileDocument, error) {
	if s.cacheTTL > 0 {
		s.mu.RLock()
		if s.cached != nil && time.Since(s.fetchedAt) < s.cacheTTL {
			doc := s.cached
			s.mu.RUnlock()
			return doc, nil
		}
		s.mu.RUnlock()
	}

	doc, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = doc
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	return doc, nil
}

// Refresh fetches a fresh document unconditionally. Used by the scheduler
// to keep the cache warm between requests.
func (s *Service) Refresh(ctx context.Context) error {
	doc, err := s.fetch(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cached = doc
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	s.logger.Debug().
		Str("url", s.url).
		Int("sections", len(doc.Sections)).
		Msg("Profile cache refreshed")
	return nil
}

func (s *Service) fetch(ctx context.Context) (*models.ProfileDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile from %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: s.url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile body: %w", err)
	}

	return Parse(body)
}

// Parse decodes a profile document and validates its routing metadata.
// Every top-level key except "_metadata" becomes a section.
func Parse(data []byte) (*models.ProfileDocument, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	metaRaw, ok := raw[metadataKey]
	if !ok {
		return nil, &SchemaError{Reason: "missing _metadata block"}
	}

	var meta models.ProfileMetadata
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("malformed _metadata block: %v", err)}
	}
	if len(meta.AvailableAttributes) == 0 {
		return nil, &SchemaError{Reason: "_metadata.available_attributes is missing or empty"}
	}

	sections := make(map[string]json.RawMessage, len(raw)-1)
	for key, value := range raw {
		if key == metadataKey {
			continue
		}
		sections[key] = value
	}

	return &models.ProfileDocument{
		Metadata: meta,
		Sections: sections,
	}, nil
}
