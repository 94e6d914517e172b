// Package github is the remote persistence adapter. The whole aggregate lives
// as one JSON file in a GitHub repository; reads go through the contents API
// with a short-lived cache, writes are read-sha-then-put with the file's
// revision token.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tkmani91/khs-server/internal/config"
	"github.com/tkmani91/khs-server/internal/localstore"
	"github.com/tkmani91/khs-server/internal/models"
)

// Source tells a caller where a fetched aggregate came from.
type Source int

const (
	// SourceCache means the cached copy was still fresh.
	SourceCache Source = iota
	// SourceRemote means the file was read from the repository.
	SourceRemote
	// SourceCreated means the file did not exist yet; a seeded default was
	// written and returned.
	SourceCreated
	// SourceFallback means fetching an existing file failed and a fresh
	// default was synthesized instead (fail-open).
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceRemote:
		return "remote"
	case SourceCreated:
		return "created"
	default:
		return "fallback"
	}
}

// ErrNotConfigured is returned when no token is held and none is persisted.
var ErrNotConfigured = errors.New("github token not set")

// Client talks to the contents API for a single data file
type Client struct {
	owner    string
	repo     string
	branch   string
	dataFile string
	apiBase  string
	seed     models.User
	local    *localstore.Store
	http     *http.Client
	logger   *logrus.Logger

	mu        sync.Mutex
	token     string
	cache     *models.Database
	lastFetch time.Time
	cacheTTL  time.Duration
}

// NewClient creates a Client. The seed user populates any synthesized or
// repaired aggregate. A token from the configuration takes precedence over a
// previously persisted one.
func NewClient(cfg config.GitHubConfig, seed models.User, local *localstore.Store, logger *logrus.Logger) *Client {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Client{
		owner:    cfg.Owner,
		repo:     cfg.Repo,
		branch:   cfg.Branch,
		dataFile: cfg.DataFile,
		apiBase:  strings.TrimRight(cfg.APIBase, "/"),
		seed:     seed,
		local:    local,
		token:    cfg.Token,
		cacheTTL: ttl,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}
}

// Configure sets the token and persists it so it survives restarts.
func (c *Client) Configure(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.cache = nil
	c.local.Save(localstore.KeyGitHubToken, token)
}

// ClearToken drops the token, the cache and the persisted copy.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.cache = nil
	c.local.Delete(localstore.KeyGitHubToken)
}

// IsConfigured reports whether a token is available, lazily re-reading the
// persisted one if none is held in memory.
func (c *Client) IsConfigured() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadToken() != ""
}

// loadToken must be called with c.mu held.
func (c *Client) loadToken() string {
	if c.token != "" {
		return c.token
	}
	var saved string
	if c.local.Load(localstore.KeyGitHubToken, &saved) && saved != "" {
		c.token = saved
	}
	return c.token
}

// InvalidateCache forces the next Fetch to hit the repository.
func (c *Client) InvalidateCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = nil
	c.lastFetch = time.Time{}
}

// contentsResponse is the subset of the contents API body we need
type contentsResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

// Fetch returns a complete aggregate. The Source return value distinguishes a
// cache hit, a remote read, a first-time creation and the fail-open fallback;
// in the fallback case err carries the cause but the aggregate is still
// usable.
func (c *Client) Fetch(ctx context.Context) (*models.Database, Source, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cache != nil && time.Since(c.lastFetch) < c.cacheTTL {
		return c.cache.Clone(), SourceCache, nil
	}

	if c.loadToken() == "" {
		return models.DefaultDatabase(c.seed), SourceFallback, ErrNotConfigured
	}

	status, body, err := c.getContents(ctx)
	if err != nil {
		c.logger.WithError(err).Error("github: fetch database")
		return models.DefaultDatabase(c.seed), SourceFallback, err
	}

	if status == http.StatusNotFound {
		// The file has never been created. Establish it with a default.
		db := models.DefaultDatabase(c.seed)
		if err := c.saveLocked(ctx, db); err != nil {
			c.logger.WithError(err).Error("github: create initial database")
			return db, SourceFallback, err
		}
		return db.Clone(), SourceCreated, nil
	}

	if status != http.StatusOK {
		err := fmt.Errorf("github: fetch failed with status %d", status)
		c.logger.Error(err.Error())
		return models.DefaultDatabase(c.seed), SourceFallback, err
	}

	db, err := c.decode(body)
	if err != nil {
		c.logger.WithError(err).Error("github: decode database")
		return models.DefaultDatabase(c.seed), SourceFallback, err
	}

	db.EnsureDefaults(c.seed)
	c.cache = db
	c.lastFetch = time.Now()
	return db.Clone(), SourceRemote, nil
}

// Save writes the full aggregate as the new file content. The current
// revision token is read first so the update targets the version we saw;
// a mismatch is surfaced as an error, never retried.
func (c *Client) Save(ctx context.Context, db *models.Database) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loadToken() == "" {
		return ErrNotConfigured
	}
	return c.saveLocked(ctx, db)
}

// saveLocked must be called with c.mu held.
func (c *Client) saveLocked(ctx context.Context, db *models.Database) error {
	db.LastUpdated = time.Now().UTC()

	// Read the current revision token; a missing file means create.
	var sha string
	status, body, err := c.getContents(ctx)
	if err != nil {
		return fmt.Errorf("error reading current revision: %w", err)
	}
	if status == http.StatusOK {
		var current contentsResponse
		if err := json.Unmarshal(body, &current); err == nil {
			sha = current.SHA
		}
	}

	serialized, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("error serializing database: %w", err)
	}

	payload := map[string]interface{}{
		"message": fmt.Sprintf("Update database - %s", time.Now().UTC().Format(time.RFC3339)),
		"content": base64.StdEncoding.EncodeToString(serialized),
		"branch":  c.branch,
	}
	if sha != "" {
		payload["sha"] = sha
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.fileURL(false), bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error saving database: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github: save failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	c.cache = db.Clone()
	c.lastFetch = time.Now()
	return nil
}

// getContents issues the conditional read for the data file.
func (c *Client) getContents(ctx context.Context) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fileURL(true), nil)
	if err != nil {
		return 0, nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// decode unpacks a contents response into an aggregate, validating the shape
// before trusting it.
func (c *Client) decode(body []byte) (*models.Database, error) {
	var contents contentsResponse
	if err := json.Unmarshal(body, &contents); err != nil {
		return nil, fmt.Errorf("error parsing contents response: %w", err)
	}

	// The API line-wraps base64 content.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(contents.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("error decoding file content: %w", err)
	}

	if err := validateDatabase(raw); err != nil {
		return nil, err
	}

	var db models.Database
	if err := json.Unmarshal(raw, &db); err != nil {
		return nil, fmt.Errorf("error parsing database: %w", err)
	}
	return &db, nil
}

func (c *Client) fileURL(withRef bool) string {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.apiBase, c.owner, c.repo, c.dataFile)
	if withRef {
		url += "?ref=" + c.branch
	}
	return url
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
}
