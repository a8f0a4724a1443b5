package devprofile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrUpstream = errors.New("developer platform unavailable")

// Profile mirrors the fields we expose from the GitHub user endpoint.
type Profile struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

// Repo is one public repository in the profile listing.
type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HTMLURL     string `json:"html_url"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	UpdatedAt   string `json:"updated_at"`
}

// Client performs read-only fetches against the GitHub REST API, caching
// raw responses in Redis. The cache client may be nil, in which case
// every call goes upstream.
type Client struct {
	baseURL  string
	username string
	token    string
	http     *http.Client
	cache    *redis.Client
	ttl      time.Duration
}

func NewClient(username, token string, cache *redis.Client) *Client {
	return &Client{
		baseURL:  "https://api.github.com",
		username: username,
		token:    token,
		http:     &http.Client{Timeout: 10 * time.Second},
		cache:    cache,
		ttl:      10 * time.Minute,
	}
}

func (c *Client) fetch(ctx context.Context, path, cacheKey string) ([]byte, error) {
	if c.cache != nil {
		if raw, err := c.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			return raw, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if c.cache != nil {
		// best effort; a cache write failure never fails the request
		c.cache.Set(ctx, cacheKey, raw, c.ttl)
	}
	return raw, nil
}

func (c *Client) Profile(ctx context.Context) (Profile, error) {
	raw, err := c.fetch(ctx, "/users/"+c.username, "github:profile:"+c.username)
	if err != nil {
		return Profile{}, err
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return p, nil
}

func (c *Client) Repos(ctx context.Context) ([]Repo, error) {
	raw, err := c.fetch(ctx, "/users/"+c.username+"/repos?sort=updated&per_page=30", "github:repos:"+c.username)
	if err != nil {
		return nil, err
	}

	var repos []Repo
	if err := json.Unmarshal(raw, &repos); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return repos, nil
}
