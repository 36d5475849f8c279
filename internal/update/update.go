// Package update checks GitHub for a newer release of the application.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

const defaultEndpoint = "https://api.github.com/repos/modlingo/modlingo/releases/latest"

// Release is the subset of the GitHub release payload we care about.
type Release struct {
	Version string `json:"tag_name"`
	URL     string `json:"html_url"`
	Notes   string `json:"body"`
}

// Checker queries the release endpoint. The zero timeout of a shared client
// would hang startup on a slow network, so it carries its own.
type Checker struct {
	client   *http.Client
	endpoint string
}

func NewChecker() *Checker {
	return &Checker{
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: defaultEndpoint,
	}
}

// NewCheckerWithEndpoint is used by tests to point at a fake server.
func NewCheckerWithEndpoint(endpoint string) *Checker {
	c := NewChecker()
	c.endpoint = endpoint
	return c
}

// Latest fetches the most recent release.
func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("release check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release check failed: status %d", resp.StatusCode)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("release check failed: %w", err)
	}
	return &rel, nil
}

// CheckForUpdate returns the latest release and whether it is newer than
// the running version. Development builds ("dev", empty) never report an
// update.
func (c *Checker) CheckForUpdate(ctx context.Context, current string) (*Release, bool, error) {
	if current == "" || current == "dev" {
		return nil, false, nil
	}

	rel, err := c.Latest(ctx)
	if err != nil {
		return nil, false, err
	}

	newer, err := IsNewer(current, rel.Version)
	if err != nil {
		return rel, false, err
	}
	return rel, newer, nil
}

// IsNewer reports whether latest is a strictly newer semantic version than
// current. Leading "v" prefixes are accepted on both sides.
func IsNewer(current, latest string) (bool, error) {
	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("invalid current version %q: %w", current, err)
	}
	lat, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false, fmt.Errorf("invalid release version %q: %w", latest, err)
	}
	return lat.GreaterThan(cur), nil
}
