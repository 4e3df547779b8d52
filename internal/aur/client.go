// Package aur queries the Arch User Repository RPC interface.
package aur

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/obentoo/aurupd/internal/common/version"
)

// DefaultBaseURL is the AUR RPC v5 endpoint
const DefaultBaseURL = "https://aur.archlinux.org/rpc/v5"

var (
	// ErrSearch indicates the AUR could not be queried or returned an unusable response
	ErrSearch = errors.New("AUR query failed")
	// ErrInvalidField indicates an unsupported search field
	ErrInvalidField = errors.New("invalid search field")
)

// SearchField selects which package attribute a search matches against
type SearchField string

const (
	FieldMaintainer    SearchField = "maintainer"
	FieldComaintainers SearchField = "comaintainers"
)

// PackageInfo is a single result record from the RPC interface
type PackageInfo struct {
	ID          int     `json:"ID"`
	Name        string  `json:"Name"`
	PackageBase string  `json:"PackageBase"`
	Version     string  `json:"Version"`
	Description string  `json:"Description"`
	URL         string  `json:"URL"`
	Maintainer  string  `json:"Maintainer"`
	NumVotes    int     `json:"NumVotes"`
	Popularity  float64 `json:"Popularity"`
	OutOfDate   *int64  `json:"OutOfDate"`
}

// IsOutOfDate returns true if the package has been flagged out of date
func (p *PackageInfo) IsOutOfDate() bool {
	return p.OutOfDate != nil
}

// response is the envelope returned by every RPC call
type response struct {
	Version     int           `json:"version"`
	Type        string        `json:"type"`
	ResultCount int           `json:"resultcount"`
	Results     []PackageInfo `json:"results"`
	Error       string        `json:"error,omitempty"`
}

// Client handles communication with the AUR RPC interface
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient creates a new AUR client
func NewClient() *Client {
	return &Client{
		BaseURL:   DefaultBaseURL,
		UserAgent: version.UserAgent(),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithOptions creates a new AUR client with a custom endpoint and timeout
func NewClientWithOptions(baseURL string, timeout time.Duration) *Client {
	client := NewClient()
	if baseURL != "" {
		client.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if timeout > 0 {
		client.HTTPClient.Timeout = timeout
	}
	return client
}

// SearchBy searches packages whose field matches query.
// A response with zero results yields an empty slice and no error.
func (c *Client) SearchBy(ctx context.Context, query string, field SearchField) ([]PackageInfo, error) {
	switch field {
	case FieldMaintainer, FieldComaintainers:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	params := url.Values{}
	params.Set("by", string(field))
	endpoint := fmt.Sprintf("%s/search/%s?%s", c.BaseURL, url.PathEscape(query), params.Encode())

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if resp.ResultCount == 0 {
		return []PackageInfo{}, nil
	}
	return resp.Results, nil
}

// SearchByUser returns packages the user maintains followed by packages the
// user co-maintains. A package listed under both roles appears twice.
func (c *Client) SearchByUser(ctx context.Context, user string) ([]PackageInfo, error) {
	maintained, err := c.SearchBy(ctx, user, FieldMaintainer)
	if err != nil {
		return nil, err
	}

	comaintained, err := c.SearchBy(ctx, user, FieldComaintainers)
	if err != nil {
		return nil, err
	}

	result := make([]PackageInfo, 0, len(maintained)+len(comaintained))
	result = append(result, maintained...)
	result = append(result, comaintained...)
	return result, nil
}

// GetPackage looks up exactly one package by name.
// Returns nil and no error when the AUR has no such package.
func (c *Client) GetPackage(ctx context.Context, name string) (*PackageInfo, error) {
	endpoint := fmt.Sprintf("%s/info/%s", c.BaseURL, url.PathEscape(name))

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if resp.ResultCount == 0 || len(resp.Results) == 0 {
		return nil, nil
	}

	pkg := resp.Results[0]
	return &pkg, nil
}

// get performs a GET request and decodes the RPC envelope
func (c *Client) get(ctx context.Context, endpoint string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrSearch, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrSearch, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to parse AUR response: %v", ErrSearch, err)
	}

	if envelope.Type == "error" {
		return nil, fmt.Errorf("%w: %s", ErrSearch, envelope.Error)
	}

	return &envelope, nil
}
