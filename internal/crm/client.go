// Package crm implements the Bloomerang REST API client.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	apperrors "github.com/lovelifenow/admin-api/internal/errors"
)

// Interaction is a form submission as Bloomerang records it: an interaction
// on a channel, one channel per form type.
type Interaction struct {
	ID           int64             `json:"Id"`
	AccountID    int64             `json:"AccountId"`
	Date         string            `json:"Date"`
	Subject      string            `json:"Subject"`
	Note         string            `json:"Note"`
	Channel      string            `json:"Channel"`
	CustomFields []json.RawMessage `json:"CustomFields"`
}

// InteractionPage is one page of the interactions listing.
type InteractionPage struct {
	Total   int           `json:"Total"`
	Results []Interaction `json:"Results"`
}

// Constituent is the person attached to an interaction.
type Constituent struct {
	ID           int64  `json:"Id"`
	FirstName    string `json:"FirstName"`
	LastName     string `json:"LastName"`
	PrimaryEmail struct {
		Value string `json:"Value"`
	} `json:"PrimaryEmail"`
	PrimaryPhone struct {
		Number string `json:"Number"`
	} `json:"PrimaryPhone"`
}

// ListParams filters and pages the interactions listing.
type ListParams struct {
	// ChannelID selects the form's Bloomerang channel.
	ChannelID int64
	Take      int
	Skip      int
}

// Client calls the Bloomerang REST API. Read endpoints authenticate with the
// organization API key; the group assignment endpoint is privileged and takes
// an OAuth access token instead.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client. The injected HTTP client carries the configured
// upstream timeout.
func NewClient(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// ListInteractions fetches one page of interactions for a channel, newest first.
func (c *Client) ListInteractions(ctx context.Context, params ListParams) (*InteractionPage, error) {
	query := url.Values{}
	query.Set("take", strconv.Itoa(params.Take))
	query.Set("skip", strconv.Itoa(params.Skip))
	query.Set("channel", strconv.FormatInt(params.ChannelID, 10))
	query.Set("orderBy", "Date")
	query.Set("orderDirection", "Desc")

	var page InteractionPage
	if err := c.get(ctx, "list interactions", "/interactions?"+query.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetInteraction fetches a single interaction by ID.
func (c *Client) GetInteraction(ctx context.Context, id int64) (*Interaction, error) {
	var interaction Interaction
	path := fmt.Sprintf("/interactions/%d", id)
	if err := c.get(ctx, "get interaction", path, &interaction); err != nil {
		return nil, err
	}
	return &interaction, nil
}

// GetConstituent fetches a constituent by ID.
func (c *Client) GetConstituent(ctx context.Context, id int64) (*Constituent, error) {
	var constituent Constituent
	path := fmt.Sprintf("/constituents/%d", id)
	if err := c.get(ctx, "get constituent", path, &constituent); err != nil {
		return nil, err
	}
	return &constituent, nil
}

// AssignToGroup adds a constituent to a Bloomerang group. This endpoint
// requires OrgAdmin scope, so it authenticates with the OAuth access token
// rather than the API key.
func (c *Client) AssignToGroup(ctx context.Context, constituentID, groupID int64, accessToken string) error {
	const operation = "assign group"

	path := fmt.Sprintf("/constituent/%d/group/%d", constituentID, groupID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(nil))
	if err != nil {
		return apperrors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("crm request failed", slog.String("operation", operation), slog.String("error", err.Error()))
		return apperrors.NewUpstream(operation, "")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.upstreamError(operation, resp)
	}

	return nil
}

// get performs an API-key-authenticated GET and decodes the response into out.
func (c *Client) get(ctx context.Context, operation, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperrors.Wrap(err, "failed to build request")
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("crm request failed", slog.String("operation", operation), slog.String("error", err.Error()))
		return apperrors.NewUpstream(operation, "")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.upstreamError(operation, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(err, "failed to decode crm response")
	}

	return nil
}

// upstreamError extracts Bloomerang's Message field from an error response.
// Only that sanitized message ever reaches callers; bodies and headers do not.
func (c *Client) upstreamError(operation string, resp *http.Response) error {
	var payload struct {
		Message string `json:"Message"`
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	_ = json.Unmarshal(body, &payload)

	c.logger.Error("crm request rejected",
		slog.String("operation", operation),
		slog.Int("status", resp.StatusCode),
		slog.String("message", payload.Message))

	return apperrors.NewUpstream(operation, payload.Message)
}
