// Package airtable is a small REST client for the Airtable tables that back
// the sponsor desk: the sponsors table (read/write) and the games table
// (read-only).
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
	"github.com/JonMunkholm/SponsorDesk/internal/logging"
)

// DefaultBaseURL is the Airtable REST endpoint.
const DefaultBaseURL = "https://api.airtable.com/v0"

// DefaultSponsorsTable is the id of the sponsors table.
const DefaultSponsorsTable = "tblTfxLEmoMgMfZAR"

// maxErrorBody caps how much of a failed response is kept on an APIError.
const maxErrorBody = 64 * 1024

// Options configures a Client.
type Options struct {
	BaseURL       string
	BaseID        string
	Token         string
	SponsorsTable string
	GamesTable    string
	Timeout       time.Duration
	HTTPClient    *http.Client // optional; overrides Timeout
}

// Client talks to one Airtable base.
type Client struct {
	baseURL       string
	baseID        string
	token         string
	sponsorsTable string
	gamesTable    string
	http          *http.Client
}

// ErrMissingCredentials is returned by New when the base id or token is empty.
var ErrMissingCredentials = errors.New("airtable: base id and access token are required")

// New creates a client. The base id and token are required.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseID) == "" || strings.TrimSpace(opts.Token) == "" {
		return nil, ErrMissingCredentials
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.SponsorsTable == "" {
		opts.SponsorsTable = DefaultSponsorsTable
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		baseID:        opts.BaseID,
		token:         opts.Token,
		sponsorsTable: opts.SponsorsTable,
		gamesTable:    opts.GamesTable,
		http:          httpClient,
	}, nil
}

// ListSponsors returns every sponsor record, following pagination.
func (c *Client) ListSponsors(ctx context.Context) ([]SponsorRecord, error) {
	return listAll[SponsorRecord](ctx, c, c.sponsorsTable)
}

// ListGames returns every game record, following pagination.
func (c *Client) ListGames(ctx context.Context) ([]GameRecord, error) {
	if c.gamesTable == "" {
		return nil, errors.New("airtable: games table not configured")
	}
	return listAll[GameRecord](ctx, c, c.gamesTable)
}

// CreateSponsor creates a sponsor and returns the stored record, which carries
// the remote id.
func (c *Client) CreateSponsor(ctx context.Context, s core.Sponsor) (SponsorRecord, error) {
	body, err := c.do(ctx, http.MethodPost, c.tableURL(c.sponsorsTable, ""), writeRequest{Fields: fieldsFromSponsor(s)})
	if err != nil {
		return SponsorRecord{}, fmt.Errorf("create sponsor: %w", err)
	}
	return decodeRecord[SponsorRecord](body)
}

// UpdateSponsor overwrites the sponsor's fields and returns the stored record.
func (c *Client) UpdateSponsor(ctx context.Context, s core.Sponsor) (SponsorRecord, error) {
	body, err := c.do(ctx, http.MethodPatch, c.tableURL(c.sponsorsTable, s.ID), writeRequest{Fields: fieldsFromSponsor(s)})
	if err != nil {
		return SponsorRecord{}, fmt.Errorf("update sponsor: %w", err)
	}
	return decodeRecord[SponsorRecord](body)
}

// DeleteSponsor removes a sponsor record.
func (c *Client) DeleteSponsor(ctx context.Context, id string) error {
	if _, err := c.do(ctx, http.MethodDelete, c.tableURL(c.sponsorsTable, id), nil); err != nil {
		return fmt.Errorf("delete sponsor: %w", err)
	}
	return nil
}

func listAll[T identified](ctx context.Context, c *Client, table string) ([]T, error) {
	logger := logging.FromContext(ctx)

	var all []T
	offset := ""
	for {
		u := c.tableURL(table, "")
		if offset != "" {
			u += "?offset=" + url.QueryEscape(offset)
		}

		body, err := c.do(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", table, err)
		}

		p, err := decodePage[T](body)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", table, err)
		}
		all = append(all, *p.Records...)

		if p.Offset == "" {
			break
		}
		offset = p.Offset
	}

	logger.Debug("airtable list complete", "table", table, "records", len(all))
	return all, nil
}

func (c *Client) tableURL(table, id string) string {
	u := c.baseURL + "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(table)
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

// do sends one request and returns the body of a 2xx response.
// Non-2xx responses become an *APIError.
func (c *Client) do(ctx context.Context, method, u string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := newAPIError(resp.StatusCode, body)
		logging.FromContext(ctx).Error("airtable request failed",
			"method", method,
			"status", resp.StatusCode,
			"type", apiErr.Type,
			"message", apiErr.Message,
		)
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
