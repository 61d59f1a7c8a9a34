// Package legacy talks to the legacy recruitment system that is mirrored
// during the migration. The mirror is advisory: callers treat every failure
// as non-fatal.
package legacy

import (
	"context"
	"fmt"
	"time"

	"new-recruitment-api/internal/domain"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http *resty.Client
}

var _ domain.LegacySync = (*Client)(nil)

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("x-api-key", apiKey).
			SetTimeout(10 * time.Second),
	}
}

type createCandidateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (c *Client) CreateCandidate(ctx context.Context, name, email string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(createCandidateRequest{Name: name, Email: email}).
		Post("/candidates")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("legacy api create returned %s", resp.Status())
	}
	return nil
}

func (c *Client) DeleteCandidate(ctx context.Context, email string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("email", email).
		Delete("/candidates")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("legacy api delete returned %s", resp.Status())
	}
	return nil
}
