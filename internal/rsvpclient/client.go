// Package rsvpclient talks to the hosted RSVP function: one endpoint,
// POST to store a submission and GET (with the admin key) to list them.
package rsvpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvp"
)

// AdminKeyHeader carries the admin credential on list requests.
const AdminKeyHeader = "X-Admin-Key"

var (
	// ErrUnreachable means no HTTP response was obtained.
	ErrUnreachable = errors.New("rsvp function unreachable")
	// ErrRejected means the function answered but did not confirm the submission.
	ErrRejected = errors.New("rsvp submission rejected")
	// ErrUnauthorized means the function answered but did not return a response list.
	ErrUnauthorized = errors.New("rsvp listing denied")
)

// maxBodyBytes bounds how much of a reply is read.
const maxBodyBytes = 8 << 20

type Client struct {
	endpoint   string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type submitReply struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Error   string `json:"error"`
}

type listReply struct {
	Responses *[]rsvp.Response `json:"responses"`
}

// Submit posts the whole submission. It succeeds only when the reply is 2xx
// and carries "success": true.
func (c *Client) Submit(ctx context.Context, sub rsvp.Submission) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return err
	}
	if !isOK(status) {
		return fmt.Errorf("%w: status %d", ErrRejected, status)
	}

	var reply submitReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return fmt.Errorf("%w: decoding reply: %v", ErrRejected, err)
	}
	if !reply.Success {
		return fmt.Errorf("%w: success marker missing", ErrRejected)
	}
	return nil
}

// List fetches all stored responses using key as the admin credential.
func (c *Client) List(ctx context.Context, key string) ([]rsvp.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building list request: %w", err)
	}
	req.Header.Set(AdminKeyHeader, key)

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if !isOK(status) {
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, status)
	}

	var reply listReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("%w: decoding reply: %v", ErrUnauthorized, err)
	}
	if reply.Responses == nil {
		return nil, fmt.Errorf("%w: responses missing", ErrUnauthorized)
	}
	return *reply.Responses, nil
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: reading reply: %v", ErrUnreachable, err)
	}
	return resp.StatusCode, body, nil
}

func isOK(status int) bool {
	return status >= 200 && status < 300
}
