package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"cargo-tracker/internal/shipment/model"
)

// objectIDPattern matches the fixed-length hexadecimal identifiers the remote
// system assigns to shipments. The tracking fallback only retries by raw id
// when the reference looks like one of these.
var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsObjectID reports whether ref has the remote identifier shape.
func IsObjectID(ref string) bool {
	return objectIDPattern.MatchString(ref)
}

// Client talks to the remote shipment API. It performs no transformation of
// what the server returns, no caching and no retries: every failure is
// terminal for the call that raised it.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// List fetches every shipment.
func (c *Client) List(ctx context.Context) ([]model.Shipment, error) {
	var out []model.Shipment
	if err := c.do(ctx, http.MethodGet, "/shipments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single shipment by its opaque identifier.
func (c *Client) GetByID(ctx context.Context, id string) (*model.Shipment, error) {
	var out model.Shipment
	if err := c.do(ctx, http.MethodGet, "/shipment/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByContainerID fetches a shipment by its human-readable container number.
func (c *Client) GetByContainerID(ctx context.Context, containerID string) (*model.Shipment, error) {
	var out model.Shipment
	if err := c.do(ctx, http.MethodGet, "/shipment/by-container/"+containerID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create submits a new shipment and returns the entity the server persisted,
// id and timestamps included.
func (c *Client) Create(ctx context.Context, req *model.CreateShipmentRequest) (*model.Shipment, error) {
	var out model.Shipment
	if err := c.do(ctx, http.MethodPost, "/shipment", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial update and returns the full updated entity.
func (c *Client) Update(ctx context.Context, id string, req *model.UpdateShipmentRequest) (*model.Shipment, error) {
	var out model.Shipment
	if err := c.do(ctx, http.MethodPut, "/shipment/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLocation reports a new position and returns the full updated entity.
func (c *Client) UpdateLocation(ctx context.Context, id string, req *model.UpdateLocationRequest) (*model.Shipment, error) {
	var out model.Shipment
	if err := c.do(ctx, http.MethodPost, "/shipment/"+id+"/update-location", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetETA fetches the server-computed arrival estimate.
func (c *Client) GetETA(ctx context.Context, id string) (model.ETA, error) {
	var out model.ETA
	if err := c.do(ctx, http.MethodGet, "/shipment/"+id+"/eta", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a shipment. A 2xx with no body is success.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/shipment/"+id, nil, nil)
}

// Lookup resolves a tracking reference the way the tracking page does: first
// by container number, then — only on a not-found result, and only when the
// reference has the remote identifier shape — by raw id. Any other failure
// surfaces immediately without the fallback.
func (c *Client) Lookup(ctx context.Context, ref string) (*model.Shipment, error) {
	s, err := c.GetByContainerID(ctx, ref)
	if err == nil {
		return s, nil
	}
	if IsNotFound(err) && IsObjectID(ref) {
		return c.GetByID(ctx, ref)
	}
	return nil, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("shipment API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
