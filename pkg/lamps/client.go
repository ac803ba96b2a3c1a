package lamps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// bridge wire representation of a light.
type bridgeLight struct {
	Name    string    `json:"name"`
	ModelID string    `json:"modelid"`
	State   LampState `json:"state"`
}

// bridgeError is one entry of the bridge's error-array response shape.
type bridgeError struct {
	Error struct {
		Type        int    `json:"type"`
		Description string `json:"description"`
	} `json:"error"`
}

// resource-not-found in the bridge's error taxonomy.
const bridgeErrNotFound = 3

// Client talks to a Hue-style lamp bridge over its local HTTP API. The
// bridge owns device state synchronization; this client is a thin relay.
type Client struct {
	addr     string // bridge host or host:port
	username string // bridge-issued API username
	http     *http.Client
}

// NewClient creates a bridge client. Returns ErrNotConfigured when no
// bridge address is set so callers can degrade gracefully.
func NewClient(addr, username string) (*Client, error) {
	if addr == "" {
		return nil, ErrNotConfigured
	}

	return &Client{
		addr:     addr,
		username: username,
		http:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// List returns all lamps known to the bridge, sorted by ID.
func (c *Client) List(ctx context.Context) ([]Lamp, error) {
	var lights map[string]bridgeLight
	if err := c.do(ctx, http.MethodGet, "/lights", nil, &lights); err != nil {
		return nil, err
	}

	lamps := make([]Lamp, 0, len(lights))
	for id, l := range lights {
		lamps = append(lamps, Lamp{
			ID:    id,
			Name:  l.Name,
			Model: l.ModelID,
			State: l.State,
		})
	}
	sort.Slice(lamps, func(i, j int) bool { return lamps[i].ID < lamps[j].ID })

	return lamps, nil
}

// Get returns a single lamp by bridge ID.
func (c *Client) Get(ctx context.Context, id string) (*Lamp, error) {
	var l bridgeLight
	if err := c.do(ctx, http.MethodGet, "/lights/"+id, nil, &l); err != nil {
		return nil, err
	}

	return &Lamp{ID: id, Name: l.Name, Model: l.ModelID, State: l.State}, nil
}

// SetState writes a partial state to a lamp. Only the fields present in
// state are changed.
func (c *Client) SetState(ctx context.Context, id string, state map[string]any) error {
	return c.do(ctx, http.MethodPut, "/lights/"+id+"/state", state, nil)
}

// do performs one bridge request, decoding the bridge's in-band error
// array when present.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	url := fmt.Sprintf("http://%s/api/%s%s", c.addr, c.username, path)

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBridgeUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: bridge returned %s", ErrBridgeUnavailable, resp.Status)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrBridgeUnavailable, err)
	}

	// The bridge reports failures in-band as a JSON array of error
	// objects with a 200 status.
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		var errs []bridgeError
		if json.Unmarshal(raw, &errs) == nil {
			for _, e := range errs {
				if e.Error.Description == "" {
					continue
				}
				log.Debug().Str("path", path).Str("err", e.Error.Description).Msg("Bridge error response")
				if e.Error.Type == bridgeErrNotFound {
					return fmt.Errorf("%w: %s", ErrNotFound, e.Error.Description)
				}
				return fmt.Errorf("bridge error: %s", e.Error.Description)
			}
		}
		// Arrays of success confirmations fall through.
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrBridgeUnavailable, err)
		}
	}

	return nil
}
