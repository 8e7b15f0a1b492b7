package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Shape selects how the feed payload is decoded.
type Shape string

const (
	// ShapeSniff picks the shape by the presence of a "states" field.
	ShapeSniff Shape = ""
	// ShapeStates expects {"states":[{"id":N,"alert":bool},...]} and filters by region id.
	ShapeStates Shape = "states"
	// ShapeSingle expects a single-region payload {"alert":bool}.
	ShapeSingle Shape = "single"
)

type ClientConfig struct {
	URL      string
	RegionID int
	Shape    Shape
	Timeout  time.Duration
}

// Client fetches the current alert signal from the regional feed.
type Client struct {
	cfg  ClientConfig
	http *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: timeout}}
}

type regionState struct {
	ID    int  `json:"id"`
	Alert bool `json:"alert"`
}

type feedPayload struct {
	States []regionState `json:"states"`
	Alert  *bool         `json:"alert"`
}

// Fetch returns the active/inactive signal for the configured region.
// Any transport, status or decode problem is an error; the caller treats
// those as soft failures and leaves its state untouched.
func (c *Client) Fetch(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("feed status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return false, fmt.Errorf("feed returned empty body")
	}

	var payload feedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return false, fmt.Errorf("feed decode: %w", err)
	}

	switch c.cfg.Shape {
	case ShapeStates:
		return c.regionSignal(payload)
	case ShapeSingle:
		if payload.Alert == nil {
			return false, fmt.Errorf("feed payload has no alert field")
		}
		return *payload.Alert, nil
	default:
		if payload.States != nil {
			return c.regionSignal(payload)
		}
		if payload.Alert != nil {
			return *payload.Alert, nil
		}
		return false, fmt.Errorf("unrecognized feed payload")
	}
}

func (c *Client) regionSignal(payload feedPayload) (bool, error) {
	for _, st := range payload.States {
		if st.ID == c.cfg.RegionID {
			return st.Alert, nil
		}
	}
	return false, fmt.Errorf("region %d not present in feed", c.cfg.RegionID)
}
