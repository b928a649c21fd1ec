// Package backend implements the HTTP client for the remote backup store.
// The server is opaque: it stores whatever payload it is given and hands it
// back with the timestamp of the last write.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sujink1999/vanta-society-sub000/internal/engine"
)

const defaultTimeout = 30 * time.Second

// Client talks to the backup endpoint. It implements engine.Backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ResolveBaseURL reads the backup endpoint from VANTA_BACKEND_URL, or ""
// when syncing is not configured.
func ResolveBaseURL() string {
	return os.Getenv("VANTA_BACKEND_URL")
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type pushResponse struct {
	Success bool `json:"success"`
}

type pullResponse struct {
	Success bool `json:"success"`
	Data    struct {
		BackupPayload engine.BackupPayload `json:"backupPayload"`
		LastSyncedAt  time.Time            `json:"lastSyncedAt"`
	} `json:"data"`
}

// PushBackup uploads the payload.
func (c *Client) PushBackup(ctx context.Context, payload engine.BackupPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/backup", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push backup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push backup: unexpected status %d", resp.StatusCode)
	}
	var out pushResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return fmt.Errorf("decode push response: %w", err)
	}
	if !out.Success {
		return fmt.Errorf("push backup: server reported failure")
	}
	return nil
}

// PullBackup fetches the remote payload and the server's last-write
// timestamp. A malformed body surfaces as an error; the coordinator treats
// it like any other sync failure.
func (c *Client) PullBackup(ctx context.Context) (*engine.PullResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/backup", nil)
	if err != nil {
		return nil, fmt.Errorf("build pull request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pull backup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pull backup: unexpected status %d", resp.StatusCode)
	}
	var out pullResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 16<<20)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode pull response: %w", err)
	}
	if !out.Success {
		return nil, fmt.Errorf("pull backup: server reported failure")
	}
	if out.Data.LastSyncedAt.IsZero() {
		return nil, fmt.Errorf("pull backup: missing lastSyncedAt")
	}
	return &engine.PullResult{
		Payload:      out.Data.BackupPayload,
		LastSyncedAt: out.Data.LastSyncedAt,
	}, nil
}
