package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/onzevirtual/fm-analytics/internal/config"
	"github.com/onzevirtual/fm-analytics/internal/domain"

	"github.com/valyala/fasthttp"
)

// BackupClient pushes match snapshots to the remote backup endpoint.
type BackupClient struct {
	baseURL string
	apiKey  string
	client  *fasthttp.Client
}

type BackupSnapshot struct {
	UserEmail string         `json:"user_email"`
	Plan      string         `json:"plan"`
	TakenAt   time.Time      `json:"taken_at"`
	Matches   []domain.Match `json:"matches"`
}

type BackupReceipt struct {
	ID        string    `json:"id"`
	Records   int       `json:"records"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBackupClient(cfg *config.Config) *BackupClient {
	return &BackupClient{
		baseURL: cfg.BackupURL,
		apiKey:  cfg.BackupAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// Configured reports whether a backup endpoint was set at startup.
func (c *BackupClient) Configured() bool {
	return c.baseURL != ""
}

func (c *BackupClient) Upload(ctx context.Context, snapshot BackupSnapshot) (*BackupReceipt, error) {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/v1/backups")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", c.apiKey)
	req.SetBody(body)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK && resp.StatusCode() != fasthttp.StatusCreated {
		return nil, fmt.Errorf("backup API error: %d", resp.StatusCode())
	}

	var receipt BackupReceipt
	if err := json.Unmarshal(resp.Body(), &receipt); err != nil {
		return nil, fmt.Errorf("failed to decode backup receipt: %w", err)
	}
	return &receipt, nil
}
