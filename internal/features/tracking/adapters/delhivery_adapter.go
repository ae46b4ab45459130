package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"delhivery-tracker/internal/core/config"
	"delhivery-tracker/internal/core/logger"
	"delhivery-tracker/internal/features/tracking/domain"

	"go.uber.org/zap"
)

const unifiedTrackingPath = "/v3/unified-tracking"

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 512

// DelhiveryAdapter fetches shipment tracking from the Delhivery unified-tracking API.
type DelhiveryAdapter struct {
	client *http.Client
	config config.DelhiveryConfig
	logger *zap.Logger
}

// NewDelhiveryAdapter creates a new DelhiveryAdapter using the given HTTP client.
func NewDelhiveryAdapter(cfg config.DelhiveryConfig, client *http.Client) *DelhiveryAdapter {
	return &DelhiveryAdapter{
		client: client,
		config: cfg,
		logger: logger.Get(),
	}
}

// GetTracking issues a single request for the AWB and decodes the payload.
// Transport errors, non-2xx statuses and undecodable bodies are returned as errors.
func (a *DelhiveryAdapter) GetTracking(ctx context.Context, awb string) (*domain.TrackingResponse, error) {
	endpoint, err := a.trackingURL(awb)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	a.setHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		a.logger.Debug("Delhivery API error body",
			zap.String("awb", awb),
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("body", snippet),
		)
		return nil, fmt.Errorf("delhivery API returned status: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var payload domain.TrackingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	a.logger.Debug("Tracking payload decoded",
		zap.String("awb", awb),
		zap.Int("shipments", len(payload.Data)),
	)

	return &payload, nil
}

// trackingURL builds <base>/v3/unified-tracking?wbn=<awb>.
func (a *DelhiveryAdapter) trackingURL(awb string) (string, error) {
	base, err := url.Parse(strings.TrimRight(a.config.APIURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid tracking API URL: %w", err)
	}

	base.Path += unifiedTrackingPath
	base.RawQuery = url.Values{"wbn": []string{awb}}.Encode()
	return base.String(), nil
}

// setHeaders applies the fixed header set the public website sends.
func (a *DelhiveryAdapter) setHeaders(req *http.Request) {
	site := strings.TrimRight(a.config.SiteURL, "/")

	req.Header.Set("Accept", "application/json")
	if a.config.UserAgent != "" {
		req.Header.Set("User-Agent", a.config.UserAgent)
	}
	req.Header.Set("Origin", site)
	req.Header.Set("Referer", site+"/")
}
