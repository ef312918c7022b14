package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// EiReportPath is the OpenADR 2.0b simple-HTTP service path for report
// messages, appended to the VTN base URL.
const EiReportPath = "/OpenADR2/Simple/2.0b/EiReport"

// Pusher delivers a signed payload to the VTN.
type Pusher interface {
	Push(ctx context.Context, payload []byte) error
}

// Client is an HTTP Pusher for the OpenADR simple transport.
type Client struct {
	vtnURL     string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a client for the given VTN base URL. A zero timeout
// disables the client-side deadline; callers can still bound each Push with
// a context.
func NewClient(vtnURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		vtnURL:     strings.TrimRight(vtnURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Push POSTs one payload to the VTN EiReport service. The response body is
// discarded; interpreting the VTN's oadrUpdatedReport reply is not this
// client's job.
func (c *Client) Push(ctx context.Context, payload []byte) error {
	url := c.vtnURL + EiReportPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Content-Type", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to push to %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	c.log.Debug("pushed report payload", zap.String("url", url), zap.Int("bytes", len(payload)))
	return nil
}
