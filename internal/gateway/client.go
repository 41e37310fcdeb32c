// Package gateway wraps the legacy backend's POST-as-form-data contract:
// every operation is a multipart POST to one of five fixed controller URLs,
// answered by a {code, response} JSON envelope. The client owns the opaque
// PHPSESSID session token; nothing else in the system touches it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rrrodriguezc83/caa/internal/models"
	apperrors "github.com/rrrodriguezc83/caa/pkg/errors"
)

const sessionCookieName = "PHPSESSID"

var crossOriginRe = regexp.MustCompile(`(?i)cors|cross[ -]?origin|same[ -]?origin|access-control-allow-origin`)

// Client is the shared HTTP gateway. The session token is process-wide
// mutable state: written by any response that carries a Set-Cookie, cleared
// by ClearSession, last writer wins. A mutex guards it because Go callers
// are not single-threaded, but there is still at most one active session per
// running instance.
type Client struct {
	http    *http.Client
	logger  *zap.Logger
	metrics *Metrics

	mu        sync.Mutex
	sessionID string
}

// New constructs the gateway client. Metrics may be nil.
func New(timeout time.Duration, logger *zap.Logger, metrics *Metrics) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: metrics,
	}
}

// Post sends params as a multipart form to the endpoint URL and decodes the
// JSON envelope. No retries: transport failures, same-origin blocks and
// decode failures are classified and propagated unmodified.
func (c *Client) Post(ctx context.Context, endpointURL string, params map[string]string) (*models.Envelope, error) {
	reqID := uuid.NewString()
	base := params["base"]
	param := params["param"]
	start := time.Now()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "encode form field")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "finalize form body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "build request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	if session := c.SessionID(); session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: session})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		kind := c.classifyTransport(err)
		c.metrics.observe(base, param, "error", time.Since(start))
		c.metrics.observeError(kind.Code)
		c.logger.Warn("backend request failed",
			zap.String("request_id", reqID),
			zap.String("base", base),
			zap.String("param", param),
			zap.String("kind", kind.Code),
			zap.Error(err))
		return nil, apperrors.Wrap(err, kind.Code, kind.Status, kind.Message)
	}
	defer resp.Body.Close()

	c.captureSession(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.metrics.observe(base, param, "error", time.Since(start))
		c.metrics.observeError(apperrors.ErrTransport.Code)
		c.logger.Warn("backend returned non-2xx status",
			zap.String("request_id", reqID),
			zap.String("base", base),
			zap.String("param", param),
			zap.Int("status", resp.StatusCode))
		return nil, apperrors.Clone(apperrors.ErrTransport, fmt.Sprintf("backend returned HTTP %d", resp.StatusCode))
	}

	envelope := &models.Envelope{}
	if err := json.NewDecoder(resp.Body).Decode(envelope); err != nil {
		c.metrics.observe(base, param, "error", time.Since(start))
		c.metrics.observeError(apperrors.ErrDecode.Code)
		return nil, apperrors.Wrap(err, apperrors.ErrDecode.Code, apperrors.ErrDecode.Status, apperrors.ErrDecode.Message)
	}

	duration := time.Since(start)
	c.metrics.observe(base, param, "ok", duration)
	c.logger.Debug("backend request",
		zap.String("request_id", reqID),
		zap.String("base", base),
		zap.String("param", param),
		zap.Int("code", envelope.Code),
		zap.Duration("duration", duration))

	return envelope, nil
}

// ClearSession discards the session token. Cookie jar reset is best-effort:
// a failure is logged and swallowed, never returned.
func (c *Client) ClearSession() {
	c.mu.Lock()
	c.sessionID = ""
	c.mu.Unlock()

	if c.http.Jar != nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			c.logger.Warn("could not reset cookie jar", zap.Error(err))
			return
		}
		c.http.Jar = jar
	}
	c.logger.Info("session cleared")
}

// SessionID returns the current session token; empty when unauthenticated.
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *Client) captureSession(resp *http.Response) {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName && cookie.Value != "" {
			c.mu.Lock()
			c.sessionID = cookie.Value
			c.mu.Unlock()
			c.logger.Debug("session token captured")
			return
		}
	}
}

func (c *Client) classifyTransport(err error) *apperrors.Error {
	if crossOriginRe.MatchString(err.Error()) {
		return apperrors.ErrCrossOrigin
	}
	return apperrors.ErrTransport
}
