// Package api is the HTTP client for a Hearth household server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const csrfHeader = "X-CSRF-TOKEN"

// Document describes one household document as reported by the server.
type Document struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	SizeBytes        int64  `json:"size_bytes"`
	RequiresPassword bool   `json:"requires_password"`
	VerifyURL        string `json:"verify_url"`
	DownloadURL      string `json:"download_url"`
}

// RejectedError is an authenticated rejection from the server: the request
// reached it and was refused (wrong password, expired session, missing CSRF
// token). Transport failures are ordinary wrapped errors instead.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server rejected request (%d)", e.Status)
}

// RejectionMessage returns the user-facing message supplied by the server.
func (e *RejectedError) RejectionMessage() string { return e.Message }

// Client talks to one Hearth server. Safe for use from a single goroutine;
// the Bubble Tea event loop and the CLI both satisfy that.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
	csrf    string
	log     *zap.Logger
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		log:     logger,
	}
}

// resolve joins a possibly relative endpoint with the configured base URL.
func (c *Client) resolve(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	if u.IsAbs() {
		return endpoint
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return endpoint
	}
	return base.ResolveReference(u).String()
}

func (c *Client) decorate(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.csrf != "" {
		req.Header.Set(csrfHeader, c.csrf)
	}
}

// rejected reads a non-2xx response body and builds a RejectedError from the
// optional {"message": ...} payload.
func rejected(resp *http.Response) *RejectedError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	return &RejectedError{Status: resp.StatusCode, Message: payload.Message}
}

// Login authenticates against the server and stores the session and CSRF
// tokens for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve("/api/session"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Error("login transport failure", zap.Error(err))
		return fmt.Errorf("connecting to server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rej := rejected(resp)
		c.log.Warn("login rejected", zap.Int("status", rej.Status))
		return rej
	}

	var payload struct {
		Token string `json:"token"`
		CSRF  string `json:"csrf_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decoding login response: %w", err)
	}
	c.token = payload.Token
	c.csrf = payload.CSRF
	if c.csrf == "" {
		c.csrf = resp.Header.Get(csrfHeader)
	}
	c.log.Info("session established")
	return nil
}

// ListDocuments fetches the household document index.
func (c *Client) ListDocuments(ctx context.Context) ([]Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve("/api/documents"), nil)
	if err != nil {
		return nil, fmt.Errorf("creating documents request: %w", err)
	}
	c.decorate(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching documents: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, rejected(resp)
	}

	var payload struct {
		Documents []Document `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding documents response: %w", err)
	}
	return payload.Documents, nil
}

// VerifyDocumentPassword posts the password to the document's verify
// endpoint. It returns nil on success, a *RejectedError when the server
// refuses the password, or a wrapped transport error. The two failure kinds
// are logged at different levels so they stay distinguishable downstream.
func (c *Client) VerifyDocumentPassword(ctx context.Context, verifyURL, password string) error {
	body, _ := json.Marshal(map[string]string{"password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(verifyURL), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.decorate(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Error("document verify transport failure",
			zap.String("url", verifyURL), zap.Error(err))
		return fmt.Errorf("verifying document password: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rej := rejected(resp)
		c.log.Warn("document password rejected",
			zap.String("url", verifyURL), zap.Int("status", rej.Status))
		return rej
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// DownloadDocument streams the document at downloadURL into destDir and
// returns the saved path. The filename comes from Content-Disposition when
// present, else from the URL path.
func (c *Client) DownloadDocument(ctx context.Context, downloadURL, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(downloadURL), nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}
	c.decorate(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", rejected(resp)
	}

	name := filenameFor(resp, downloadURL)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}
	dest := filepath.Join(destDir, name)

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	c.log.Info("document downloaded", zap.String("path", dest))
	return dest, nil
}

// DeleteDocument removes a document by id.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.resolve("/api/documents/"+url.PathEscape(id)), nil)
	if err != nil {
		return fmt.Errorf("creating delete request: %w", err)
	}
	c.decorate(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejected(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func filenameFor(resp *http.Response, downloadURL string) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := params["filename"]; name != "" {
				return filepath.Base(name)
			}
		}
	}
	if u, err := url.Parse(downloadURL); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" {
			return base
		}
	}
	return "document"
}
