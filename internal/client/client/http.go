package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const maxErrorBody = 512

var _ Store = (*HTTPStore)(nil)

// HTTPStore talks to the Billed REST API:
//
//	GET   /bills             list
//	POST  /bills             create (multipart: file, email)
//	PATCH /bills/{selector}  update (JSON)
//	POST  /auth/login        login (JSON) -> {"jwt": "..."}
type HTTPStore struct {
	baseURL *url.URL
	client  *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPStore builds a store for the API rooted at endpoint. timeout bounds
// every request; zero means no timeout.
func NewHTTPStore(endpoint string, timeout time.Duration) (*HTTPStore, error) {
	u, err := url.Parse(strings.TrimRight(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid store endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid store endpoint %q: scheme must be http or https", endpoint)
	}

	s := &HTTPStore{baseURL: u}
	s.client = &http.Client{
		Timeout:   timeout,
		Transport: &bearerTransport{base: http.DefaultTransport, token: s.Token},
	}
	return s, nil
}

// bearerTransport adds the current access token to outgoing requests.
type bearerTransport struct {
	base  http.RoundTripper
	token func() string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok := t.token()
	if tok == "" {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set(common.AuthorizationHeaderName, "Bearer "+tok)
	return t.base.RoundTrip(r)
}

// Token returns the access token obtained by the last successful Login.
func (s *HTTPStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *HTTPStore) setToken(tok string) {
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
}

func (s *HTTPStore) Bills() BillsResource {
	return &httpBills{s: s}
}

// Login posts credentials (already JSON-serialized) and keeps the returned
// token for later calls. A token that is not a well-formed, unexpired JWT is
// rejected.
func (s *HTTPStore) Login(ctx context.Context, credentials string) (*LoginResponse, error) {
	req, err := s.newRequest(ctx, http.MethodPost, "/auth/login", strings.NewReader(credentials))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp LoginResponse
	if err := s.do(req, &resp); err != nil {
		return nil, err
	}

	if err := checkToken(resp.JWT); err != nil {
		return nil, err
	}

	s.setToken(resp.JWT)
	return &resp, nil
}

// checkToken inspects the token claims. The signature is not verified.
func checkToken(tok string) error {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return common.ErrTokenExpired
	}
	return nil
}

// Ping reports whether the API answers at all. Any response below 500
// counts as reachable.
func (s *HTTPStore) Ping(ctx context.Context) error {
	req, err := s.newRequest(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return ErrUnavailable
	}
	return nil
}

func (s *HTTPStore) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

func (s *HTTPStore) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u := s.baseURL.JoinPath(path)
	return http.NewRequestWithContext(ctx, method, u.String(), body)
}

// do sends req and decodes a JSON answer into out (when out is not nil).
func (s *HTTPStore) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

type httpBills struct {
	s *HTTPStore
}

func (b *httpBills) List(ctx context.Context) ([]models.Bill, error) {
	req, err := b.s.newRequest(ctx, http.MethodGet, "/bills", nil)
	if err != nil {
		return nil, err
	}

	var bills []models.Bill
	if err := b.s.do(req, &bills); err != nil {
		return nil, err
	}
	if bills == nil {
		bills = []models.Bill{}
	}
	return bills, nil
}

func (b *httpBills) Create(ctx context.Context, in CreateRequest) (*CreateResponse, error) {
	if in.Data == nil {
		return nil, errors.New("create: empty form data")
	}

	body, contentType, err := encodeMultipart(in.Data)
	if err != nil {
		return nil, err
	}

	req, err := b.s.newRequest(ctx, http.MethodPost, "/bills", body)
	if err != nil {
		return nil, err
	}
	for k, v := range in.Headers {
		if k == HeaderNoContentType {
			continue
		}
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", contentType)

	var resp CreateResponse
	if err := b.s.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (b *httpBills) Update(ctx context.Context, in UpdateRequest) (*models.Bill, error) {
	req, err := b.s.newRequest(ctx, http.MethodPatch, "/bills/"+url.PathEscape(in.Selector), strings.NewReader(in.Data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var bill models.Bill
	if err := b.s.do(req, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

func encodeMultipart(fd *models.FormData) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if fd.File != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fd.File.Field, fd.File.FileName))
		if fd.File.ContentType != "" {
			h.Set("Content-Type", fd.File.ContentType)
		} else {
			h.Set("Content-Type", "application/octet-stream")
		}
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("multipart file part: %w", err)
		}
		if _, err := part.Write(fd.File.Content); err != nil {
			return nil, "", fmt.Errorf("multipart file part: %w", err)
		}
	}

	for _, f := range fd.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("multipart field %s: %w", f.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
