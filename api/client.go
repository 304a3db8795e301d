// Package api is the single HTTP gateway to the REST backend. Every call
// reads the current session and attaches its token as a bearer credential;
// failures are surfaced as typed errors and nothing here retries, redirects
// or mutates the session.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/session"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	log        core.Logger
}

func NewClient(conf *core.Config, store session.Store, logger core.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(conf.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: conf.HTTPTimeout},
		store:      store,
		log:        logger,
	}
}

// Get issues a GET and decodes the 2xx response body into out (may be nil).
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return &Error{Kind: KindData, Detail: err.Error()}
	}
	return c.do(req, out)
}

// Post issues a POST with a JSON body (may be nil) and decodes the 2xx
// response body into out (may be nil).
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return &Error{Kind: KindData, Detail: err.Error()}
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), &buf)
	if err != nil {
		return &Error{Kind: KindData, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// GetWithToken issues a GET carrying an explicit bearer token instead of the
// stored one. The login flow uses it to fetch the profile before any session
// exists.
func (c *Client) GetWithToken(ctx context.Context, path, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return &Error{Kind: KindData, Detail: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return c.send(req, out)
}

// PostForm issues a form-encoded POST; the login endpoint speaks
// application/x-www-form-urlencoded rather than JSON.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), strings.NewReader(form.Encode()))
	if err != nil {
		return &Error{Kind: KindData, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func (c *Client) do(req *http.Request, out interface{}) error {
	// The token is read per call; an absent session proceeds unauthenticated
	// and the server decides to reject.
	if sess, ok := c.store.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("api: transport failure", map[string]interface{}{"path": req.URL.Path, "err": err.Error()})
		return &Error{Kind: KindNetwork, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &Error{Kind: KindUnauthorized, Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Kind: KindData, Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// a 2xx body that does not match the expected shape is a data error,
		// not a crash further up
		return &Error{Kind: KindData, Status: resp.StatusCode, Detail: "malformed response: " + err.Error()}
	}
	return nil
}

// readDetail pulls the backend's {"detail": "..."} reason out of an error
// body, tolerating any other shape.
func readDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil {
		return ""
	}
	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Detail == "" {
		return strings.TrimSpace(string(data))
	}
	return envelope.Detail
}
