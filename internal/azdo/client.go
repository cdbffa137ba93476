package azdo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// apiVersion is appended to every request. The tracker rejects calls that
// omit it.
const apiVersion = "7.1"

// RemoteContext holds everything needed to address one organization/project
// pair for the duration of a single publish run. It is immutable and must
// not be cached across runs.
type RemoteContext struct {
	Organization string
	Project      string
	Token        string
	BaseURL      string // overrides https://dev.azure.com for tests
}

// apiRoot returns the project-scoped API root for rc.
func (rc RemoteContext) apiRoot() string {
	base := rc.BaseURL
	if base == "" {
		base = "https://dev.azure.com"
	}
	return fmt.Sprintf("%s/%s/%s/_apis", base, url.PathEscape(rc.Organization), url.PathEscape(rc.Project))
}

// Client issues single-shot calls against the remote tracker's REST API.
// It never retries; a failed call surfaces as a *CallError and the caller
// decides what to do.
type Client struct {
	http     *http.Client
	observer Observer
}

// NewClient creates a Client. A nil observer is replaced with NoopObserver.
func NewClient(observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
			},
			Timeout: 60 * time.Second,
		},
		observer: observer,
	}
}

// remoteError is the error envelope the tracker returns on 4xx/5xx.
type remoteError struct {
	Message string `json:"message"`
}

// doJSON performs one HTTP call with a JSON (or JSON-patch) body, decodes a
// JSON response into out when out is non-nil, and reports the call to the
// observer. op and node feed the CallError on failure.
func (c *Client) doJSON(ctx context.Context, rc RemoteContext, method, callURL, contentType string, body, out any, op, node string) error {
	start := time.Now()
	err := c.doJSONOnce(ctx, rc, method, callURL, contentType, body, out, op, node)

	event := CallEvent{
		Op:        op,
		Node:      node,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	var callErr *CallError
	if err != nil {
		// doJSONOnce only ever returns *CallError.
		callErr, _ = err.(*CallError)
		if callErr != nil {
			event.StatusCode = callErr.StatusCode
		}
	}
	c.observer.OnCallComplete(event)
	return err
}

func (c *Client) doJSONOnce(ctx context.Context, rc RemoteContext, method, callURL, contentType string, body, out any, op, node string) error {
	data, err := json.Marshal(body)
	if err != nil {
		return &CallError{Op: op, Node: node, Err: fmt.Errorf("marshaling request: %w", err)}
	}

	sep := "?"
	if strings.Contains(callURL, "?") {
		sep = "&"
	}
	callURL += sep + "api-version=" + apiVersion

	req, err := http.NewRequestWithContext(ctx, method, callURL, bytes.NewReader(data))
	if err != nil {
		return &CallError{Op: op, Node: node, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", basicAuth(rc.Token))

	resp, err := c.http.Do(req)
	if err != nil {
		return &CallError{Op: op, Node: node, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &CallError{Op: op, Node: node, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var remote remoteError
		_ = json.Unmarshal(respBody, &remote)
		return &CallError{Op: op, Node: node, StatusCode: resp.StatusCode, Message: remote.Message}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &CallError{Op: op, Node: node, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
		}
	}
	return nil
}

// basicAuth renders a personal access token as the Basic credential the
// tracker expects: an empty user name, the token as the password.
func basicAuth(token string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(":"+token))
}
