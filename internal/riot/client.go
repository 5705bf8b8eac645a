package riot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

// Document is a Riot response body kept as loose JSON so it can be passed through untouched.
type Document map[string]any

// ClientConfig carries everything the client needs from the process config.
type ClientConfig struct {
	APIKey string

	// HostFormat turns a routing value into a base URL, e.g. https://%s.api.riotgames.com.
	HostFormat string

	// MatchRouting is the continental routing value used by the account and match endpoints.
	MatchRouting string

	MatchCount int
	Timeout    time.Duration
}

// Client talks to the Riot API. It is safe for concurrent use.
type Client struct {
	apiKey       string
	hostFormat   string
	matchRouting string
	matchCount   int
	timeout      time.Duration

	http *fasthttp.Client
	log  logrus.FieldLogger
}

func New(cfg ClientConfig, log logrus.FieldLogger) *Client {
	return &Client{
		apiKey:       cfg.APIKey,
		hostFormat:   cfg.HostFormat,
		matchRouting: cfg.MatchRouting,
		matchCount:   cfg.MatchCount,
		timeout:      cfg.Timeout,
		http: &fasthttp.Client{
			Name:                   "rift-stats",
			DisablePathNormalizing: true,
		},
		log: log,
	}
}

// get issues one GET against the host picked by routing and decodes the JSON body into out.
// path must already be escaped.
func (c *Client) get(ctx context.Context, kind Kind, routing, path string, query url.Values, out any) error {
	if err := ctx.Err(); err != nil {
		return c.fail(kind, path, 0, err)
	}

	params := url.Values{}
	for k, v := range query {
		params[k] = v
	}
	params.Set("api_key", c.apiKey)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.SetRequestURI(fmt.Sprintf(c.hostFormat, routing) + path + "?" + params.Encode())

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := c.do(ctx, req, resp); err != nil {
		return c.fail(kind, path, 0, fmt.Errorf("failed to make request: %w", err))
	}

	statusCode := resp.StatusCode()
	if statusCode < fasthttp.StatusOK || statusCode >= fasthttp.StatusMultipleChoices {
		return c.fail(kind, path, statusCode, nil)
	}

	decoder := json.NewDecoder(bytes.NewReader(resp.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return c.fail(kind, path, 0, fmt.Errorf("failed to unmarshal response: %w", err))
	}

	return nil
}

// do runs the request under the tighter of the context deadline and the configured timeout.
func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	deadline, ok := ctx.Deadline()
	if c.timeout > 0 {
		if byTimeout := time.Now().Add(c.timeout); !ok || byTimeout.Before(deadline) {
			deadline, ok = byTimeout, true
		}
	}

	if ok {
		return c.http.DoDeadline(req, resp, deadline)
	}
	return c.http.Do(req, resp)
}

// fail logs the failure and wraps it. The query string is never logged since it holds the key.
func (c *Client) fail(kind Kind, path string, status int, cause error) error {
	if status != 0 {
		cause = fmt.Errorf("API returned status code %d", status)
	}

	c.log.WithFields(logrus.Fields{
		"kind":   kind,
		"status": status,
		"path":   path,
	}).WithError(cause).Error("riot request failed")

	return &UpstreamError{Kind: kind, Status: status, Cause: cause}
}

// requireParams rejects blank parameters before any I/O happens.
func requireParams(kind Kind, params ...string) error {
	for _, p := range params {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("riot %s: %w", kind, ErrBlankParameter)
		}
	}
	return nil
}

// escapeSegments escapes each slash-separated part of a value that spans several path segments.
func escapeSegments(value string) string {
	parts := strings.Split(value, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

var errEmptyPUUID = errors.New("response carried no puuid")
