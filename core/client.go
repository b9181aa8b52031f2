package core

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const maxIdleConnections int = 100

const (
	conventionEnvelope = "json_rpc"
	conventionDirect   = "direct"
)

// Client sends calls to one node address. It holds no mutable state and is
// safe for concurrent use; every call is an independent HTTP exchange.
type Client struct {
	addr       string
	httpClient *http.Client
	logger     *logrus.Entry
	metrics    *Metrics
}

// NewClient builds a client from cfg. TLS material is loaded and checked
// here, so a bad identity or trust bundle fails before any request is made.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tlsConfig, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}

	return NewClientWithHTTP(cfg.Addr, newHTTPClient(tlsConfig, cfg.Timeout)), nil
}

// NewClientWithHTTP uses the given http.Client as transport. A nil
// httpClient uses a default transport.
func NewClientWithHTTP(addr string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = newHTTPClient(nil, 0)
	}

	addr = strings.TrimRight(addr, "/")

	return &Client{
		addr:       addr,
		httpClient: httpClient,
		logger:     logrus.WithFields(logrus.Fields{"node": addr}),
	}
}

// WithMetrics returns a copy of c recording calls into m.
func (c *Client) WithMetrics(m *Metrics) *Client {
	cp := *c
	cp.metrics = m
	return &cp
}

// WithLogger returns a copy of c logging through logger.
func (c *Client) WithLogger(logger *logrus.Entry) *Client {
	cp := *c
	cp.logger = logger.WithFields(logrus.Fields{"node": c.addr})
	return &cp
}

func (c *Client) Addr() string {
	return c.addr
}

// newHTTPClient for connection re-use. A zero timeout leaves timeouts to
// the caller's context.
func newHTTPClient(tlsConfig *tls.Config, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = maxIdleConnections
	transport.TLSClientConfig = tlsConfig

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// Request issues a JSON-RPC call to <addr>/json_rpc and returns the raw
// result.
func (c *Client) Request(ctx context.Context, method string, params Params) (json.RawMessage, error) {
	req, err := newRequest(c.logger, method, params)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	body, err := c.post(ctx, req, c.addr+jsonRpcPath)

	var result json.RawMessage
	if err == nil {
		result, err = classifyResponse(method, body)
	}

	c.metrics.Count(method, conventionEnvelope, err)
	c.metrics.Time(method, conventionEnvelope, time.Since(startTime))

	if err != nil {
		req.logger.Debugf("call failed: %v", err)
		return nil, err
	}

	return result, nil
}

// RequestDirect posts body to <addr>/<method> and returns the raw response
// body. There is no envelope: the node answers with the result object.
func (c *Client) RequestDirect(ctx context.Context, method string, body any) (json.RawMessage, error) {
	req, err := newDirectRequest(c.logger, method, body)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	resBody, err := c.post(ctx, req, c.addr+"/"+strings.TrimLeft(method, "/"))
	if err == nil && !json.Valid(resBody) {
		err = &DecodeError{Method: method, Body: resBody, Err: errInvalidJSON}
	}

	c.metrics.Count(method, conventionDirect, err)
	c.metrics.Time(method, conventionDirect, time.Since(startTime))

	if err != nil {
		return nil, err
	}

	return resBody, nil
}

// Call issues a JSON-RPC call and decodes the result into T.
func Call[T any](ctx context.Context, c *Client, method string, params Params) (T, error) {
	raw, err := c.Request(ctx, method, params)
	if err != nil {
		var zero T
		return zero, err
	}

	return DecodeResult[T](method, raw)
}

// CallDirect issues a direct call and decodes the body into T.
func CallDirect[T any](ctx context.Context, c *Client, method string, body any) (T, error) {
	raw, err := c.RequestDirect(ctx, method, body)
	if err != nil {
		var zero T
		return zero, err
	}

	return DecodeResult[T](method, raw)
}

func (c *Client) post(ctx context.Context, req *Request, url string) ([]byte, error) {
	req.logger.Debugf("Sending %s to %s", string(req.reqBytes), url)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(req.reqBytes))
	if err != nil {
		return nil, &TransportError{Method: req.Method(), URL: url, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		req.logger.Errorf("http client do request error: %v", err)
		return nil, &TransportError{Method: req.Method(), URL: url, Err: err}
	}
	defer res.Body.Close()

	bts, err := io.ReadAll(res.Body)
	if err != nil {
		req.logger.Errorf("read response body error: %v", err)
		return nil, &TransportError{Method: req.Method(), URL: url, Err: err}
	}

	req.logger.Debugf("Received %d: %s", res.StatusCode, truncate(bts, 200))

	// JSON-RPC errors may come back with a non-2xx status and still carry an
	// error object, so only the direct convention rejects on status.
	if req.ID() == "" && (res.StatusCode < 200 || res.StatusCode > 299) {
		return nil, &DecodeError{
			Method: req.Method(),
			Body:   bts,
			Err:    errors.Errorf("unexpected http status %s", res.Status),
		}
	}

	return bts, nil
}

func truncate(bts []byte, n int) string {
	if len(bts) > n {
		return string(bts[:n])
	}

	return string(bts)
}
