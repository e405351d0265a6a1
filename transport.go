package swagger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

// Response is the raw outcome of an HTTP fetch. No decoding or schema
// validation is applied to the body.
type Response struct {
	Status  int
	Headers http.Header
	Body    []byte
}

// MessageHandler receives one websocket message payload per call.
type MessageHandler func(data []byte)

// Connection is a live websocket connection. The caller owns its lifecycle
// once returned from Connect.
type Connection interface {
	// Send writes one text message to the peer.
	Send(ctx context.Context, data []byte) error
	Close() error
}

// Transport is the narrow network capability the client calls through.
// Implementations must reject calls after Close.
type Transport interface {
	Fetch(ctx context.Context, method, rawURL string, body []byte, headers map[string]string) (*Response, error)
	Connect(ctx context.Context, rawURL string, onMessage MessageHandler) (Connection, error)
	Close() error
}

// HTTPTransport is the default Transport over net/http and
// github.com/coder/websocket.
type HTTPTransport struct {
	client *http.Client
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
}

// NewTransport builds the default transport from Settings.
func NewTransport(opts ...Option) *HTTPTransport {
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}
	return newHTTPTransport(settings)
}

func newHTTPTransport(settings Settings) *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{Timeout: settings.HTTPTimeout},
		logger: settings.Logger.With(zap.String("component", "transport")),
	}
}

func (t *HTTPTransport) checkOpen(op string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return &Error{Code: UsageError, Message: fmt.Sprintf("%s: transport is closed", op)}
	}
	return nil
}

// Fetch issues one HTTP request and returns the raw response. Responses
// with status >= 400 are returned as errors, matching the underlying
// service rejecting the call; no retries are attempted.
func (t *HTTPTransport) Fetch(ctx context.Context, method, rawURL string, body []byte, headers map[string]string) (*Response, error) {
	if err := t.checkOpen("fetch"); err != nil {
		return nil, err
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, &Error{Code: InputError, Message: fmt.Sprintf("fetch %s: %v", rawURL, err), Cause: err}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	t.logger.Debug("fetch", zap.String("method", method), zap.String("url", rawURL))
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &Error{Code: NetworkError, Message: fmt.Sprintf("fetch %s: %v", rawURL, err), Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Code: NetworkError, Message: fmt.Sprintf("read %s: %v", rawURL, err), Cause: err}
	}
	if resp.StatusCode >= 400 {
		return nil, &Error{Code: NetworkError, Message: fmt.Sprintf("http %d: %s %s", resp.StatusCode, method, rawURL)}
	}
	return &Response{Status: resp.StatusCode, Headers: resp.Header, Body: data}, nil
}

// Connect dials a websocket and pumps incoming messages to onMessage until
// the connection closes or errors.
func (t *HTTPTransport) Connect(ctx context.Context, rawURL string, onMessage MessageHandler) (Connection, error) {
	if err := t.checkOpen("connect"); err != nil {
		return nil, err
	}

	t.logger.Debug("connect", zap.String("url", rawURL))
	conn, _, err := websocket.Dial(ctx, rawURL, nil)
	if err != nil {
		return nil, &Error{Code: NetworkError, Message: fmt.Sprintf("connect %s: %v", rawURL, err), Cause: err}
	}

	wc := &wsConnection{conn: conn}
	go wc.pump(onMessage)
	return wc, nil
}

// Close releases idle connections and rejects further calls. Live websocket
// connections are owned by their callers and stay up.
func (t *HTTPTransport) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.client.CloseIdleConnections()
	return nil
}

// wsConnection adapts a websocket.Conn. Writes are mutex-protected because
// the underlying connection does not support concurrent writes.
type wsConnection struct {
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
}

func (c *wsConnection) pump(onMessage MessageHandler) {
	for {
		_, data, err := c.conn.Read(context.Background())
		if err != nil {
			return
		}
		if onMessage != nil {
			onMessage(data)
		}
	}
}

func (c *wsConnection) Send(ctx context.Context, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return &Error{Code: UsageError, Message: "send: connection is closed"}
	}
	if err := c.conn.Write(ctx, websocket.MessageText, data); err != nil {
		return &Error{Code: NetworkError, Message: fmt.Sprintf("websocket write: %v", err), Cause: err}
	}
	return nil
}

func (c *wsConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close(websocket.StatusNormalClosure, "closing")
}
