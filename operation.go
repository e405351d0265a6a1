package swagger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Operation wraps one declared REST or websocket action. It is immutable:
// a URI template, the operation spec, and a shared transport handle.
type Operation struct {
	uri       string
	spec      *OperationSpec
	transport Transport
	logger    *zap.Logger
}

// NewOperation builds an operation for the given URI template and spec.
// The transport is shared, not owned.
func NewOperation(uri string, spec *OperationSpec, transport Transport, logger *zap.Logger) *Operation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Operation{
		uri:       uri,
		spec:      spec,
		transport: transport,
		logger:    logger.With(zap.String("component", "operation")),
	}
}

// Nickname returns the operation's unique identifier within its declaration.
func (o *Operation) Nickname() string { return o.spec.Nickname }

// IsWebsocket reports whether the operation is websocket-only.
func (o *Operation) IsWebsocket() bool { return o.spec.IsWebsocket }

// URI returns the operation's URI template.
func (o *Operation) URI() string { return o.uri }

// Spec returns the declared operation spec. Treat it as read-only.
func (o *Operation) Spec() *OperationSpec { return o.spec }

// Invoke binds args and issues one HTTP request through the transport,
// returning the raw response. Binding failures surface before any I/O.
// Websocket-only operations must use Connect instead.
func (o *Operation) Invoke(ctx context.Context, args map[string]any) (*Response, error) {
	if o.spec.IsWebsocket {
		return nil, &Error{
			Code:      UsageError,
			Operation: o.spec.Nickname,
			Message:   fmt.Sprintf("%q is websocket-only; use Connect", o.spec.Nickname),
		}
	}
	desc, err := BindParameters(o.uri, o.spec, args)
	if err != nil {
		return nil, err
	}
	o.logDispatch(o.spec.HTTPMethod, desc, args)
	return o.transport.Fetch(ctx, o.spec.HTTPMethod, desc.Target(), desc.Body, desc.Headers)
}

// Connect binds args and opens a websocket connection, rewriting the URI
// scheme from http/https to ws/wss and registering onMessage as the
// per-message handler. The caller owns the returned connection. Body data
// cannot be carried over a websocket; binding a non-empty body fails before
// any connection attempt.
func (o *Operation) Connect(ctx context.Context, args map[string]any, onMessage MessageHandler) (Connection, error) {
	if !o.spec.IsWebsocket {
		return nil, &Error{
			Code:      UsageError,
			Operation: o.spec.Nickname,
			Message:   fmt.Sprintf("%q is not websocket-only; use Invoke", o.spec.Nickname),
		}
	}
	desc, err := BindParameters(o.uri, o.spec, args)
	if err != nil {
		return nil, err
	}
	if len(desc.Body) > 0 {
		return nil, &Error{
			Code:      UnsupportedCombination,
			Operation: o.spec.Nickname,
			Message:   fmt.Sprintf("%q: body data cannot be sent on a websocket operation", o.spec.Nickname),
		}
	}
	desc.URI = websocketScheme(desc.URI)
	o.logDispatch("WS", desc, args)
	return o.transport.Connect(ctx, desc.Target(), onMessage)
}

func (o *Operation) logDispatch(method string, desc *RequestDescriptor, args map[string]any) {
	names := make([]string, 0, len(args))
	for k := range args {
		names = append(names, k)
	}
	sort.Strings(names)
	o.logger.Debug("invoke",
		zap.String("nickname", o.spec.Nickname),
		zap.String("method", method),
		zap.String("uri", desc.URI),
		zap.Strings("args", names),
	)
}

// websocketScheme rewrites a leading http/https scheme to ws/wss.
func websocketScheme(uri string) string {
	if strings.HasPrefix(uri, "http") {
		return "ws" + strings.TrimPrefix(uri, "http")
	}
	return uri
}
