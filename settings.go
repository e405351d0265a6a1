package swagger

import (
	"time"

	"go.uber.org/zap"
)

// Settings configures client, loader, and default-transport behavior.
type Settings struct {
	// HTTPTimeout bounds each HTTP request made by the default transport.
	HTTPTimeout time.Duration
	// Logger receives debug-level lifecycle and invocation logs. Nop by default.
	Logger *zap.Logger
	// Transport overrides the default HTTP/websocket transport.
	Transport Transport
	// Processors are the enrichment passes applied to loaded listings.
	Processors []Processor
	// OnLoad, when set, is called exactly once after a load attempt
	// finishes, with the load error (nil on success). The error is still
	// returned to the Load caller; the callback never swallows it.
	OnLoad func(error)
}

// DefaultSettings returns recommended defaults.
func DefaultSettings() Settings {
	return Settings{
		HTTPTimeout: 10 * time.Second,
		Logger:      zap.NewNop(),
		Processors:  DefaultProcessors(),
	}
}

// Option mutates Settings.
type Option func(*Settings)

func WithHTTPTimeout(d time.Duration) Option { return func(s *Settings) { s.HTTPTimeout = d } }
func WithTransport(t Transport) Option       { return func(s *Settings) { s.Transport = t } }
func WithProcessors(ps ...Processor) Option  { return func(s *Settings) { s.Processors = ps } }
func WithOnLoad(fn func(error)) Option       { return func(s *Settings) { s.OnLoad = fn } }

func WithLogger(l *zap.Logger) Option {
	return func(s *Settings) {
		if l != nil {
			s.Logger = l
		}
	}
}
