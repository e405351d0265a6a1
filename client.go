package swagger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Client accesses a Swagger-described RESTful service through dynamically
// built resources and operations.
//
// A client is built unloaded; Load or LoadDocument must complete before any
// resource exists to invoke. The document and resource map are written
// exactly once during load and never mutated afterward, so concurrent
// invocations after a completed load need no synchronization.
type Client struct {
	transport Transport
	loader    *Loader
	logger    *zap.Logger
	onLoad    func(error)

	apiDocs   *ResourceListing
	resources map[string]*Resource
}

// NewClient builds an unloaded client. Without WithTransport a default
// HTTP/websocket transport is constructed from the same settings.
func NewClient(opts ...Option) *Client {
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}
	transport := settings.Transport
	if transport == nil {
		transport = newHTTPTransport(settings)
	}
	return &Client{
		transport: transport,
		loader:    NewLoader(transport, settings.Processors, settings.Logger),
		logger:    settings.Logger.With(zap.String("component", "client")),
		onLoad:    settings.OnLoad,
	}
}

// Load fetches and parses the resource listing at rawURL, then builds one
// resource per listing entry, keyed by derived name. The OnLoad callback,
// when configured, fires exactly once after the attempt finishes; the error
// is still returned.
func (c *Client) Load(ctx context.Context, rawURL string) error {
	return c.finishLoad(c.doLoad(ctx, rawURL))
}

func (c *Client) doLoad(ctx context.Context, rawURL string) error {
	c.logger.Debug("loading", zap.String("url", rawURL))
	doc, err := c.loader.LoadResourceListing(ctx, rawURL)
	if err != nil {
		return err
	}
	return c.buildResources(doc)
}

// LoadDocument loads from an already-parsed resource listing. The
// enrichment passes run in-process; no fetching occurs, so every listing
// entry must carry its declaration.
func (c *Client) LoadDocument(doc *ResourceListing) error {
	return c.finishLoad(c.doLoadDocument(doc))
}

func (c *Client) doLoadDocument(doc *ResourceListing) error {
	c.logger.Debug("loading from document", zap.String("basePath", doc.BasePath))
	if err := c.loader.ProcessResourceListing(doc); err != nil {
		return err
	}
	return c.buildResources(doc)
}

func (c *Client) finishLoad(err error) error {
	if c.onLoad != nil {
		c.onLoad(err)
	}
	return err
}

func (c *Client) buildResources(doc *ResourceListing) error {
	resources := make(map[string]*Resource, len(doc.APIs))
	for _, entry := range doc.APIs {
		r, err := NewResource(entry, c.transport, c.logger)
		if err != nil {
			return err
		}
		resources[entry.Name] = r
	}
	c.apiDocs = doc
	c.resources = resources
	return nil
}

// APIDocs returns the loaded resource listing. Reading before a load
// completes is a usage error, not an empty result.
func (c *Client) APIDocs() (*ResourceListing, error) {
	if c.apiDocs == nil {
		return nil, &Error{Code: UsageError, Message: "client is not loaded"}
	}
	return c.apiDocs, nil
}

// Resources returns the resource map, keyed by derived name. Treat it as
// read-only. Reading before a load completes is a usage error.
func (c *Client) Resources() (map[string]*Resource, error) {
	if c.resources == nil {
		return nil, &Error{Code: UsageError, Message: "client is not loaded"}
	}
	return c.resources, nil
}

// GetResource returns the named resource, or nil when absent.
func (c *Client) GetResource(name string) *Resource {
	return c.resources[name]
}

// Resource returns the named resource, or a lookup error naming the missing
// resource.
func (c *Client) Resource(name string) (*Resource, error) {
	if c.resources == nil {
		return nil, &Error{Code: UsageError, Message: "client is not loaded"}
	}
	r, ok := c.resources[name]
	if !ok {
		return nil, &Error{
			Code:     LookupError,
			Resource: name,
			Message:  fmt.Sprintf("api has no resource %q", name),
		}
	}
	return r, nil
}

// Close releases the underlying transport. The client is unusable for
// further invocations afterward; close-twice behavior is whatever the
// transport does.
func (c *Client) Close() error {
	return c.transport.Close()
}
