package swagger

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Loader fetches and parses resource listings and their API declarations,
// then applies an ordered sequence of enrichment passes.
type Loader struct {
	transport  Transport
	processors []Processor
	logger     *zap.Logger
}

// NewLoader builds a loader over the given transport. A nil processors
// slice means DefaultProcessors.
func NewLoader(transport Transport, processors []Processor, logger *zap.Logger) *Loader {
	if processors == nil {
		processors = DefaultProcessors()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		transport:  transport,
		processors: processors,
		logger:     logger.With(zap.String("component", "loader")),
	}
}

// LoadResourceListing fetches and parses the resource listing at rawURL,
// fetches each listed API declaration, attaches it to its listing entry,
// and runs the enrichment passes. Declarations are fetched concurrently;
// the first failure aborts the load.
func (l *Loader) LoadResourceListing(ctx context.Context, rawURL string) (*ResourceListing, error) {
	base, err := parseListingURL(rawURL)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("loading resource listing", zap.String("url", rawURL))
	resp, err := l.transport.Fetch(ctx, http.MethodGet, rawURL, nil, nil)
	if err != nil {
		return nil, err
	}

	var doc ResourceListing
	if err := yaml.Unmarshal(resp.Body, &doc); err != nil {
		return nil, &Error{Code: ParseError, Message: fmt.Sprintf("parse resource listing %s: %v", rawURL, err), Cause: err}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, entry := range doc.APIs {
		entry := entry
		g.Go(func() error {
			declURL, err := declarationURL(base, &doc, entry)
			if err != nil {
				return err
			}
			l.logger.Debug("loading api declaration",
				zap.String("path", entry.Path),
				zap.String("url", declURL),
			)
			resp, err := l.transport.Fetch(gctx, http.MethodGet, declURL, nil, nil)
			if err != nil {
				return err
			}
			var decl APIDeclaration
			if err := yaml.Unmarshal(resp.Body, &decl); err != nil {
				return &Error{Code: ParseError, Message: fmt.Sprintf("parse api declaration %s: %v", declURL, err), Cause: err}
			}
			entry.Declaration = &decl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := l.ProcessResourceListing(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ProcessResourceListing runs the enrichment passes over an already-parsed
// document. This is the in-memory load path: no fetching occurs, so the
// document's declarations must already be attached.
func (l *Loader) ProcessResourceListing(doc *ResourceListing) error {
	for _, p := range l.processors {
		if err := p.Apply(doc); err != nil {
			return err
		}
	}
	return nil
}

func parseListingURL(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &Error{Code: InputError, Message: "load: url is empty"}
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &Error{Code: InputError, Message: fmt.Sprintf("load: invalid url %q", rawURL), Cause: err}
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u, nil
	default:
		return nil, &Error{Code: InputError, Message: fmt.Sprintf("load: unsupported URL scheme %q (only http/https allowed)", u.Scheme)}
	}
}

// declarationURL resolves a listing entry's declaration location. Swagger
// 1.x joins the listing's basePath with the entry path, substituting the
// {format} placeholder with json; entries without an absolute basePath
// resolve relative to the listing URL.
func declarationURL(listing *url.URL, doc *ResourceListing, entry *APIEntry) (string, error) {
	p := strings.ReplaceAll(entry.Path, "{format}", "json")
	if doc.BasePath != "" {
		if base, err := url.Parse(doc.BasePath); err == nil && base.IsAbs() {
			return doc.BasePath + p, nil
		}
	}
	ref, err := url.Parse(p)
	if err != nil {
		return "", &Error{Code: InputError, Message: fmt.Sprintf("load: invalid declaration path %q: %v", entry.Path, err), Cause: err}
	}
	return listing.ResolveReference(ref).String(), nil
}
