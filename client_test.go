package swagger

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestClient_ReadBeforeLoad(t *testing.T) {
	t.Parallel()
	c := NewClient(WithTransport(&fakeTransport{}))

	var se *Error
	if _, err := c.APIDocs(); !errors.As(err, &se) || se.Code != UsageError {
		t.Fatalf("expected UsageError reading apiDocs before load, got %v", err)
	}
	if _, err := c.Resources(); !errors.As(err, &se) || se.Code != UsageError {
		t.Fatalf("expected UsageError reading resources before load, got %v", err)
	}
	if _, err := c.Resource("pets"); !errors.As(err, &se) || se.Code != UsageError {
		t.Fatalf("expected UsageError looking up resource before load, got %v", err)
	}
}

func TestClient_LoadDocument(t *testing.T) {
	t.Parallel()
	doc := petListing()
	c := NewClient(WithTransport(&fakeTransport{}))

	if err := c.LoadDocument(doc); err != nil {
		t.Fatalf("load: %v", err)
	}

	got, err := c.APIDocs()
	if err != nil {
		t.Fatalf("apiDocs after load: %v", err)
	}
	if got != doc {
		t.Fatalf("expected the loaded document back")
	}

	r, err := c.Resource("pets")
	if err != nil {
		t.Fatalf("resource lookup: %v", err)
	}
	if r.Name() != "pets" {
		t.Fatalf("expected derived name pets, got %q", r.Name())
	}

	// Enrichment ran in-process: the upgrade field marked the operation.
	op, err := r.Operation("watchEvents")
	if err != nil {
		t.Fatalf("operation lookup: %v", err)
	}
	if !op.IsWebsocket() {
		t.Fatalf("expected watchEvents marked websocket-only")
	}
}

func TestClient_UnknownResource(t *testing.T) {
	t.Parallel()
	c := NewClient(WithTransport(&fakeTransport{}))
	if err := c.LoadDocument(petListing()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if r := c.GetResource("nope"); r != nil {
		t.Fatalf("expected nil for absent resource")
	}
	_, err := c.Resource("nope")
	var se *Error
	if !errors.As(err, &se) || se.Code != LookupError || se.Resource != "nope" {
		t.Fatalf("expected LookupError naming the resource, got %v", err)
	}
}

func TestClient_OnLoadCallback(t *testing.T) {
	t.Parallel()
	var calls []error
	c := NewClient(
		WithTransport(&fakeTransport{}),
		WithOnLoad(func(err error) { calls = append(calls, err) }),
	)
	if err := c.LoadDocument(petListing()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(calls) != 1 || calls[0] != nil {
		t.Fatalf("expected one successful callback, got %v", calls)
	}
}

func TestClient_OnLoadCallbackOnFailure(t *testing.T) {
	t.Parallel()
	var calls []error
	c := NewClient(
		WithTransport(&fakeTransport{}),
		WithOnLoad(func(err error) { calls = append(calls, err) }),
	)
	// Declarations missing: resource construction fails.
	broken := &ResourceListing{APIs: []*APIEntry{{Path: "/api-docs/pets.json"}}}
	err := c.LoadDocument(broken)
	if err == nil {
		t.Fatalf("expected load failure")
	}
	if len(calls) != 1 || calls[0] == nil {
		t.Fatalf("callback must fire once with the load error, got %v", calls)
	}
	if !errors.Is(calls[0], err) {
		t.Fatalf("callback error must be the one returned to the caller")
	}
	// Client stays unusable after a failed load.
	var se *Error
	if _, aerr := c.APIDocs(); !errors.As(aerr, &se) || se.Code != UsageError {
		t.Fatalf("expected UsageError after failed load, got %v", aerr)
	}
}

func TestClient_LoadFromURL(t *testing.T) {
	t.Parallel()
	listing := `{
		"swaggerVersion": "1.1",
		"basePath": "http://example.test",
		"apis": [{"path": "/api-docs/pets.{format}"}]
	}`
	declaration := `{
		"swaggerVersion": "1.1",
		"basePath": "http://example.test",
		"apis": [{
			"path": "/pets",
			"operations": [{"nickname": "listPets", "httpMethod": "GET"}]
		}]
	}`
	ft := &fakeTransport{responses: map[string]*Response{
		"http://example.test/api-docs/resources.json": {Status: 200, Headers: http.Header{}, Body: []byte(listing)},
		"http://example.test/api-docs/pets.json":      {Status: 200, Headers: http.Header{}, Body: []byte(declaration)},
	}}
	c := NewClient(WithTransport(ft))

	if err := c.Load(context.Background(), "http://example.test/api-docs/resources.json"); err != nil {
		t.Fatalf("load: %v", err)
	}
	r, err := c.Resource("pets")
	if err != nil {
		t.Fatalf("resource: %v", err)
	}
	if _, err := r.Operation("listPets"); err != nil {
		t.Fatalf("operation: %v", err)
	}
}

func TestClient_CloseReleasesTransport(t *testing.T) {
	t.Parallel()
	ft := &fakeTransport{}
	c := NewClient(WithTransport(ft))
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !ft.closed {
		t.Fatalf("close must release the transport handle")
	}
}
