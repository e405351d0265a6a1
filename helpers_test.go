package swagger

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// fakeTransport records calls and serves canned responses so binding and
// dispatch can be tested without a network.
type fakeTransport struct {
	mu        sync.Mutex
	fetches   []fetchCall
	connects  []string
	responses map[string]*Response // per-URL; nil means default 200
	fetchErr  error
	closed    bool
}

type fetchCall struct {
	method  string
	url     string
	body    []byte
	headers map[string]string
}

func (f *fakeTransport) Fetch(ctx context.Context, method, rawURL string, body []byte, headers map[string]string) (*Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches = append(f.fetches, fetchCall{method: method, url: rawURL, body: body, headers: headers})
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if f.responses != nil {
		resp, ok := f.responses[rawURL]
		if !ok {
			return nil, &Error{Code: NetworkError, Message: fmt.Sprintf("http 404: GET %s", rawURL)}
		}
		return resp, nil
	}
	return &Response{Status: 200, Headers: http.Header{}, Body: []byte("{}")}, nil
}

func (f *fakeTransport) Connect(ctx context.Context, rawURL string, onMessage MessageHandler) (Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects = append(f.connects, rawURL)
	return &fakeConnection{}, nil
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

type fakeConnection struct {
	sent   [][]byte
	closed bool
}

func (c *fakeConnection) Send(ctx context.Context, data []byte) error {
	c.sent = append(c.sent, data)
	return nil
}

func (c *fakeConnection) Close() error {
	c.closed = true
	return nil
}

// petListing builds an in-memory listing with one "pets" resource carrying
// HTTP and websocket operations, declarations attached.
func petListing() *ResourceListing {
	return &ResourceListing{
		SwaggerVersion: "1.1",
		BasePath:       "http://example.test",
		APIs: []*APIEntry{
			{
				Path: "/api-docs/pets.{format}",
				Declaration: &APIDeclaration{
					BasePath: "http://example.test",
					APIs: []*PathEntry{
						{
							Path: "/pets",
							Operations: []*OperationSpec{
								{
									Nickname:   "listPets",
									HTTPMethod: "GET",
									Parameters: []*ParameterSpec{
										{Name: "limit", ParamType: ParamQuery},
									},
								},
								{
									Nickname:   "createPet",
									HTTPMethod: "POST",
									Parameters: []*ParameterSpec{
										{Name: "pet", ParamType: ParamBody, Required: true},
									},
								},
							},
						},
						{
							Path: "/pets/{petId}",
							Operations: []*OperationSpec{
								{
									Nickname:   "getPet",
									HTTPMethod: "GET",
									Parameters: []*ParameterSpec{
										{Name: "petId", ParamType: ParamPath, Required: true},
									},
								},
							},
						},
						{
							Path: "/events",
							Operations: []*OperationSpec{
								{
									Nickname:   "watchEvents",
									HTTPMethod: "GET",
									Upgrade:    "websocket",
									Parameters: []*ParameterSpec{
										{Name: "app", ParamType: ParamQuery, Required: true},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}
