package swagger

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestResource_BuildAndLookup(t *testing.T) {
	t.Parallel()
	ft := &fakeTransport{}
	entry := petListing().APIs[0]
	entry.Name = "pets"

	r, err := NewResource(entry, ft, nil)
	if err != nil {
		t.Fatalf("build resource: %v", err)
	}
	if r.Name() != "pets" {
		t.Fatalf("expected name pets, got %q", r.Name())
	}
	op, err := r.Operation("getPet")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if _, err := op.Invoke(context.Background(), map[string]any{"petId": "42"}); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if got := ft.fetches[0].url; got != "http://example.test/pets/42" {
		t.Fatalf("operation URI should join declaration basePath and path, got %q", got)
	}
	want := []string{"createPet", "getPet", "listPets", "watchEvents"}
	if got := r.Nicknames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected nicknames %v, got %v", want, got)
	}
}

func TestResource_UnknownOperation(t *testing.T) {
	t.Parallel()
	entry := petListing().APIs[0]
	entry.Name = "pets"
	r, err := NewResource(entry, &fakeTransport{}, nil)
	if err != nil {
		t.Fatalf("build resource: %v", err)
	}

	if op := r.GetOperation("flyPet"); op != nil {
		t.Fatalf("expected nil for absent nickname")
	}
	_, err = r.Operation("flyPet")
	var se *Error
	if !errors.As(err, &se) || se.Code != LookupError {
		t.Fatalf("expected LookupError, got %v", err)
	}
	if se.Resource != "pets" || se.Operation != "flyPet" {
		t.Fatalf("lookup error should name resource and nickname, got %+v", se)
	}
	if !strings.Contains(se.Message, "pets") || !strings.Contains(se.Message, "flyPet") {
		t.Fatalf("message should name resource and nickname: %q", se.Message)
	}
}

func TestResource_NicknameCollisionLastWriteWins(t *testing.T) {
	t.Parallel()
	ft := &fakeTransport{}
	entry := &APIEntry{
		Name: "pets",
		Declaration: &APIDeclaration{
			BasePath: "http://example.test",
			APIs: []*PathEntry{
				{
					Path: "/old",
					Operations: []*OperationSpec{
						{Nickname: "fetch", HTTPMethod: "GET"},
					},
				},
				{
					Path: "/new",
					Operations: []*OperationSpec{
						{Nickname: "fetch", HTTPMethod: "GET"},
					},
				},
			},
		},
	}
	r, err := NewResource(entry, ft, nil)
	if err != nil {
		t.Fatalf("build resource: %v", err)
	}
	op, err := r.Operation("fetch")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if _, err := op.Invoke(context.Background(), nil); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if got := ft.fetches[0].url; got != "http://example.test/new" {
		t.Fatalf("expected last path entry to win, got %q", got)
	}
}

func TestResource_MissingDeclaration(t *testing.T) {
	t.Parallel()
	_, err := NewResource(&APIEntry{Name: "pets", Path: "/api-docs/pets.json"}, &fakeTransport{}, nil)
	var se *Error
	if !errors.As(err, &se) || se.Code != InputError {
		t.Fatalf("expected InputError for missing declaration, got %v", err)
	}
}
