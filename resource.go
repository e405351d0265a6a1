package swagger

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Resource is a named group of operations, indexed by nickname from one API
// declaration.
type Resource struct {
	name       string
	operations map[string]*Operation
}

// NewResource builds a resource from a listing entry whose declaration has
// been attached. One operation is built per declared operation, keyed by
// nickname; when nicknames collide across path entries the last path entry
// wins.
func NewResource(entry *APIEntry, transport Transport, logger *zap.Logger) (*Resource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if entry.Declaration == nil {
		return nil, &Error{
			Code:     InputError,
			Resource: entry.Name,
			Message:  fmt.Sprintf("resource %q has no api declaration attached", entry.Name),
		}
	}

	decl := entry.Declaration
	operations := make(map[string]*Operation)
	for _, pe := range decl.APIs {
		uri := decl.BasePath + pe.Path
		for _, spec := range pe.Operations {
			logger.Debug("building operation",
				zap.String("resource", entry.Name),
				zap.String("nickname", spec.Nickname),
			)
			operations[spec.Nickname] = NewOperation(uri, spec, transport, logger)
		}
	}
	return &Resource{name: entry.Name, operations: operations}, nil
}

// Name returns the derived resource name.
func (r *Resource) Name() string { return r.name }

// GetOperation returns the operation with the given nickname, or nil when
// absent.
func (r *Resource) GetOperation(name string) *Operation {
	return r.operations[name]
}

// Operation returns the operation with the given nickname, or a lookup
// error naming both the resource and the missing nickname.
func (r *Resource) Operation(name string) (*Operation, error) {
	op, ok := r.operations[name]
	if !ok {
		return nil, &Error{
			Code:      LookupError,
			Resource:  r.name,
			Operation: name,
			Message:   fmt.Sprintf("resource %q has no operation %q", r.name, name),
		}
	}
	return op, nil
}

// Nicknames returns the sorted nicknames of all operations.
func (r *Resource) Nicknames() []string {
	names := make([]string, 0, len(r.operations))
	for name := range r.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
