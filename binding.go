package swagger

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
)

// RequestDescriptor is the outcome of binding caller arguments onto an
// operation's declared parameters: a resolved URI, the raw query values,
// and an optional JSON body with its headers.
type RequestDescriptor struct {
	URI     string
	Query   url.Values
	Body    []byte
	Headers map[string]string
}

// Target renders the final request target: URI plus encoded query string,
// when any query values were bound.
func (d *RequestDescriptor) Target() string {
	if encoded := d.Query.Encode(); encoded != "" {
		return d.URI + "?" + encoded
	}
	return d.URI
}

// BindParameters maps caller arguments onto the operation's declared
// parameters, in declaration order. Sequence-valued arguments collapse to a
// single comma-joined token first. Path values substitute the {name} token
// in the URI template with quote-plus encoding, query values land raw in
// the query map, and body values (which must be mappings) merge into one
// accumulated body, later keys overwriting earlier on conflict. A non-empty
// body is serialized to JSON with Content-Type/Accept headers attached.
//
// Binding is pure: it performs no I/O and mutates neither the spec nor the
// caller's argument map. An argument present with a nil value counts as
// absent. Every failure path reports a BindingError before any request is
// built.
func BindParameters(uriTemplate string, spec *OperationSpec, args map[string]any) (*RequestDescriptor, error) {
	remaining := make(map[string]any, len(args))
	for k, v := range args {
		if v != nil {
			remaining[k] = v
		}
	}

	uri := uriTemplate
	query := url.Values{}
	var body map[string]any

	for _, p := range spec.Parameters {
		value, ok := remaining[p.Name]
		if !ok {
			if p.Required {
				return nil, &Error{
					Code:      BindingError,
					Operation: spec.Nickname,
					Parameter: p.Name,
					Message:   fmt.Sprintf("missing required parameter %q for %q", p.Name, spec.Nickname),
				}
			}
			continue
		}
		value = flattenSequence(value)

		switch p.ParamType {
		case ParamPath:
			uri = strings.ReplaceAll(uri, "{"+p.Name+"}", url.QueryEscape(stringify(value)))
		case ParamQuery:
			query.Set(p.Name, stringify(value))
		case ParamBody:
			m, ok := value.(map[string]any)
			if !ok {
				return nil, &Error{
					Code:      BindingError,
					Operation: spec.Nickname,
					Parameter: p.Name,
					Message:   fmt.Sprintf("parameter %q of %q is a body parameter and requires a map value, got %T", p.Name, spec.Nickname, value),
				}
			}
			if body == nil {
				body = make(map[string]any, len(m))
			}
			for k, v := range m {
				body[k] = v
			}
		default:
			return nil, &Error{
				Code:      BindingError,
				Operation: spec.Nickname,
				Parameter: p.Name,
				Message:   fmt.Sprintf("unsupported paramType %q on parameter %q of %q", p.ParamType, p.Name, spec.Nickname),
			}
		}
		delete(remaining, p.Name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for k := range remaining {
			names = append(names, k)
		}
		sort.Strings(names)
		return nil, &Error{
			Code:      BindingError,
			Operation: spec.Nickname,
			Message:   fmt.Sprintf("%q does not have parameters %s", spec.Nickname, strings.Join(names, ", ")),
		}
	}

	desc := &RequestDescriptor{URI: uri, Query: query}
	if len(body) > 0 {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{
				Code:      BindingError,
				Operation: spec.Nickname,
				Message:   fmt.Sprintf("encode body for %q: %v", spec.Nickname, err),
				Cause:     err,
			}
		}
		desc.Body = raw
		desc.Headers = map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		}
	}
	return desc, nil
}

// flattenSequence collapses slice and array values to a single comma-joined
// string token. Other values pass through unchanged.
func flattenSequence(value any) any {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return value
	}
	if _, isBytes := value.([]byte); isBytes {
		return value
	}
	parts := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		parts[i] = stringify(rv.Index(i).Interface())
	}
	return strings.Join(parts, ",")
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
