package swagger

// ErrorCode categorizes client errors for clearer handling and messaging.
type ErrorCode string

const (
	// BindingError covers argument-binding failures: a missing required
	// parameter, an unsupported parameter location, a non-mapping body
	// value, or arguments the operation does not declare.
	BindingError ErrorCode = "BindingError"
	// UnsupportedCombination marks argument combinations the wire cannot
	// express, such as body data on a websocket operation.
	UnsupportedCombination ErrorCode = "UnsupportedCombination"
	// LookupError marks a request for an unknown resource or operation.
	LookupError ErrorCode = "LookupError"
	// UsageError marks misuse of the client itself, such as reading state
	// before load completes or calling through a closed transport.
	UsageError ErrorCode = "UsageError"
	// InputError marks malformed caller input (bad URL, bad scheme).
	InputError ErrorCode = "InputError"
	// NetworkError wraps transport-level failures.
	NetworkError ErrorCode = "NetworkError"
	// ParseError marks a resource listing or declaration that failed to parse.
	ParseError ErrorCode = "ParseError"
)

// Error is a structured error with optional resource/operation/parameter
// context naming where in the schema the failure occurred.
type Error struct {
	Code      ErrorCode
	Message   string
	Resource  string
	Operation string
	Parameter string
	Cause     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Cause }
