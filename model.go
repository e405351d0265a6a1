package swagger

// Document model for the Swagger 1.x resource-listing format: a top-level
// listing enumerates API groups, and each group has its own declaration
// document describing paths, operations, and parameters. Fields carry yaml
// tags; yaml.v3 parses both JSON and YAML encodings of the documents.

// ParamLocation is where a declared parameter is placed in the request.
type ParamLocation string

const (
	ParamPath  ParamLocation = "path"
	ParamQuery ParamLocation = "query"
	ParamBody  ParamLocation = "body"
)

// ResourceListing is the top-level schema document enumerating API groups.
type ResourceListing struct {
	SwaggerVersion string      `yaml:"swaggerVersion"`
	APIVersion     string      `yaml:"apiVersion"`
	BasePath       string      `yaml:"basePath"`
	APIs           []*APIEntry `yaml:"apis"`
}

// APIEntry is one listing entry pointing at an API declaration document.
// Name and Declaration are not part of the wire format: Name is derived by
// ClientProcessor from the filename stem of Path, and Declaration is
// attached by the Loader (or by the caller, for in-memory documents).
type APIEntry struct {
	Path        string `yaml:"path"`
	Description string `yaml:"description"`

	Name        string          `yaml:"-"`
	Declaration *APIDeclaration `yaml:"-"`
}

// APIDeclaration is the full path/operation schema for one API group.
type APIDeclaration struct {
	SwaggerVersion string       `yaml:"swaggerVersion"`
	APIVersion     string       `yaml:"apiVersion"`
	BasePath       string       `yaml:"basePath"`
	ResourcePath   string       `yaml:"resourcePath"`
	APIs           []*PathEntry `yaml:"apis"`
}

// PathEntry is one path within a declaration, with its operations.
type PathEntry struct {
	Path        string           `yaml:"path"`
	Description string           `yaml:"description"`
	Operations  []*OperationSpec `yaml:"operations"`
}

// OperationSpec declares one invocable action on a path.
//
// IsWebsocket is set either directly in the document or derived from
// Upgrade by WebsocketProcessor during load.
type OperationSpec struct {
	Nickname    string           `yaml:"nickname"`
	HTTPMethod  string           `yaml:"httpMethod"`
	Summary     string           `yaml:"summary"`
	Upgrade     string           `yaml:"upgrade"`
	IsWebsocket bool             `yaml:"isWebsocket"`
	Parameters  []*ParameterSpec `yaml:"parameters"`
}

// ParameterSpec declares one parameter of an operation.
type ParameterSpec struct {
	Name      string        `yaml:"name"`
	ParamType ParamLocation `yaml:"paramType"`
	DataType  string        `yaml:"dataType"`
	Required  bool          `yaml:"required"`
}
