package errors

import "fmt"

// GraphQLError is the single error shape the engine produces: validation
// errors carry the offending node's location and the violated rule,
// execution errors additionally carry the response path.
type GraphQLError struct {
	Message       string                 `json:"message"`
	Locations     []Location             `json:"locations,omitempty"`
	Path          []interface{}          `json:"path,omitempty"`
	Rule          string                 `json:"-"`
	ResolverError error                  `json:"-"`
	Extensions    map[string]interface{} `json:"extensions,omitempty"`
}

func (err *GraphQLError) Error() string {
	if err == nil {
		return "<nil>"
	}
	str := fmt.Sprintf("graphql: %s", err.Message)
	for _, loc := range err.Locations {
		str += fmt.Sprintf(" (%d:%d)", loc.Line, loc.Column)
	}
	if err.Path != nil {
		str += fmt.Sprintf(" path: %v", err.Path)
	}
	return str
}

var _ error = (*GraphQLError)(nil)

type MultiError []*GraphQLError

func (m MultiError) Error() string {
	var res string
	for _, err := range m {
		res += err.Error() + "\n"
	}
	return res
}

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (a Location) Before(b Location) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Column < b.Column)
}

func New(format string, arg ...interface{}) *GraphQLError {
	return &GraphQLError{
		Message: fmt.Sprintf(format, arg...),
	}
}

// NewLocated builds an error anchored at a single source location.
func NewLocated(loc Location, format string, arg ...interface{}) *GraphQLError {
	err := New(format, arg...)
	err.Locations = []Location{loc}
	return err
}

// WithRule tags the error with the validation rule that produced it.
func (err *GraphQLError) WithRule(rule string) *GraphQLError {
	err.Rule = rule
	return err
}

// WithPath records the response path an execution error occurred at.
func (err *GraphQLError) WithPath(path []interface{}) *GraphQLError {
	err.Path = append([]interface{}{}, path...)
	return err
}
