// Package graphql is a server-side GraphQL engine: it builds a spec
// registry from a schema written in the schema definition language,
// validates operation documents against it, and executes them by invoking
// user-supplied field resolvers.
package graphql

import (
	"context"

	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/execution"
	"github.com/bjonica/graphql/schema"
	"github.com/bjonica/graphql/system"
	"github.com/bjonica/graphql/validation"
)

// Params is one request against the engine.
type Params struct {
	Query         string                 `json:"query" validate:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// BuildSchema parses a schema source and derives its spec registry.
func BuildSchema(source string) (*schema.Schema, error) {
	s, errs := schema.Build(source)
	if len(errs) > 0 {
		return nil, errs
	}
	return s, nil
}

// MustBuildSchema is BuildSchema for schemas known good at startup.
func MustBuildSchema(source string) *schema.Schema {
	s, err := BuildSchema(source)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate parses an operation source and validates it against the
// schema. When rule names are given only those rules run. The returned
// error is a syntax error; rule violations accumulate in Result.Errors.
func Validate(s *schema.Schema, source string, rules ...string) (*validation.Result, error) {
	doc, err := system.Parse(source)
	if err != nil {
		return nil, err
	}
	return validation.Validate(s, doc, schema.Hash(source), rules...), nil
}

// Execute parses, validates and executes a query. Validation errors stop
// execution and come back as the response errors.
func Execute(ctx context.Context, s *schema.Schema, resolvers execution.ResolverMap, query string, vars map[string]interface{}) *execution.Response {
	return Do(s, resolvers, Params{Query: query, Variables: vars}, WithContext(ctx))
}

// ExecuteValidated runs an already-validated document.
func ExecuteValidated(ctx context.Context, s *schema.Schema, resolvers execution.ResolverMap, res *validation.Result, vars map[string]interface{}) *execution.Response {
	if len(res.Errors) > 0 {
		return &execution.Response{Errors: res.Errors}
	}
	return execution.Execute(ctx, s, resolvers, res.Doc, "", vars)
}

// DoOption adjusts a Do call.
type DoOption func(*doConfig)

type doConfig struct {
	ctx  context.Context
	root interface{}
}

// WithContext carries the caller's context into resolvers.
func WithContext(ctx context.Context) DoOption {
	return func(c *doConfig) { c.ctx = ctx }
}

// WithRootValue substitutes the synthetic root value.
func WithRootValue(root interface{}) DoOption {
	return func(c *doConfig) { c.root = root }
}

// Do accepts either a raw schema source string or a built *schema.Schema,
// builds what it was not given, validates the request's query and
// executes it.
func Do(schemaOrSource interface{}, resolvers execution.ResolverMap, p Params, opts ...DoOption) *execution.Response {
	cfg := &doConfig{ctx: context.Background()}
	for _, opt := range opts {
		opt(cfg)
	}

	var s *schema.Schema
	switch input := schemaOrSource.(type) {
	case *schema.Schema:
		s = input
	case string:
		built, errs := schema.Build(input)
		if len(errs) > 0 {
			return &execution.Response{Errors: errs}
		}
		s = built
	default:
		return &execution.Response{Errors: errors.MultiError{
			errors.New("Must provide a schema source or a built schema, got %T.", schemaOrSource),
		}}
	}

	res, err := Validate(s, p.Query)
	if err != nil {
		gqlErr, ok := err.(*errors.GraphQLError)
		if !ok {
			gqlErr = errors.New("%s", err.Error())
		}
		return &execution.Response{Errors: errors.MultiError{gqlErr}}
	}
	if len(res.Errors) > 0 {
		return &execution.Response{Errors: res.Errors}
	}
	return execution.ExecuteRoot(cfg.ctx, s, resolvers, res.Doc, p.OperationName, p.Variables, cfg.root)
}
