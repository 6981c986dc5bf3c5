package graphql_test

import (
	"context"
	"io/ioutil"
	"testing"

	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	graphql "github.com/bjonica/graphql"
	"github.com/bjonica/graphql/execution"
	"github.com/bjonica/graphql/validation"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func testSchemaSource(t *testing.T) string {
	t.Helper()
	source, err := ioutil.ReadFile("testdata/validation.schema.graphql")
	require.NoError(t, err)
	return string(source)
}

func dogResolvers() execution.ResolverMap {
	return execution.ResolverMap{
		"QueryRoot": {
			"dog": func(context.Context, interface{}, map[string]interface{}) (interface{}, error) {
				return map[string]interface{}{"name": "Rex", "nickname": "R"}, nil
			},
			"human": func(context.Context, interface{}, map[string]interface{}) (interface{}, error) {
				return map[string]interface{}{
					"pets": []interface{}{
						map[string]interface{}{"name": "Odie"},
						map[string]interface{}{"name": "Garfield"},
					},
				}, nil
			},
		},
	}
}

func TestBuildSchema(t *testing.T) {
	s, err := graphql.BuildSchema(testSchemaSource(t))
	require.NoError(t, err)
	require.NotNil(t, s)

	_, err = graphql.BuildSchema(`type Query { ghost: Ghost }`)
	require.Error(t, err)
}

func TestMustBuildSchemaPanics(t *testing.T) {
	assert.Panics(t, func() { graphql.MustBuildSchema(`type Query { ghost: Ghost }`) })
}

func TestValidateSelectiveRules(t *testing.T) {
	s := graphql.MustBuildSchema(testSchemaSource(t))

	res, err := graphql.Validate(s, `{ dog { nome } }`)
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Cannot query field 'nome' on type 'Dog'.", res.Errors[0].Message)

	res, err = graphql.Validate(s, `{ dog { nome } }`, validation.RuleScalarLeafs)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
}

func TestExecuteEndToEnd(t *testing.T) {
	s := graphql.MustBuildSchema(testSchemaSource(t))

	resp := graphql.Execute(context.Background(), s, dogResolvers(), `{ human { pets { name } } dog { name } }`, nil)
	require.Empty(t, resp.Errors)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"data":{"human":{"pets":[{"name":"Odie"},{"name":"Garfield"}]},"dog":{"name":"Rex"}}}`, string(raw))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	expected := map[string]interface{}{
		"data": map[string]interface{}{
			"human": map[string]interface{}{
				"pets": []interface{}{
					map[string]interface{}{"name": "Odie"},
					map[string]interface{}{"name": "Garfield"},
				},
			},
			"dog": map[string]interface{}{"name": "Rex"},
		},
	}
	assert.Empty(t, cmp.Diff(expected, decoded))
}

func TestExecuteStopsOnValidationErrors(t *testing.T) {
	s := graphql.MustBuildSchema(testSchemaSource(t))

	called := false
	resolvers := execution.ResolverMap{"QueryRoot": {"dog": func(context.Context, interface{}, map[string]interface{}) (interface{}, error) {
		called = true
		return nil, nil
	}}}

	resp := graphql.Execute(context.Background(), s, resolvers, `{ dog { nome } }`, nil)
	require.Len(t, resp.Errors, 1)
	assert.False(t, called, "resolvers must not run when validation fails")

	// data is absent entirely when the operation never started
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"errors":[{"message":"Cannot query field 'nome' on type 'Dog'.","locations":[{"line":1,"column":9}]}]}`, string(raw))
}

func TestDoAcceptsRawSchemaSource(t *testing.T) {
	resolvers := execution.ResolverMap{"Query": {"hello": func(context.Context, interface{}, map[string]interface{}) (interface{}, error) {
		return "world", nil
	}}}

	resp := graphql.Do(`type Query { hello: String }`, resolvers, graphql.Params{Query: `{ hello }`})
	require.Empty(t, resp.Errors)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	assert.Equal(t, `{"hello":"world"}`, string(raw))
}

func TestDoAcceptsBuiltSchemaAndOperationName(t *testing.T) {
	s := graphql.MustBuildSchema(`type Query { a: Int b: Int }`)
	resolvers := execution.ResolverMap{"Query": {
		"a": func(context.Context, interface{}, map[string]interface{}) (interface{}, error) { return 1, nil },
		"b": func(context.Context, interface{}, map[string]interface{}) (interface{}, error) { return 2, nil },
	}}

	resp := graphql.Do(s, resolvers, graphql.Params{
		Query:         `query A { a } query B { b }`,
		OperationName: "B",
	})
	require.Empty(t, resp.Errors)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(raw))
}

func TestDoRejectsUnknownSchemaInput(t *testing.T) {
	resp := graphql.Do(42, nil, graphql.Params{Query: `{ a }`})
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].Message, "Must provide a schema source or a built schema")
}

func TestDoSurfacesSyntaxErrors(t *testing.T) {
	resp := graphql.Do(`type Query { hello: String }`, nil, graphql.Params{Query: `{ hello `})
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].Message, "Syntax Error")
}

func TestExecuteValidated(t *testing.T) {
	s := graphql.MustBuildSchema(`type Query { hello: String }`)
	resolvers := execution.ResolverMap{"Query": {"hello": func(context.Context, interface{}, map[string]interface{}) (interface{}, error) {
		return "world", nil
	}}}

	res, err := graphql.Validate(s, `{ hello }`)
	require.NoError(t, err)
	require.Empty(t, res.Errors)

	resp := graphql.ExecuteValidated(context.Background(), s, resolvers, res, nil)
	require.Empty(t, resp.Errors)

	raw, merr := json.Marshal(resp.Data)
	require.NoError(t, merr)
	assert.Equal(t, `{"hello":"world"}`, string(raw))
}
