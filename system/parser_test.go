package system_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/system"
	"github.com/bjonica/graphql/system/ast"
)

func TestParseSimpleQuery(t *testing.T) {
	doc, err := system.Parse(`{ dog { name } }`)
	require.Nil(t, err)
	require.Len(t, doc.Operations, 1)

	op := doc.Operations[0]
	assert.Equal(t, ast.Query, op.Operation)
	require.Len(t, op.SelectionSet.Selections, 1)

	dog := op.SelectionSet.Selections[0].(*ast.Field)
	assert.Equal(t, "dog", dog.Name.Name)
	assert.Equal(t, errors.Location{Line: 1, Column: 3}, dog.Name.Loc)

	require.Len(t, dog.SelectionSet.Selections, 1)
	name := dog.SelectionSet.Selections[0].(*ast.Field)
	assert.Equal(t, "name", name.Name.Name)
	assert.Equal(t, errors.Location{Line: 1, Column: 9}, name.Name.Loc)
}

func TestParseNamedOperationWithVariables(t *testing.T) {
	doc, err := system.Parse(`query Q($x: Int = 3, $who: String) { f(n: $x) @include(if: true) }`)
	require.Nil(t, err)
	op := doc.Operations[0]

	assert.Equal(t, "Q", op.Name.Name)
	require.Len(t, op.Vars, 2)

	x := op.Vars[0]
	assert.Equal(t, "x", x.Var.Name.Name)
	assert.Equal(t, "Int", x.Type.String())
	require.IsType(t, (*ast.IntValue)(nil), x.DefaultValue)
	assert.Equal(t, "3", x.DefaultValue.GetValue())

	who := op.Vars[1]
	assert.Equal(t, "who", who.Var.Name.Name)
	assert.Nil(t, who.DefaultValue)

	f := op.SelectionSet.Selections[0].(*ast.Field)
	require.Len(t, f.Arguments, 1)
	assert.Equal(t, "n", f.Arguments[0].Name.Name)
	require.IsType(t, (*ast.Variable)(nil), f.Arguments[0].Value)

	require.Len(t, f.Directives, 1)
	d := f.Directives[0]
	assert.Equal(t, "include", d.Name.Name)
	require.Len(t, d.Args, 1)
	assert.Equal(t, true, d.Args[0].Value.GetValue())
}

func TestParseAliasesAndArguments(t *testing.T) {
	doc, err := system.Parse(`{ big: picture(size: 600, ratio: -1.5, tag: "hero", flags: [A, B], opts: {deep: null}) }`)
	require.Nil(t, err)

	f := doc.Operations[0].SelectionSet.Selections[0].(*ast.Field)
	assert.Equal(t, "big", f.Alias.Name)
	assert.Equal(t, "picture", f.Name.Name)
	assert.Equal(t, "big", f.ResponseKey())
	require.Len(t, f.Arguments, 5)

	assert.Equal(t, "600", f.Arguments[0].Value.(*ast.IntValue).Value)
	assert.Equal(t, "-1.5", f.Arguments[1].Value.(*ast.FloatValue).Value)
	assert.Equal(t, "hero", f.Arguments[2].Value.(*ast.StringValue).Value)

	flags := f.Arguments[3].Value.(*ast.ListValue)
	require.Len(t, flags.Values, 2)
	assert.Equal(t, "A", flags.Values[0].(*ast.EnumValue).Value)

	opts := f.Arguments[4].Value.(*ast.ObjectValue)
	require.Len(t, opts.Fields, 1)
	assert.Equal(t, "deep", opts.Fields[0].Name.Name)
	require.IsType(t, (*ast.NullValue)(nil), opts.Fields[0].Value)
}

func TestParseFragments(t *testing.T) {
	doc, err := system.Parse(`
query {
  dog {
    ...dogFields
    ... on Dog { nickname }
    ... { barkVolume }
  }
}

fragment dogFields on Dog {
  name
}
`)
	require.Nil(t, err)
	require.Len(t, doc.Fragments, 1)

	frag := doc.Fragments[0]
	assert.Equal(t, "dogFields", frag.Name.Name)
	assert.Equal(t, "Dog", frag.TypeCondition.Name.Name)
	require.NotNil(t, doc.Fragment("dogFields"))
	assert.Nil(t, doc.Fragment("missing"))

	dog := doc.Operations[0].SelectionSet.Selections[0].(*ast.Field)
	require.Len(t, dog.SelectionSet.Selections, 3)

	spread := dog.SelectionSet.Selections[0].(*ast.FragmentSpread)
	assert.Equal(t, "dogFields", spread.Name.Name)

	inline := dog.SelectionSet.Selections[1].(*ast.InlineFragment)
	require.NotNil(t, inline.TypeCondition)
	assert.Equal(t, "Dog", inline.TypeCondition.Name.Name)

	bare := dog.SelectionSet.Selections[2].(*ast.InlineFragment)
	assert.Nil(t, bare.TypeCondition)
}

func TestParseOperationSelection(t *testing.T) {
	doc, err := system.Parse(`
query A { a }
mutation B { b }
`)
	require.Nil(t, err)

	op, gerr := doc.Operation("B")
	require.Nil(t, gerr)
	assert.Equal(t, ast.Mutation, op.Operation)

	_, gerr = doc.Operation("")
	require.NotNil(t, gerr)

	_, gerr = doc.Operation("C")
	require.NotNil(t, gerr)
}

func TestParseSyntaxErrorIsValueNotPanic(t *testing.T) {
	doc, err := system.Parse(`{ dog `)
	assert.Nil(t, doc)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "Syntax Error")
	require.NotEmpty(t, err.Locations)
}

func TestParseEmptySource(t *testing.T) {
	_, err := system.Parse("")
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "Must provide source")
}

func TestParseSchemaDocument(t *testing.T) {
	doc, err := system.ParseDocument(`
schema {
  query: QueryRoot
}

# the root of it all
type QueryRoot implements Node & Named {
  dog(command: DogCommand = SIT): Dog!
  ids: [ID!]!
}

interface Node { id: ID }
interface Named { name: String }

type Dog { name: String }

union Result = QueryRoot | Dog

enum DogCommand { SIT DOWN }

input Where { eq: String }

scalar Time

directive @cached(ttl: Int) on FIELD | FRAGMENT_SPREAD
`)
	require.Nil(t, err)

	byKind := map[string]int{}
	for _, def := range doc.Definition {
		byKind[def.GetKind()]++
	}
	assert.Equal(t, 1, byKind["SchemaDefinition"])
	assert.Equal(t, 2, byKind["ObjectTypeDefinition"])
	assert.Equal(t, 2, byKind["InterfaceTypeDefinition"])
	assert.Equal(t, 1, byKind["UnionTypeDefinition"])
	assert.Equal(t, 1, byKind["EnumTypeDefinition"])
	assert.Equal(t, 1, byKind["InputObjectTypeDefinition"])
	assert.Equal(t, 1, byKind["ScalarTypeDefinition"])
	assert.Equal(t, 1, byKind["DirectiveDefinition"])

	var root *ast.ObjectDefinition
	for _, def := range doc.Definition {
		if o, ok := def.(*ast.ObjectDefinition); ok && o.Name.Name == "QueryRoot" {
			root = o
		}
	}
	require.NotNil(t, root)
	require.Len(t, root.Interfaces, 2)
	require.Len(t, root.Fields, 2)

	dog := root.Fields[0]
	assert.Equal(t, "Dog!", dog.Type.String())
	require.Len(t, dog.Arguments, 1)
	assert.Equal(t, "DogCommand", dog.Arguments[0].Type.String())
	require.NotNil(t, dog.Arguments[0].DefaultValue)

	assert.Equal(t, "[ID!]!", root.Fields[1].Type.String())
}

func TestParseRejectsTypeSystemInExecutable(t *testing.T) {
	_, err := system.Parse(`type Query { a: Int }`)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "not executable")
}

func TestValueToJSON(t *testing.T) {
	doc, err := system.Parse(`{ f(a: 1, b: 2.5, c: "s", d: true, e: null, g: RED, h: [1, 2], i: {x: 1, y: $var}, j: $var, k: $miss) }`)
	require.Nil(t, err)
	args := doc.Operations[0].SelectionSet.Selections[0].(*ast.Field).Arguments
	vars := map[string]interface{}{"var": "v"}

	get := func(i int) (interface{}, bool) {
		v, ok, jerr := system.ValueToJSON(args[i].Value, vars)
		require.Nil(t, jerr)
		return v, ok
	}

	v, _ := get(0)
	assert.Equal(t, int64(1), v)
	v, _ = get(1)
	assert.Equal(t, 2.5, v)
	v, _ = get(2)
	assert.Equal(t, "s", v)
	v, _ = get(3)
	assert.Equal(t, true, v)
	v, _ = get(4)
	assert.Nil(t, v)
	v, _ = get(5)
	assert.Equal(t, "RED", v)
	v, _ = get(6)
	assert.Equal(t, []interface{}{int64(1), int64(2)}, v)
	v, _ = get(7)
	assert.Equal(t, map[string]interface{}{"x": int64(1), "y": "v"}, v)
	v, ok := get(8)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	_, ok = get(9)
	assert.False(t, ok, "absent variables report not-supplied")
}
