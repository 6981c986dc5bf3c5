package validation_test

import (
	"io/ioutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/schema"
	"github.com/bjonica/graphql/system"
	"github.com/bjonica/graphql/system/ast"
	"github.com/bjonica/graphql/validation"
)

var testSchema *schema.Schema

func init() {
	source, err := ioutil.ReadFile("../testdata/validation.schema.graphql")
	if err != nil {
		panic(err)
	}
	s, errs := schema.Build(string(source))
	if len(errs) > 0 {
		panic(errs)
	}
	testSchema = s
}

func validate(t *testing.T, query string, rules ...string) *validation.Result {
	t.Helper()
	doc, err := system.Parse(query)
	require.Nil(t, err)
	return validation.Validate(testSchema, doc, schema.Hash(query), rules...)
}

func expectErrors(t *testing.T, query string, rules []string, messages ...string) errors.MultiError {
	t.Helper()
	res := validate(t, query, rules...)
	require.Len(t, res.Errors, len(messages), "errors: %v", res.Errors)
	for i, message := range messages {
		assert.Equal(t, message, res.Errors[i].Message)
	}
	return res.Errors
}

func TestFieldsOnCorrectType(t *testing.T) {
	rules := []string{validation.RuleFieldsOnCorrectType}

	t.Run("object field selection passes", func(t *testing.T) {
		expectErrors(t, `{ dog { name } }`, rules)
	})

	t.Run("nested list field selection passes", func(t *testing.T) {
		expectErrors(t, `{ human { pets { name } } }`, rules)
	})

	t.Run("misspelled field on object", func(t *testing.T) {
		errs := expectErrors(t, `{ dog { nome } }`, rules, "Cannot query field 'nome' on type 'Dog'.")
		require.Len(t, errs[0].Locations, 1)
		assert.Equal(t, errors.Location{Line: 1, Column: 9}, errs[0].Locations[0])
	})

	t.Run("misspelled field behind a list", func(t *testing.T) {
		expectErrors(t, `{ human { pets { nome } } }`, rules, "Cannot query field 'nome' on type 'Pet'.")
	})

	t.Run("stops at the first resolvable ancestor", func(t *testing.T) {
		expectErrors(t, `{ human { pets { friends { nome } } } }`, rules, "Cannot query field 'friends' on type 'Pet'.")
	})

	t.Run("interface field via implementation", func(t *testing.T) {
		expectErrors(t, `{ dog { name nickname } }`, rules)
	})

	t.Run("typename is always known", func(t *testing.T) {
		expectErrors(t, `{ __typename dog { __typename } }`, rules)
	})
}

func TestErrorAccumulationOrder(t *testing.T) {
	expectErrors(t, `{ dog { nome } human { pets { nome } } }`,
		[]string{validation.RuleFieldsOnCorrectType},
		"Cannot query field 'nome' on type 'Dog'.",
		"Cannot query field 'nome' on type 'Pet'.",
	)
}

func TestScalarLeafs(t *testing.T) {
	rules := []string{validation.RuleScalarLeafs}

	expectErrors(t, `{ dog { name } }`, rules)
	expectErrors(t, `{ dog }`, rules, "Field 'dog' of type 'Dog' must have a selection of subfields.")
	expectErrors(t, `{ human { pets } }`, rules, "Field 'pets' of type '[Pet]' must have a selection of subfields.")
}

func TestNoSubselectionAllowed(t *testing.T) {
	rules := []string{validation.RuleNoSubselectionAllowed}

	expectErrors(t, `{ dog { name } }`, rules)
	expectErrors(t, `{ dog { name { surname } } }`, rules,
		"Field 'name' must not have a selection since type 'String' has no subfields.")
}

func TestKnownArgumentNames(t *testing.T) {
	rules := []string{validation.RuleKnownArgumentNames}

	expectErrors(t, `{ dog { doesKnowCommand(dogCommand: SIT) } }`, rules)
	expectErrors(t, `{ dog { name(surname: true) } }`, rules,
		"Unknown argument 'surname' on field 'name' of type 'Dog'.")
}

func TestProvidedRequiredArguments(t *testing.T) {
	rules := []string{validation.RuleProvidedRequiredArguments}

	expectErrors(t, `{ dog { doesKnowCommand(dogCommand: SIT) } }`, rules)
	expectErrors(t, `{ dog { isHouseTrained } }`, rules)
	expectErrors(t, `{ dog { doesKnowCommand } }`, rules,
		"Field 'doesKnowCommand' argument 'dogCommand' of type 'DogCommand!' is required but not provided.")
	expectErrors(t, `{ dog @include { name } }`, rules,
		"Directive '@include' argument 'if' of type 'Boolean!' is required but not provided.")
}

func TestArgumentsOfCorrectType(t *testing.T) {
	rules := []string{validation.RuleArgumentsOfCorrectType}

	expectErrors(t, `{ dog { doesKnowCommand(dogCommand: SIT) } }`, rules)
	expectErrors(t, `{ dog { doesKnowCommand(dogCommand: 3) } }`, rules,
		"Argument 'dogCommand' has invalid value 3. Expected type 'DogCommand', found 3.")
	expectErrors(t, `{ dog { isHouseTrained(atOtherHomes: "yes") } }`, rules,
		`Argument 'atOtherHomes' has invalid value "yes". Expected type 'Boolean', found "yes".`)
}

func TestVariablesAreInputTypes(t *testing.T) {
	rules := []string{validation.RuleVariablesAreInputTypes}

	expectErrors(t, `query($c: DogCommand, $ok: Boolean!, $names: [String]) { dog { name } }`, rules)
	expectErrors(t, `query($x: Dog) { dog { name } }`, rules,
		"Variable '$x' cannot be non-input type 'Dog'.")
	expectErrors(t, `query($x: Nope) { dog { name } }`, rules,
		"Unknown type 'Nope'.")
}

func TestVariablesInAllowedPosition(t *testing.T) {
	rules := []string{validation.RuleArgumentsOfCorrectType, validation.RuleVariablesInAllowedPosition}

	expectErrors(t, `query($c: DogCommand!) { dog { doesKnowCommand(dogCommand: $c) } }`, rules)
	expectErrors(t, `query($c: DogCommand = SIT) { dog { doesKnowCommand(dogCommand: $c) } }`, rules)
	expectErrors(t, `query($c: DogCommand) { dog { doesKnowCommand(dogCommand: $c) } }`, rules,
		"Variable '$c' of type 'DogCommand' used in position expecting type 'DogCommand!'.")
}

func TestKnownFragmentNames(t *testing.T) {
	rules := []string{validation.RuleKnownFragmentNames}

	expectErrors(t, `{ dog { ...dogFields } } fragment dogFields on Dog { name }`, rules)
	expectErrors(t, `{ dog { ...missing } }`, rules, "Unknown fragment 'missing'.")
}

func TestNoUnusedFragments(t *testing.T) {
	rules := []string{validation.RuleNoUnusedFragments}

	expectErrors(t, `{ dog { ...dogFields } } fragment dogFields on Dog { name }`, rules)
	expectErrors(t, `{ dog { name } } fragment unused on Dog { name }`, rules,
		"Fragment 'unused' is never used.")
}

func TestFragmentsOnCompositeTypes(t *testing.T) {
	rules := []string{validation.RuleFragmentsOnCompositeTypes}

	expectErrors(t, `{ dog { ...f } } fragment f on Being { name }`, rules)
	expectErrors(t, `{ catOrDog { ... on Dog { name } } }`, rules)
	expectErrors(t, `{ dog { ...f } } fragment f on DogCommand { name }`, rules,
		"Fragment 'f' cannot condition on non composite type 'DogCommand'.")
	expectErrors(t, `{ dog { ... on DogCommand { name } } }`, rules,
		"Fragment cannot condition on non composite type 'DogCommand'.")
}

func TestKnownDirectives(t *testing.T) {
	rules := []string{validation.RuleKnownDirectives}

	expectErrors(t, `{ dog @include(if: true) { name } }`, rules)
	expectErrors(t, `{ dog @foo { name } }`, rules, "Unknown directive 'foo'.")
	expectErrors(t, `query @include(if: true) { dog { name } }`, rules,
		"Directive 'include' may not be used on QUERY.")
}

func TestRuleSelectionIsExclusive(t *testing.T) {
	// an invalid field passes when only an unrelated rule runs
	expectErrors(t, `{ dog { nome } }`, []string{validation.RuleScalarLeafs})
}

func TestDefaultRunsAllRules(t *testing.T) {
	res := validate(t, `{ dog { nome } unused @foo }`)
	rules := map[string]bool{}
	for _, err := range res.Errors {
		rules[err.Rule] = true
	}
	assert.True(t, rules[validation.RuleFieldsOnCorrectType])
	assert.True(t, rules[validation.RuleKnownDirectives])
}

func TestAnnotationsAndOverlay(t *testing.T) {
	res := validate(t, `query Q($c: DogCommand!) { dog { doesKnowCommand(dogCommand: $c) } ...top } fragment top on QueryRoot { pet { name } }`)
	require.Empty(t, res.Errors)

	op := res.Doc.Operations[0]

	require.Len(t, op.Vars, 1)
	assert.True(t, strings.HasPrefix(op.Vars[0].Spec, "var."), op.Vars[0].Spec)

	dog := op.SelectionSet.Selections[0].(*ast.Field)
	assert.True(t, strings.HasSuffix(dog.Spec, "QueryRoot/dog"), dog.Spec)

	cmd := dog.SelectionSet.Selections[0].(*ast.Field)
	assert.True(t, strings.HasSuffix(cmd.Spec, "Dog/doesKnowCommand"), cmd.Spec)
	require.Len(t, cmd.Arguments, 1)
	assert.True(t, strings.HasPrefix(cmd.Arguments[0].Spec, "arg."), cmd.Arguments[0].Spec)

	spread := op.SelectionSet.Selections[1].(*ast.FragmentSpread)
	assert.True(t, strings.HasPrefix(spread.Spec, "frag."), spread.Spec)

	varSpec, ok := res.Overlay.Vars["c"]
	require.True(t, ok)
	d, err := res.Overlay.Base(varSpec)
	require.Nil(t, err)
	assert.Equal(t, "DogCommand", d.TypeName)

	fragSpec, ok := res.Overlay.Frags["top"]
	require.True(t, ok)
	fd, err := res.Overlay.Base(fragSpec)
	require.Nil(t, err)
	assert.Equal(t, "QueryRoot", fd.TypeName)
}

func TestUndeclaredRootOperation(t *testing.T) {
	res := validate(t, `mutation { rename }`)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "does not define a mutation root type")
}
