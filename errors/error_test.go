package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := NewLocated(Location{Line: 2, Column: 7}, "Cannot query field '%s' on type '%s'.", "nome", "Dog")
	assert.Equal(t, "graphql: Cannot query field 'nome' on type 'Dog'. (2:7)", err.Error())

	var nilErr *GraphQLError
	assert.Equal(t, "<nil>", nilErr.Error())
}

func TestErrorWithPath(t *testing.T) {
	err := New("boom").WithPath([]interface{}{"dog", "friends", 0})
	assert.Equal(t, []interface{}{"dog", "friends", 0}, err.Path)
	assert.Contains(t, err.Error(), "path: [dog friends 0]")
}

func TestErrorWithRule(t *testing.T) {
	err := New("nope").WithRule("FieldsOnCorrectType")
	assert.Equal(t, "FieldsOnCorrectType", err.Rule)
}

func TestMultiError(t *testing.T) {
	errs := MultiError{New("one"), New("two")}
	assert.Contains(t, errs.Error(), "one")
	assert.Contains(t, errs.Error(), "two")
}

func TestLocationBefore(t *testing.T) {
	assert.True(t, Location{Line: 1, Column: 9}.Before(Location{Line: 2, Column: 1}))
	assert.True(t, Location{Line: 1, Column: 1}.Before(Location{Line: 1, Column: 2}))
	assert.False(t, Location{Line: 2, Column: 1}.Before(Location{Line: 1, Column: 9}))
}
