package system

import (
	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/system/ast"
)

// Document is an executable document split into its operations and
// fragments.
type Document struct {
	Operations []*ast.OperationDefinition
	Fragments  []*ast.FragmentDefinition
}

// Operation returns the operation to execute: the named one, or the only
// one when name is empty.
func (d *Document) Operation(name string) (*ast.OperationDefinition, *errors.GraphQLError) {
	if len(d.Operations) == 0 {
		return nil, errors.New("Must provide an operation.")
	}
	if name == "" {
		if len(d.Operations) > 1 {
			return nil, errors.New("Must provide operation name if query contains multiple operations.")
		}
		return d.Operations[0], nil
	}
	for _, op := range d.Operations {
		if op.Name != nil && op.Name.Name == name {
			return op, nil
		}
	}
	return nil, errors.New("Unknown operation named %q.", name)
}

// Fragment returns the named fragment definition, or nil.
func (d *Document) Fragment(name string) *ast.FragmentDefinition {
	for _, f := range d.Fragments {
		if f.Name.Name == name {
			return f
		}
	}
	return nil
}
