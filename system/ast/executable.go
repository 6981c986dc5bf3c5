package ast

import (
	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/system/kinds"
)

type OperationType string

const (
	Query        OperationType = "query"
	Mutation     OperationType = "mutation"
	Subscription OperationType = "subscription"
)

// Selection is a field, a fragment spread, or an inline fragment.
type Selection interface {
	Node
	IsSelection()
}

var _ Selection = (*Field)(nil)
var _ Selection = (*FragmentSpread)(nil)
var _ Selection = (*InlineFragment)(nil)

type OperationDefinition struct {
	Kind         string                `json:"kind"`
	Operation    OperationType         `json:"operation"`
	Name         *Name                 `json:"name"`
	Vars         []*VariableDefinition `json:"variableDefinitions"`
	Directives   []*Directive          `json:"directives"`
	SelectionSet *SelectionSet         `json:"selectionSet"`
	Loc          errors.Location       `json:"loc"`
}

func (o *OperationDefinition) IsDefinition() {}

func (o *OperationDefinition) GetKind() string {
	return kinds.OperationDefinition
}

func (o *OperationDefinition) Location() errors.Location {
	return o.Loc
}

// VariableDefinition declares an operation variable. The validator stamps
// Spec with the variable's operation-scoped spec identifier.
type VariableDefinition struct {
	Kind         string          `json:"kind"`
	Var          *Variable       `json:"variable"`
	Type         Type            `json:"type"`
	DefaultValue Value           `json:"defaultValue"`
	Loc          errors.Location `json:"loc"`
	Spec         string          `json:"-"`
}

func (v *VariableDefinition) GetKind() string {
	return kinds.VariableDefinition
}

func (v *VariableDefinition) Location() errors.Location {
	return v.Loc
}

type SelectionSet struct {
	Kind       string          `json:"kind"`
	Selections []Selection     `json:"selections"`
	Loc        errors.Location `json:"loc"`
}

func (s *SelectionSet) GetKind() string {
	return kinds.SelectionSet
}

func (s *SelectionSet) Location() errors.Location {
	return s.Loc
}

// Field is a single selection. Alias is nil when the selection has no alias.
// The validator stamps Spec with the declaring field's spec identifier.
type Field struct {
	Kind         string          `json:"kind"`
	Alias        *Name           `json:"alias"`
	Name         *Name           `json:"name"`
	Arguments    []*Argument     `json:"arguments"`
	Directives   []*Directive    `json:"directives"`
	SelectionSet *SelectionSet   `json:"selectionSet"`
	Loc          errors.Location `json:"loc"`
	Spec         string          `json:"-"`
}

func (f *Field) IsSelection() {}

func (f *Field) GetKind() string {
	return kinds.Field
}

func (f *Field) Location() errors.Location {
	return f.Loc
}

// ResponseKey is the alias when present, the field name otherwise.
func (f *Field) ResponseKey() string {
	if f.Alias != nil && f.Alias.Name != "" {
		return f.Alias.Name
	}
	return f.Name.Name
}

type Argument struct {
	Kind  string          `json:"kind"`
	Name  *Name           `json:"name"`
	Value Value           `json:"value"`
	Loc   errors.Location `json:"loc"`
	Spec  string          `json:"-"`
}

func (a *Argument) GetKind() string {
	return kinds.Argument
}

func (a *Argument) Location() errors.Location {
	return a.Loc
}

type FragmentDefinition struct {
	Kind          string          `json:"kind"`
	Name          *Name           `json:"name"`
	TypeCondition *Named          `json:"typeCondition"`
	Directives    []*Directive    `json:"directives"`
	SelectionSet  *SelectionSet   `json:"selectionSet"`
	Loc           errors.Location `json:"loc"`
	Spec          string          `json:"-"`
}

func (f *FragmentDefinition) IsDefinition() {}

func (f *FragmentDefinition) GetKind() string {
	return kinds.FragmentDefinition
}

func (f *FragmentDefinition) Location() errors.Location {
	return f.Loc
}

type FragmentSpread struct {
	Kind       string          `json:"kind"`
	Name       *Name           `json:"name"`
	Directives []*Directive    `json:"directives"`
	Loc        errors.Location `json:"loc"`
	Spec       string          `json:"-"`
}

func (f *FragmentSpread) IsSelection() {}

func (f *FragmentSpread) GetKind() string {
	return kinds.FragmentSpread
}

func (f *FragmentSpread) Location() errors.Location {
	return f.Loc
}

type InlineFragment struct {
	Kind          string          `json:"kind"`
	TypeCondition *Named          `json:"typeCondition"`
	Directives    []*Directive    `json:"directives"`
	SelectionSet  *SelectionSet   `json:"selectionSet"`
	Loc           errors.Location `json:"loc"`
}

func (i *InlineFragment) IsSelection() {}

func (i *InlineFragment) GetKind() string {
	return kinds.InlineFragment
}

func (i *InlineFragment) Location() errors.Location {
	return i.Loc
}

type Directive struct {
	Kind string          `json:"kind"`
	Name *Name           `json:"name"`
	Args []*Argument     `json:"arguments"`
	Loc  errors.Location `json:"loc"`
}

func (d *Directive) GetKind() string {
	return kinds.Directive
}

func (d *Directive) Location() errors.Location {
	return d.Loc
}
