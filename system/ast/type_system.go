package ast

import (
	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/system/kinds"
)

// A schema definition names the root operation types:
//
//	schema {
//	  query: QueryRoot
//	  mutation: MutationRoot
//	}
//
// When omitted, the types named Query, Mutation and Subscription take the
// root roles.
type SchemaDefinition struct {
	Kind           string                     `json:"kind"`
	Directives     []*Directive               `json:"directives"`
	OperationTypes []*OperationTypeDefinition `json:"operationTypes"`
	Loc            errors.Location            `json:"loc"`
}

func (s *SchemaDefinition) IsDefinition() {}

func (s *SchemaDefinition) IsTypeSystemDefinition() {}

func (s *SchemaDefinition) GetKind() string {
	return kinds.SchemaDefinition
}

func (s *SchemaDefinition) Location() errors.Location {
	return s.Loc
}

type OperationTypeDefinition struct {
	Kind      string          `json:"kind"`
	Operation OperationType   `json:"operation"`
	Type      *Named          `json:"type"`
	Loc       errors.Location `json:"loc"`
}

func (o *OperationTypeDefinition) GetKind() string {
	return kinds.OperationTypeDefinition
}

func (o *OperationTypeDefinition) Location() errors.Location {
	return o.Loc
}

// scalar Time
type ScalarDefinition struct {
	Kind       string          `json:"kind"`
	Name       *Name           `json:"name"`
	Directives []*Directive    `json:"directives"`
	Loc        errors.Location `json:"loc"`
}

func (s *ScalarDefinition) IsDefinition() {}

func (s *ScalarDefinition) IsTypeSystemDefinition() {}

func (s *ScalarDefinition) IsTypeDefinition() {}

func (s *ScalarDefinition) TypeName() string {
	return s.Name.Name
}

func (s *ScalarDefinition) GetKind() string {
	return kinds.ScalarDefinition
}

func (s *ScalarDefinition) Location() errors.Location {
	return s.Loc
}

// Objects are the intermediate levels of the response tree: a list of
// named fields, each yielding a value of a specific type.
//
//	type Person implements NamedEntity {
//	  name: String
//	  picture(size: Int): Url
//	}
type ObjectDefinition struct {
	Kind       string             `json:"kind"`
	Name       *Name              `json:"name"`
	Interfaces []*Named           `json:"interfaces"`
	Directives []*Directive       `json:"directives"`
	Fields     []*FieldDefinition `json:"fields"`
	Loc        errors.Location    `json:"loc"`
}

func (o *ObjectDefinition) IsDefinition() {}

func (o *ObjectDefinition) IsTypeSystemDefinition() {}

func (o *ObjectDefinition) IsTypeDefinition() {}

func (o *ObjectDefinition) TypeName() string {
	return o.Name.Name
}

func (o *ObjectDefinition) GetKind() string {
	return kinds.ObjectDefinition
}

func (o *ObjectDefinition) Location() errors.Location {
	return o.Loc
}

type FieldDefinition struct {
	Kind      string                  `json:"kind"`
	Name      *Name                   `json:"name"`
	Arguments []*InputValueDefinition `json:"arguments"`
	Type      Type                    `json:"type"`
	Loc       errors.Location         `json:"loc"`
}

func (f *FieldDefinition) GetKind() string {
	return kinds.FieldDefinition
}

func (f *FieldDefinition) Location() errors.Location {
	return f.Loc
}

// InputValueDefinition declares a field argument or an input object field,
// optionally with a default literal.
type InputValueDefinition struct {
	Kind         string          `json:"kind"`
	Name         *Name           `json:"name"`
	Type         Type            `json:"type"`
	DefaultValue Value           `json:"defaultValue"`
	Loc          errors.Location `json:"loc"`
}

func (i *InputValueDefinition) GetKind() string {
	return kinds.InputValueDefinition
}

func (i *InputValueDefinition) Location() errors.Location {
	return i.Loc
}

type InterfaceDefinition struct {
	Kind       string             `json:"kind"`
	Name       *Name              `json:"name"`
	Directives []*Directive       `json:"directives"`
	Fields     []*FieldDefinition `json:"fields"`
	Loc        errors.Location    `json:"loc"`
}

func (i *InterfaceDefinition) IsDefinition() {}

func (i *InterfaceDefinition) IsTypeSystemDefinition() {}

func (i *InterfaceDefinition) IsTypeDefinition() {}

func (i *InterfaceDefinition) TypeName() string {
	return i.Name.Name
}

func (i *InterfaceDefinition) GetKind() string {
	return kinds.InterfaceDefinition
}

func (i *InterfaceDefinition) Location() errors.Location {
	return i.Loc
}

// union SearchResult = Photo | Person
type UnionDefinition struct {
	Kind       string          `json:"kind"`
	Name       *Name           `json:"name"`
	Directives []*Directive    `json:"directives"`
	Members    []*Named        `json:"members"`
	Loc        errors.Location `json:"loc"`
}

func (u *UnionDefinition) IsDefinition() {}

func (u *UnionDefinition) IsTypeSystemDefinition() {}

func (u *UnionDefinition) IsTypeDefinition() {}

func (u *UnionDefinition) TypeName() string {
	return u.Name.Name
}

func (u *UnionDefinition) GetKind() string {
	return kinds.UnionDefinition
}

func (u *UnionDefinition) Location() errors.Location {
	return u.Loc
}

type EnumDefinition struct {
	Kind       string                 `json:"kind"`
	Name       *Name                  `json:"name"`
	Directives []*Directive           `json:"directives"`
	Values     []*EnumValueDefinition `json:"values"`
	Loc        errors.Location        `json:"loc"`
}

func (e *EnumDefinition) IsDefinition() {}

func (e *EnumDefinition) IsTypeSystemDefinition() {}

func (e *EnumDefinition) IsTypeDefinition() {}

func (e *EnumDefinition) TypeName() string {
	return e.Name.Name
}

func (e *EnumDefinition) GetKind() string {
	return kinds.EnumDefinition
}

func (e *EnumDefinition) Location() errors.Location {
	return e.Loc
}

type EnumValueDefinition struct {
	Kind  string          `json:"kind"`
	Value *EnumValue      `json:"value"`
	Loc   errors.Location `json:"loc"`
}

func (e *EnumValueDefinition) GetKind() string {
	return kinds.EnumValueDefinition
}

func (e *EnumValueDefinition) Location() errors.Location {
	return e.Loc
}

// input Point2D { x: Float y: Float }
type InputObjectDefinition struct {
	Kind        string                  `json:"kind"`
	Name        *Name                   `json:"name"`
	Directives  []*Directive            `json:"directives"`
	InputFields []*InputValueDefinition `json:"inputFields"`
	Loc         errors.Location         `json:"loc"`
}

func (i *InputObjectDefinition) IsDefinition() {}

func (i *InputObjectDefinition) IsTypeSystemDefinition() {}

func (i *InputObjectDefinition) IsTypeDefinition() {}

func (i *InputObjectDefinition) TypeName() string {
	return i.Name.Name
}

func (i *InputObjectDefinition) GetKind() string {
	return kinds.InputObjectDefinition
}

func (i *InputObjectDefinition) Location() errors.Location {
	return i.Loc
}

// directive @example(arg: String) on FIELD | FRAGMENT_SPREAD
type DirectiveDefinition struct {
	Kind      string                  `json:"kind"`
	Name      *Name                   `json:"name"`
	Arguments []*InputValueDefinition `json:"arguments"`
	Locations []string                `json:"locations"`
	Loc       errors.Location         `json:"loc"`
}

func (d *DirectiveDefinition) IsDefinition() {}

func (d *DirectiveDefinition) IsTypeSystemDefinition() {}

func (d *DirectiveDefinition) GetKind() string {
	return kinds.DirectiveDefinition
}

func (d *DirectiveDefinition) Location() errors.Location {
	return d.Loc
}
