package ast

import (
	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/system/kinds"
)

// Node is implemented by every AST variant. Every node carries its kind
// tag and the source location of its first token.
type Node interface {
	GetKind() string
	Location() errors.Location
}

// Definition is a top-level entry of a document: an operation, a fragment,
// or a type system definition.
type Definition interface {
	Node
	IsDefinition()
}

// TypeSystemDefinition is a schema-side definition. A document containing
// type system definitions must not be executed.
type TypeSystemDefinition interface {
	Definition
	IsTypeSystemDefinition()
}

// TypeDefinition is one of the six named type definitions.
type TypeDefinition interface {
	TypeSystemDefinition
	IsTypeDefinition()
	TypeName() string
}

var _ TypeDefinition = (*ScalarDefinition)(nil)
var _ TypeDefinition = (*ObjectDefinition)(nil)
var _ TypeDefinition = (*InterfaceDefinition)(nil)
var _ TypeDefinition = (*UnionDefinition)(nil)
var _ TypeDefinition = (*EnumDefinition)(nil)
var _ TypeDefinition = (*InputObjectDefinition)(nil)

type Document struct {
	Kind       string          `json:"kind"`
	Definition []Definition    `json:"definitions"`
	Loc        errors.Location `json:"loc"`
}

func (d *Document) GetKind() string {
	return kinds.Document
}

func (d *Document) Location() errors.Location {
	return d.Loc
}

type Name struct {
	Kind string          `json:"kind"`
	Name string          `json:"name"`
	Loc  errors.Location `json:"loc"`
}

func (n *Name) GetKind() string {
	return kinds.Name
}

func (n *Name) Location() errors.Location {
	return n.Loc
}

// Type is a type reference: a named type or a list/non-null wrapper.
type Type interface {
	Node
	String() string
}

// WrappingType is a list or non-null wrapper around another type.
type WrappingType interface {
	Type
	OfType() Type
}

var _ WrappingType = (*List)(nil)
var _ WrappingType = (*NonNull)(nil)

type Named struct {
	Kind string          `json:"kind"`
	Name *Name           `json:"name"`
	Loc  errors.Location `json:"loc"`
}

func (n *Named) GetKind() string {
	return kinds.Named
}

func (n *Named) Location() errors.Location {
	return n.Loc
}

func (n *Named) String() string {
	return n.Name.Name
}

type List struct {
	Kind string          `json:"kind"`
	Type Type            `json:"type"`
	Loc  errors.Location `json:"loc"`
}

func (l *List) GetKind() string {
	return kinds.List
}

func (l *List) Location() errors.Location {
	return l.Loc
}

func (l *List) OfType() Type {
	return l.Type
}

func (l *List) String() string {
	return "[" + l.Type.String() + "]"
}

type NonNull struct {
	Kind string          `json:"kind"`
	Type Type            `json:"type"`
	Loc  errors.Location `json:"loc"`
}

func (n *NonNull) GetKind() string {
	return kinds.NonNull
}

func (n *NonNull) Location() errors.Location {
	return n.Loc
}

func (n *NonNull) OfType() Type {
	return n.Type
}

func (n *NonNull) String() string {
	return n.Type.String() + "!"
}
