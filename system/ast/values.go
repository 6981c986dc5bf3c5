package ast

import (
	"strings"

	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/system/kinds"
)

// Value is a literal in a document. Every literal is boxed with its source
// location; comparisons go through GetValue and ignore the location.
// Int and Float carry the raw token text, coercion happens against the
// declared type.
type Value interface {
	Node
	GetValue() interface{}
	String() string
}

var _ Value = (*Variable)(nil)
var _ Value = (*IntValue)(nil)
var _ Value = (*FloatValue)(nil)
var _ Value = (*StringValue)(nil)
var _ Value = (*BooleanValue)(nil)
var _ Value = (*NullValue)(nil)
var _ Value = (*EnumValue)(nil)
var _ Value = (*ListValue)(nil)
var _ Value = (*ObjectValue)(nil)

type Variable struct {
	Kind string          `json:"kind"`
	Name *Name           `json:"name"`
	Loc  errors.Location `json:"loc"`
}

func (v *Variable) GetKind() string {
	return kinds.Variable
}

func (v *Variable) Location() errors.Location {
	return v.Loc
}

func (v *Variable) GetValue() interface{} {
	return v.Name.Name
}

func (v *Variable) String() string {
	return "$" + v.Name.Name
}

type IntValue struct {
	Kind  string          `json:"kind"`
	Value string          `json:"value"`
	Loc   errors.Location `json:"loc"`
}

func (v *IntValue) GetKind() string {
	return kinds.IntValue
}

func (v *IntValue) Location() errors.Location {
	return v.Loc
}

func (v *IntValue) GetValue() interface{} {
	return v.Value
}

func (v *IntValue) String() string {
	return v.Value
}

type FloatValue struct {
	Kind  string          `json:"kind"`
	Value string          `json:"value"`
	Loc   errors.Location `json:"loc"`
}

func (v *FloatValue) GetKind() string {
	return kinds.FloatValue
}

func (v *FloatValue) Location() errors.Location {
	return v.Loc
}

func (v *FloatValue) GetValue() interface{} {
	return v.Value
}

func (v *FloatValue) String() string {
	return v.Value
}

type StringValue struct {
	Kind  string          `json:"kind"`
	Value string          `json:"value"`
	Loc   errors.Location `json:"loc"`
}

func (v *StringValue) GetKind() string {
	return kinds.StringValue
}

func (v *StringValue) Location() errors.Location {
	return v.Loc
}

func (v *StringValue) GetValue() interface{} {
	return v.Value
}

func (v *StringValue) String() string {
	return `"` + v.Value + `"`
}

type BooleanValue struct {
	Kind  string          `json:"kind"`
	Value bool            `json:"value"`
	Loc   errors.Location `json:"loc"`
}

func (v *BooleanValue) GetKind() string {
	return kinds.BooleanValue
}

func (v *BooleanValue) Location() errors.Location {
	return v.Loc
}

func (v *BooleanValue) GetValue() interface{} {
	return v.Value
}

func (v *BooleanValue) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

type NullValue struct {
	Kind string          `json:"kind"`
	Loc  errors.Location `json:"loc"`
}

func (v *NullValue) GetKind() string {
	return kinds.NullValue
}

func (v *NullValue) Location() errors.Location {
	return v.Loc
}

func (v *NullValue) GetValue() interface{} {
	return nil
}

func (v *NullValue) String() string {
	return "null"
}

type EnumValue struct {
	Kind  string          `json:"kind"`
	Value string          `json:"value"`
	Loc   errors.Location `json:"loc"`
}

func (v *EnumValue) GetKind() string {
	return kinds.EnumValue
}

func (v *EnumValue) Location() errors.Location {
	return v.Loc
}

func (v *EnumValue) GetValue() interface{} {
	return v.Value
}

func (v *EnumValue) String() string {
	return v.Value
}

type ListValue struct {
	Kind   string          `json:"kind"`
	Values []Value         `json:"values"`
	Loc    errors.Location `json:"loc"`
}

func (v *ListValue) GetKind() string {
	return kinds.ListValue
}

func (v *ListValue) Location() errors.Location {
	return v.Loc
}

func (v *ListValue) GetValue() interface{} {
	return v.Values
}

func (v *ListValue) String() string {
	parts := make([]string, len(v.Values))
	for i, val := range v.Values {
		parts[i] = val.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type ObjectValue struct {
	Kind   string          `json:"kind"`
	Fields []*ObjectField  `json:"fields"`
	Loc    errors.Location `json:"loc"`
}

func (v *ObjectValue) GetKind() string {
	return kinds.ObjectValue
}

func (v *ObjectValue) Location() errors.Location {
	return v.Loc
}

func (v *ObjectValue) GetValue() interface{} {
	return v.Fields
}

func (v *ObjectValue) String() string {
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = f.Name.Name + ": " + f.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

type ObjectField struct {
	Kind  string          `json:"kind"`
	Name  *Name           `json:"name"`
	Value Value           `json:"value"`
	Loc   errors.Location `json:"loc"`
}

func (f *ObjectField) GetKind() string {
	return kinds.ObjectField
}

func (f *ObjectField) Location() errors.Location {
	return f.Loc
}
