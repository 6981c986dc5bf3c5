package schema

import (
	"fmt"
	"hash/fnv"
)

// Spec is a stable symbolic name for a type, field, argument, variable or
// fragment within a schema or operation scope. Specs are the only
// cross-component reference: the validator stamps them onto AST nodes and
// the executor resolves them through the registry, nodes are never passed
// by pointer between components.
//
// Shapes:
//
//	spec.<hash>.<Type>              named type
//	spec.<hash>.<Type>/<field>      field
//	arg.<hash>.<Type>.<field>/<arg> field argument
//	arg.@<directive>/<arg>          built-in directive argument (no hash)
//	var.<hash>/<name>               operation variable
//	frag.<hash>/<name>              fragment
//
// Wrapper levels append #list / #nonnull segments to their owner's spec,
// outermost first. The five built-in scalars have fixed specs with no
// scope hash.
type Spec string

const (
	IntSpec     Spec = "spec.Int"
	FloatSpec   Spec = "spec.Float"
	StringSpec  Spec = "spec.String"
	BooleanSpec Spec = "spec.Boolean"
	IDSpec      Spec = "spec.ID"
)

var builtinScalars = map[string]Spec{
	"Int":     IntSpec,
	"Float":   FloatSpec,
	"String":  StringSpec,
	"Boolean": BooleanSpec,
	"ID":      IDSpec,
}

// IsBuiltinScalar reports whether name is one of Int, Float, String,
// Boolean, ID.
func IsBuiltinScalar(name string) bool {
	_, ok := builtinScalars[name]
	return ok
}

// Hash derives the scope hash for a schema or operation source text.
// FNV-1a over the raw bytes keeps it deterministic across runs.
func Hash(source string) string {
	h := fnv.New32a()
	h.Write([]byte(source))
	return fmt.Sprintf("%08x", h.Sum32())
}

// TypeSpec names a declared type. Built-in scalars resolve to their fixed
// spec regardless of scope.
func TypeSpec(hash, name string) Spec {
	if s, ok := builtinScalars[name]; ok {
		return s
	}
	return Spec(fmt.Sprintf("spec.%s.%s", hash, name))
}

// FieldSpec names a field declared on a type.
func FieldSpec(hash, typeName, field string) Spec {
	return Spec(fmt.Sprintf("spec.%s.%s/%s", hash, typeName, field))
}

// ArgSpec names an argument declared on a field.
func ArgSpec(hash, typeName, field, arg string) Spec {
	return Spec(fmt.Sprintf("arg.%s.%s.%s/%s", hash, typeName, field, arg))
}

// DirectiveArgSpec names an argument of a directive. The built-in
// directives carry no scope hash.
func DirectiveArgSpec(directive, arg string) Spec {
	return Spec(fmt.Sprintf("arg.@%s/%s", directive, arg))
}

// VarSpec names an operation variable within its operation scope.
func VarSpec(opHash, name string) Spec {
	return Spec(fmt.Sprintf("var.%s/%s", opHash, name))
}

// FragSpec names a fragment within its operation scope.
func FragSpec(opHash, name string) Spec {
	return Spec(fmt.Sprintf("frag.%s/%s", opHash, name))
}

// ListSpec and NonNullSpec name the wrapper levels of a wrapped type
// reference, anchored at the owning field, argument or variable spec.
func ListSpec(owner Spec) Spec {
	return owner + "#list"
}

func NonNullSpec(owner Spec) Spec {
	return owner + "#nonnull"
}

// ExtensionSpec names the own-fields record of an object type that
// implements interfaces; the object's canonical descriptor is the
// disjunction of this spec and the implemented interface specs.
func ExtensionSpec(typeSpec Spec) Spec {
	return typeSpec + "#own"
}
