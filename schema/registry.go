package schema

import (
	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/system/ast"
)

// Kind tags a descriptor.
type Kind string

const (
	Scalar      Kind = "SCALAR"
	Object      Kind = "OBJECT"
	Interface   Kind = "INTERFACE"
	Union       Kind = "UNION"
	Enum        Kind = "ENUM"
	InputObject Kind = "INPUT_OBJECT"
	List        Kind = "LIST"
	NonNull     Kind = "NOT_NULL"
	Alias       Kind = "ALIAS"
)

// Descriptor describes the type a spec resolves to. It is either direct
// (Kind carries the shape) or an alias referencing another spec.
// A field descriptor is an alias to its declared type plus the declared
// arguments; an argument descriptor is an alias plus default and
// requiredness.
type Descriptor struct {
	Kind     Kind
	TypeName string

	Fields  map[string]Spec // OBJECT / INTERFACE / INPUT_OBJECT
	Inner   Spec            // LIST / NOT_NULL element
	Members []Spec          // UNION members; object extension disjunction
	Values  []string        // ENUM value names

	Aliased  Spec            // ALIAS target
	Args     map[string]Spec // field alias: declared argument specs
	Default  ast.Value       // argument/variable alias: declared default
	Required bool            // argument alias: declared non-null without a default

	Recursive bool
}

// IsLeaf reports whether the descriptor completes without a subselection.
func (d *Descriptor) IsLeaf() bool {
	return d.Kind == Scalar || d.Kind == Enum
}

// IsComposite reports whether the descriptor accepts a subselection or a
// fragment condition.
func (d *Descriptor) IsComposite() bool {
	return d.Kind == Object || d.Kind == Interface || d.Kind == Union
}

// IsInput reports whether the descriptor is usable as a variable or
// argument type.
func (d *Descriptor) IsInput() bool {
	return d.Kind == Scalar || d.Kind == Enum || d.Kind == InputObject
}

// Registry is the spec-map: every declared schema element has exactly one
// descriptor, resolvable by its spec. Recursive descriptors are staged
// separately and folded in by a second, idempotent pass.
type Registry struct {
	specs     map[Spec]*Descriptor
	recursive map[Spec]*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{
		specs:     make(map[Spec]*Descriptor),
		recursive: make(map[Spec]*Descriptor),
	}
}

func (r *Registry) add(s Spec, d *Descriptor) *errors.GraphQLError {
	if _, ok := r.specs[s]; ok {
		return errors.New("Duplicate spec %q.", s)
	}
	if d.Recursive {
		r.recursive[s] = d
		return nil
	}
	r.specs[s] = d
	return nil
}

// Add registers a descriptor. Overlay registries built per operation use
// this for variable and fragment descriptors.
func (r *Registry) Add(s Spec, d *Descriptor) *errors.GraphQLError {
	return r.add(s, d)
}

// Get looks a spec up without following aliases.
func (r *Registry) Get(s Spec) (*Descriptor, bool) {
	d, ok := r.specs[s]
	if !ok {
		d, ok = r.recursive[s]
	}
	return d, ok
}

// Len reports the number of registered descriptors.
func (r *Registry) Len() int {
	return len(r.specs) + len(r.recursive)
}

// Resolve follows alias descriptors until a direct descriptor is reached.
// Alias chains must be acyclic.
func (r *Registry) Resolve(s Spec) (*Descriptor, *errors.GraphQLError) {
	seen := map[Spec]bool{}
	for {
		if seen[s] {
			return nil, errors.New("Alias cycle at spec %q.", s)
		}
		seen[s] = true
		d, ok := r.Get(s)
		if !ok {
			return nil, errors.New("Unknown spec %q.", s)
		}
		if d.Kind != Alias {
			return d, nil
		}
		s = d.Aliased
	}
}

// Base resolves s and additionally unwraps list and non-null levels down
// to the named base descriptor.
func (r *Registry) Base(s Spec) (*Descriptor, *errors.GraphQLError) {
	for {
		d, err := r.Resolve(s)
		if err != nil {
			return nil, err
		}
		if d.Kind != List && d.Kind != NonNull {
			return d, nil
		}
		s = d.Inner
	}
}

// FieldsOf returns the declared field specs of a composite descriptor,
// merging the extension disjunction of objects that implement interfaces.
// Extension members win over interface members for a shared field name.
func (r *Registry) FieldsOf(d *Descriptor) map[string]Spec {
	if len(d.Members) == 0 || d.Kind == Union {
		return d.Fields
	}
	merged := make(map[string]Spec)
	for i := len(d.Members) - 1; i >= 0; i-- {
		member, err := r.Resolve(d.Members[i])
		if err != nil {
			continue
		}
		for name, spec := range r.FieldsOf(member) {
			merged[name] = spec
		}
	}
	return merged
}

// RefSpec registers wrapper descriptors for a type reference anchored at
// owner and returns the spec denoting the reference together with the base
// type name. Wrapper levels take #list / #nonnull segments, outermost
// first.
func (r *Registry) RefSpec(hash string, t ast.Type, owner Spec) (Spec, string) {
	switch t := t.(type) {
	case *ast.Named:
		return TypeSpec(hash, t.Name.Name), t.Name.Name
	case *ast.List:
		s := ListSpec(owner)
		inner, base := r.RefSpec(hash, t.Type, s)
		r.add(s, &Descriptor{Kind: List, Inner: inner})
		return s, base
	case *ast.NonNull:
		s := NonNullSpec(owner)
		inner, base := r.RefSpec(hash, t.Type, s)
		r.add(s, &Descriptor{Kind: NonNull, Inner: inner})
		return s, base
	}
	return "", ""
}

// resolveRecursive folds staged recursive descriptors into the main map
// once their targets exist. Safe to run repeatedly.
func (r *Registry) resolveRecursive() errors.MultiError {
	var errs errors.MultiError
	for s, d := range r.recursive {
		target := d.Aliased
		if d.Kind != Alias {
			target = d.Inner
		}
		if target != "" {
			if _, ok := r.specs[target]; !ok {
				if _, ok := r.recursive[target]; !ok {
					errs = append(errs, errors.New("Recursive spec %q references unknown spec %q.", s, target))
					continue
				}
			}
		}
		r.specs[s] = d
	}
	for s := range r.specs {
		delete(r.recursive, s)
	}
	return errs
}
