package schema

import (
	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/system"
	"github.com/bjonica/graphql/system/ast"
)

// Directive is a declared or built-in directive with its argument specs.
type Directive struct {
	Name      string
	Args      map[string]Spec
	Locations []string
}

// Schema is the immutable output of Build: the spec registry plus the
// root operation specs and name-based indexes. It is safe to share across
// concurrent validations and executions.
type Schema struct {
	Hash     string
	Registry *Registry

	TypeSpecs map[string]Spec

	QuerySpec        Spec
	MutationSpec     Spec
	SubscriptionSpec Spec

	Directives map[string]*Directive

	possible map[string][]string
}

// Type resolves a declared (or built-in scalar) type name to its spec.
func (s *Schema) Type(name string) (Spec, bool) {
	if spec, ok := builtinScalars[name]; ok {
		return spec, true
	}
	spec, ok := s.TypeSpecs[name]
	return spec, ok
}

// RootSpec returns the root type spec for an operation kind.
func (s *Schema) RootSpec(op ast.OperationType) (Spec, bool) {
	switch op {
	case ast.Query:
		return s.QuerySpec, s.QuerySpec != ""
	case ast.Mutation:
		return s.MutationSpec, s.MutationSpec != ""
	case ast.Subscription:
		return s.SubscriptionSpec, s.SubscriptionSpec != ""
	}
	return "", false
}

// Directive returns the declared directive by name.
func (s *Schema) Directive(name string) (*Directive, bool) {
	d, ok := s.Directives[name]
	return d, ok
}

// PossibleTypes returns the concrete object type names a composite type
// name can resolve to at runtime.
func (s *Schema) PossibleTypes(name string) []string {
	if types, ok := s.possible[name]; ok {
		return types
	}
	if _, ok := s.TypeSpecs[name]; ok {
		return []string{name}
	}
	return nil
}

// Applies reports whether a fragment with the given type condition applies
// to a concrete object type.
func (s *Schema) Applies(condition, concrete string) bool {
	if condition == "" || condition == concrete {
		return true
	}
	for _, t := range s.PossibleTypes(condition) {
		if t == concrete {
			return true
		}
	}
	return false
}

type typeRef struct {
	name string
	loc  errors.Location
}

type builder struct {
	schema    *Schema
	errs      errors.MultiError
	refs      []typeRef
	canonical map[string]ast.Definition
}

// Build parses a schema document and derives the spec registry from it.
func Build(source string) (*Schema, errors.MultiError) {
	doc, err := system.ParseDocument(source)
	if err != nil {
		return nil, errors.MultiError{err}
	}
	return BuildDocument(doc, Hash(source))
}

// BuildDocument builds the registry from an already-parsed schema AST.
// The hash scopes every spec the builder mints.
func BuildDocument(doc *ast.Document, hash string) (*Schema, errors.MultiError) {
	b := &builder{
		schema: &Schema{
			Hash:       hash,
			Registry:   NewRegistry(),
			TypeSpecs:  make(map[string]Spec),
			Directives: make(map[string]*Directive),
			possible:   make(map[string][]string),
		},
		canonical: make(map[string]ast.Definition),
	}

	b.registerBuiltins()
	b.collect(doc)
	for _, def := range doc.Definition {
		b.register(def)
	}
	b.roots(doc)
	b.link()

	if len(b.errs) > 0 {
		return nil, b.errs
	}
	return b.schema, nil
}

func (b *builder) addErr(loc errors.Location, format string, args ...interface{}) {
	b.errs = append(b.errs, errors.NewLocated(loc, format, args...))
}

func (b *builder) add(s Spec, d *Descriptor) {
	if err := b.schema.Registry.add(s, d); err != nil {
		b.errs = append(b.errs, err)
	}
}

func (b *builder) registerBuiltins() {
	for name, spec := range builtinScalars {
		b.add(spec, &Descriptor{Kind: Scalar, TypeName: name})
	}
	for _, name := range []string{"include", "skip"} {
		argSpec := DirectiveArgSpec(name, "if")
		wrapped := NonNullSpec(argSpec)
		b.add(wrapped, &Descriptor{Kind: NonNull, Inner: BooleanSpec})
		b.add(argSpec, &Descriptor{Kind: Alias, Aliased: wrapped, Required: true})
		b.schema.Directives[name] = &Directive{
			Name:      name,
			Args:      map[string]Spec{"if": argSpec},
			Locations: []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
		}
	}
}

// collect indexes declared type names before descriptors are minted, so
// forward and recursive references resolve, and gathers every referenced
// type name for the link pass.
func (b *builder) collect(doc *ast.Document) {
	for _, def := range doc.Definition {
		t, ok := def.(ast.TypeDefinition)
		if !ok {
			continue
		}
		name := t.TypeName()
		if IsBuiltinScalar(name) {
			b.addErr(def.Location(), "Type %q shadows a built-in scalar.", name)
			continue
		}
		if _, ok := b.schema.TypeSpecs[name]; ok {
			b.addErr(def.Location(), "Duplicate type %q.", name)
			continue
		}
		b.schema.TypeSpecs[name] = TypeSpec(b.schema.Hash, name)
		b.canonical[name] = def
	}

	ast.Walk(doc, ast.Visitor{Enter: func(c *ast.Cursor) {
		named, ok := c.Node.(*ast.Named)
		if !ok {
			return
		}
		switch c.ParentKey {
		case "type", "interfaces", "members":
			b.refs = append(b.refs, typeRef{name: named.Name.Name, loc: named.Loc})
		}
	}})
}

func (b *builder) register(def ast.Definition) {
	// duplicate and builtin-shadowing definitions were rejected in collect
	if td, ok := def.(ast.TypeDefinition); ok && b.canonical[td.TypeName()] != def {
		return
	}
	switch def := def.(type) {
	case *ast.ScalarDefinition:
		b.add(TypeSpec(b.schema.Hash, def.Name.Name), &Descriptor{Kind: Scalar, TypeName: def.Name.Name})
	case *ast.EnumDefinition:
		values := make([]string, len(def.Values))
		for i, v := range def.Values {
			values[i] = v.Value.Value
		}
		b.add(TypeSpec(b.schema.Hash, def.Name.Name), &Descriptor{Kind: Enum, TypeName: def.Name.Name, Values: values})
	case *ast.UnionDefinition:
		members := make([]Spec, len(def.Members))
		for i, m := range def.Members {
			members[i] = TypeSpec(b.schema.Hash, m.Name.Name)
			b.schema.possible[def.Name.Name] = append(b.schema.possible[def.Name.Name], m.Name.Name)
		}
		b.add(TypeSpec(b.schema.Hash, def.Name.Name), &Descriptor{Kind: Union, TypeName: def.Name.Name, Members: members})
	case *ast.InterfaceDefinition:
		fields := b.registerFields(def.Name.Name, def.Fields)
		b.add(TypeSpec(b.schema.Hash, def.Name.Name), &Descriptor{Kind: Interface, TypeName: def.Name.Name, Fields: fields})
	case *ast.InputObjectDefinition:
		fields := b.registerInputFields(def.Name.Name, def.InputFields)
		b.add(TypeSpec(b.schema.Hash, def.Name.Name), &Descriptor{Kind: InputObject, TypeName: def.Name.Name, Fields: fields})
	case *ast.ObjectDefinition:
		b.registerObject(def)
	case *ast.DirectiveDefinition:
		b.registerDirective(def)
	}
}

func (b *builder) registerObject(def *ast.ObjectDefinition) {
	name := def.Name.Name
	typeSpec := TypeSpec(b.schema.Hash, name)
	fields := b.registerFields(name, def.Fields)

	if len(def.Interfaces) == 0 {
		b.add(typeSpec, &Descriptor{Kind: Object, TypeName: name, Fields: fields})
		return
	}

	// Objects implementing interfaces keep their own fields under an
	// extension spec; the canonical spec is the disjunction of extension
	// and interface specs.
	ext := ExtensionSpec(typeSpec)
	b.add(ext, &Descriptor{Kind: Object, TypeName: name, Fields: fields})
	members := []Spec{ext}
	for _, iface := range def.Interfaces {
		members = append(members, TypeSpec(b.schema.Hash, iface.Name.Name))
		b.schema.possible[iface.Name.Name] = append(b.schema.possible[iface.Name.Name], name)
	}
	b.add(typeSpec, &Descriptor{Kind: Object, TypeName: name, Members: members})
}

func (b *builder) registerFields(typeName string, defs []*ast.FieldDefinition) map[string]Spec {
	fields := make(map[string]Spec, len(defs))
	for _, f := range defs {
		fieldName := f.Name.Name
		if _, ok := fields[fieldName]; ok {
			b.addErr(f.Loc, "Duplicate field %q on type %q.", fieldName, typeName)
			continue
		}
		fieldSpec := FieldSpec(b.schema.Hash, typeName, fieldName)
		target, base := b.schema.Registry.RefSpec(b.schema.Hash, f.Type, fieldSpec)

		args := make(map[string]Spec, len(f.Arguments))
		for _, a := range f.Arguments {
			argName := a.Name.Name
			if _, ok := args[argName]; ok {
				b.addErr(a.Loc, "Duplicate argument %q on field %q.", argName, fieldName)
				continue
			}
			argSpec := ArgSpec(b.schema.Hash, typeName, fieldName, argName)
			argTarget, _ := b.schema.Registry.RefSpec(b.schema.Hash, a.Type, argSpec)
			b.add(argSpec, &Descriptor{
				Kind:     Alias,
				Aliased:  argTarget,
				Default:  a.DefaultValue,
				Required: isNonNull(a.Type) && a.DefaultValue == nil,
			})
			args[argName] = argSpec
		}

		b.add(fieldSpec, &Descriptor{
			Kind:      Alias,
			Aliased:   target,
			Args:      args,
			Recursive: base == typeName,
		})
		fields[fieldName] = fieldSpec
	}
	return fields
}

func (b *builder) registerInputFields(typeName string, defs []*ast.InputValueDefinition) map[string]Spec {
	fields := make(map[string]Spec, len(defs))
	for _, f := range defs {
		fieldName := f.Name.Name
		if _, ok := fields[fieldName]; ok {
			b.addErr(f.Loc, "Duplicate field %q on type %q.", fieldName, typeName)
			continue
		}
		fieldSpec := FieldSpec(b.schema.Hash, typeName, fieldName)
		target, base := b.schema.Registry.RefSpec(b.schema.Hash, f.Type, fieldSpec)
		b.add(fieldSpec, &Descriptor{
			Kind:      Alias,
			Aliased:   target,
			Default:   f.DefaultValue,
			Required:  isNonNull(f.Type) && f.DefaultValue == nil,
			Recursive: base == typeName,
		})
		fields[fieldName] = fieldSpec
	}
	return fields
}

func (b *builder) registerDirective(def *ast.DirectiveDefinition) {
	name := def.Name.Name
	if _, ok := b.schema.Directives[name]; ok {
		b.addErr(def.Loc, "Duplicate directive %q.", name)
		return
	}
	args := make(map[string]Spec, len(def.Arguments))
	for _, a := range def.Arguments {
		argSpec := DirectiveArgSpec(name, a.Name.Name)
		target, _ := b.schema.Registry.RefSpec(b.schema.Hash, a.Type, argSpec)
		b.add(argSpec, &Descriptor{
			Kind:     Alias,
			Aliased:  target,
			Default:  a.DefaultValue,
			Required: isNonNull(a.Type) && a.DefaultValue == nil,
		})
		args[a.Name.Name] = argSpec
	}
	b.schema.Directives[name] = &Directive{Name: name, Args: args, Locations: def.Locations}
}

func (b *builder) roots(doc *ast.Document) {
	var schemaDef *ast.SchemaDefinition
	for _, def := range doc.Definition {
		if s, ok := def.(*ast.SchemaDefinition); ok {
			if schemaDef != nil {
				b.addErr(s.Loc, "Must provide only one schema definition.")
				continue
			}
			schemaDef = s
		}
	}

	assign := func(op ast.OperationType, spec Spec) {
		switch op {
		case ast.Query:
			b.schema.QuerySpec = spec
		case ast.Mutation:
			b.schema.MutationSpec = spec
		case ast.Subscription:
			b.schema.SubscriptionSpec = spec
		}
	}

	if schemaDef != nil {
		for _, op := range schemaDef.OperationTypes {
			// unknown root type names surface through the link pass
			if spec, ok := b.schema.TypeSpecs[op.Type.Name.Name]; ok {
				assign(op.Operation, spec)
			}
		}
		return
	}
	for name, op := range map[string]ast.OperationType{
		"Query":        ast.Query,
		"Mutation":     ast.Mutation,
		"Subscription": ast.Subscription,
	} {
		if spec, ok := b.schema.TypeSpecs[name]; ok {
			assign(op, spec)
		}
	}
}

// link runs after all descriptors are minted: verify every referenced
// type name resolves, fold recursive descriptors in, and reject non-null
// input cycles.
func (b *builder) link() {
	for _, ref := range b.refs {
		if IsBuiltinScalar(ref.name) {
			continue
		}
		if _, ok := b.schema.TypeSpecs[ref.name]; !ok {
			b.addErr(ref.loc, "Unknown type %q.", ref.name)
		}
	}
	b.errs = append(b.errs, b.schema.Registry.resolveRecursive()...)
	b.checkInputCycles()
}

// checkInputCycles rejects input objects whose non-null fields chain back
// to themselves: such a value could never be constructed.
func (b *builder) checkInputCycles() {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int)

	var visit func(name string) bool
	visit = func(name string) bool {
		switch state[name] {
		case visiting:
			return true
		case done:
			return false
		}
		state[name] = visiting
		defer func() { state[name] = done }()

		spec, ok := b.schema.TypeSpecs[name]
		if !ok {
			return false
		}
		d, ok := b.schema.Registry.Get(spec)
		if !ok || d.Kind != InputObject {
			return false
		}
		for _, fieldSpec := range d.Fields {
			fd, ok := b.schema.Registry.Get(fieldSpec)
			if !ok || !fd.Required {
				continue
			}
			inner, err := b.schema.Registry.Resolve(fd.Aliased)
			for err == nil && inner.Kind == NonNull {
				inner, err = b.schema.Registry.Resolve(inner.Inner)
			}
			// a list level breaks the chain, an empty list is constructible
			if err != nil || inner.Kind != InputObject {
				continue
			}
			if visit(inner.TypeName) {
				return true
			}
		}
		return false
	}

	for _, def := range b.schema.TypeSpecs {
		d, ok := b.schema.Registry.Get(def)
		if !ok || d.Kind != InputObject {
			continue
		}
		if state[d.TypeName] != unvisited {
			continue
		}
		if visit(d.TypeName) {
			b.errs = append(b.errs, errors.New("Self-referential non-null chain for input type %q.", d.TypeName))
		}
	}
}

func isNonNull(t ast.Type) bool {
	_, ok := t.(*ast.NonNull)
	return ok
}
