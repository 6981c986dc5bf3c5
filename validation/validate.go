package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/schema"
	"github.com/bjonica/graphql/system"
	"github.com/bjonica/graphql/system/ast"
)

// Result is the validated operation document: the AST annotated with spec
// identifiers, the per-operation overlay registry, and the accumulated
// errors in document pre-order.
type Result struct {
	Schema  *schema.Schema
	Doc     *system.Document
	Overlay *Overlay
	Errors  errors.MultiError
}

type context struct {
	schema  *schema.Schema
	doc     *system.Document
	overlay *Overlay
	opHash  string
	errs    errors.MultiError
	only    map[string]bool
	used    map[string]bool
}

// Validate walks the document against the schema registry, annotates every
// selection, argument and variable with its spec identifier, and enforces
// the requested rules (all of them when none are named). It accumulates
// errors and never exits early.
func Validate(s *schema.Schema, doc *system.Document, opHash string, ruleNames ...string) *Result {
	c := &context{
		schema:  s,
		doc:     doc,
		overlay: newOverlay(s.Registry),
		opHash:  opHash,
		used:    make(map[string]bool),
	}
	if len(ruleNames) > 0 {
		c.only = make(map[string]bool, len(ruleNames))
		for _, name := range ruleNames {
			c.only[name] = true
		}
	}

	for _, op := range doc.Operations {
		c.validateOperation(op)
	}
	for _, frag := range doc.Fragments {
		c.validateFragment(frag)
	}
	for _, r := range ruleTable {
		if r.document != nil && c.enabled(r.name) {
			r.document(c)
		}
	}

	return &Result{Schema: s, Doc: doc, Overlay: c.overlay, Errors: c.errs}
}

func (c *context) enabled(name string) bool {
	if c.only == nil {
		return true
	}
	return c.only[name]
}

func (c *context) addErr(loc errors.Location, rule string, format string, args ...interface{}) {
	c.errs = append(c.errs, errors.NewLocated(loc, format, args...).WithRule(rule))
}

func (c *context) fireField(e *fieldEvent) {
	for _, r := range ruleTable {
		if r.field != nil && c.enabled(r.name) {
			r.field(c, e)
		}
	}
}

func (c *context) fireArguments(e *argumentsEvent) {
	for _, r := range ruleTable {
		if r.arguments != nil && c.enabled(r.name) {
			r.arguments(c, e)
		}
	}
}

func (c *context) fireVariable(v *ast.VariableDefinition, typeDesc *schema.Descriptor, typeName string) {
	for _, r := range ruleTable {
		if r.variable != nil && c.enabled(r.name) {
			r.variable(c, v, typeDesc, typeName)
		}
	}
}

func (c *context) fireFragment(e *fragmentEvent) {
	for _, r := range ruleTable {
		if r.fragment != nil && c.enabled(r.name) {
			r.fragment(c, e)
		}
	}
}

func (c *context) fireSpread(s *ast.FragmentSpread) {
	for _, r := range ruleTable {
		if r.spread != nil && c.enabled(r.name) {
			r.spread(c, s)
		}
	}
}

func (c *context) fireDirective(d *ast.Directive, location string) {
	for _, r := range ruleTable {
		if r.directive != nil && c.enabled(r.name) {
			r.directive(c, d, location)
		}
	}
}

func (c *context) validateOperation(op *ast.OperationDefinition) {
	c.directives(op.Directives, strings.ToUpper(string(op.Operation)))

	for _, v := range op.Vars {
		c.declareVariable(v)
	}

	rootSpec, ok := c.schema.RootSpec(op.Operation)
	if !ok {
		c.addErr(op.Loc, "", "Schema does not define a %s root type.", op.Operation)
		return
	}
	rootDesc, err := c.overlay.Resolve(rootSpec)
	if err != nil {
		c.errs = append(c.errs, err)
		return
	}
	c.selectionSet(op.SelectionSet, rootDesc, rootDesc.TypeName)
}

// declareVariable mints the operation-scoped spec for a variable and its
// wrapper descriptors into the overlay.
func (c *context) declareVariable(v *ast.VariableDefinition) {
	name := v.Var.Name.Name
	varSpec := schema.VarSpec(c.opHash, name)
	v.Spec = string(varSpec)

	target, baseName := c.overlay.Local().RefSpec(c.schema.Hash, v.Type, varSpec)
	c.overlay.Local().Add(varSpec, &schema.Descriptor{
		Kind:     schema.Alias,
		Aliased:  target,
		Default:  v.DefaultValue,
		Required: isNonNull(v.Type) && v.DefaultValue == nil,
	})
	c.overlay.Vars[name] = varSpec

	var typeDesc *schema.Descriptor
	if ts, ok := c.schema.Type(baseName); ok {
		typeDesc, _ = c.overlay.Resolve(ts)
	}
	c.fireVariable(v, typeDesc, baseName)
}

func (c *context) validateFragment(frag *ast.FragmentDefinition) {
	name := frag.Name.Name
	fragSpec := schema.FragSpec(c.opHash, name)
	frag.Spec = string(fragSpec)

	e := &fragmentEvent{name: name, cond: frag.TypeCondition, loc: frag.Loc}
	if ts, ok := c.schema.Type(frag.TypeCondition.Name.Name); ok {
		e.condDesc, _ = c.overlay.Resolve(ts)
		c.overlay.Local().Add(fragSpec, &schema.Descriptor{Kind: schema.Alias, Aliased: ts})
		c.overlay.Frags[name] = fragSpec
	}
	c.fireFragment(e)
	c.directives(frag.Directives, "FRAGMENT_DEFINITION")
	cond := e.condDesc
	if cond != nil && !cond.IsComposite() {
		cond = nil
	}
	c.selectionSet(frag.SelectionSet, cond, frag.TypeCondition.Name.Name)
}

// selectionSet validates the selections against the parent descriptor.
// parent is nil below an unresolvable field so errors do not cascade past
// the first resolvable ancestor.
func (c *context) selectionSet(set *ast.SelectionSet, parent *schema.Descriptor, parentName string) {
	if set == nil {
		return
	}
	for _, sel := range set.Selections {
		switch sel := sel.(type) {
		case *ast.Field:
			c.validateField(sel, parent, parentName)
		case *ast.InlineFragment:
			e := &fragmentEvent{cond: sel.TypeCondition, loc: sel.Loc}
			next, nextName := parent, parentName
			if sel.TypeCondition != nil {
				next, nextName = nil, sel.TypeCondition.Name.Name
				if ts, ok := c.schema.Type(nextName); ok {
					e.condDesc, _ = c.overlay.Resolve(ts)
				}
				if e.condDesc != nil && e.condDesc.IsComposite() {
					next = e.condDesc
				}
			}
			c.fireFragment(e)
			c.directives(sel.Directives, "INLINE_FRAGMENT")
			c.selectionSet(sel.SelectionSet, next, nextName)
		case *ast.FragmentSpread:
			c.used[sel.Name.Name] = true
			sel.Spec = string(schema.FragSpec(c.opHash, sel.Name.Name))
			c.fireSpread(sel)
			c.directives(sel.Directives, "FRAGMENT_SPREAD")
		}
	}
}

func (c *context) validateField(f *ast.Field, parent *schema.Descriptor, parentName string) {
	e := &fieldEvent{field: f, parent: parent, parentName: parentName}
	var nextParent *schema.Descriptor
	var nextName string

	if parent != nil {
		if f.Name.Name == "__typename" {
			e.fieldSpec = schema.StringSpec
			f.Spec = string(schema.StringSpec)
			e.fieldType, _ = c.overlay.Resolve(schema.StringSpec)
		} else if fs, ok := c.schema.Registry.FieldsOf(parent)[f.Name.Name]; ok {
			e.fieldSpec = fs
			f.Spec = string(fs)
			e.fieldType, _ = c.overlay.Resolve(fs)
			if base, err := c.overlay.Base(fs); err == nil && base.IsComposite() {
				nextParent, nextName = base, base.TypeName
			}
		}
	}
	c.fireField(e)

	if parent != nil {
		decls := c.argumentDecls(f, e.fieldSpec)
		for _, arg := range f.Arguments {
			if ds, ok := decls[arg.Name.Name]; ok {
				arg.Spec = string(ds)
			}
		}
		c.fireArguments(&argumentsEvent{
			owner:   fmt.Sprintf("field '%s' of type '%s'", f.Name.Name, parentName),
			subject: fmt.Sprintf("Field '%s'", f.Name.Name),
			loc:     f.Name.Loc,
			decls:   decls,
			args:    f.Arguments,
		})
	}

	c.directives(f.Directives, "FIELD")

	if f.SelectionSet != nil {
		c.selectionSet(f.SelectionSet, nextParent, nextName)
	}
}

// argumentDecls returns the declared argument specs of a resolved field,
// an empty map for declared fields without arguments, and nil when the
// field itself is unknown.
func (c *context) argumentDecls(f *ast.Field, fieldSpec schema.Spec) map[string]schema.Spec {
	if fieldSpec == "" {
		return nil
	}
	if f.Name.Name == "__typename" {
		return map[string]schema.Spec{}
	}
	if d, ok := c.overlay.Get(fieldSpec); ok && d.Kind == schema.Alias {
		if d.Args != nil {
			return d.Args
		}
		return map[string]schema.Spec{}
	}
	return nil
}

func (c *context) directives(dirs []*ast.Directive, location string) {
	for _, d := range dirs {
		c.fireDirective(d, location)
		var decls map[string]schema.Spec
		if dir, ok := c.schema.Directive(d.Name.Name); ok {
			decls = dir.Args
		}
		for _, a := range d.Args {
			if ds, ok := decls[a.Name.Name]; ok {
				a.Spec = string(ds)
			}
		}
		c.fireArguments(&argumentsEvent{
			owner:   fmt.Sprintf("directive '@%s'", d.Name.Name),
			subject: fmt.Sprintf("Directive '@%s'", d.Name.Name),
			loc:     d.Name.Loc,
			decls:   decls,
			args:    d.Args,
		})
	}
}

// checkValue validates a literal against the spec of its position. A
// variable reference defers to the allowed-position check; unknown specs
// pass (their own rule reported them).
func (c *context) checkValue(v ast.Value, spec schema.Spec) (bool, string) {
	if vv, ok := v.(*ast.Variable); ok {
		if c.enabled(RuleVariablesInAllowedPosition) {
			c.checkVariableUsage(vv, spec)
		}
		return true, ""
	}
	d, err := c.overlay.Resolve(spec)
	if err != nil {
		return true, ""
	}
	if d.Kind == schema.NonNull {
		if isNullValue(v) {
			return false, fmt.Sprintf("Expected '%s', found null.", c.typeString(spec))
		}
		return c.checkValue(v, d.Inner)
	}
	if isNullValue(v) {
		return true, ""
	}

	switch d.Kind {
	case schema.Scalar:
		if checkScalarLiteral(v, d.TypeName) {
			return true, ""
		}
		return false, fmt.Sprintf("Expected type '%s', found %s.", d.TypeName, v.String())
	case schema.Enum:
		if ev, ok := v.(*ast.EnumValue); ok {
			for _, value := range d.Values {
				if value == ev.Value {
					return true, ""
				}
			}
		}
		return false, fmt.Sprintf("Expected type '%s', found %s.", d.TypeName, v.String())
	case schema.List:
		list, ok := v.(*ast.ListValue)
		if !ok {
			// single value coerces to a one-element list
			return c.checkValue(v, d.Inner)
		}
		for i, item := range list.Values {
			if ok, reason := c.checkValue(item, d.Inner); !ok {
				return false, fmt.Sprintf("In element #%d: %s", i, reason)
			}
		}
		return true, ""
	case schema.InputObject:
		obj, ok := v.(*ast.ObjectValue)
		if !ok {
			return false, fmt.Sprintf("Expected '%s', found not an object.", d.TypeName)
		}
		for _, f := range obj.Fields {
			fs, ok := d.Fields[f.Name.Name]
			if !ok {
				return false, fmt.Sprintf("In field '%s': Unknown field.", f.Name.Name)
			}
			if ok, reason := c.checkValue(f.Value, fs); !ok {
				return false, fmt.Sprintf("In field '%s': %s", f.Name.Name, reason)
			}
		}
		for name, fs := range d.Fields {
			fd, ok := c.overlay.Get(fs)
			if !ok || !fd.Required {
				continue
			}
			if findObjectField(obj, name) == nil {
				return false, fmt.Sprintf("In field '%s': Expected '%s', found null.", name, c.typeString(fs))
			}
		}
		return true, ""
	}
	return true, ""
}

// checkVariableUsage enforces VariablesInAllowedPosition at a usage site.
func (c *context) checkVariableUsage(v *ast.Variable, argSpec schema.Spec) {
	varSpec, ok := c.overlay.Vars[v.Name.Name]
	if !ok {
		return
	}
	vd, ok := c.overlay.Get(varSpec)
	if !ok {
		return
	}
	hasDefault := vd.Default != nil
	if !c.specAllowed(vd.Aliased, argSpec, hasDefault) {
		c.addErr(v.Loc, RuleVariablesInAllowedPosition,
			"Variable '$%s' of type '%s' used in position expecting type '%s'.",
			v.Name.Name, c.typeString(vd.Aliased), c.typeString(argSpec))
	}
}

func (c *context) specAllowed(varSpec, argSpec schema.Spec, varHasDefault bool) bool {
	v, errV := c.overlay.Resolve(varSpec)
	a, errA := c.overlay.Resolve(argSpec)
	if errV != nil || errA != nil {
		return true
	}
	return c.descAllowed(v, a, varHasDefault)
}

func (c *context) descAllowed(v, a *schema.Descriptor, varHasDefault bool) bool {
	resolve := func(s schema.Spec) *schema.Descriptor {
		d, err := c.overlay.Resolve(s)
		if err != nil {
			return nil
		}
		return d
	}
	if a.Kind == schema.NonNull {
		inner := resolve(a.Inner)
		if inner == nil {
			return true
		}
		if v.Kind == schema.NonNull {
			vi := resolve(v.Inner)
			return vi == nil || c.descAllowed(vi, inner, false)
		}
		if varHasDefault {
			return c.descAllowed(v, inner, false)
		}
		return false
	}
	if v.Kind == schema.NonNull {
		vi := resolve(v.Inner)
		return vi == nil || c.descAllowed(vi, a, false)
	}
	if a.Kind == schema.List {
		if v.Kind != schema.List {
			return false
		}
		vi, ai := resolve(v.Inner), resolve(a.Inner)
		return vi == nil || ai == nil || c.descAllowed(vi, ai, false)
	}
	if v.Kind == schema.List {
		return false
	}
	return v.TypeName == a.TypeName
}

// typeString renders a spec the way the schema language spells the type.
func (c *context) typeString(s schema.Spec) string {
	d, ok := c.overlay.Get(s)
	if !ok {
		return string(s)
	}
	switch d.Kind {
	case schema.Alias:
		return c.typeString(d.Aliased)
	case schema.List:
		return "[" + c.typeString(d.Inner) + "]"
	case schema.NonNull:
		return c.typeString(d.Inner) + "!"
	default:
		return d.TypeName
	}
}

func checkScalarLiteral(v ast.Value, name string) bool {
	switch name {
	case "Int":
		iv, ok := v.(*ast.IntValue)
		if !ok {
			return false
		}
		n, err := strconv.ParseInt(iv.Value, 10, 64)
		return err == nil && n >= -1<<31 && n < 1<<31
	case "Float":
		switch v.(type) {
		case *ast.IntValue, *ast.FloatValue:
			return true
		}
		return false
	case "String":
		_, ok := v.(*ast.StringValue)
		return ok
	case "Boolean":
		_, ok := v.(*ast.BooleanValue)
		return ok
	case "ID":
		switch v.(type) {
		case *ast.IntValue, *ast.StringValue:
			return true
		}
		return false
	default:
		// declared scalars carry no coercion rules, any literal passes
		return true
	}
}

func isNullValue(v ast.Value) bool {
	_, ok := v.(*ast.NullValue)
	return ok
}

func findObjectField(obj *ast.ObjectValue, name string) *ast.ObjectField {
	for _, f := range obj.Fields {
		if f.Name.Name == name {
			return f
		}
	}
	return nil
}

func isNonNull(t ast.Type) bool {
	_, ok := t.(*ast.NonNull)
	return ok
}
