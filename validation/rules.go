package validation

import (
	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/schema"
	"github.com/bjonica/graphql/system/ast"
)

// Rule identifiers, exposed for selective validation.
const (
	RuleFieldsOnCorrectType        = "FieldsOnCorrectType"
	RuleKnownArgumentNames         = "KnownArgumentNames"
	RuleProvidedRequiredArguments  = "ProvidedRequiredArguments"
	RuleArgumentsOfCorrectType     = "ArgumentsOfCorrectType"
	RuleVariablesAreInputTypes     = "VariablesAreInputTypes"
	RuleVariablesInAllowedPosition = "VariablesInAllowedPosition"
	RuleNoUnusedFragments          = "NoUnusedFragments"
	RuleKnownFragmentNames         = "KnownFragmentNames"
	RuleFragmentsOnCompositeTypes  = "FragmentsOnCompositeTypes"
	RuleScalarLeafs                = "ScalarLeafs"
	RuleNoSubselectionAllowed      = "NoSubselectionAllowed"
	RuleKnownDirectives            = "KnownDirectives"
)

// AllRules lists every rule in dispatch order.
var AllRules = []string{
	RuleFieldsOnCorrectType,
	RuleKnownArgumentNames,
	RuleProvidedRequiredArguments,
	RuleArgumentsOfCorrectType,
	RuleVariablesAreInputTypes,
	RuleVariablesInAllowedPosition,
	RuleNoUnusedFragments,
	RuleKnownFragmentNames,
	RuleFragmentsOnCompositeTypes,
	RuleScalarLeafs,
	RuleNoSubselectionAllowed,
	RuleKnownDirectives,
}

// fieldEvent binds a field selection to the registry: the parent composite
// descriptor (nil when unresolvable), the declared field spec ("" when the
// field is not declared) and the resolved field type.
type fieldEvent struct {
	field      *ast.Field
	parent     *schema.Descriptor
	parentName string
	fieldSpec  schema.Spec
	fieldType  *schema.Descriptor
}

// argumentsEvent covers one argument-bearing owner: a field or a
// directive. decls is nil when the owner itself is unknown.
type argumentsEvent struct {
	owner   string
	subject string
	loc     errors.Location
	decls   map[string]schema.Spec
	args    []*ast.Argument
}

// fragmentEvent covers fragment definitions and inline fragments. name is
// empty for inline fragments; condDesc is nil when the condition type is
// unknown.
type fragmentEvent struct {
	name     string
	cond     *ast.Named
	condDesc *schema.Descriptor
	loc      errors.Location
}

// rule is one addressable validation rule: a bundle of visitor hooks the
// traversal dispatches in table order. Nil hooks are skipped.
type rule struct {
	name      string
	field     func(c *context, e *fieldEvent)
	arguments func(c *context, e *argumentsEvent)
	variable  func(c *context, v *ast.VariableDefinition, typeDesc *schema.Descriptor, typeName string)
	fragment  func(c *context, e *fragmentEvent)
	spread    func(c *context, s *ast.FragmentSpread)
	directive func(c *context, d *ast.Directive, location string)
	document  func(c *context)
}

var ruleTable = []*rule{
	{
		name: RuleFieldsOnCorrectType,
		field: func(c *context, e *fieldEvent) {
			if e.parent == nil || e.fieldSpec != "" {
				return
			}
			c.addErr(e.field.Name.Loc, RuleFieldsOnCorrectType,
				"Cannot query field '%s' on type '%s'.", e.field.Name.Name, e.parentName)
		},
	},
	{
		name: RuleKnownArgumentNames,
		arguments: func(c *context, e *argumentsEvent) {
			if e.decls == nil {
				return
			}
			for _, arg := range e.args {
				if _, ok := e.decls[arg.Name.Name]; !ok {
					c.addErr(arg.Name.Loc, RuleKnownArgumentNames,
						"Unknown argument '%s' on %s.", arg.Name.Name, e.owner)
				}
			}
		},
	},
	{
		name: RuleProvidedRequiredArguments,
		arguments: func(c *context, e *argumentsEvent) {
			for name, declSpec := range e.decls {
				decl, ok := c.overlay.Get(declSpec)
				if !ok || !decl.Required {
					continue
				}
				if findArgument(e.args, name) == nil {
					c.addErr(e.loc, RuleProvidedRequiredArguments,
						"%s argument '%s' of type '%s' is required but not provided.",
						e.subject, name, c.typeString(declSpec))
				}
			}
		},
	},
	{
		name: RuleArgumentsOfCorrectType,
		arguments: func(c *context, e *argumentsEvent) {
			for _, arg := range e.args {
				declSpec, ok := e.decls[arg.Name.Name]
				if !ok {
					continue
				}
				if ok, reason := c.checkValue(arg.Value, declSpec); !ok {
					c.addErr(arg.Value.Location(), RuleArgumentsOfCorrectType,
						"Argument '%s' has invalid value %s. %s", arg.Name.Name, arg.Value.String(), reason)
				}
			}
		},
	},
	{
		name: RuleVariablesAreInputTypes,
		variable: func(c *context, v *ast.VariableDefinition, typeDesc *schema.Descriptor, typeName string) {
			if typeDesc == nil {
				c.addErr(v.Type.Location(), RuleVariablesAreInputTypes, "Unknown type '%s'.", typeName)
				return
			}
			if !typeDesc.IsInput() {
				c.addErr(v.Loc, RuleVariablesAreInputTypes,
					"Variable '$%s' cannot be non-input type '%s'.", v.Var.Name.Name, v.Type.String())
			}
		},
	},
	// VariablesInAllowedPosition fires from the value checker at each
	// variable usage. When ArgumentsOfCorrectType runs, its value check
	// covers the usages; otherwise this hook walks the argument values.
	{
		name: RuleVariablesInAllowedPosition,
		arguments: func(c *context, e *argumentsEvent) {
			if c.enabled(RuleArgumentsOfCorrectType) {
				return
			}
			for _, arg := range e.args {
				if declSpec, ok := e.decls[arg.Name.Name]; ok {
					c.checkValue(arg.Value, declSpec)
				}
			}
		},
	},
	{
		name: RuleNoUnusedFragments,
		document: func(c *context) {
			for _, frag := range c.doc.Fragments {
				if !c.used[frag.Name.Name] {
					c.addErr(frag.Loc, RuleNoUnusedFragments, "Fragment '%s' is never used.", frag.Name.Name)
				}
			}
		},
	},
	{
		name: RuleKnownFragmentNames,
		spread: func(c *context, s *ast.FragmentSpread) {
			if c.doc.Fragment(s.Name.Name) == nil {
				c.addErr(s.Name.Loc, RuleKnownFragmentNames, "Unknown fragment '%s'.", s.Name.Name)
			}
		},
	},
	{
		name: RuleFragmentsOnCompositeTypes,
		fragment: func(c *context, e *fragmentEvent) {
			if e.cond == nil {
				return
			}
			if e.condDesc == nil {
				c.addErr(e.cond.Loc, RuleFragmentsOnCompositeTypes, "Unknown type '%s'.", e.cond.Name.Name)
				return
			}
			if e.condDesc.IsComposite() {
				return
			}
			if e.name != "" {
				c.addErr(e.cond.Loc, RuleFragmentsOnCompositeTypes,
					"Fragment '%s' cannot condition on non composite type '%s'.", e.name, e.cond.Name.Name)
			} else {
				c.addErr(e.cond.Loc, RuleFragmentsOnCompositeTypes,
					"Fragment cannot condition on non composite type '%s'.", e.cond.Name.Name)
			}
		},
	},
	{
		name: RuleScalarLeafs,
		field: func(c *context, e *fieldEvent) {
			if e.fieldSpec == "" || e.fieldType == nil {
				return
			}
			base, err := c.overlay.Base(e.fieldSpec)
			if err != nil || !base.IsComposite() {
				return
			}
			if e.field.SelectionSet == nil || len(e.field.SelectionSet.Selections) == 0 {
				c.addErr(e.field.Name.Loc, RuleScalarLeafs,
					"Field '%s' of type '%s' must have a selection of subfields.",
					e.field.Name.Name, c.typeString(e.fieldSpec))
			}
		},
	},
	{
		name: RuleNoSubselectionAllowed,
		field: func(c *context, e *fieldEvent) {
			if e.fieldSpec == "" || e.fieldType == nil {
				return
			}
			base, err := c.overlay.Base(e.fieldSpec)
			if err != nil || !base.IsLeaf() {
				return
			}
			if e.field.SelectionSet != nil {
				c.addErr(e.field.Name.Loc, RuleNoSubselectionAllowed,
					"Field '%s' must not have a selection since type '%s' has no subfields.",
					e.field.Name.Name, c.typeString(e.fieldSpec))
			}
		},
	},
	{
		name: RuleKnownDirectives,
		directive: func(c *context, d *ast.Directive, location string) {
			dir, ok := c.schema.Directive(d.Name.Name)
			if !ok {
				c.addErr(d.Name.Loc, RuleKnownDirectives, "Unknown directive '%s'.", d.Name.Name)
				return
			}
			for _, allowed := range dir.Locations {
				if allowed == location {
					return
				}
			}
			c.addErr(d.Name.Loc, RuleKnownDirectives,
				"Directive '%s' may not be used on %s.", d.Name.Name, location)
		},
	},
}

func findArgument(args []*ast.Argument, name string) *ast.Argument {
	for _, a := range args {
		if a.Name.Name == name {
			return a
		}
	}
	return nil
}
