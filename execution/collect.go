package execution

import (
	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/system"
	"github.com/bjonica/graphql/system/ast"
)

// fieldGroup is one response key with every field selection that merged
// into it, in source order.
type fieldGroup struct {
	key    string
	fields []*ast.Field
}

// collectFields flattens a selection set into groups keyed by response
// key, preserving first-seen order, splicing fragment spreads and inline
// fragments whose type condition matches the concrete type, and applying
// @skip/@include. visited guards against fragment cycles.
func (e *executor) collectFields(ec *exeContext, typeName string, set *ast.SelectionSet, visited map[string]bool) []*fieldGroup {
	var order []*fieldGroup
	index := make(map[string]*fieldGroup)
	e.collect(ec, typeName, set, visited, index, &order)
	return order
}

func (e *executor) collect(ec *exeContext, typeName string, set *ast.SelectionSet, visited map[string]bool, index map[string]*fieldGroup, order *[]*fieldGroup) {
	if set == nil {
		return
	}
	for _, sel := range set.Selections {
		switch sel := sel.(type) {
		case *ast.Field:
			if !e.include(ec, sel.Directives) {
				continue
			}
			key := sel.ResponseKey()
			g, ok := index[key]
			if !ok {
				g = &fieldGroup{key: key}
				index[key] = g
				*order = append(*order, g)
			}
			g.fields = append(g.fields, sel)
		case *ast.FragmentSpread:
			if !e.include(ec, sel.Directives) {
				continue
			}
			if visited[sel.Name.Name] {
				continue
			}
			visited[sel.Name.Name] = true
			frag := e.doc.Fragment(sel.Name.Name)
			if frag == nil {
				ec.addErr(errors.NewLocated(sel.Name.Loc, "Unknown fragment '%s'.", sel.Name.Name))
				continue
			}
			if !e.schema.Applies(frag.TypeCondition.Name.Name, typeName) {
				continue
			}
			e.collect(ec, typeName, frag.SelectionSet, visited, index, order)
		case *ast.InlineFragment:
			if !e.include(ec, sel.Directives) {
				continue
			}
			if sel.TypeCondition != nil && !e.schema.Applies(sel.TypeCondition.Name.Name, typeName) {
				continue
			}
			e.collect(ec, typeName, sel.SelectionSet, visited, index, order)
		}
	}
}

// include evaluates @skip and @include on a selection.
func (e *executor) include(ec *exeContext, dirs []*ast.Directive) bool {
	for _, d := range dirs {
		switch d.Name.Name {
		case "skip":
			if v, ok := e.directiveIf(ec, d); ok && v {
				return false
			}
		case "include":
			if v, ok := e.directiveIf(ec, d); ok && !v {
				return false
			}
		}
	}
	return true
}

func (e *executor) directiveIf(ec *exeContext, d *ast.Directive) (bool, bool) {
	var arg *ast.Argument
	for _, a := range d.Args {
		if a.Name.Name == "if" {
			arg = a
			break
		}
	}
	if arg == nil {
		ec.addErr(errors.NewLocated(d.Loc, "Directive '%s' argument 'if' of type 'Boolean!' is required but not provided.", d.Name.Name))
		return false, false
	}
	v, _, err := system.ValueToJSON(arg.Value, e.vars)
	if err != nil {
		ec.addErr(err)
		return false, false
	}
	b, ok := v.(bool)
	if !ok {
		ec.addErr(errors.NewLocated(arg.Value.Location(), "Argument 'if' of directive '%s' expected type 'Boolean!', found %v.", d.Name.Name, v))
		return false, false
	}
	return b, true
}

// mergedSelectionSet concatenates the subselections of every field that
// shares a response key.
func mergedSelectionSet(fields []*ast.Field) *ast.SelectionSet {
	merged := &ast.SelectionSet{}
	for _, f := range fields {
		if f.SelectionSet == nil {
			continue
		}
		if merged.Loc.Line == 0 {
			merged.Loc = f.SelectionSet.Loc
		}
		merged.Selections = append(merged.Selections, f.SelectionSet.Selections...)
	}
	return merged
}
