package ast

// Cursor exposes the node under visit together with its parent, the key
// the parent reaches it through, and the path of segments from the root.
// Named nodes contribute their name to the path, container edges their key.
type Cursor struct {
	Node      Node
	Parent    Node
	ParentKey string
	Path      []string
}

// Visitor hooks run on every node: Enter before the children, Leave after.
// Either hook may be nil. Multiple visitors compose in declared order.
type Visitor struct {
	Enter func(*Cursor)
	Leave func(*Cursor)
}

// Walk traverses the tree rooted at node, invoking every visitor's Enter
// hooks pre-order and Leave hooks post-order.
func Walk(node Node, visitors ...Visitor) {
	walk(&Cursor{Node: node}, visitors)
}

func walk(c *Cursor, visitors []Visitor) {
	for _, v := range visitors {
		if v.Enter != nil {
			v.Enter(c)
		}
	}
	for _, edge := range children(c.Node) {
		if edge.node == nil {
			continue
		}
		walk(&Cursor{
			Node:      edge.node,
			Parent:    c.Node,
			ParentKey: edge.key,
			Path:      append(append([]string{}, c.Path...), edge.seg),
		}, visitors)
	}
	for _, v := range visitors {
		if v.Leave != nil {
			v.Leave(c)
		}
	}
}

type childEdge struct {
	key  string
	seg  string
	node Node
}

func edge(key, seg string, node Node) childEdge {
	if seg == "" {
		seg = key
	}
	return childEdge{key: key, seg: seg, node: node}
}

func children(n Node) []childEdge {
	var out []childEdge
	switch n := n.(type) {
	case *Document:
		for _, d := range n.Definition {
			out = append(out, edge("definitions", segName(d), d))
		}
	case *SchemaDefinition:
		for _, o := range n.OperationTypes {
			out = append(out, edge("operationTypes", string(o.Operation), o))
		}
	case *OperationTypeDefinition:
		out = append(out, edge("type", n.Type.Name.Name, n.Type))
	case *ObjectDefinition:
		for _, i := range n.Interfaces {
			out = append(out, edge("interfaces", i.Name.Name, i))
		}
		for _, f := range n.Fields {
			out = append(out, edge("fields", f.Name.Name, f))
		}
	case *InterfaceDefinition:
		for _, f := range n.Fields {
			out = append(out, edge("fields", f.Name.Name, f))
		}
	case *UnionDefinition:
		for _, m := range n.Members {
			out = append(out, edge("members", m.Name.Name, m))
		}
	case *EnumDefinition:
		for _, v := range n.Values {
			out = append(out, edge("values", v.Value.Value, v))
		}
	case *EnumValueDefinition:
		out = append(out, edge("value", n.Value.Value, n.Value))
	case *InputObjectDefinition:
		for _, f := range n.InputFields {
			out = append(out, edge("inputFields", f.Name.Name, f))
		}
	case *FieldDefinition:
		for _, a := range n.Arguments {
			out = append(out, edge("arguments", a.Name.Name, a))
		}
		out = append(out, edge("type", "", n.Type))
	case *InputValueDefinition:
		out = append(out, edge("type", "", n.Type))
		if n.DefaultValue != nil {
			out = append(out, edge("defaultValue", "", n.DefaultValue))
		}
	case *DirectiveDefinition:
		for _, a := range n.Arguments {
			out = append(out, edge("arguments", a.Name.Name, a))
		}
	case *OperationDefinition:
		for _, v := range n.Vars {
			out = append(out, edge("variableDefinitions", v.Var.Name.Name, v))
		}
		for _, d := range n.Directives {
			out = append(out, edge("directives", d.Name.Name, d))
		}
		if n.SelectionSet != nil {
			out = append(out, edge("selectionSet", "", n.SelectionSet))
		}
	case *VariableDefinition:
		out = append(out, edge("type", "", n.Type))
		if n.DefaultValue != nil {
			out = append(out, edge("defaultValue", "", n.DefaultValue))
		}
	case *SelectionSet:
		for _, s := range n.Selections {
			out = append(out, edge("selections", segName(s), s))
		}
	case *Field:
		for _, a := range n.Arguments {
			out = append(out, edge("arguments", a.Name.Name, a))
		}
		for _, d := range n.Directives {
			out = append(out, edge("directives", d.Name.Name, d))
		}
		if n.SelectionSet != nil {
			out = append(out, edge("selectionSet", "", n.SelectionSet))
		}
	case *Argument:
		out = append(out, edge("value", "", n.Value))
	case *FragmentDefinition:
		out = append(out, edge("typeCondition", n.TypeCondition.Name.Name, n.TypeCondition))
		for _, d := range n.Directives {
			out = append(out, edge("directives", d.Name.Name, d))
		}
		if n.SelectionSet != nil {
			out = append(out, edge("selectionSet", "", n.SelectionSet))
		}
	case *FragmentSpread:
		for _, d := range n.Directives {
			out = append(out, edge("directives", d.Name.Name, d))
		}
	case *InlineFragment:
		if n.TypeCondition != nil {
			out = append(out, edge("typeCondition", n.TypeCondition.Name.Name, n.TypeCondition))
		}
		for _, d := range n.Directives {
			out = append(out, edge("directives", d.Name.Name, d))
		}
		if n.SelectionSet != nil {
			out = append(out, edge("selectionSet", "", n.SelectionSet))
		}
	case *Directive:
		for _, a := range n.Args {
			out = append(out, edge("arguments", a.Name.Name, a))
		}
	case *List:
		out = append(out, edge("type", "", n.Type))
	case *NonNull:
		out = append(out, edge("type", "", n.Type))
	case *ListValue:
		for _, v := range n.Values {
			out = append(out, edge("values", "", v))
		}
	case *ObjectValue:
		for _, f := range n.Fields {
			out = append(out, edge("fields", f.Name.Name, f))
		}
	case *ObjectField:
		out = append(out, edge("value", "", n.Value))
	}
	return out
}

func segName(n Node) string {
	switch n := n.(type) {
	case TypeDefinition:
		return n.TypeName()
	case *OperationDefinition:
		if n.Name != nil {
			return n.Name.Name
		}
	case *FragmentDefinition:
		return n.Name.Name
	case *FragmentSpread:
		return n.Name.Name
	case *Field:
		return n.Name.Name
	case *DirectiveDefinition:
		return "@" + n.Name.Name
	}
	return ""
}
