package system

import (
	"fmt"
	"strconv"

	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/system/ast"
	"github.com/bjonica/graphql/system/kinds"
	"github.com/bjonica/graphql/system/token"
)

// Parse parses an executable document and splits it into operations and
// fragments.
func Parse(source string) (*Document, *errors.GraphQLError) {
	doc, err := ParseDocument(source)
	if err != nil {
		return nil, err
	}
	var operations []*ast.OperationDefinition
	var fragments []*ast.FragmentDefinition
	for _, definition := range doc.Definition {
		switch o := definition.(type) {
		case *ast.OperationDefinition:
			operations = append(operations, o)
		case *ast.FragmentDefinition:
			fragments = append(fragments, o)
		default:
			return nil, errors.NewLocated(definition.Location(), "The %s definition is not executable.", definition.GetKind())
		}
	}
	return &Document{
		Operations: operations,
		Fragments:  fragments,
	}, nil
}

// ParseDocument parses a document of any definition kind. Syntax failures
// come back as located error values, never as panics.
func ParseDocument(source string) (*ast.Document, *errors.GraphQLError) {
	if source == "" {
		return nil, errors.New("Must provide source.")
	}
	l := newLexer(source)

	var doc *ast.Document
	err := l.catchSyntaxError(func() {
		doc = parseDocument(l)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func parseDocument(l *lexer) *ast.Document {
	l.skipWhitespace()
	doc := &ast.Document{Kind: kinds.Document, Loc: l.location()}
	for l.peek() != token.EOF {
		if l.peek() == token.BRACE_L {
			op := &ast.OperationDefinition{Kind: kinds.OperationDefinition, Operation: ast.Query, Loc: l.location()}
			op.SelectionSet = parseSelectionSet(l)
			doc.Definition = append(doc.Definition, op)
			continue
		}

		loc := l.location()
		switch name := parseName(l); name.Name {
		case token.QUERY:
			doc.Definition = append(doc.Definition, parseOperationDefinition(l, ast.Query, loc))
		case token.MUTATION:
			doc.Definition = append(doc.Definition, parseOperationDefinition(l, ast.Mutation, loc))
		case token.SUBSCRIPTION:
			doc.Definition = append(doc.Definition, parseOperationDefinition(l, ast.Subscription, loc))
		case token.FRAGMENT:
			fragment := parseFragmentDefinition(l)
			fragment.Loc = loc
			doc.Definition = append(doc.Definition, fragment)
		case token.SCHEMA, token.SCALAR, token.TYPE, token.INTERFACE, token.UNION, token.ENUM, token.INPUT, token.DIRECTIVE:
			doc.Definition = append(doc.Definition, parseTypeSystemDefinition(l, name.Name, loc))
		default:
			l.SyntaxError(fmt.Sprintf("Unexpected %q.", name.Name))
		}
	}
	return doc
}

/**
 * OperationDefinition :
 *   - OperationType Name? VariableDefinitions? Directives? SelectionSet
 */
func parseOperationDefinition(l *lexer, opType ast.OperationType, loc errors.Location) *ast.OperationDefinition {
	op := &ast.OperationDefinition{Kind: kinds.OperationDefinition, Operation: opType, Loc: loc}
	if l.peek() == token.NAME {
		op.Name = parseName(l)
	}
	op.Vars = parseVariableDefinitions(l)
	op.Directives = parseDirectives(l)
	op.SelectionSet = parseSelectionSet(l)
	return op
}

func parseVariableDefinitions(l *lexer) []*ast.VariableDefinition {
	var defs []*ast.VariableDefinition
	if l.peek() != token.PAREN_L {
		return defs
	}
	l.advance(token.PAREN_L)
	for l.peek() != token.PAREN_R {
		loc := l.location()
		l.advance(token.DOLLAR)
		v := &ast.VariableDefinition{
			Kind: kinds.VariableDefinition,
			Var:  &ast.Variable{Kind: kinds.Variable, Name: parseName(l), Loc: loc},
			Loc:  loc,
		}
		l.advance(token.COLON)
		v.Type = parseType(l)
		if l.peek() == token.EQUALS {
			l.advance(token.EQUALS)
			v.DefaultValue = parseValue(l, true)
		}
		defs = append(defs, v)
	}
	l.advance(token.PAREN_R)
	return defs
}

/**
 * Type :
 *   - NamedType
 *   - ListType
 *   - NonNullType
 */
func parseType(l *lexer) ast.Type {
	loc := l.location()
	var t ast.Type
	if l.peek() == token.BRACKET_L {
		l.advance(token.BRACKET_L)
		inner := parseType(l)
		l.advance(token.BRACKET_R)
		t = &ast.List{Kind: kinds.List, Type: inner, Loc: loc}
	} else {
		t = parseNamed(l)
	}
	if l.peek() == token.BANG {
		l.advance(token.BANG)
		t = &ast.NonNull{Kind: kinds.NonNull, Type: t, Loc: loc}
	}
	return t
}

func parseNamed(l *lexer) *ast.Named {
	loc := l.location()
	return &ast.Named{Kind: kinds.Named, Name: parseName(l), Loc: loc}
}

func parseName(l *lexer) *ast.Name {
	loc := l.location()
	name := l.scan.TokenText()
	l.advance(token.NAME)
	return &ast.Name{Kind: kinds.Name, Name: name, Loc: loc}
}

func parseSelectionSet(l *lexer) *ast.SelectionSet {
	set := &ast.SelectionSet{Kind: kinds.SelectionSet, Loc: l.location()}
	l.advance(token.BRACE_L)
	for l.peek() != token.BRACE_R {
		set.Selections = append(set.Selections, parseSelection(l))
	}
	l.advance(token.BRACE_R)
	return set
}

/**
 * Selection :
 *   - Field
 *   - FragmentSpread
 *   - InlineFragment
 */
func parseSelection(l *lexer) ast.Selection {
	if l.peek() == token.SPREAD {
		return parseSpread(l)
	}
	return parseField(l)
}

func parseField(l *lexer) *ast.Field {
	loc := l.location()
	f := &ast.Field{Kind: kinds.Field, Loc: loc}
	name := parseName(l)
	if l.peek() == token.COLON {
		l.advance(token.COLON)
		f.Alias = name
		name = parseName(l)
	}
	f.Name = name
	f.Arguments = parseArguments(l, false)
	f.Directives = parseDirectives(l)
	if l.peek() == token.BRACE_L {
		f.SelectionSet = parseSelectionSet(l)
	}
	return f
}

func parseSpread(l *lexer) ast.Selection {
	loc := l.location()
	l.advance(token.SPREAD)
	l.advance(token.SPREAD)
	l.advance(token.SPREAD)

	if l.peek() == token.NAME && l.scan.TokenText() != token.ON {
		return &ast.FragmentSpread{
			Kind:       kinds.FragmentSpread,
			Name:       parseFragmentName(l),
			Directives: parseDirectives(l),
			Loc:        loc,
		}
	}

	inline := &ast.InlineFragment{Kind: kinds.InlineFragment, Loc: loc}
	if l.peek() == token.NAME {
		l.advanceKeyWord(token.ON)
		inline.TypeCondition = parseNamed(l)
	}
	inline.Directives = parseDirectives(l)
	inline.SelectionSet = parseSelectionSet(l)
	return inline
}

/**
 * FragmentDefinition :
 *   - fragment FragmentName on TypeCondition Directives? SelectionSet
 */
func parseFragmentDefinition(l *lexer) *ast.FragmentDefinition {
	name := parseFragmentName(l)
	l.advanceKeyWord(token.ON)
	return &ast.FragmentDefinition{
		Kind:          kinds.FragmentDefinition,
		Name:          name,
		TypeCondition: parseNamed(l),
		Directives:    parseDirectives(l),
		SelectionSet:  parseSelectionSet(l),
	}
}

// Name : but not `on`
func parseFragmentName(l *lexer) *ast.Name {
	if l.scan.TokenText() == token.ON {
		l.SyntaxError(`Unexpected Name "on".`)
	}
	return parseName(l)
}

func parseArguments(l *lexer, constOnly bool) []*ast.Argument {
	var args []*ast.Argument
	if l.peek() != token.PAREN_L {
		return args
	}
	l.advance(token.PAREN_L)
	for l.peek() != token.PAREN_R {
		loc := l.location()
		name := parseName(l)
		l.advance(token.COLON)
		args = append(args, &ast.Argument{
			Kind:  kinds.Argument,
			Name:  name,
			Value: parseValue(l, constOnly),
			Loc:   loc,
		})
	}
	l.advance(token.PAREN_R)
	return args
}

func parseDirectives(l *lexer) []*ast.Directive {
	var directives []*ast.Directive
	for l.peek() == token.AT {
		loc := l.location()
		l.advance(token.AT)
		directives = append(directives, &ast.Directive{
			Kind: kinds.Directive,
			Name: parseName(l),
			Args: parseArguments(l, false),
			Loc:  loc,
		})
	}
	return directives
}

/**
 * Value[Const] :
 *   - Variable [if not Const]
 *   - IntValue / FloatValue / StringValue / BooleanValue / NullValue
 *   - EnumValue / ListValue / ObjectValue
 */
func parseValue(l *lexer, constOnly bool) ast.Value {
	loc := l.location()
	switch l.peek() {
	case token.DOLLAR:
		if constOnly {
			l.SyntaxError("Unexpected variable in constant value.")
		}
		l.advance(token.DOLLAR)
		return &ast.Variable{Kind: kinds.Variable, Name: parseName(l), Loc: loc}
	case token.MINUS:
		l.advance(token.MINUS)
		switch l.peek() {
		case token.INT:
			text := l.scan.TokenText()
			l.advance(token.INT)
			return &ast.IntValue{Kind: kinds.IntValue, Value: "-" + text, Loc: loc}
		case token.FLOAT:
			text := l.scan.TokenText()
			l.advance(token.FLOAT)
			return &ast.FloatValue{Kind: kinds.FloatValue, Value: "-" + text, Loc: loc}
		default:
			l.SyntaxError(fmt.Sprintf("Unexpected %q.", l.tokenText()))
		}
	case token.INT:
		text := l.scan.TokenText()
		l.advance(token.INT)
		return &ast.IntValue{Kind: kinds.IntValue, Value: text, Loc: loc}
	case token.FLOAT:
		text := l.scan.TokenText()
		l.advance(token.FLOAT)
		return &ast.FloatValue{Kind: kinds.FloatValue, Value: text, Loc: loc}
	case token.STRING:
		text := l.scan.TokenText()
		l.advance(token.STRING)
		value, err := strconv.Unquote(text)
		if err != nil {
			l.SyntaxError(fmt.Sprintf("Invalid string literal %s.", text))
		}
		return &ast.StringValue{Kind: kinds.StringValue, Value: value, Loc: loc}
	case token.BRACKET_L:
		l.advance(token.BRACKET_L)
		list := &ast.ListValue{Kind: kinds.ListValue, Loc: loc}
		for l.peek() != token.BRACKET_R {
			list.Values = append(list.Values, parseValue(l, constOnly))
		}
		l.advance(token.BRACKET_R)
		return list
	case token.BRACE_L:
		l.advance(token.BRACE_L)
		object := &ast.ObjectValue{Kind: kinds.ObjectValue, Loc: loc}
		for l.peek() != token.BRACE_R {
			fieldLoc := l.location()
			name := parseName(l)
			l.advance(token.COLON)
			object.Fields = append(object.Fields, &ast.ObjectField{
				Kind:  kinds.ObjectField,
				Name:  name,
				Value: parseValue(l, constOnly),
				Loc:   fieldLoc,
			})
		}
		l.advance(token.BRACE_R)
		return object
	case token.NAME:
		text := l.scan.TokenText()
		l.advance(token.NAME)
		switch text {
		case token.TRUE, token.FALSE:
			return &ast.BooleanValue{Kind: kinds.BooleanValue, Value: text == token.TRUE, Loc: loc}
		case token.NULL:
			return &ast.NullValue{Kind: kinds.NullValue, Loc: loc}
		default:
			return &ast.EnumValue{Kind: kinds.EnumValue, Value: text, Loc: loc}
		}
	default:
		l.SyntaxError(fmt.Sprintf("Unexpected %q.", l.tokenText()))
	}
	return nil
}
