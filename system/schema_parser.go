package system

import (
	"fmt"

	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/system/ast"
	"github.com/bjonica/graphql/system/kinds"
	"github.com/bjonica/graphql/system/token"
)

func parseTypeSystemDefinition(l *lexer, keyword string, loc errors.Location) ast.Definition {
	switch keyword {
	case token.SCHEMA:
		return parseSchemaDefinition(l, loc)
	case token.SCALAR:
		return &ast.ScalarDefinition{Kind: kinds.ScalarDefinition, Name: parseName(l), Directives: parseDirectives(l), Loc: loc}
	case token.TYPE:
		return parseObjectDefinition(l, loc)
	case token.INTERFACE:
		return parseInterfaceDefinition(l, loc)
	case token.UNION:
		return parseUnionDefinition(l, loc)
	case token.ENUM:
		return parseEnumDefinition(l, loc)
	case token.INPUT:
		return parseInputObjectDefinition(l, loc)
	case token.DIRECTIVE:
		return parseDirectiveDefinition(l, loc)
	default:
		l.SyntaxError(fmt.Sprintf("Unexpected %q.", keyword))
	}
	return nil
}

/**
 * SchemaDefinition : schema Directives? { OperationTypeDefinition+ }
 */
func parseSchemaDefinition(l *lexer, loc errors.Location) *ast.SchemaDefinition {
	def := &ast.SchemaDefinition{Kind: kinds.SchemaDefinition, Directives: parseDirectives(l), Loc: loc}
	l.advance(token.BRACE_L)
	for l.peek() != token.BRACE_R {
		opLoc := l.location()
		op := parseName(l)
		switch op.Name {
		case token.QUERY, token.MUTATION, token.SUBSCRIPTION:
		default:
			l.SyntaxError(fmt.Sprintf("Unexpected operation type %q.", op.Name))
		}
		l.advance(token.COLON)
		def.OperationTypes = append(def.OperationTypes, &ast.OperationTypeDefinition{
			Kind:      kinds.OperationTypeDefinition,
			Operation: ast.OperationType(op.Name),
			Type:      parseNamed(l),
			Loc:       opLoc,
		})
	}
	l.advance(token.BRACE_R)
	return def
}

/**
 * ObjectTypeDefinition : type Name ImplementsInterfaces? Directives? FieldsDefinition?
 */
func parseObjectDefinition(l *lexer, loc errors.Location) *ast.ObjectDefinition {
	def := &ast.ObjectDefinition{Kind: kinds.ObjectDefinition, Name: parseName(l), Loc: loc}
	if l.peek() == token.NAME && l.scan.TokenText() == "implements" {
		l.advanceKeyWord("implements")
		if l.peek() == token.AMP {
			l.advance(token.AMP)
		}
		def.Interfaces = append(def.Interfaces, parseNamed(l))
		for l.peek() == token.AMP {
			l.advance(token.AMP)
			def.Interfaces = append(def.Interfaces, parseNamed(l))
		}
	}
	def.Directives = parseDirectives(l)
	def.Fields = parseFieldDefinitions(l)
	return def
}

func parseInterfaceDefinition(l *lexer, loc errors.Location) *ast.InterfaceDefinition {
	def := &ast.InterfaceDefinition{Kind: kinds.InterfaceDefinition, Name: parseName(l), Loc: loc}
	def.Directives = parseDirectives(l)
	def.Fields = parseFieldDefinitions(l)
	return def
}

func parseFieldDefinitions(l *lexer) []*ast.FieldDefinition {
	var fields []*ast.FieldDefinition
	l.advance(token.BRACE_L)
	for l.peek() != token.BRACE_R {
		loc := l.location()
		f := &ast.FieldDefinition{Kind: kinds.FieldDefinition, Name: parseName(l), Loc: loc}
		if l.peek() == token.PAREN_L {
			l.advance(token.PAREN_L)
			for l.peek() != token.PAREN_R {
				f.Arguments = append(f.Arguments, parseInputValueDefinition(l))
			}
			l.advance(token.PAREN_R)
		}
		l.advance(token.COLON)
		f.Type = parseType(l)
		fields = append(fields, f)
	}
	l.advance(token.BRACE_R)
	return fields
}

/**
 * InputValueDefinition : Name : Type DefaultValue?
 */
func parseInputValueDefinition(l *lexer) *ast.InputValueDefinition {
	loc := l.location()
	def := &ast.InputValueDefinition{Kind: kinds.InputValueDefinition, Name: parseName(l), Loc: loc}
	l.advance(token.COLON)
	def.Type = parseType(l)
	if l.peek() == token.EQUALS {
		l.advance(token.EQUALS)
		def.DefaultValue = parseValue(l, true)
	}
	return def
}

/**
 * UnionTypeDefinition : union Name Directives? = |? NamedType (| NamedType)*
 */
func parseUnionDefinition(l *lexer, loc errors.Location) *ast.UnionDefinition {
	def := &ast.UnionDefinition{Kind: kinds.UnionDefinition, Name: parseName(l), Loc: loc}
	def.Directives = parseDirectives(l)
	l.advance(token.EQUALS)
	if l.peek() == token.PIPE {
		l.advance(token.PIPE)
	}
	def.Members = append(def.Members, parseNamed(l))
	for l.peek() == token.PIPE {
		l.advance(token.PIPE)
		def.Members = append(def.Members, parseNamed(l))
	}
	return def
}

func parseEnumDefinition(l *lexer, loc errors.Location) *ast.EnumDefinition {
	def := &ast.EnumDefinition{Kind: kinds.EnumDefinition, Name: parseName(l), Loc: loc}
	def.Directives = parseDirectives(l)
	l.advance(token.BRACE_L)
	for l.peek() != token.BRACE_R {
		valueLoc := l.location()
		name := parseName(l)
		switch name.Name {
		case token.TRUE, token.FALSE, token.NULL:
			l.SyntaxError(fmt.Sprintf("Enum value cannot be %q.", name.Name))
		}
		def.Values = append(def.Values, &ast.EnumValueDefinition{
			Kind:  kinds.EnumValueDefinition,
			Value: &ast.EnumValue{Kind: kinds.EnumValue, Value: name.Name, Loc: name.Loc},
			Loc:   valueLoc,
		})
	}
	l.advance(token.BRACE_R)
	return def
}

func parseInputObjectDefinition(l *lexer, loc errors.Location) *ast.InputObjectDefinition {
	def := &ast.InputObjectDefinition{Kind: kinds.InputObjectDefinition, Name: parseName(l), Loc: loc}
	def.Directives = parseDirectives(l)
	l.advance(token.BRACE_L)
	for l.peek() != token.BRACE_R {
		def.InputFields = append(def.InputFields, parseInputValueDefinition(l))
	}
	l.advance(token.BRACE_R)
	return def
}

/**
 * DirectiveDefinition : directive @ Name ArgumentsDefinition? on DirectiveLocations
 */
func parseDirectiveDefinition(l *lexer, loc errors.Location) *ast.DirectiveDefinition {
	l.advance(token.AT)
	def := &ast.DirectiveDefinition{Kind: kinds.DirectiveDefinition, Name: parseName(l), Loc: loc}
	if l.peek() == token.PAREN_L {
		l.advance(token.PAREN_L)
		for l.peek() != token.PAREN_R {
			def.Arguments = append(def.Arguments, parseInputValueDefinition(l))
		}
		l.advance(token.PAREN_R)
	}
	l.advanceKeyWord(token.ON)
	if l.peek() == token.PIPE {
		l.advance(token.PIPE)
	}
	def.Locations = append(def.Locations, parseName(l).Name)
	for l.peek() == token.PIPE {
		l.advance(token.PIPE)
		def.Locations = append(def.Locations, parseName(l).Name)
	}
	return def
}
