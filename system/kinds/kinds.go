package kinds

// Kind tags carried by every AST node.
const (
	Document = "Document"

	// type system
	SchemaDefinition        = "SchemaDefinition"
	OperationTypeDefinition = "OperationTypeDefinition"
	ScalarDefinition        = "ScalarTypeDefinition"
	ObjectDefinition        = "ObjectTypeDefinition"
	FieldDefinition         = "FieldDefinition"
	InputValueDefinition    = "InputValueDefinition"
	InterfaceDefinition     = "InterfaceTypeDefinition"
	UnionDefinition         = "UnionTypeDefinition"
	EnumDefinition          = "EnumTypeDefinition"
	EnumValueDefinition     = "EnumValueDefinition"
	InputObjectDefinition   = "InputObjectTypeDefinition"
	DirectiveDefinition     = "DirectiveDefinition"

	// executable
	OperationDefinition = "OperationDefinition"
	VariableDefinition  = "VariableDefinition"
	SelectionSet        = "SelectionSet"
	Field               = "Field"
	Argument            = "Argument"
	FragmentDefinition  = "FragmentDefinition"
	FragmentSpread      = "FragmentSpread"
	InlineFragment      = "InlineFragment"
	Directive           = "Directive"

	// types
	Named   = "NamedType"
	List    = "ListType"
	NonNull = "NonNullType"

	// values
	Variable     = "Variable"
	IntValue     = "IntValue"
	FloatValue   = "FloatValue"
	StringValue  = "StringValue"
	BooleanValue = "BooleanValue"
	NullValue    = "NullValue"
	EnumValue    = "EnumValue"
	ListValue    = "ListValue"
	ObjectValue  = "ObjectValue"
	ObjectField  = "ObjectField"
	Name         = "Name"
)
