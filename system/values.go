package system

import (
	"strconv"

	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/system/ast"
)

// ValueToJSON converts a literal into a plain Go value, substituting
// variable references from vars. An absent variable yields (nil, false)
// through the ok result so callers can distinguish "not supplied" from an
// explicit null.
func ValueToJSON(v ast.Value, vars map[string]interface{}) (interface{}, bool, *errors.GraphQLError) {
	switch v := v.(type) {
	case *ast.IntValue:
		n, err := strconv.ParseInt(v.Value, 10, 64)
		if err != nil {
			return nil, false, errors.NewLocated(v.Loc, "Invalid int literal %q.", v.Value)
		}
		return n, true, nil
	case *ast.FloatValue:
		f, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			return nil, false, errors.NewLocated(v.Loc, "Invalid float literal %q.", v.Value)
		}
		return f, true, nil
	case *ast.StringValue:
		return v.Value, true, nil
	case *ast.BooleanValue:
		return v.Value, true, nil
	case *ast.NullValue:
		return nil, true, nil
	case *ast.EnumValue:
		return v.Value, true, nil
	case *ast.ListValue:
		out := make([]interface{}, 0, len(v.Values))
		for _, item := range v.Values {
			value, _, err := ValueToJSON(item, vars)
			if err != nil {
				return nil, false, err
			}
			out = append(out, value)
		}
		return out, true, nil
	case *ast.ObjectValue:
		out := make(map[string]interface{}, len(v.Fields))
		for _, f := range v.Fields {
			value, ok, err := ValueToJSON(f.Value, vars)
			if err != nil {
				return nil, false, err
			}
			if ok {
				out[f.Name.Name] = value
			}
		}
		return out, true, nil
	case *ast.Variable:
		value, ok := vars[v.Name.Name]
		return value, ok, nil
	}
	return nil, false, errors.NewLocated(v.Location(), "Unexpected literal kind %q.", v.GetKind())
}
