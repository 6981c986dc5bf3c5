package execution

import (
	"reflect"

	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/schema"
	"github.com/bjonica/graphql/system/ast"
)

// completeAt completes a value at a position in the response tree. A
// non-null violation climbing out of a nullable position is absorbed
// there: the position becomes null and the climb stops. The violation
// itself was recorded where it originated.
func (e *executor) completeAt(ec *exeContext, spec schema.Spec, value interface{}, fields []*ast.Field, path []interface{}, label string, loc errors.Location) (interface{}, bool) {
	v, failed := e.completeValue(ec, spec, value, fields, path, label, loc)
	if failed && !e.isNonNull(spec) {
		return nil, false
	}
	return v, failed
}

// completeValue coerces a resolver's raw return into the declared type.
// The second result reports a climbing non-null violation.
func (e *executor) completeValue(ec *exeContext, spec schema.Spec, value interface{}, fields []*ast.Field, path []interface{}, label string, loc errors.Location) (interface{}, bool) {
	d, err := e.schema.Registry.Resolve(spec)
	if err != nil {
		ec.addErr(errors.NewLocated(loc, "Internal error: %s", err.Message).WithPath(path))
		return nil, false
	}

	if d.Kind == schema.NonNull {
		v, failed := e.completeValue(ec, d.Inner, value, fields, path, label, loc)
		if failed {
			return nil, true
		}
		if v == nil {
			ec.addErr(errors.NewLocated(loc, "Cannot return null for non-nullable field %s.", label).WithPath(path))
			return nil, true
		}
		return v, false
	}

	if isNilValue(value) {
		return nil, false
	}

	switch d.Kind {
	case schema.Scalar, schema.Enum:
		v, cerr := coerceLeaf(d, value)
		if cerr != nil {
			cerr.Locations = []errors.Location{loc}
			ec.addErr(cerr.WithPath(path))
			return nil, false
		}
		return v, false

	case schema.List:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			ec.addErr(errors.NewLocated(loc, "Field %s resolved to a non-list value for a list type.", label).WithPath(path))
			return nil, false
		}
		items := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elemPath := append(append([]interface{}{}, path...), i)
			v, failed := e.completeAt(ec, d.Inner, rv.Index(i).Interface(), fields, elemPath, label, loc)
			if failed {
				return nil, true
			}
			items[i] = v
		}
		return items, false

	case schema.Object, schema.Interface, schema.Union:
		concreteDesc, concreteName, ok := e.concreteType(ec, d, value, path, loc)
		if !ok {
			return nil, false
		}
		groups := e.collectFields(ec, concreteName, mergedSelectionSet(fields), make(map[string]bool))
		return e.executeFields(ec, concreteDesc, concreteName, value, groups, false, path)
	}

	ec.addErr(errors.NewLocated(loc, "Internal error: unexpected kind %q for spec %q.", d.Kind, spec).WithPath(path))
	return nil, false
}

// concreteType picks the concrete object type of a composite value. For
// abstract types the __resolveType hook decides; without one, a
// __typename key on map values is consulted, then the Go type name of
// struct values.
func (e *executor) concreteType(ec *exeContext, d *schema.Descriptor, value interface{}, path []interface{}, loc errors.Location) (*schema.Descriptor, string, bool) {
	if d.Kind == schema.Object {
		return d, d.TypeName, true
	}

	var name string
	if hook, ok := e.resolvers.TypeResolver(d.TypeName); ok {
		v, err := hook(ec.Context, value, nil)
		if err != nil {
			ec.addErr(errors.NewLocated(loc, "%s", err.Error()).WithPath(path))
			return nil, "", false
		}
		name, _ = v.(string)
	} else if m, ok := value.(map[string]interface{}); ok {
		name, _ = m["__typename"].(string)
	} else {
		rt := reflect.TypeOf(value)
		for rt != nil && rt.Kind() == reflect.Ptr {
			rt = rt.Elem()
		}
		if rt != nil {
			name = rt.Name()
		}
	}

	for _, possible := range e.schema.PossibleTypes(d.TypeName) {
		if possible != name {
			continue
		}
		spec, ok := e.schema.Type(name)
		if !ok {
			break
		}
		desc, err := e.schema.Registry.Resolve(spec)
		if err != nil {
			break
		}
		return desc, name, true
	}
	ec.addErr(errors.NewLocated(loc, "Abstract type '%s' could not resolve a concrete type for the returned value.", d.TypeName).WithPath(path))
	return nil, "", false
}

func (e *executor) isNonNull(spec schema.Spec) bool {
	d, err := e.schema.Registry.Resolve(spec)
	return err == nil && d.Kind == schema.NonNull
}

// coerceLeaf applies the output coercion of the built-in scalars and
// enums. Declared scalars pass through untouched.
func coerceLeaf(d *schema.Descriptor, value interface{}) (interface{}, *errors.GraphQLError) {
	if d.Kind == schema.Enum {
		s, ok := value.(string)
		if !ok {
			return nil, errors.New("Enum '%s' cannot represent non-string value %v.", d.TypeName, value)
		}
		for _, v := range d.Values {
			if v == s {
				return s, nil
			}
		}
		return nil, errors.New("Enum '%s' cannot represent value %q.", d.TypeName, s)
	}

	switch d.TypeName {
	case "Int":
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int8:
			return int64(v), nil
		case int16:
			return int64(v), nil
		case int32:
			return int64(v), nil
		case int64:
			return v, nil
		case uint:
			return int64(v), nil
		case uint8:
			return int64(v), nil
		case uint16:
			return int64(v), nil
		case uint32:
			return int64(v), nil
		case uint64:
			return int64(v), nil
		case float64:
			if v == float64(int64(v)) {
				return int64(v), nil
			}
		case float32:
			if float64(v) == float64(int64(v)) {
				return int64(v), nil
			}
		}
		return nil, errors.New("Int cannot represent non-integer value %v.", value)
	case "Float":
		switch v := value.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		case int32:
			return float64(v), nil
		case int64:
			return float64(v), nil
		}
		return nil, errors.New("Float cannot represent non-numeric value %v.", value)
	case "String":
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, errors.New("String cannot represent non-string value %v.", value)
	case "Boolean":
		if b, ok := value.(bool); ok {
			return b, nil
		}
		return nil, errors.New("Boolean cannot represent non-boolean value %v.", value)
	case "ID":
		switch v := value.(type) {
		case string:
			return v, nil
		case int:
			return v, nil
		case int64:
			return v, nil
		case float64:
			if v == float64(int64(v)) {
				return int64(v), nil
			}
		}
		return nil, errors.New("ID cannot represent value %v.", value)
	default:
		return value, nil
	}
}

func isNilValue(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
