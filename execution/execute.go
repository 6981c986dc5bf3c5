package execution

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/schema"
	"github.com/bjonica/graphql/system"
	"github.com/bjonica/graphql/system/ast"
)

// Response is the wire result of an execution: the ordered data tree and
// the collected errors. Data is absent only when the operation could not
// be started; an execution that failed after starting carries an explicit
// null (a typed nil *OrderedMap).
type Response struct {
	Data   interface{}       `json:"data,omitempty"`
	Errors errors.MultiError `json:"errors,omitempty"`
}

type executor struct {
	schema    *schema.Schema
	resolvers *Resolvers
	doc       *system.Document
	vars      map[string]interface{}
}

type exeContext struct {
	context.Context

	mu   sync.Mutex
	errs errors.MultiError
}

func (ec *exeContext) addErr(err *errors.GraphQLError) {
	ec.mu.Lock()
	ec.errs = append(ec.errs, err)
	ec.mu.Unlock()
}

// Execute runs the selected operation of a validated document against the
// schema with a nil root value.
func Execute(ctx context.Context, s *schema.Schema, resolvers ResolverMap, doc *system.Document, operationName string, vars map[string]interface{}) *Response {
	return ExecuteRoot(ctx, s, resolvers, doc, operationName, vars, nil)
}

// ExecuteRoot runs an operation with an explicit root value; subscription
// transports pass each event payload through here.
func ExecuteRoot(ctx context.Context, s *schema.Schema, resolvers ResolverMap, doc *system.Document, operationName string, vars map[string]interface{}, root interface{}) *Response {
	if ctx == nil {
		ctx = context.Background()
	}
	op, gerr := doc.Operation(operationName)
	if gerr != nil {
		return &Response{Errors: errors.MultiError{gerr}}
	}
	rootSpec, ok := s.RootSpec(op.Operation)
	if !ok {
		return &Response{Errors: errors.MultiError{
			errors.NewLocated(op.Loc, "Schema does not define a %s root type.", op.Operation),
		}}
	}
	rootDesc, err := s.Registry.Resolve(rootSpec)
	if err != nil {
		return &Response{Errors: errors.MultiError{err}}
	}

	e := &executor{
		schema:    s,
		resolvers: NewResolvers(resolvers),
		doc:       doc,
		vars:      operationVariables(op, vars),
	}
	ec := &exeContext{Context: ctx}

	groups := e.collectFields(ec, rootDesc.TypeName, op.SelectionSet, make(map[string]bool))
	data, failed := e.executeFields(ec, rootDesc, rootDesc.TypeName, root, groups, op.Operation == ast.Mutation, nil)

	if ctxErr := ec.Err(); ctxErr != nil {
		// partial results are discarded on cancellation
		ec.addErr(errors.New("cancelled: %s", ctxErr.Error()))
		return &Response{Data: (*OrderedMap)(nil), Errors: ec.errs}
	}
	if failed {
		return &Response{Data: (*OrderedMap)(nil), Errors: ec.errs}
	}
	return &Response{Data: data, Errors: ec.errs}
}

// operationVariables copies the supplied variables and folds in the
// declared defaults of variables the caller did not supply. An explicit
// null stays null.
func operationVariables(op *ast.OperationDefinition, vars map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(vars))
	for name, value := range vars {
		merged[name] = value
	}
	for _, v := range op.Vars {
		if _, ok := merged[v.Var.Name.Name]; ok {
			continue
		}
		if v.DefaultValue == nil {
			continue
		}
		if value, ok, err := system.ValueToJSON(v.DefaultValue, nil); err == nil && ok {
			merged[v.Var.Name.Name] = value
		}
	}
	return merged
}

// executeFields resolves every field group into its pre-assigned response
// slot. Query siblings run in parallel, mutation roots strictly serially.
// The bool result reports a non-null violation climbing past this object.
func (e *executor) executeFields(ec *exeContext, parentDesc *schema.Descriptor, typeName string, source interface{}, groups []*fieldGroup, serial bool, path []interface{}) (interface{}, bool) {
	results := make([]interface{}, len(groups))
	failures := make([]bool, len(groups))

	if serial {
		for i, g := range groups {
			results[i], failures[i] = e.resolveField(ec, parentDesc, typeName, source, g, path)
		}
	} else {
		var wg errgroup.Group
		for i, g := range groups {
			i, g := i, g
			wg.Go(func() error {
				results[i], failures[i] = e.resolveField(ec, parentDesc, typeName, source, g, path)
				return nil
			})
		}
		wg.Wait()
	}

	for _, failed := range failures {
		if failed {
			return nil, true
		}
	}
	out := NewOrderedMap()
	for i, g := range groups {
		out.Set(g.key, results[i])
	}
	return out, false
}

// resolveField drives one response key: merge arguments, invoke the
// resolver, complete the value against the declared type.
func (e *executor) resolveField(ec *exeContext, parentDesc *schema.Descriptor, typeName string, source interface{}, g *fieldGroup, path []interface{}) (interface{}, bool) {
	if ec.Err() != nil {
		return nil, false
	}
	f := g.fields[0]
	fieldPath := append(append([]interface{}{}, path...), g.key)

	if f.Name.Name == "__typename" {
		return typeName, false
	}

	fs, ok := e.schema.Registry.FieldsOf(parentDesc)[f.Name.Name]
	if !ok {
		ec.addErr(errors.NewLocated(f.Name.Loc, "Cannot query field '%s' on type '%s'.", f.Name.Name, typeName).WithPath(fieldPath))
		return nil, false
	}
	fd, ok := e.schema.Registry.Get(fs)
	if !ok {
		ec.addErr(errors.NewLocated(f.Name.Loc, "Internal error: missing descriptor for spec %q.", fs).WithPath(fieldPath))
		return nil, false
	}

	args, argErr := e.mergeArguments(f, fd.Args)
	if argErr != nil {
		argErr.Locations = []errors.Location{f.Name.Loc}
		ec.addErr(argErr.WithPath(fieldPath))
		return nil, e.isNonNull(fd.Aliased)
	}

	resolver := e.resolvers.Lookup(typeName, f.Name.Name)
	value, rerr := safeResolve(ec.Context, resolver, source, args)
	if rerr == nil {
		value, rerr = awaitThunk(value)
	}
	if rerr != nil {
		gqlErr := errors.NewLocated(f.Name.Loc, "%s", rerr.Error()).WithPath(fieldPath)
		gqlErr.ResolverError = rerr
		ec.addErr(gqlErr)
		return nil, e.isNonNull(fd.Aliased)
	}

	label := typeName + "." + f.Name.Name
	return e.completeAt(ec, fd.Aliased, value, g.fields, fieldPath, label, f.Name.Loc)
}

// mergeArguments starts from the declared defaults, overlays literal
// arguments, and overlays variable values only for variables the caller
// supplied: an absent variable preserves the default, an explicit null
// overrides it. A nil map reaches the resolver when the field declares and
// receives no arguments.
func (e *executor) mergeArguments(f *ast.Field, decls map[string]schema.Spec) (map[string]interface{}, *errors.GraphQLError) {
	if len(decls) == 0 && len(f.Arguments) == 0 {
		return nil, nil
	}
	args := make(map[string]interface{}, len(decls))
	for name, declSpec := range decls {
		d, ok := e.schema.Registry.Get(declSpec)
		if !ok || d.Default == nil {
			continue
		}
		if value, ok, err := system.ValueToJSON(d.Default, nil); err == nil && ok {
			args[name] = value
		}
	}
	for _, a := range f.Arguments {
		if v, ok := a.Value.(*ast.Variable); ok {
			if value, supplied := e.vars[v.Name.Name]; supplied {
				args[a.Name.Name] = value
			}
			continue
		}
		value, _, err := system.ValueToJSON(a.Value, e.vars)
		if err != nil {
			return nil, err
		}
		args[a.Name.Name] = value
	}
	for name, declSpec := range decls {
		d, ok := e.schema.Registry.Get(declSpec)
		if !ok || !d.Required {
			continue
		}
		if v, ok := args[name]; !ok || v == nil {
			return nil, errors.New("Argument '%s' of required type '%s' was not provided.", name, e.typeString(declSpec))
		}
	}
	return args, nil
}

// safeResolve invokes a resolver and converts panics into errors; the
// operation itself never panics.
func safeResolve(ctx context.Context, resolver ResolveFunc, source interface{}, args map[string]interface{}) (result interface{}, err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			result, err = nil, fmt.Errorf("graphql: panic: %v\n%s", panicErr, buf)
		}
	}()
	return resolver(ctx, source, args)
}

// awaitThunk resolves deferred results: a resolver may return a thunk,
// which is called right after the resolver returns, on the goroutine that
// resolves the field. A panicking thunk becomes an error.
func awaitThunk(value interface{}) (result interface{}, err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			result, err = nil, fmt.Errorf("graphql: panic: %v", panicErr)
		}
	}()
	switch fn := value.(type) {
	case func() (interface{}, error):
		return fn()
	case func() interface{}:
		return fn(), nil
	}
	return value, nil
}

func (e *executor) typeString(s schema.Spec) string {
	d, ok := e.schema.Registry.Get(s)
	if !ok {
		return string(s)
	}
	switch d.Kind {
	case schema.Alias:
		return e.typeString(d.Aliased)
	case schema.List:
		return "[" + e.typeString(d.Inner) + "]"
	case schema.NonNull:
		return e.typeString(d.Inner) + "!"
	default:
		return d.TypeName
	}
}
