package virtuals

import (
	"fmt"
	"time"

	celgo "github.com/google/cel-go/cel"
	functions "github.com/google/cel-go/common/functions"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELGetterOption configures a CEL-backed getter.
type CELGetterOption func(*celGetter)

// CELWithProgramCache wires a ProgramCache into the CEL getter.
func CELWithProgramCache(cache ProgramCache) CELGetterOption {
	return func(g *celGetter) {
		g.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL getter.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELGetterOption {
	return func(g *celGetter) {
		if registry == nil {
			return
		}
		g.registry = registry.Clone()
	}
}

// maxCELCallArgs bounds the number of trailing arguments accepted by the
// registry-backed "call" function.
const maxCELCallArgs = 8

type celProgram struct {
	env     *celgo.Env
	program celgo.Program
}

type celGetter struct {
	expression string
	cache      ProgramCache
	registry   *FunctionRegistry
}

// CELGetter builds a virtual getter that evaluates expression with cel-go.
// The activation exposes the record's attribute snapshot by name, the
// caller-supplied trailing arguments as "args", and "now".
func CELGetter(expression string, opts ...CELGetterOption) Getter {
	g := &celGetter{expression: expression}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g.get
}

func (g *celGetter) get(m *Model, args ...any) (any, error) {
	if g.expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	snapshot := m.Attributes()
	program, err := g.loadOrCompile(snapshot)
	if err != nil {
		return nil, err
	}
	out, _, err := program.program.Eval(g.activation(snapshot, args))
	if err != nil {
		return nil, wrapEvaluationError("cel", g.expression, err)
	}
	return out.Value(), nil
}

func (g *celGetter) loadOrCompile(snapshot map[string]any) (*celProgram, error) {
	if snapshot == nil {
		snapshot = map[string]any{}
	}
	if g.cache != nil {
		if cached, ok := g.cache.Get(g.expression); ok {
			if program, ok := cached.(*celProgram); ok {
				return program, nil
			}
		}
	}

	env, err := g.buildEnv(snapshot)
	if err != nil {
		return nil, wrapEvaluatorError("cel", err)
	}
	ast, issues := env.Parse(g.expression)
	if issues != nil && issues.Err() != nil {
		return nil, wrapEvaluationError("cel", g.expression, issues.Err())
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, wrapEvaluationError("cel", g.expression, issues.Err())
	}
	prg, err := env.Program(checked)
	if err != nil {
		return nil, wrapEvaluatorError("cel", err)
	}

	bundle := &celProgram{
		env:     env,
		program: prg,
	}
	if g.cache != nil {
		g.cache.Set(g.expression, bundle)
	}
	return bundle, nil
}

func (g *celGetter) buildEnv(snapshot map[string]any) (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("args", celgo.DynType),
	}
	if g.registry != nil {
		// cel-go overloads are fixed-arity, so the variadic "call" is declared
		// as one overload per arity sharing a single binding.
		binding := celgo.FunctionBinding(g.callBinding())
		callArgs := []*celgo.Type{celgo.StringType}
		callOverloads := make([]celgo.FunctionOpt, 0, maxCELCallArgs+1)
		for i := 0; i <= maxCELCallArgs; i++ {
			callOverloads = append(callOverloads, celgo.Overload(
				fmt.Sprintf("call_dyn_%d", i),
				append([]*celgo.Type(nil), callArgs...),
				celgo.DynType,
				binding,
			))
			callArgs = append(callArgs, celgo.DynType)
		}
		opts = append(opts, celgo.Function("call", callOverloads...))
	}
	for key := range snapshot {
		opts = append(opts, celgo.Variable(key, celgo.DynType))
	}
	return celgo.NewEnv(opts...)
}

func (g *celGetter) activation(snapshot map[string]any, args []any) map[string]any {
	activation := map[string]any{
		"now":  time.Now(),
		"args": args,
	}
	for key, value := range snapshot {
		activation[key] = value
	}
	if g.registry != nil {
		activation["call"] = func(name string, arguments ...any) (any, error) {
			return g.registry.Call(name, arguments...)
		}
	}
	return activation
}

func (g *celGetter) callBinding() functions.FunctionOp {
	return func(values ...ref.Val) ref.Val {
		if g.registry == nil {
			return types.NewErr("virtuals: function registry not configured")
		}
		if len(values) == 0 {
			return types.NewErr("virtuals: call requires function name")
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("virtuals: call name must be string")
		}
		args := make([]any, 0, len(values)-1)
		for _, val := range values[1:] {
			args = append(args, val.Value())
		}
		result, err := g.registry.Call(name, args...)
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
