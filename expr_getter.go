package virtuals

import (
	"fmt"
	"time"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprGetterOption configures an expr-backed getter.
type ExprGetterOption func(*exprGetter)

// ExprWithProgramCache wires a ProgramCache into the expr getter.
func ExprWithProgramCache(cache ProgramCache) ExprGetterOption {
	return func(g *exprGetter) {
		g.cache = cache
	}
}

// ExprWithFunctionRegistry wires a FunctionRegistry into the expr getter.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprGetterOption {
	return func(g *exprGetter) {
		if registry == nil {
			return
		}
		g.registry = registry.Clone()
	}
}

type exprGetter struct {
	expression string
	cache      ProgramCache
	registry   *FunctionRegistry
}

// ExprGetter builds a virtual getter that evaluates expression with
// github.com/expr-lang/expr. The environment exposes the record's attribute
// snapshot by name, the caller-supplied trailing arguments as "args", "now",
// and any registered functions.
func ExprGetter(expression string, opts ...ExprGetterOption) Getter {
	g := &exprGetter{expression: expression}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g.get
}

func (g *exprGetter) get(m *Model, args ...any) (any, error) {
	if g.expression == "" {
		return nil, wrapEvaluatorError("expr", fmt.Errorf("expression must not be empty"))
	}
	env := g.environment(m, args)
	if g.cache == nil {
		result, err := exprlang.Eval(g.expression, env)
		if err != nil {
			return nil, wrapEvaluationError("expr", g.expression, err)
		}
		return result, nil
	}
	program, err := g.loadOrCompile()
	if err != nil {
		return nil, err
	}
	result, err := exprlang.Run(program, env)
	if err != nil {
		return nil, wrapEvaluationError("expr", g.expression, err)
	}
	return result, nil
}

func (g *exprGetter) loadOrCompile() (*exprvm.Program, error) {
	if g.cache != nil {
		if cached, ok := g.cache.Get(g.expression); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	for _, name := range g.registryNames() {
		fn := g.registryFunction(name)
		options = append(options, exprlang.Function(name, fn))
	}
	program, err := exprlang.Compile(g.expression, options...)
	if err != nil {
		return nil, wrapEvaluationError("expr", g.expression, err)
	}
	if g.cache != nil {
		g.cache.Set(g.expression, program)
	}
	return program, nil
}

func (g *exprGetter) environment(m *Model, args []any) map[string]any {
	env := map[string]any{
		"now":  time.Now(),
		"args": args,
	}
	for key, value := range m.Attributes() {
		env[key] = value
	}
	if g.registry != nil {
		env["call"] = func(name string, arguments ...any) (any, error) {
			return g.registry.Call(name, arguments...)
		}
		for _, name := range g.registry.Names() {
			fn := name
			env[fn] = func(arguments ...any) (any, error) {
				return g.registry.Call(fn, arguments...)
			}
		}
	}
	return env
}

func (g *exprGetter) registryNames() []string {
	if g == nil || g.registry == nil {
		return nil
	}
	return g.registry.Names()
}

func (g *exprGetter) registryFunction(name string) func(...any) (any, error) {
	if g == nil || g.registry == nil {
		return nil
	}
	return func(arguments ...any) (any, error) {
		return g.registry.Call(name, arguments...)
	}
}
