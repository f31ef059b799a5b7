//go:build js_eval

package virtuals

import (
	"fmt"
	"time"

	"github.com/dop251/goja"
)

type jsGetter struct {
	expression string
	cache      ProgramCache
	registry   *FunctionRegistry
}

// JSGetter builds a virtual getter that evaluates expression with goja. The
// runtime exposes the record's attribute snapshot by name, the
// caller-supplied trailing arguments as "args", and "now".
func JSGetter(expression string, opts ...JSGetterOption) Getter {
	cfg := applyJSGetterOptions(opts)
	g := &jsGetter{
		expression: expression,
		cache:      cfg.cache,
		registry:   cfg.registry,
	}
	return g.get
}

func (g *jsGetter) get(m *Model, args ...any) (any, error) {
	if g.expression == "" {
		return nil, wrapEvaluatorError("js", fmt.Errorf("expression must not be empty"))
	}
	if g.cache == nil {
		return g.run(m, args, nil)
	}
	program, err := g.loadOrCompile()
	if err != nil {
		return nil, err
	}
	return g.run(m, args, program)
}

func (g *jsGetter) loadOrCompile() (*goja.Program, error) {
	if g.cache != nil {
		if cached, ok := g.cache.Get(g.expression); ok {
			if program, ok := cached.(*goja.Program); ok {
				return program, nil
			}
		}
	}
	program, err := goja.Compile("", g.wrapExpression(), false)
	if err != nil {
		return nil, wrapEvaluationError("js", g.expression, err)
	}
	if g.cache != nil {
		g.cache.Set(g.expression, program)
	}
	return program, nil
}

func (g *jsGetter) run(m *Model, args []any, program *goja.Program) (any, error) {
	vm := goja.New()
	g.injectContext(vm, m, args)
	if program != nil {
		value, err := vm.RunProgram(program)
		if err != nil {
			return nil, wrapEvaluationError("js", g.expression, err)
		}
		return value.Export(), nil
	}
	value, err := vm.RunString(g.wrapExpression())
	if err != nil {
		return nil, wrapEvaluationError("js", g.expression, err)
	}
	return value.Export(), nil
}

func (g *jsGetter) injectContext(vm *goja.Runtime, m *Model, args []any) {
	vm.Set("now", time.Now())
	vm.Set("args", args)
	for key, value := range m.Attributes() {
		vm.Set(key, value)
	}
	if g.registry != nil {
		vm.Set("call", func(name string, arguments ...any) (any, error) {
			return g.registry.Call(name, arguments...)
		})
		for _, name := range g.registry.Names() {
			fn := name
			vm.Set(fn, func(arguments ...any) (any, error) {
				return g.registry.Call(fn, arguments...)
			})
		}
	}
}

func (g *jsGetter) wrapExpression() string {
	return fmt.Sprintf("(function(){ return (%s); })()", g.expression)
}

func jsGetterAvailable() bool {
	return true
}
