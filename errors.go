package virtuals

import (
	"errors"
	"fmt"
	"strings"
)

// AccessOp identifies the accessor operation behind an event or error.
type AccessOp string

const (
	OpGet AccessOp = "get"
	OpSet AccessOp = "set"
)

// AccessError carries accessor metadata alongside the originating getter or
// setter error.
type AccessError struct {
	Virtual string
	Op      AccessOp
	Err     error
}

func (e *AccessError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("virtuals: %s virtual %q: %v", e.Op, e.Virtual, e.Err)
}

func (e *AccessError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapAccessError(virtual string, op AccessOp, err error) error {
	if err == nil {
		return nil
	}
	var accessErr *AccessError
	if errors.As(err, &accessErr) {
		return err
	}
	return &AccessError{Virtual: virtual, Op: op, Err: err}
}

// EvaluationError captures expression engine metadata alongside the
// originating error raised by an expression-backed getter.
type EvaluationError struct {
	Engine string
	Expr   string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("virtuals: %s getter %s: %v", e.Engine, describeExpression(e.Expr), e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "virtuals:") {
		return err
	}
	return fmt.Errorf("virtuals: %s getter: %w", engine, err)
}

func wrapEvaluationError(engine, expr string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		return evalErr
	}

	return &EvaluationError{
		Engine: engine,
		Expr:   expr,
		Err:    err,
	}
}
