// Package expression implements a processor that evaluates an expr-lang
// expression against each input.
package expression

import (
	"context"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.trai.ch/portway/internal/core/domain"
	"go.trai.ch/portway/internal/core/ports"
	"go.trai.ch/zerr"
)

// InputVar is the name the input is bound to inside an expression.
const InputVar = "input"

// Processor evaluates a compiled expression with the input bound to InputVar.
// Non-string results are formatted with fmt.Sprint.
type Processor struct {
	source  string
	program *vm.Program
}

var _ ports.Processor[string, string] = (*Processor)(nil)

// New compiles source. The program is compiled once and reused for every input.
func New(source string) (*Processor, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, zerr.With(domain.ErrInvalidExpression, "reason", "empty expression")
	}

	program, err := expr.Compile(source, expr.Env(map[string]any{InputVar: ""}))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidExpression.Error()), "expression", source)
	}

	return &Processor{source: source, program: program}, nil
}

// Process evaluates the expression for input.
func (p *Processor) Process(ctx context.Context, input string) (string, error) {
	if input == "" {
		return "", domain.ErrUndefinedInput
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := expr.Run(p.program, map[string]any{InputVar: input})
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrExpressionEvalFailed.Error()), "expression", p.source)
	}

	if s, ok := out.(string); ok {
		return s, nil
	}
	return fmt.Sprint(out), nil
}
