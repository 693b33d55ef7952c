package inference

import (
	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/errors"
	"github.com/seen-lang/seen/internal/compiler/resolver"
)

// Inference is the type-inference pass. It is scaffolded: the pipeline
// threads the AST and resolution table through it unchanged.
// TODO: infer parameter and return types so the generator can stop
// defaulting unannotated ones.
type Inference struct{}

func New() *Inference {
	return &Inference{}
}

// Infer returns its inputs untouched with an empty error vector.
func (inf *Inference) Infer(elements []ast.ModElement, res resolver.ResTab) ([]ast.ModElement, resolver.ResTab, []errors.Error) {
	return elements, res, nil
}
