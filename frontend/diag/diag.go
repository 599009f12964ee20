// Package diag carries the user-facing verdicts of an inference session.
// The engine itself is a total decision procedure: nothing here is a Go
// error to be propagated, only a description of why inference gave up.
package diag

import (
	"fmt"
	"log/slog"

	"github.com/varro-lang/varro/frontend/types"
)

type Code int

const (
	None Code = iota
	CodeCannotInfer
	CodeOutOfFuel
)

type Diagnostic interface {
	Error() string
	Code() Code
}

// CannotInfer reports a constraint that reduced to a definite mismatch.
type CannotInfer struct {
	T types.Type
	S types.Type
}

func (d CannotInfer) Code() Code { return CodeCannotInfer }
func (d CannotInfer) Error() string {
	return fmt.Sprintf("cannot infer type arguments: '%s' is not compatible with '%s'", d.S, d.T)
}

// OutOfFuel reports that the session gave up on a pathological constraint
// set before reaching a verdict.
type OutOfFuel struct {
	Steps int
}

func (d OutOfFuel) Code() Code { return CodeOutOfFuel }
func (d OutOfFuel) Error() string {
	return fmt.Sprintf("inference did not converge after %d reduction steps", d.Steps)
}

// Diagnostics accumulates what a session has to report. The zero value and
// the nil pointer are both empty collections.
type Diagnostics struct {
	all []Diagnostic
}

func (d *Diagnostics) With(diagnostics ...Diagnostic) *Diagnostics {
	if d == nil {
		return &Diagnostics{all: diagnostics}
	}
	d.all = append(d.all, diagnostics...)
	return d
}

func (d *Diagnostics) All() []Diagnostic {
	if d == nil {
		return nil
	}
	return d.all
}

func (d *Diagnostics) HasError() bool {
	return d != nil && len(d.all) > 0
}

func (d *Diagnostics) LogValue() slog.Value {
	var attrs []slog.Attr
	for i, diagnostic := range d.All() {
		attrs = append(attrs, slog.Attr{
			Key:   fmt.Sprint("d", i),
			Value: slog.StringValue(fmt.Sprintf("(D%03d) %s", diagnostic.Code(), diagnostic.Error())),
		})
	}
	return slog.GroupValue(attrs...)
}
