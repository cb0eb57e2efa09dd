// Package pipeline implements the ordered chain of stages every request
// error flows through: persist a log line, alert operators, classify, and
// finally respond.
//
// Each stage either terminates the chain with a Result or forwards the
// error, unmodified, to the next stage.
package pipeline

import (
	"context"
	"net/http"

	gate_errors "user-gate/pkg/errors"
)

// Result is the response produced by a terminating stage.
type Result struct {
	Status  int
	Message string
}

// Stage handles an error. It returns terminated=true when it produced the
// response for the request.
type Stage interface {
	Name() string
	Handle(ctx context.Context, err *gate_errors.AppError) (res Result, terminated bool)
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	StageName string
	Fn        func(ctx context.Context, err *gate_errors.AppError) (Result, bool)
}

func (f StageFunc) Name() string { return f.StageName }

func (f StageFunc) Handle(ctx context.Context, err *gate_errors.AppError) (Result, bool) {
	return f.Fn(ctx, err)
}

// DefaultServerMessage is sent when a 500 carries no message.
const DefaultServerMessage = "Oops! Server failed"

type Pipeline struct {
	stages []Stage
}

func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, 0, len(p.stages))
	for _, s := range p.stages {
		names = append(names, s.Name())
	}
	return names
}

// Run passes err through the stages and returns the first terminal result.
// A chain without a terminal stage answers 500.
func (p *Pipeline) Run(ctx context.Context, err *gate_errors.AppError) Result {
	for _, s := range p.stages {
		if res, done := s.Handle(ctx, err); done {
			return res
		}
	}
	return Result{Status: http.StatusInternalServerError, Message: DefaultServerMessage}
}
