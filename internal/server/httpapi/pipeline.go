package httpapi

import (
	"net/http"
	"slices"
)

// Pipeline is an ordered list of stages followed by the error translator
// that writes the response when any of them fails.
type Pipeline struct {
	stages []Stage
	errors *ErrorTranslator
}

// NewPipeline returns a pipeline running stages in order.
func NewPipeline(t *ErrorTranslator, stages ...Stage) Pipeline {
	return Pipeline{stages: slices.Clone(stages), errors: t}
}

// Then returns a copy of p with stages appended.
func (p Pipeline) Then(stages ...Stage) Pipeline {
	return Pipeline{stages: append(slices.Clone(p.stages), stages...), errors: p.errors}
}

// WithErrors returns a copy of p whose failures are written by t.
func (p Pipeline) WithErrors(t *ErrorTranslator) Pipeline {
	return Pipeline{stages: slices.Clone(p.stages), errors: t}
}

func (p Pipeline) run(r *http.Request, st *RequestState) error {
	for _, stage := range p.stages {
		if err := stage(r, st); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves a request given its typed context.
type Handler[C any] func(w http.ResponseWriter, r *http.Request, c C) error

// Endpoint adapts h to net/http. A fresh RequestState is created for every
// request, the pipeline's stages fill it, build turns it into the typed
// context and h runs last. The first error short-circuits the rest.
func Endpoint[C any](p Pipeline, build func(*RequestState) (C, error), h Handler[C]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := NewRequestState()
		if err := p.run(r, st); err != nil {
			p.errors.Write(w, r, err)
			return
		}
		c, err := build(st)
		if err != nil {
			p.errors.Write(w, r, err)
			return
		}
		if err := h(w, r, c); err != nil {
			p.errors.Write(w, r, err)
		}
	}
}

// WithBody decodes and validates the JSON body into T before calling h.
// An invalid body fails with common.ErrorValidation and h never runs.
func WithBody[C, T any](v *Validator, h func(w http.ResponseWriter, r *http.Request, c C, body T) error) Handler[C] {
	return func(w http.ResponseWriter, r *http.Request, c C) error {
		body, err := Decode[T](v, r)
		if err != nil {
			return err
		}
		return h(w, r, c, body)
	}
}
