package assignment

import (
	"context"
	"errors"

	"github.com/fundalabs/funda/core"
)

var (
	errInvalidGradeLevel = errors.New("unknown grade level")
	errInvalidSubject    = errors.New("unknown subject")
	errInvalidLanguage   = errors.New("unknown language")
)

// GenerateRequest describes the material the teacher wants produced.
type GenerateRequest struct {
	GradeLevel   GradeLevel `json:"gradeLevel" validate:"required"`
	Subject      Subject    `json:"subject" validate:"required"`
	Topic        string     `json:"topic" validate:"required,notblank"`
	OutputType   OutputType `json:"outputType" validate:"required"`
	Duration     int        `json:"duration" validate:"omitempty,min=1"`
	NumQuestions int        `json:"numQuestions" validate:"omitempty,min=1,max=20"`
	Language     Language   `json:"language" validate:"required"`
}

func (r *GenerateRequest) Validate() error {
	r.Topic = core.CleanString(r.Topic)

	if err := core.Validate.Struct(r); err != nil {
		return err
	}
	if !r.GradeLevel.IsValid() {
		return core.NewValidationError(errInvalidGradeLevel, core.FieldError{Field: "gradeLevel", Error: errInvalidGradeLevel.Error()})
	}
	if !r.Subject.IsValid() {
		return core.NewValidationError(errInvalidSubject, core.FieldError{Field: "subject", Error: errInvalidSubject.Error()})
	}
	if !r.OutputType.IsValid() {
		return core.NewValidationError(errInvalidOutputType, core.FieldError{Field: "outputType", Error: errInvalidOutputType.Error()})
	}
	if !r.Language.IsValid() {
		return core.NewValidationError(errInvalidLanguage, core.FieldError{Field: "language", Error: errInvalidLanguage.Error()})
	}
	return nil
}

// Generator is any collaborator that can produce assignment content.
// For the Quiz output type the returned content carries the ordered question
// list; every other type yields a Markdown text body.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (Content, error)
}
