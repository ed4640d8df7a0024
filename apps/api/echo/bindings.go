package echoapi

import (
	"github.com/fundalabs/funda/core"
	"github.com/fundalabs/funda/core/assignment"
	"github.com/fundalabs/funda/core/identity"
)

type (
	LoginRequest struct {
		Name string        `json:"name" validate:"required,notblank"`
		Role identity.Role `json:"role" validate:"required"`
	}

	LoginResponse struct {
		Token    string            `json:"token"`
		Identity identity.Identity `json:"identity"`
		Credits  int               `json:"credits"`
	}

	CreditsResponse struct {
		Credits      int  `json:"credits"`
		OutOfCredits bool `json:"outOfCredits"`
	}

	GenerateResponse struct {
		OutputType assignment.OutputType `json:"outputType"`
		Content    assignment.Content    `json:"content"`
		Credits    int                   `json:"credits"`
	}

	SubmitRequest struct {
		Answers []assignment.Answer `json:"answers" validate:"required"`
	}
)

func (r *LoginRequest) Validate() error {
	r.Name = core.CleanString(r.Name)
	return core.Validate.Struct(r)
}

func (r *SubmitRequest) Validate() error {
	return core.Validate.Struct(r)
}
