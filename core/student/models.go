package student

import (
	"github.com/fundalabs/funda/core"
)

// Student is a roster entry. IDs are assigned monotonically by the repository,
// starting at 1. Names are not unique; duplicates are permitted.
type Student struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NewStudent contains information needed to add a Student to the roster.
type NewStudent struct {
	Name string `json:"name" validate:"required,notblank"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	return core.Validate.Struct(ns)
}
