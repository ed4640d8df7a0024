package comms

import (
	"time"

	"github.com/fundalabs/funda/core"
)

// Communication is a message a teacher filed for a recipient. StudentID is
// resolved once at send time by name lookup; when it stays nil the message is
// recorded but surfaces in no student inbox.
type Communication struct {
	ID             int64     `json:"id"` // time-based (unix milliseconds at send time)
	RecipientName  string    `json:"recipientName"`
	RecipientGrade string    `json:"recipientGrade"`
	RecipientEmail string    `json:"recipientEmail"`
	Message        string    `json:"message"`
	SentAt         time.Time `json:"sentAt"`
	StudentID      *int      `json:"studentId,omitempty"`
}

// NewCommunication contains information needed to send a Communication.
type NewCommunication struct {
	RecipientName  string `json:"recipientName" validate:"required,notblank"`
	RecipientGrade string `json:"recipientGrade"`
	RecipientEmail string `json:"recipientEmail" validate:"omitempty,email"`
	Message        string `json:"message" validate:"required,notblank"`
}

func (nc *NewCommunication) Validate() error {
	nc.RecipientName = core.CleanString(nc.RecipientName)
	nc.RecipientEmail = core.CleanString(nc.RecipientEmail, true /* lower */)
	nc.Message = core.CleanString(nc.Message)
	return core.Validate.Struct(nc)
}
