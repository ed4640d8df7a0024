package comms

import (
	"net/mail"
	"sort"
	"time"

	"github.com/fundalabs/funda/core"
	"github.com/fundalabs/funda/core/student"
)

type (
	Repository interface {
		CreateCommunication(c Communication) (Communication, error)
		QueryAllCommunications() ([]Communication, error)
		QueryCommunicationsByStudentID(studentID int) ([]Communication, error)
	}

	// StudentDirectory resolves recipient names against the roster.
	StudentDirectory interface {
		GetByName(name string) (student.Student, error)
	}

	Service struct {
		repo     Repository
		students StudentDirectory
		mailSvc  core.EmailService
	}
)

func NewService(repo Repository, students StudentDirectory, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, students: students, mailSvc: mailSvc}
}

// Send files the message. The recipient name is matched case-insensitively
// against the roster; a miss is not an error, the message is simply recorded
// unresolved. When a recipient email is given the message is also handed to
// the email service, fire-and-forget.
func (svc *Service) Send(nc NewCommunication) (Communication, error) {
	c := Communication{
		ID:             time.Now().UnixNano() / int64(time.Millisecond),
		RecipientName:  nc.RecipientName,
		RecipientGrade: nc.RecipientGrade,
		RecipientEmail: nc.RecipientEmail,
		Message:        nc.Message,
		SentAt:         time.Now().UTC(),
	}
	if s, err := svc.students.GetByName(nc.RecipientName); err == nil {
		c.StudentID = &s.ID
	}

	c, err := svc.repo.CreateCommunication(c)
	if err != nil {
		return Communication{}, err
	}

	if c.RecipientEmail != "" && svc.mailSvc != nil {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: c.RecipientName, Address: c.RecipientEmail}},
			Subject: "New message from your teacher",
			Body:    c.Message,
		})
	}
	return c, nil
}

func (svc *Service) QueryAll() ([]Communication, error) {
	return svc.repo.QueryAllCommunications()
}

// Inbox returns the student's messages, most recent first.
func (svc *Service) Inbox(studentID int) ([]Communication, error) {
	msgs, err := svc.repo.QueryCommunicationsByStudentID(studentID)
	if err != nil {
		return nil, err
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].SentAt.After(msgs[j].SentAt) })
	return msgs, nil
}
