package assignment

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/fundalabs/funda/core"
)

// OutputType is the kind of material the generation collaborator produces.
// Every kind but Quiz is narrative Markdown; Quiz is a structured question list.
type OutputType string

const (
	TypeLessonPlan     OutputType = "Lesson Plan"
	TypeStudyGuide     OutputType = "Study Guide"
	TypeQuiz           OutputType = "Quiz"
	TypeDifferentiated OutputType = "Differentiated Activity"
	TypeMicroLesson    OutputType = "Micro-Lesson"
	TypeProjectIdea    OutputType = "Project-Based Learning Idea"
)

var OutputTypes = []OutputType{
	TypeLessonPlan,
	TypeStudyGuide,
	TypeQuiz,
	TypeDifferentiated,
	TypeMicroLesson,
	TypeProjectIdea,
}

func (t OutputType) IsValid() bool {
	for _, ot := range OutputTypes {
		if t == ot {
			return true
		}
	}
	return false
}

func (t OutputType) IsQuiz() bool { return t == TypeQuiz }

// Status of an assignment for a given student. One-way: Pending -> Completed,
// triggered by submission. No in-progress state is persisted.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// QuizQuestion is one quiz item. Options always has 4 entries and
// CorrectAnswerIndex addresses into it. Question order is meaningful:
// answer vectors are positionally aligned with the question list.
type QuizQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// ContentKind discriminates the content union.
type ContentKind string

const (
	ContentText ContentKind = "text"
	ContentQuiz ContentKind = "quiz"
)

// Content is the generated material attached to an assignment: either a
// Markdown text body or an ordered quiz-question list, never both.
// It serializes to the bare underlying value (a JSON string or array), so
// stored assignments keep the original dynamic shape.
type Content struct {
	Kind ContentKind    `json:"-"`
	Text string         `json:"-"`
	Quiz []QuizQuestion `json:"-"`
}

func TextContent(text string) Content {
	return Content{Kind: ContentText, Text: text}
}

func QuizContent(questions []QuizQuestion) Content {
	return Content{Kind: ContentQuiz, Quiz: questions}
}

func (c Content) IsQuiz() bool { return c.Kind == ContentQuiz }

func (c Content) MarshalJSON() ([]byte, error) {
	if c.Kind == ContentQuiz {
		if c.Quiz == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(c.Quiz)
	}
	return json.Marshal(c.Text)
}

func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		c.Kind = ContentQuiz
		return errors.Wrap(json.Unmarshal(trimmed, &c.Quiz), "unmarshalling quiz content")
	}
	c.Kind = ContentText
	return errors.Wrap(json.Unmarshal(trimmed, &c.Text), "unmarshalling text content")
}

// Answer is one raw answer slot: a selected option index for quiz questions,
// free text for open answers, or null when the slot was left blank.
type Answer struct {
	Index *int
	Text  *string
}

func IndexAnswer(i int) Answer   { return Answer{Index: &i} }
func TextAnswer(s string) Answer { return Answer{Text: &s} }
func BlankAnswer() Answer        { return Answer{} }
func (a Answer) IsBlank() bool   { return a.Index == nil && a.Text == nil }

// Matches reports whether the answer selects the given option index.
func (a Answer) Matches(idx int) bool {
	return a.Index != nil && *a.Index == idx
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch {
	case a.Index != nil:
		return json.Marshal(*a.Index)
	case a.Text != nil:
		return json.Marshal(*a.Text)
	default:
		return []byte("null"), nil
	}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		a.Index, a.Text = nil, nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		a.Index = nil
		return errors.Wrap(json.Unmarshal(trimmed, &a.Text), "unmarshalling text answer")
	}
	a.Text = nil
	return errors.Wrap(json.Unmarshal(trimmed, &a.Index), "unmarshalling index answer")
}

// Submission is one student's answer to an assignment. At most one submission
// exists per (assignment, student) pair; resubmitting replaces the previous one.
type Submission struct {
	StudentID   int       `json:"studentId"`
	Answers     []Answer  `json:"answers"`
	Score       *int      `json:"score,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Assignment is generated material distributed to a subset of the roster.
// Immutable after creation except for its submissions.
type Assignment struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Type         OutputType   `json:"type"`
	Content      Content      `json:"content"`
	DueDate      string       `json:"dueDate"`
	Instructions string       `json:"instructions"`
	AssignedTo   []int        `json:"assignedTo"`
	Submissions  []Submission `json:"submissions"`
}

// IsAssignedTo reports whether the student is in the distribution list.
func (a Assignment) IsAssignedTo(studentID int) bool {
	for _, id := range a.AssignedTo {
		if id == studentID {
			return true
		}
	}
	return false
}

// SubmissionFor returns the student's submission, if any.
func (a Assignment) SubmissionFor(studentID int) (Submission, bool) {
	for _, sub := range a.Submissions {
		if sub.StudentID == studentID {
			return sub, true
		}
	}
	return Submission{}, false
}

// StudentAssignment is the per-student read-only view of an assignment.
type StudentAssignment struct {
	ID           int         `json:"id"`
	Title        string      `json:"title"`
	Type         OutputType  `json:"type"`
	Content      Content     `json:"content"`
	DueDate      string      `json:"dueDate"`
	Instructions string      `json:"instructions"`
	Status       Status      `json:"status"`
	Submission   *Submission `json:"submission,omitempty"`
}

// NewAssignment contains information needed to create an Assignment from
// already-generated content and a distribution.
type NewAssignment struct {
	Title        string     `json:"title" validate:"required,notblank"`
	Type         OutputType `json:"type" validate:"required"`
	Content      Content    `json:"content"`
	DueDate      string     `json:"dueDate" validate:"required,notblank"`
	Instructions string     `json:"instructions"`
	AssignedTo   []int      `json:"assignedTo" validate:"required,min=1"`
}

func (na *NewAssignment) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Instructions = core.CleanString(na.Instructions)

	if err := core.Validate.Struct(na); err != nil {
		return err
	}
	if !na.Type.IsValid() {
		return core.NewValidationError(errInvalidOutputType, core.FieldError{Field: "type", Error: errInvalidOutputType.Error()})
	}
	if na.Type.IsQuiz() != na.Content.IsQuiz() {
		return core.NewValidationError(errContentKindMismatch, core.FieldError{Field: "content", Error: errContentKindMismatch.Error()})
	}
	return nil
}
