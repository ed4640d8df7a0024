package assignment

import (
	"errors"
	"math"
	"sort"
	"time"
)

var (
	// errors
	ErrNotFound = errors.New("assignment not found")

	errInvalidOutputType   = errors.New("unknown output type")
	errContentKindMismatch = errors.New("content does not match the output type")
)

type (
	Repository interface {
		CreateAssignment(a Assignment) (Assignment, error)
		// QueryAllAssignments returns assignments in creation order.
		QueryAllAssignments() ([]Assignment, error)
		GetAssignmentByID(id int) (Assignment, error)
		// UpsertSubmission replaces any existing submission by the same student
		// before appending, keeping one submission per (assignment, student).
		UpsertSubmission(assignmentID int, sub Submission) (Assignment, error)
		// RemoveStudentRefs drops the student's submissions and distribution
		// entries from every assignment.
		RemoveStudentRefs(studentID int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create combines externally produced content with a distribution into a new
// assignment. The content is stored as given; its shape is the generation
// collaborator's contract, not re-checked here.
func (svc *Service) Create(na NewAssignment) (Assignment, error) {
	a := Assignment{
		Title:        na.Title,
		Type:         na.Type,
		Content:      na.Content,
		DueDate:      na.DueDate,
		Instructions: na.Instructions,
		AssignedTo:   na.AssignedTo,
		Submissions:  make([]Submission, 0),
	}
	return svc.repo.CreateAssignment(a)
}

func (svc *Service) QueryAll() ([]Assignment, error) {
	return svc.repo.QueryAllAssignments()
}

func (svc *Service) GetByID(id int) (Assignment, error) {
	return svc.repo.GetAssignmentByID(id)
}

// Submit records the student's answers against the assignment. Quiz
// assignments are scored on the spot by exact index match, rounded to an
// integer percentage; other kinds carry no score. Submitting again replaces
// the previous submission.
func (svc *Service) Submit(assignmentID, studentID int, answers []Answer) (Submission, error) {
	a, err := svc.repo.GetAssignmentByID(assignmentID)
	if err != nil {
		return Submission{}, err
	}

	sub := Submission{
		StudentID:   studentID,
		Answers:     answers,
		SubmittedAt: time.Now().UTC(),
	}
	if a.Content.IsQuiz() {
		score := Score(a.Content.Quiz, answers)
		sub.Score = &score
	}

	if _, err := svc.repo.UpsertSubmission(assignmentID, sub); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

// Score counts exact matches of answers against the questions' correct option
// indices and returns round(100 * correct / len(questions)). No partial credit.
func Score(questions []QuizQuestion, answers []Answer) int {
	if len(questions) == 0 {
		return 0
	}
	var correct int
	for i, q := range questions {
		if i < len(answers) && answers[i].Matches(q.CorrectAnswerIndex) {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(questions))))
}

// ForStudent derives the student's view of every assignment distributed to
// them, in creation order: Completed with the submission attached when one
// exists, Pending otherwise.
func (svc *Service) ForStudent(studentID int) ([]StudentAssignment, error) {
	all, err := svc.repo.QueryAllAssignments()
	if err != nil {
		return nil, err
	}

	views := make([]StudentAssignment, 0, len(all))
	for _, a := range all {
		if !a.IsAssignedTo(studentID) {
			continue
		}
		view := StudentAssignment{
			ID:           a.ID,
			Title:        a.Title,
			Type:         a.Type,
			Content:      a.Content,
			DueDate:      a.DueDate,
			Instructions: a.Instructions,
			Status:       StatusPending,
		}
		if sub, ok := a.SubmissionFor(studentID); ok {
			view.Status = StatusCompleted
			view.Submission = &sub
		}
		views = append(views, view)
	}
	return views, nil
}

// RemoveStudentRefs is the roster-deletion cascade entry point.
func (svc *Service) RemoveStudentRefs(studentID int) error {
	return svc.repo.RemoveStudentRefs(studentID)
}

// SortByID orders assignments by ascending ID (creation order).
func SortByID(assignments []Assignment) {
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
}
