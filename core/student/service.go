package student

import (
	"errors"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		CreateStudent(s Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id int) (Student, error)
		// GetStudentByName does a case-insensitive exact match on Student.Name.
		// When duplicate names exist, the lowest ID wins.
		GetStudentByName(name string) (Student, error)
		DeleteStudent(id int) error
	}

	// SubmissionPurger removes every trace of a student from the assignment
	// collection: their submissions and their entries in distribution lists.
	SubmissionPurger interface {
		RemoveStudentRefs(studentID int) error
	}

	Service struct {
		repo   Repository
		purger SubmissionPurger
	}
)

func NewService(repo Repository, purger SubmissionPurger) *Service {
	return &Service{repo: repo, purger: purger}
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	return svc.repo.CreateStudent(Student{Name: ns.Name})
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id int) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) GetByName(name string) (Student, error) {
	return svc.repo.GetStudentByName(name)
}

// Delete removes the student and cascades: their submissions are dropped from
// every assignment and their ID is removed from every distribution list, so no
// assignment is left pointing at a roster entry that no longer exists.
func (svc *Service) Delete(id int) error {
	if err := svc.repo.DeleteStudent(id); err != nil {
		return err
	}
	return svc.purger.RemoveStudentRefs(id)
}
