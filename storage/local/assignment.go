package localdb

import (
	"sort"

	"github.com/fundalabs/funda/core"
	"github.com/fundalabs/funda/core/assignment"
)

type assignmentRepository struct {
	db *DB
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

// query returns assignments in creation (ID) order.
func (repo *assignmentRepository) query() []assignment.Assignment {
	tbl := repo.db.assignments
	assignments := make([]assignment.Assignment, 0, len(tbl.table))
	for _, a := range tbl.table {
		assignments = append(assignments, *a)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments
}

func (repo *assignmentRepository) persist() {
	repo.db.save(core.SnapshotAssignments, repo.query())
}

func (repo *assignmentRepository) CreateAssignment(a assignment.Assignment) (assignment.Assignment, error) {
	tbl := repo.db.assignments
	tbl.Lock()
	defer tbl.Unlock()

	var maxID int
	for id := range tbl.table {
		if id > maxID {
			maxID = id
		}
	}
	a.ID = maxID + 1
	if a.Submissions == nil {
		a.Submissions = make([]assignment.Submission, 0)
	}
	tbl.table[a.ID] = &a

	repo.persist()
	return a, nil
}

func (repo *assignmentRepository) QueryAllAssignments() ([]assignment.Assignment, error) {
	tbl := repo.db.assignments
	tbl.RLock()
	defer tbl.RUnlock()
	return repo.query(), nil
}

func (repo *assignmentRepository) GetAssignmentByID(id int) (assignment.Assignment, error) {
	tbl := repo.db.assignments
	tbl.RLock()
	defer tbl.RUnlock()

	if a, ok := tbl.table[id]; ok {
		return *a, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) UpsertSubmission(assignmentID int, sub assignment.Submission) (assignment.Assignment, error) {
	tbl := repo.db.assignments
	tbl.Lock()
	defer tbl.Unlock()

	a, ok := tbl.table[assignmentID]
	if !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}

	replaced := false
	for i, existing := range a.Submissions {
		if existing.StudentID == sub.StudentID {
			a.Submissions[i] = sub
			replaced = true
			break
		}
	}
	if !replaced {
		a.Submissions = append(a.Submissions, sub)
	}

	repo.persist()
	return *a, nil
}

func (repo *assignmentRepository) RemoveStudentRefs(studentID int) error {
	tbl := repo.db.assignments
	tbl.Lock()
	defer tbl.Unlock()

	for _, a := range tbl.table {
		subs := a.Submissions[:0]
		for _, sub := range a.Submissions {
			if sub.StudentID != studentID {
				subs = append(subs, sub)
			}
		}
		a.Submissions = subs

		assigned := a.AssignedTo[:0]
		for _, id := range a.AssignedTo {
			if id != studentID {
				assigned = append(assigned, id)
			}
		}
		a.AssignedTo = assigned
	}

	repo.persist()
	return nil
}
