package localdb

import (
	"sort"
	"strings"

	"github.com/fundalabs/funda/core"
	"github.com/fundalabs/funda/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

// query returns roster entries sorted by ID.
func (repo *studentRepository) query() []student.Student {
	tbl := repo.db.students
	students := make([]student.Student, 0, len(tbl.table))
	for _, s := range tbl.table {
		students = append(students, *s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students
}

func (repo *studentRepository) persist() {
	repo.db.save(core.SnapshotStudents, repo.query())
}

func (repo *studentRepository) CreateStudent(s student.Student) (student.Student, error) {
	tbl := repo.db.students
	tbl.Lock()
	defer tbl.Unlock()

	var maxID int
	for id := range tbl.table {
		if id > maxID {
			maxID = id
		}
	}
	s.ID = maxID + 1
	tbl.table[s.ID] = &s

	repo.persist()
	return s, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	tbl := repo.db.students
	tbl.RLock()
	defer tbl.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) GetStudentByID(id int) (student.Student, error) {
	tbl := repo.db.students
	tbl.RLock()
	defer tbl.RUnlock()

	if s, ok := tbl.table[id]; ok {
		return *s, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) GetStudentByName(name string) (student.Student, error) {
	tbl := repo.db.students
	tbl.RLock()
	defer tbl.RUnlock()

	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range repo.query() {
		if strings.ToLower(s.Name) == name {
			return s, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) DeleteStudent(id int) error {
	tbl := repo.db.students
	tbl.Lock()
	defer tbl.Unlock()

	if _, ok := tbl.table[id]; !ok {
		return student.ErrNotFound
	}
	delete(tbl.table, id)

	repo.persist()
	return nil
}
