package localdb

import (
	"sort"

	"github.com/fundalabs/funda/core"
	"github.com/fundalabs/funda/core/comms"
)

type commsRepository struct {
	db *DB
}

var _ comms.Repository = (*commsRepository)(nil)

func NewCommsRepository(db *DB) comms.Repository {
	return &commsRepository{db: db}
}

// query returns communications newest first, the order the teacher view shows.
func (repo *commsRepository) query() []comms.Communication {
	tbl := repo.db.comms
	msgs := make([]comms.Communication, 0, len(tbl.table))
	for _, c := range tbl.table {
		msgs = append(msgs, *c)
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].ID > msgs[j].ID })
	return msgs
}

func (repo *commsRepository) persist() {
	repo.db.save(core.SnapshotCommunications, repo.query())
}

func (repo *commsRepository) CreateCommunication(c comms.Communication) (comms.Communication, error) {
	tbl := repo.db.comms
	tbl.Lock()
	defer tbl.Unlock()

	// time-based IDs can collide when two messages land in the same
	// millisecond; bump until free
	for {
		if _, taken := tbl.table[c.ID]; !taken {
			break
		}
		c.ID++
	}
	tbl.table[c.ID] = &c

	repo.persist()
	return c, nil
}

func (repo *commsRepository) QueryAllCommunications() ([]comms.Communication, error) {
	tbl := repo.db.comms
	tbl.RLock()
	defer tbl.RUnlock()
	return repo.query(), nil
}

func (repo *commsRepository) QueryCommunicationsByStudentID(studentID int) ([]comms.Communication, error) {
	tbl := repo.db.comms
	tbl.RLock()
	defer tbl.RUnlock()

	msgs := make([]comms.Communication, 0)
	for _, c := range repo.query() {
		if c.StudentID != nil && *c.StudentID == studentID {
			msgs = append(msgs, c)
		}
	}
	return msgs, nil
}
