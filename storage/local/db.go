// Package localdb owns the canonical in-memory collections and keeps them
// mirrored to a snapshot store: each collection is loaded once at Open and
// re-serialized wholesale after every mutation to it. Snapshot writes are
// per-collection and best-effort; a write failure is logged, never surfaced.
package localdb

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fundalabs/funda/core"
	"github.com/fundalabs/funda/core/assignment"
	"github.com/fundalabs/funda/core/comms"
	"github.com/fundalabs/funda/core/identity"
	"github.com/fundalabs/funda/core/student"
)

type (
	DB struct {
		snap   core.SnapshotStore
		logger core.Logger

		students    *studentTable
		assignments *assignmentTable
		comms       *commsTable
		credits     *creditTable
		pros        *proTable
	}

	studentTable struct {
		sync.RWMutex
		table map[int]*student.Student
	}

	assignmentTable struct {
		sync.RWMutex
		table map[int]*assignment.Assignment
	}

	commsTable struct {
		sync.RWMutex
		table map[int64]*comms.Communication
	}

	creditTable struct {
		sync.RWMutex
		table map[identity.Key]identity.CreditInfo
	}

	proTable struct {
		sync.RWMutex
		table map[identity.Key]struct{}
	}
)

// Open loads every collection from the snapshot store. Missing or malformed
// data for a collection falls back to an empty default.
func Open(snap core.SnapshotStore, logger core.Logger) (*DB, error) {
	db := &DB{
		snap:        snap,
		logger:      logger,
		students:    &studentTable{table: make(map[int]*student.Student)},
		assignments: &assignmentTable{table: make(map[int]*assignment.Assignment)},
		comms:       &commsTable{table: make(map[int64]*comms.Communication)},
		credits:     &creditTable{table: make(map[identity.Key]identity.CreditInfo)},
		pros:        &proTable{table: make(map[identity.Key]struct{})},
	}
	db.loadAll()
	return db, nil
}

func (db *DB) loadAll() {
	var students []student.Student
	if db.load(core.SnapshotStudents, &students) {
		for i := range students {
			s := students[i]
			db.students.table[s.ID] = &s
		}
	}

	var assignments []assignment.Assignment
	if db.load(core.SnapshotAssignments, &assignments) {
		for i := range assignments {
			a := assignments[i]
			db.assignments.table[a.ID] = &a
		}
	}

	var msgs []comms.Communication
	if db.load(core.SnapshotCommunications, &msgs) {
		for i := range msgs {
			c := msgs[i]
			db.comms.table[c.ID] = &c
		}
	}

	var credits map[string]identity.CreditInfo
	if db.load(core.SnapshotUserCredits, &credits) {
		for k, info := range credits {
			if key, ok := identity.ParseKey(k); ok {
				db.credits.table[key] = info
			}
		}
	}

	var pros []string
	if db.load(core.SnapshotProUsers, &pros) {
		for _, k := range pros {
			if key, ok := identity.ParseKey(k); ok {
				db.pros.table[key] = struct{}{}
			}
		}
	}
}

// load returns true when the collection had a valid snapshot.
func (db *DB) load(key string, dest interface{}) bool {
	blob, err := db.snap.Load(key)
	if err != nil {
		db.warnf("loading %q snapshot: %v", key, err)
		return false
	}
	if blob == nil {
		return false
	}
	if err = json.Unmarshal(blob, dest); err != nil {
		db.warnf("unmarshalling %q snapshot: %v", key, err)
		return false
	}
	return true
}

// save serializes a collection and writes it through, swallowing failures.
// Callers must not hold it under their table lock beyond what they pass in.
func (db *DB) save(key string, value interface{}) {
	blob, err := json.Marshal(value)
	if err != nil {
		db.warnf("marshalling %q snapshot: %v", key, err)
		return
	}
	if err = db.snap.Save(key, blob); err != nil {
		db.warnf("saving %q snapshot: %v", key, err)
	}
}

func (db *DB) warnf(format string, args ...interface{}) {
	if db.logger != nil {
		db.logger.Warn(fmt.Sprintf(format, args...))
	}
}
