package localdb

import (
	"sort"

	"github.com/fundalabs/funda/core"
	"github.com/fundalabs/funda/core/identity"
)

type creditRepository struct {
	db *DB
}

var _ identity.LedgerRepository = (*creditRepository)(nil)

func NewCreditRepository(db *DB) identity.LedgerRepository {
	return &creditRepository{db: db}
}

func (repo *creditRepository) persist() {
	tbl := repo.db.credits
	// serialized in the legacy "{role}-{name}" keyed form
	out := make(map[string]identity.CreditInfo, len(tbl.table))
	for key, info := range tbl.table {
		out[key.String()] = info
	}
	repo.db.save(core.SnapshotUserCredits, out)
}

func (repo *creditRepository) GetCredit(key identity.Key) (identity.CreditInfo, error) {
	tbl := repo.db.credits
	tbl.RLock()
	defer tbl.RUnlock()

	if info, ok := tbl.table[key]; ok {
		return info, nil
	}
	return identity.CreditInfo{}, identity.ErrNoLedgerEntry
}

func (repo *creditRepository) SetCredit(key identity.Key, info identity.CreditInfo) error {
	tbl := repo.db.credits
	tbl.Lock()
	defer tbl.Unlock()

	tbl.table[key] = info
	repo.persist()
	return nil
}

type proRepository struct {
	db *DB
}

var _ identity.ProRepository = (*proRepository)(nil)

func NewProRepository(db *DB) identity.ProRepository {
	return &proRepository{db: db}
}

func (repo *proRepository) persist() {
	tbl := repo.db.pros
	keys := make([]string, 0, len(tbl.table))
	for key := range tbl.table {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)
	repo.db.save(core.SnapshotProUsers, keys)
}

func (repo *proRepository) IsPro(key identity.Key) (bool, error) {
	tbl := repo.db.pros
	tbl.RLock()
	defer tbl.RUnlock()

	_, ok := tbl.table[key]
	return ok, nil
}

func (repo *proRepository) AddPro(key identity.Key) error {
	tbl := repo.db.pros
	tbl.Lock()
	defer tbl.Unlock()

	tbl.table[key] = struct{}{}
	repo.persist()
	return nil
}
