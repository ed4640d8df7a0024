package core

// Snapshot collection keys. Each logical collection is read once at startup
// and rewritten wholesale after every mutation to it.
const (
	SnapshotStudents       = "students"
	SnapshotAssignments    = "assignments"
	SnapshotCommunications = "communications"
	SnapshotUserCredits    = "userCredits"
	SnapshotProUsers       = "proUsers"
)

// SnapshotStore is a string-keyed blob store persisting each collection as one
// JSON document. Implementations are best-effort: a missing key is not an
// error, and writes are not transactional across keys.
type SnapshotStore interface {
	// Load returns the blob stored under key, or (nil, nil) when absent.
	Load(key string) ([]byte, error)
	// Save overwrites the blob stored under key.
	Save(key string, blob []byte) error
}
