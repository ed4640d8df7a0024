package identity

import (
	"strings"
	"time"

	"github.com/fundalabs/funda/core"
)

type Role string

const (
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
)

var Roles = []Role{RoleTeacher, RoleStudent}

func (r Role) IsValid() bool {
	return r == RoleTeacher || r == RoleStudent
}

// Key is the composite ledger key: role plus normalized (lowercased) name.
// It replaces the accident-prone "{role}-{name}" string formatting; String()
// still renders that form, which is what the snapshot serialization uses.
type Key struct {
	Role Role   `json:"role"`
	Name string `json:"name"`
}

func NewKey(role Role, name string) Key {
	return Key{Role: role, Name: core.CleanString(name, true /* lower */)}
}

func (k Key) String() string {
	return string(k.Role) + "-" + k.Name
}

// ParseKey parses the serialized "{role}-{name}" form.
func ParseKey(s string) (Key, bool) {
	i := strings.Index(s, "-")
	if i <= 0 {
		return Key{}, false
	}
	role := Role(s[:i])
	if !role.IsValid() {
		return Key{}, false
	}
	return NewKey(role, s[i+1:]), true
}

// Identity is a resolved login: the subject of credit and pro operations.
// Name carries the roster's canonical casing for students.
type Identity struct {
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	IsPro bool   `json:"isPro"`
}

func (id Identity) Key() Key {
	return NewKey(id.Role, id.Name)
}

func (id Identity) IsTeacher() bool { return id.Role == RoleTeacher }
func (id Identity) IsStudent() bool { return id.Role == RoleStudent }

// CreditInfo is one ledger entry: the remaining daily allowance and when it
// was last reset. The reset check runs lazily, at login only.
type CreditInfo struct {
	Credits   int       `json:"credits"`
	LastReset time.Time `json:"lastCreditReset"`
}
