// Package persons exposes the people manager API as typed operations:
// account signup/login and CRUD on person records.
package persons

import "fmt"

// RefKind says which identifier namespace a Ref lives in.
type RefKind string

const (
	// RefGlobal addresses a record by its server-assigned id.
	RefGlobal RefKind = "global"
	// RefUser addresses a record by its per-user user_person_id.
	RefUser RefKind = "user"
)

// Person is a record as the backend returns it. The client never assigns or
// mutates ID/UserPersonID; it only echoes back whichever identifier the last
// response supplied.
type Person struct {
	ID           int64  `json:"id"`
	UserPersonID *int64 `json:"user_person_id,omitempty"`
	Name         string `json:"name"`
	Roll         string `json:"roll"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
}

// Ref identifies a person record for fetch/replace/patch/delete calls.
type Ref struct {
	ID   int64
	Kind RefKind
}

// Ref returns the identifier to use for per-record operations. When the
// record carries a user_person_id, that identifier is authoritative and the
// raw id must not be used.
func (p Person) Ref() Ref {
	if p.UserPersonID != nil {
		return Ref{ID: *p.UserPersonID, Kind: RefUser}
	}
	return Ref{ID: p.ID, Kind: RefGlobal}
}

// String renders the identifier with a marker for its kind: u7 for a
// user-scoped id, #42 for a global one.
func (r Ref) String() string {
	if r.Kind == RefUser {
		return fmt.Sprintf("u%d", r.ID)
	}
	return fmt.Sprintf("#%d", r.ID)
}

func (r Ref) path() string {
	return fmt.Sprintf("/persons/%d", r.ID)
}
