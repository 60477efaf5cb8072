package persons

import (
	"fmt"
	"strings"
)

// PersonInput is the client-supplied portion of a record, used for create and
// full replace.
type PersonInput struct {
	Name   string `json:"name"`
	Roll   string `json:"roll"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// Validate checks the input before any network call. Age is only required to
// be non-negative; no upper bound or further shape checks are applied.
func (in PersonInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(in.Roll) == "" {
		return fmt.Errorf("roll is required")
	}
	if in.Age < 0 {
		return fmt.Errorf("age must be zero or greater")
	}
	if strings.TrimSpace(in.Gender) == "" {
		return fmt.Errorf("gender is required")
	}
	return nil
}

// PersonPatch carries only the fields to change; nil fields are left
// untouched on the server.
type PersonPatch struct {
	Name   *string `json:"name,omitempty"`
	Roll   *string `json:"roll,omitempty"`
	Age    *int    `json:"age,omitempty"`
	Gender *string `json:"gender,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p PersonPatch) IsEmpty() bool {
	return p.Name == nil && p.Roll == nil && p.Age == nil && p.Gender == nil
}

// Credentials are a signup or login request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks credential presence before any network call.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
