package types

import "fmt"

// TurnRole is the author role of a conversation turn
type TurnRole string

const (
	TurnRoleHuman TurnRole = "human"
	TurnRoleAI    TurnRole = "ai"
)

// IsValid checks if the turn role is valid
func (r TurnRole) IsValid() bool {
	switch r {
	case TurnRoleHuman, TurnRoleAI:
		return true
	default:
		return false
	}
}

// String returns the string representation of the turn role
func (r TurnRole) String() string {
	return string(r)
}

// ParseTurnRole parses a string into a TurnRole
func ParseTurnRole(s string) (TurnRole, error) {
	r := TurnRole(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid turn role: %s", s)
	}
	return r, nil
}
