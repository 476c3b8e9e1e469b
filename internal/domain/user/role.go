package user

import (
	"errors"
	"strings"
)

// RoleCode is the role carried by a user and by the tokens issued to it.
type RoleCode string

const (
	RoleCodeAdmin    RoleCode = "ADMIN"
	RoleCodeCustomer RoleCode = "CUSTOMER"
)

var ErrInvalidRoleCode = errors.New("invalid role code")

func (c RoleCode) IsValid() bool {
	switch c {
	case RoleCodeAdmin, RoleCodeCustomer:
		return true
	default:
		return false
	}
}

// IsAdmin is the only authorization decision the catalog makes.
func (c RoleCode) IsAdmin() bool {
	return c == RoleCodeAdmin
}

// ParseRoleCode converts a string from a request, token or row into a RoleCode.
func ParseRoleCode(s string) (RoleCode, error) {
	c := RoleCode(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidRoleCode
	}
	return c, nil
}
