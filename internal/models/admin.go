package models

import (
	"fmt"
	"strings"
)

type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "superAdmin"
)

func ParseAdminRole(s string) (AdminRole, error) {
	switch AdminRole(strings.TrimSpace(s)) {
	case AdminRoleAdmin:
		return AdminRoleAdmin, nil
	case AdminRoleSuperAdmin:
		return AdminRoleSuperAdmin, nil
	default:
		return "", fmt.Errorf("unknown admin role %q", s)
	}
}

type AdminProfile struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	UserName     string    `bson:"userName" json:"userName"`
	Role         AdminRole `bson:"role" json:"role"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    string    `bson:"createdAt,omitempty" json:"createdAt"`
	LastLoginAt  string    `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
}
