package auth

import (
	"errors"
	"slices"
	"strings"
)

var (
	ErrEmptyServiceID    = errors.New("service id is required")
	ErrEmptyKeyHash      = errors.New("client key hash is required")
	ErrUnknownPermission = errors.New("unknown permission")
)

type Permission string

const (
	PermissionReserve Permission = "budget:reserve"
	PermissionConfirm Permission = "budget:confirm"
	PermissionRead    Permission = "budget:read"
)

func ParsePermission(s string) (Permission, error) {
	p := Permission(strings.TrimSpace(s))
	switch p {
	case PermissionReserve, PermissionConfirm, PermissionRead:
		return p, nil
	default:
		return "", ErrUnknownPermission
	}
}

func ParsePermissions(values []string) ([]Permission, error) {
	out := make([]Permission, 0, len(values))
	for _, v := range values {
		p, err := ParsePermission(v)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func PermissionStrings(perms []Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

// Caller is a trusted service allowed to obtain tokens.
type Caller struct {
	serviceID     string
	clientKeyHash string
	permissions   []Permission
}

func NewCaller(serviceID, clientKeyHash string, permissions []Permission) (Caller, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return Caller{}, ErrEmptyServiceID
	}
	if clientKeyHash == "" {
		return Caller{}, ErrEmptyKeyHash
	}
	return Caller{
		serviceID:     serviceID,
		clientKeyHash: clientKeyHash,
		permissions:   slices.Clone(permissions),
	}, nil
}

func (c Caller) ServiceID() string         { return c.serviceID }
func (c Caller) ClientKeyHash() string     { return c.clientKeyHash }
func (c Caller) Permissions() []Permission { return slices.Clone(c.permissions) }
func (c Caller) Principal() Principal {
	return Principal{ServiceID: c.serviceID, Permissions: c.Permissions()}
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ServiceID   string
	Permissions []Permission
}

func (p Principal) Has(perm Permission) bool {
	return slices.Contains(p.Permissions, perm)
}
