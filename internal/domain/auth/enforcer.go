package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var ErrInvalidPermission = errors.New("invalid permission")

// Enforcer answers permission checks for role names against the built-in
// role table.
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("authz model: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz enforcer: %w", err)
	}

	roles := make([]string, 0, len(RolePermissions))
	for role := range RolePermissions {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		for _, perm := range RolePermissions[role] {
			obj, act, err := splitPermission(perm)
			if err != nil {
				return nil, err
			}
			if _, err := e.AddPolicy(role, obj, act); err != nil {
				return nil, fmt.Errorf("authz policy %s %s: %w", role, perm, err)
			}
		}
	}
	for child, parent := range RoleParents {
		if _, err := e.AddGroupingPolicy(child, parent); err != nil {
			return nil, fmt.Errorf("authz role %s: %w", child, err)
		}
	}
	return &Enforcer{enforcer: e}, nil
}

func (e *Enforcer) Allowed(role, permission string) (bool, error) {
	obj, act, err := splitPermission(permission)
	if err != nil {
		return false, err
	}
	return e.enforcer.Enforce(role, obj, act)
}

// Permissions returns every permission the role holds, inherited ones
// included, sorted.
func (e *Enforcer) Permissions(role string) ([]string, error) {
	out := make([]string, 0)
	for _, perm := range DefaultPermissions {
		ok, err := e.Allowed(role, perm)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, perm)
		}
	}
	sort.Strings(out)
	return out, nil
}

func splitPermission(permission string) (string, string, error) {
	i := strings.LastIndex(permission, ".")
	if i <= 0 || i == len(permission)-1 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPermission, permission)
	}
	return permission[:i], permission[i+1:], nil
}
