package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// NewEnforcer builds a casbin enforcer with the static role policy.
// Roles map to the principal roles carried in the JWT.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range defaultPolicies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// role, resource, action
var defaultPolicies = [][3]string{
	{"OWNER", "attendance", "read"},
	{"OWNER", "attendance", "create"},
	{"OWNER", "attendance", "update"},
	{"OWNER", "attendance", "delete"},
	{"OWNER", "attendance", "lock"},
	{"OWNER", "attendance", "unlock"},
	{"OWNER", "payroll", "read"},
	{"OWNER", "payroll", "generate"},
	{"OWNER", "payroll", "approve"},
	{"OWNER", "payroll", "pay"},

	{"ADMIN", "attendance", "read"},
	{"ADMIN", "attendance", "create"},
	{"ADMIN", "attendance", "update"},
	{"ADMIN", "attendance", "delete"},
	{"ADMIN", "attendance", "lock"},
	{"ADMIN", "attendance", "unlock"},
	{"ADMIN", "payroll", "read"},
	{"ADMIN", "payroll", "generate"},
	{"ADMIN", "payroll", "approve"},
	{"ADMIN", "payroll", "pay"},

	{"STAFF", "attendance", "read"},
	{"STAFF", "attendance", "create"},
	{"STAFF", "attendance", "update"},
	{"STAFF", "attendance", "delete"},
	{"STAFF", "payroll", "read"},
}
