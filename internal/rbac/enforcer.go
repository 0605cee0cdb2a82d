package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Model RBAC sederhana: subject = role dari JWT, object = resource, action.
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

// policy statis: siapa boleh apa. Disimpan di kode karena peran dan
// resource aplikasi ini tetap (admin/manager/employee).
var policies = [][]string{
	{RoleEmployee, "employee", "read"},
	{RoleEmployee, "leave", "read"},
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "compoff", "read"},
	{RoleEmployee, "payslip", "read"},
	{RoleEmployee, "reimbursement", "read"},
	{RoleEmployee, "reimbursement", "create"},
	{RoleEmployee, "reimbursement", "delete"},

	{RoleManager, "leave", "approve"},
	{RoleManager, "compoff", "create"},
	{RoleManager, "employee", "read_all"},

	{RoleAdmin, "employee", "create"},
	{RoleAdmin, "employee", "update"},
	{RoleAdmin, "employee", "delete"},
	{RoleAdmin, "salarystructure", "read"},
	{RoleAdmin, "salarystructure", "write"},
	{RoleAdmin, "payslip", "generate"},
	{RoleAdmin, "reimbursement", "process"},
}

// pewarisan peran: admin ⊇ manager ⊇ employee
var groupings = [][]string{
	{RoleManager, RoleEmployee},
	{RoleAdmin, RoleManager},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
