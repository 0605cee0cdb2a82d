package rbac_test

import (
	"testing"

	"go-hrm/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestEnforcer(t *testing.T) {
	e, err := rbac.NewEnforcer()
	assert.NoError(t, err)

	check := func(sub, obj, act string) bool {
		ok, err := e.Enforce(sub, obj, act)
		assert.NoError(t, err)
		return ok
	}

	t.Run("employee baseline", func(t *testing.T) {
		assert.True(t, check(rbac.RoleEmployee, "leave", "create"))
		assert.True(t, check(rbac.RoleEmployee, "payslip", "read"))
		assert.False(t, check(rbac.RoleEmployee, "leave", "approve"))
		assert.False(t, check(rbac.RoleEmployee, "salarystructure", "write"))
	})

	t.Run("manager inherits employee", func(t *testing.T) {
		assert.True(t, check(rbac.RoleManager, "leave", "create"))
		assert.True(t, check(rbac.RoleManager, "leave", "approve"))
		assert.True(t, check(rbac.RoleManager, "compoff", "create"))
		assert.False(t, check(rbac.RoleManager, "payslip", "generate"))
		assert.False(t, check(rbac.RoleManager, "employee", "delete"))
	})

	t.Run("admin inherits manager", func(t *testing.T) {
		assert.True(t, check(rbac.RoleAdmin, "leave", "approve"))
		assert.True(t, check(rbac.RoleAdmin, "reimbursement", "create"))
		assert.True(t, check(rbac.RoleAdmin, "payslip", "generate"))
		assert.True(t, check(rbac.RoleAdmin, "reimbursement", "process"))
	})

	t.Run("unknown role denied", func(t *testing.T) {
		assert.False(t, check("guest", "leave", "read"))
	})
}
