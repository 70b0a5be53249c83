package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleNameByID(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleNameByID(RoleIDAdmin))
	assert.Equal(t, RoleDoctor, RoleNameByID(RoleIDDoctor))
	assert.Equal(t, RoleClinicalStaff, RoleNameByID(RoleIDClinicalStaff))
	assert.Equal(t, RoleStudent, RoleNameByID(RoleIDStudent))
	assert.Equal(t, RoleAcademicStaff, RoleNameByID(RoleIDAcademicStaff))
	assert.Equal(t, "", RoleNameByID(99))
}

func TestIsPatientRole(t *testing.T) {
	assert.True(t, IsPatientRole(RoleIDStudent))
	assert.True(t, IsPatientRole(RoleIDAcademicStaff))
	assert.False(t, IsPatientRole(RoleIDDoctor))
	assert.False(t, IsPatientRole(RoleIDClinicalStaff))
	assert.False(t, IsPatientRole(RoleIDAdmin))
}

func TestStaffTypeForRole(t *testing.T) {
	assert.Equal(t, StaffTypeStudent, StaffTypeForRole(RoleIDStudent))
	assert.Equal(t, StaffTypeAcademic, StaffTypeForRole(RoleIDAcademicStaff))
	assert.Equal(t, StaffTypeClinical, StaffTypeForRole(RoleIDDoctor))
	assert.Equal(t, StaffTypeClinical, StaffTypeForRole(RoleIDClinicalStaff))
	assert.Equal(t, "", StaffTypeForRole(RoleIDAdmin))
}
