package constants

import "fmt"

const (
	RoleStudent    = "student"
	RoleParent     = "parent"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// Role error message templates
const (
	ErrOnlyInstructorsCanAccess = "only instructors or admins may access %s"
	ErrOnlyAdminsCanAccess      = "only admins may access %s"
)

func RoleErrorInstructor(feature string) string {
	return fmt.Sprintf(ErrOnlyInstructorsCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// Grouped role slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleParent,
		RoleInstructor,
		RoleAdmin,
		RoleSuperadmin,
	}

	InstructorAndAbove = []string{
		RoleInstructor,
		RoleAdmin,
		RoleSuperadmin,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleSuperadmin,
	}
)

// AdminTierRoles short-circuit every course access check.
var AdminTierRoles = map[string]bool{
	RoleAdmin:      true,
	RoleSuperadmin: true,
}
