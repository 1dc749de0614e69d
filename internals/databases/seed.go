package databases

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"virtualab_backend/internals/constants"
	userModel "virtualab_backend/internals/features/users/user/model"
)

// SeedRoles inserts the built-in roles and their baseline permission
// grants. Idempotent: existing rows are left untouched.
func SeedRoles(db *gorm.DB) error {
	roles := []userModel.RoleModel{
		{RoleName: constants.RoleStudent},
		{RoleName: constants.RoleParent},
		{RoleName: constants.RoleInstructor},
		{RoleName: constants.RoleAdmin, AdminTier: true},
		{RoleName: constants.RoleSuperadmin, AdminTier: true},
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role_name"}},
		DoNothing: true,
	}).Create(&roles).Error; err != nil {
		return err
	}

	// reload to get ids for rows that already existed
	byName := map[string]userModel.RoleModel{}
	var all []userModel.RoleModel
	if err := db.Find(&all).Error; err != nil {
		return err
	}
	for _, r := range all {
		byName[r.RoleName] = r
	}

	grants := map[string][][2]string{
		constants.RoleStudent: {
			{constants.ResCourse, constants.ActRead},
			{constants.ResLab, constants.ActRead},
			{constants.ResSimulation, constants.ActRead},
			{constants.ResAnnouncement, constants.ActRead},
			{constants.ResCurriculum, constants.ActRead},
			{constants.ResProgress, constants.ActCreate},
			{constants.ResProgress, constants.ActRead},
		},
		constants.RoleParent: {
			{constants.ResCourse, constants.ActRead},
			{constants.ResAnnouncement, constants.ActRead},
			{constants.ResProgress, constants.ActRead},
		},
		constants.RoleInstructor: {
			{constants.ResCourse, constants.ActRead},
			{constants.ResCourse, constants.ActCreate},
			{constants.ResCourse, constants.ActUpdate},
			{constants.ResLab, constants.ActRead},
			{constants.ResLab, constants.ActCreate},
			{constants.ResLab, constants.ActUpdate},
			{constants.ResSimulation, constants.ActCreate},
			{constants.ResSimulation, constants.ActUpdate},
			{constants.ResAnnouncement, constants.ActRead},
			{constants.ResAnnouncement, constants.ActCreate},
			{constants.ResCurriculum, constants.ActRead},
			{constants.ResCurriculum, constants.ActCreate},
			{constants.ResCurriculum, constants.ActUpdate},
			{constants.ResProgress, constants.ActRead},
			{constants.ResFile, constants.ActCreate},
		},
	}
	// admin tiers get every (resource, action) pair
	resources := []string{
		constants.ResCourse, constants.ResLab, constants.ResSimulation,
		constants.ResAnnouncement, constants.ResCurriculum, constants.ResProgress,
		constants.ResUser, constants.ResFile, constants.ResActivityLog,
	}
	actions := []string{
		constants.ActRead, constants.ActCreate, constants.ActUpdate,
		constants.ActDelete, constants.ActManage,
	}
	for _, roleName := range []string{constants.RoleAdmin, constants.RoleSuperadmin} {
		for _, res := range resources {
			for _, act := range actions {
				grants[roleName] = append(grants[roleName], [2]string{res, act})
			}
		}
	}

	var perms []userModel.RolePermissionModel
	for roleName, pairs := range grants {
		role, ok := byName[roleName]
		if !ok {
			continue
		}
		for _, pair := range pairs {
			perms = append(perms, userModel.RolePermissionModel{
				RoleID:   role.ID,
				Resource: pair[0],
				Action:   pair[1],
			})
		}
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&perms, 100).Error; err != nil {
		return err
	}

	log.Printf("[INFO] role seed complete (%d roles, %d grants)", len(roles), len(perms))
	return nil
}
