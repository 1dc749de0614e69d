package databases

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"virtualab_backend/internals/constants"
	userModel "virtualab_backend/internals/features/users/user/model"
)

func openSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&userModel.RoleModel{}, &userModel.RolePermissionModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedRolesCreatesBuiltins(t *testing.T) {
	db := openSeedDB(t)

	if err := SeedRoles(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var roles []userModel.RoleModel
	if err := db.Find(&roles).Error; err != nil {
		t.Fatalf("load roles: %v", err)
	}
	if len(roles) != 5 {
		t.Fatalf("roles = %d, want 5", len(roles))
	}

	tiers := map[string]bool{}
	for _, r := range roles {
		tiers[r.RoleName] = r.AdminTier
	}
	if !tiers[constants.RoleAdmin] || !tiers[constants.RoleSuperadmin] {
		t.Errorf("admin tiers not flagged: %v", tiers)
	}
	if tiers[constants.RoleStudent] || tiers[constants.RoleInstructor] {
		t.Errorf("non-admin roles flagged as admin tier: %v", tiers)
	}

	var grants int64
	if err := db.Model(&userModel.RolePermissionModel{}).Count(&grants).Error; err != nil {
		t.Fatalf("count grants: %v", err)
	}
	if grants == 0 {
		t.Fatal("no permission grants seeded")
	}
}

func TestSeedRolesIsIdempotent(t *testing.T) {
	db := openSeedDB(t)

	if err := SeedRoles(db); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	var rolesBefore, grantsBefore int64
	db.Model(&userModel.RoleModel{}).Count(&rolesBefore)
	db.Model(&userModel.RolePermissionModel{}).Count(&grantsBefore)

	if err := SeedRoles(db); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	var rolesAfter, grantsAfter int64
	db.Model(&userModel.RoleModel{}).Count(&rolesAfter)
	db.Model(&userModel.RolePermissionModel{}).Count(&grantsAfter)

	if rolesBefore != rolesAfter {
		t.Errorf("roles grew on reseed: %d -> %d", rolesBefore, rolesAfter)
	}
	if grantsBefore != grantsAfter {
		t.Errorf("grants grew on reseed: %d -> %d", grantsBefore, grantsAfter)
	}
}
