package database_test

import (
	"cafewifi/database"
	"cafewifi/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
	"testing"
)

func TestOpen_RejectsUnknownScheme(t *testing.T) {
	_, err := database.Open("mysql://root@localhost/cafe", logger.Silent)
	assert.Error(t, err)

	_, err = database.Open("", logger.Silent)
	assert.Error(t, err)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db, err := database.Open("file:migrate_idempotent?mode=memory&cache=shared", logger.Silent)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Migrate(db))

	versions, err := database.AppliedVersions(db)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, versions)

	assert.True(t, db.Migrator().HasTable(&model.User{}))
	assert.True(t, db.Migrator().HasTable("cafe"))
}

func TestMigrate_BackfillsAdminForLegacyData(t *testing.T) {
	db, err := database.Open("file:migrate_backfill?mode=memory&cache=shared", logger.Silent)
	require.NoError(t, err)

	// Tables exist with data but no migration has been recorded yet.
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Cafe{}))
	require.NoError(t, db.Create(&model.User{Email: "first@example.com", Name: "First", Password: "x", Role: model.RoleUser}).Error)
	require.NoError(t, db.Create(&model.User{Email: "second@example.com", Name: "Second", Password: "x", Role: model.RoleUser}).Error)

	require.NoError(t, database.Migrate(db))

	var first, second model.User
	require.NoError(t, db.First(&first, 1).Error)
	require.NoError(t, db.First(&second, 2).Error)
	assert.Equal(t, model.RoleAdmin, first.Role)
	assert.Equal(t, model.RoleUser, second.Role)
}

func TestOpen_SQLiteURI(t *testing.T) {
	db, err := database.Open("sqlite://", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
}
