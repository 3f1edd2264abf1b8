package database

import (
	"cafewifi/model"
	"fmt"
	"gorm.io/gorm"
	"log"
	"time"
)

// SchemaMigration records an applied migration version.
type SchemaMigration struct {
	Version   int    `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"size:100;not null"`
	AppliedAt time.Time
}

type migration struct {
	version int
	name    string
	up      func(tx *gorm.DB) error
}

// migrations are applied in order; append new steps, never edit applied ones.
var migrations = []migration{
	{
		version: 1,
		name:    "create_users_and_cafes",
		up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&model.User{}, &model.Cafe{})
		},
	},
	{
		version: 2,
		name:    "backfill_admin_role",
		up:      backfillAdminRole,
	},
}

// Migrate applies every migration that is not yet recorded in schema_migrations.
// Each step runs in its own transaction together with its bookkeeping row.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var applied []SchemaMigration
	if err := db.Find(&applied).Error; err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	done := make(map[int]bool, len(applied))
	for _, m := range applied {
		done[m.Version] = true
	}

	for _, m := range migrations {
		if done[m.version] {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.up(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{
				Version:   m.version,
				Name:      m.name,
				AppliedAt: time.Now(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %04d_%s: %w", m.version, m.name, err)
		}
		log.Printf("Applied migration %04d_%s", m.version, m.name)
	}

	return nil
}

// AppliedVersions lists recorded migration versions in ascending order.
func AppliedVersions(db *gorm.DB) ([]int, error) {
	var versions []int
	err := db.Model(&SchemaMigration{}).Order("version").Pluck("version", &versions).Error
	return versions, err
}

// backfillAdminRole promotes user 1 when no admin exists. Databases created
// before the role column treated the first user as the administrator.
func backfillAdminRole(tx *gorm.DB) error {
	var admins int64
	if err := tx.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&admins).Error; err != nil {
		return err
	}
	if admins > 0 {
		return nil
	}
	return tx.Model(&model.User{}).Where("id = ?", 1).Update("role", model.RoleAdmin).Error
}
