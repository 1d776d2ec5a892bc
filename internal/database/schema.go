package database

import (
	"fmt"

	"gorm.io/gorm"
)

// ListRecord is the schema of the lists table
type ListRecord struct {
	ID   int    `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"not null;size:100"`
}

// TableName overrides gorm's pluralised default
func (ListRecord) TableName() string { return "lists" }

// TodoRecord is the schema of the todos table
type TodoRecord struct {
	ID        int        `gorm:"primaryKey;autoIncrement"`
	ListID    int        `gorm:"not null"`
	List      ListRecord `gorm:"foreignKey:ListID"`
	Name      string     `gorm:"not null;size:100"`
	Completed bool       `gorm:"not null;default:false"`
}

// TableName overrides gorm's pluralised default
func (TodoRecord) TableName() string { return "todos" }

// AutoMigrate creates the lists and todos tables when they are missing.
// It only ever adds; there is no versioning or rollback.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ListRecord{}, &TodoRecord{}); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
