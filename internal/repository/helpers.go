package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrReferenceNotFound indicates a record points at a row that does not exist.
	ErrReferenceNotFound = errors.New("referenced record not found")
	// ErrDependentRecords indicates a delete was refused because other rows reference the record.
	ErrDependentRecords = errors.New("record is referenced by dependent records")
)

// ensureReference fails with ErrReferenceNotFound when no row of model has column = key.
func ensureReference(tx *gorm.DB, model interface{}, table string, key uint) error {
	exists, err := rowExists(tx, model, "id", key)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s %d", ErrReferenceNotFound, table, key)
	}
	return nil
}

// ensureAbsent fails with gorm.ErrDuplicatedKey when the key is already taken.
func ensureAbsent(tx *gorm.DB, model interface{}, column string, key uint) error {
	exists, err := rowExists(tx, model, column, key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s %d", gorm.ErrDuplicatedKey, column, key)
	}
	return nil
}

// ensureNoDependents fails with ErrDependentRecords when rows of model still point at key.
func ensureNoDependents(tx *gorm.DB, model interface{}, table, column string, key uint) error {
	var count int64
	if err := tx.Model(model).Where(column+" = ?", key).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d %s", ErrDependentRecords, count, table)
	}
	return nil
}

func rowExists(tx *gorm.DB, model interface{}, column string, key uint) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(column+" = ?", key).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func updateByKey(tx *gorm.DB, model interface{}, column string, key uint, updates map[string]interface{}) error {
	result := tx.Model(model).Where(column+" = ?", key).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deleteByKey(tx *gorm.DB, model interface{}, column string, key uint) error {
	result := tx.Where(column+" = ?", key).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
