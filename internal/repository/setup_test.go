package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/projeval-api/internal/database"
	"github.com/noah-isme/projeval-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func floatPtr(v float64) *float64 { return &v }

func seedProjectGraph(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.Student{ID: 1, Department: "CSE", Year: 3, FirstName: "Asha", LastName: "Rao", Age: 20}).Error)
	require.NoError(t, db.Create(&models.Student{ID: 2, Department: "ECE", Year: 2, FirstName: "Bilal", Age: 19}).Error)
	require.NoError(t, db.Create(&models.Student{ID: 3, Department: "ME", Year: 4, FirstName: "Chen", Age: 22}).Error)
	require.NoError(t, db.Create(&models.Team{ID: 10, Name: "Falcons", Members: 4, StudentID: 1}).Error)
	require.NoError(t, db.Create(&models.Team{ID: 11, Name: "Otters", Members: 3, StudentID: 2}).Error)
	require.NoError(t, db.Create(&models.Project{ID: 100, Title: "Crop Advisor", Domain: "AI", Technology: "Go", TeamID: 10}).Error)
	require.NoError(t, db.Create(&models.Project{ID: 101, Title: "Campus Map", Domain: "Web", Technology: "React", TeamID: 11}).Error)
	require.NoError(t, db.Create(&models.Project{ID: 102, Title: "Exam Bot", Domain: "AI", Technology: "Python", TeamID: 11}).Error)
}
