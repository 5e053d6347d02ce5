package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/noah-isme/projeval-api/internal/models"
	"github.com/noah-isme/projeval-api/internal/repository"
)

func newReportFixture(t *testing.T) (ReportService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Student{ID: 1, Department: "CSE", FirstName: "Asha"}).Error)
	require.NoError(t, db.Create(&models.Student{ID: 2, Department: "ECE", FirstName: "Bilal"}).Error)
	require.NoError(t, db.Create(&models.Team{ID: 10, Name: "Falcons", Members: 4, StudentID: 1}).Error)
	require.NoError(t, db.Create(&models.Project{ID: 100, Title: "Crop Advisor", Domain: "AI", TeamID: 10}).Error)
	require.NoError(t, db.Create(&models.Project{ID: 101, Title: "Campus Map", Domain: "Web", TeamID: 10}).Error)
	require.NoError(t, db.Create(&models.Project{ID: 102, Title: "Exam Bot", Domain: "AI", TeamID: 10}).Error)
	require.NoError(t, db.Create(&models.Grade{ProjectID: 100, Letter: "C", FinalScore: 60}).Error)
	require.NoError(t, db.Create(&models.Grade{ProjectID: 101, Letter: "B", FinalScore: 70}).Error)
	require.NoError(t, db.Create(&models.Grade{ProjectID: 102, Letter: "A", FinalScore: 80}).Error)
	return NewReportService(repository.NewReportRepository(db), testLogger()), db
}

func TestReportServiceRunDispatchesByName(t *testing.T) {
	svc, _ := newReportFixture(t)
	ctx := context.Background()

	summary, err := svc.Run(ctx, "project_summary", 0)
	require.NoError(t, err)
	require.Len(t, summary.Rows, 3)
	require.Equal(t, "team_name", summary.Columns[5])
	require.Equal(t, "Falcons", summary.Rows[0][5])

	top, err := svc.Run(ctx, " TOP_PROJECTS ", 2)
	require.NoError(t, err)
	require.Equal(t, ReportTopProjects, top.Name)
	require.Len(t, top.Rows, 2)
	require.Equal(t, uint(102), top.Rows[0][0])
	require.Equal(t, 80.0, top.Rows[0][2])

	above, err := svc.Run(ctx, ReportAboveAverageGrades, 0)
	require.NoError(t, err)
	require.Len(t, above.Rows, 1)
	require.Equal(t, []interface{}{uint(102), "A", 80.0}, above.Rows[0])

	leads, err := svc.Run(ctx, ReportTeamLeads, 0)
	require.NoError(t, err)
	require.Equal(t, [][]interface{}{{uint(1), "Asha", "Falcons"}}, leads.Rows)

	domains, err := svc.Run(ctx, ReportProjectsPerDomain, 0)
	require.NoError(t, err)
	require.Equal(t, [][]interface{}{{"AI", int64(2)}, {"Web", int64(1)}}, domains.Rows)

	_, err = svc.Run(ctx, "student_marks", 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestReportServiceSummaryKeepsUngradedProjects(t *testing.T) {
	svc, db := newReportFixture(t)
	require.NoError(t, db.Create(&models.Project{ID: 103, Title: "Drone Mapper", Domain: "IoT", TeamID: 10}).Error)

	summary, err := svc.Run(context.Background(), ReportProjectSummary, 0)
	require.NoError(t, err)
	require.Len(t, summary.Rows, 4)
	last := summary.Rows[3]
	require.Equal(t, uint(103), last[0])
	require.Nil(t, last[7])
	require.Nil(t, last[8])

	top, err := svc.TopProjects(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
}

func TestReportServiceExportWritesWorkbook(t *testing.T) {
	svc, _ := newReportFixture(t)

	payload, err := svc.Export(context.Background(), ReportTopProjects, 0)
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer workbook.Close()

	require.Equal(t, []string{ReportTopProjects}, workbook.GetSheetList())
	rows, err := workbook.GetRows(ReportTopProjects)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, []string{"project_id", "title", "final_score"}, rows[0])
	require.Equal(t, []string{"102", "Exam Bot", "80"}, rows[1])

	_, err = svc.Export(context.Background(), "nope", 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestReportServiceNames(t *testing.T) {
	svc, _ := newReportFixture(t)
	require.Equal(t, []string{
		ReportAboveAverageGrades,
		ReportProjectSummary,
		ReportProjectsPerDomain,
		ReportTeamLeads,
		ReportTopProjects,
	}, svc.Names())
}
