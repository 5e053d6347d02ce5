package models

// ProjectSummaryRow is one row of the project summary view. Team and grade
// columns are nil when the project has no matching team or grade.
type ProjectSummaryRow struct {
	ProjectID   uint     `gorm:"column:project_id" json:"project_id"`
	Title       string   `gorm:"column:title" json:"title"`
	Domain      string   `gorm:"column:domain" json:"domain"`
	Technology  string   `gorm:"column:technology" json:"technology"`
	Duration    string   `gorm:"column:duration" json:"duration"`
	TeamName    *string  `gorm:"column:team_name" json:"team_name"`
	MemberCount *int     `gorm:"column:member_count" json:"member_count"`
	Grade       *string  `gorm:"column:grade" json:"grade"`
	FinalScore  *float64 `gorm:"column:final_score" json:"final_score"`
}

// TopProjectRow is one row of the top projects view.
type TopProjectRow struct {
	ProjectID  uint    `gorm:"column:project_id" json:"project_id"`
	Title      string  `gorm:"column:title" json:"title"`
	FinalScore float64 `gorm:"column:final_score" json:"final_score"`
}

// TeamLeadRow pairs a student with a team they lead.
type TeamLeadRow struct {
	StudentID uint   `gorm:"column:student_id" json:"student_id"`
	FirstName string `gorm:"column:first_name" json:"first_name"`
	TeamName  string `gorm:"column:team_name" json:"team_name"`
}

// DomainCountRow is the number of projects sharing a domain.
type DomainCountRow struct {
	Domain        string `gorm:"column:domain" json:"domain"`
	TotalProjects int64  `gorm:"column:total_projects" json:"total_projects"`
}
