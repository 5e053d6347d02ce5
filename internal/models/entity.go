package models

// Entity names used by stores, events, metrics and the audit log.
const (
	EntityStudent    = "student"
	EntityTeam       = "team"
	EntityProject    = "project"
	EntityEvaluation = "evaluation"
	EntityMarks      = "marks"
	EntityGrade      = "grade"
)

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&Student{},
		&Team{},
		&Project{},
		&Evaluation{},
		&Marks{},
		&Grade{},
		&ActivityLog{},
	}
}
