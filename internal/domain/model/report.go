package model

// TrainingReportRow aggregates completion for one training.
type TrainingReportRow struct {
	TrainingID     string  `json:"training_id"     db:"training_id"`
	Title          string  `json:"title"           db:"title"`
	AssignedUsers  int     `json:"assigned_users"  db:"assigned_users"`
	StartedUsers   int     `json:"started_users"   db:"started_users"`
	CompletedUsers int     `json:"completed_users" db:"completed_users"`
	AvgPercent     float64 `json:"avg_percent"     db:"avg_percent"`
}

// GroupReportRow aggregates completion for one group across its assigned trainings.
type GroupReportRow struct {
	GroupID           string  `json:"group_id"           db:"group_id"`
	GroupName         string  `json:"group_name"         db:"group_name"`
	Members           int     `json:"members"            db:"members"`
	AssignedTrainings int     `json:"assigned_trainings" db:"assigned_trainings"`
	CompletionRate    float64 `json:"completion_rate"    db:"completion_rate"`
}

// OverviewReport is the dashboard summary: both aggregate views fetched
// together so the handler can fan the queries out concurrently.
type OverviewReport struct {
	Trainings []TrainingReportRow `json:"trainings"`
	Groups    []GroupReportRow    `json:"groups"`
}
