package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachbase/traindeck/internal/domain/model"
)

func reportFixtures() ([]model.TrainingReportRow, []model.GroupReportRow) {
	trainings := []model.TrainingReportRow{
		{TrainingID: "t-1", Title: "Security Basics", AssignedUsers: 20, StartedUsers: 15, CompletedUsers: 12, AvgPercent: 71.5},
		{TrainingID: "t-2", Title: "Data Handling", AssignedUsers: 20, StartedUsers: 5, CompletedUsers: 1, AvgPercent: 12.0},
	}
	groups := []model.GroupReportRow{
		{GroupID: "g-1", GroupName: "Engineering", Members: 10, AssignedTrainings: 2, CompletionRate: 0.65},
	}
	return trainings, groups
}

func TestReportService_Overview(t *testing.T) {
	trainings, groups := reportFixtures()
	svc := NewReportService(ReportServiceOptions{ReportRepo: &fakeReportRepo{
		TrainingCompletionFunc: func(context.Context) ([]model.TrainingReportRow, error) {
			return trainings, nil
		},
		GroupCompletionFunc: func(context.Context) ([]model.GroupReportRow, error) {
			return groups, nil
		},
	}})

	report, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, trainings, report.Trainings)
	assert.Equal(t, groups, report.Groups)
}

func TestReportService_OverviewPropagatesErrors(t *testing.T) {
	boom := errors.New("relation does not exist")
	svc := NewReportService(ReportServiceOptions{ReportRepo: &fakeReportRepo{
		TrainingCompletionFunc: func(context.Context) ([]model.TrainingReportRow, error) {
			return nil, boom
		},
		GroupCompletionFunc: func(context.Context) ([]model.GroupReportRow, error) {
			return nil, nil
		},
	}})

	_, err := svc.Overview(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "training completion")
}
