package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachbase/traindeck/internal/domain/model"
)

func newExportService(t *testing.T) *ReportExportService {
	t.Helper()
	trainings, groups := reportFixtures()
	reports := NewReportService(ReportServiceOptions{ReportRepo: &fakeReportRepo{
		TrainingCompletionFunc: func(context.Context) ([]model.TrainingReportRow, error) {
			return trainings, nil
		},
		GroupCompletionFunc: func(context.Context) ([]model.GroupReportRow, error) {
			return groups, nil
		},
	}})
	return NewReportExportService(ReportExportServiceOptions{Reports: reports})
}

func TestReportExportService_EmptyExpressionReturnsEverything(t *testing.T) {
	svc := newExportService(t)

	out, err := svc.Export(context.Background(), "")
	require.NoError(t, err)

	doc, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, doc, "trainings")
	assert.Contains(t, doc, "groups")
}

func TestReportExportService_ProjectsFields(t *testing.T) {
	svc := newExportService(t)

	out, err := svc.Export(context.Background(), "trainings[].{title: title, done: completed_users}")
	require.NoError(t, err)

	rows, ok := out.([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)

	first, ok := rows[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Security Basics", first["title"])
	assert.EqualValues(t, 12, first["done"])
}

func TestReportExportService_FiltersWithConditions(t *testing.T) {
	svc := newExportService(t)

	out, err := svc.Export(context.Background(), "trainings[?completed_users > `10`].training_id")
	require.NoError(t, err)

	assert.Equal(t, []any{"t-1"}, out)
}

func TestReportExportService_InvalidExpression(t *testing.T) {
	svc := newExportService(t)

	_, err := svc.Export(context.Background(), "trainings[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid projection expression")
}

func TestReportExportService_OverviewFailure(t *testing.T) {
	boom := errors.New("connection refused")
	reports := NewReportService(ReportServiceOptions{ReportRepo: &fakeReportRepo{
		TrainingCompletionFunc: func(context.Context) ([]model.TrainingReportRow, error) {
			return nil, boom
		},
		GroupCompletionFunc: func(context.Context) ([]model.GroupReportRow, error) {
			return nil, nil
		},
	}})
	svc := NewReportExportService(ReportExportServiceOptions{Reports: reports})

	_, err := svc.Export(context.Background(), "trainings")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestReportExportService_ValidateExpression(t *testing.T) {
	svc := newExportService(t)

	require.NoError(t, svc.ValidateExpression(""))
	require.NoError(t, svc.ValidateExpression("groups[].group_name"))
	require.Error(t, svc.ValidateExpression("groups[?"))
}
