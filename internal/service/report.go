package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/coachbase/traindeck/internal/core"
	"github.com/coachbase/traindeck/internal/domain/model"
)

// ReportServiceOptions groups dependencies for ReportService.
type ReportServiceOptions struct {
	ReportRepo core.ReportRepository
}

// ReportService serves the admin dashboard's completion aggregates.
type ReportService struct {
	reports core.ReportRepository
}

// NewReportService constructs a new ReportService.
func NewReportService(opts ReportServiceOptions) *ReportService {
	return &ReportService{reports: opts.ReportRepo}
}

// TrainingCompletion returns per-training completion aggregates.
func (s *ReportService) TrainingCompletion(ctx context.Context) ([]model.TrainingReportRow, error) {
	return s.reports.TrainingCompletion(ctx)
}

// GroupCompletion returns per-group completion aggregates.
func (s *ReportService) GroupCompletion(ctx context.Context) ([]model.GroupReportRow, error) {
	return s.reports.GroupCompletion(ctx)
}

// Overview fetches both aggregate views concurrently for the dashboard.
func (s *ReportService) Overview(ctx context.Context) (*model.OverviewReport, error) {
	var report model.OverviewReport

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.reports.TrainingCompletion(gctx)
		if err != nil {
			return fmt.Errorf("training completion: %w", err)
		}
		report.Trainings = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reports.GroupCompletion(gctx)
		if err != nil {
			return fmt.Errorf("group completion: %w", err)
		}
		report.Groups = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &report, nil
}
