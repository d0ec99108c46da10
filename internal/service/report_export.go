package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// ReportExportServiceOptions groups dependencies for ReportExportService.
type ReportExportServiceOptions struct {
	Reports   *ReportService
	Evaluator JMESPathEvaluator
}

// ReportExportService shapes the overview report for export consumers.
// Callers supply a JMESPath expression to project exactly the fields their
// spreadsheet or BI tool expects; an empty expression exports everything.
type ReportExportService struct {
	reports *ReportService
	jems    JMESPathEvaluator
}

// NewReportExportService constructs a new ReportExportService.
func NewReportExportService(opts ReportExportServiceOptions) *ReportExportService {
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	return &ReportExportService{reports: opts.Reports, jems: jems}
}

// ValidateExpression checks a projection expression without running it.
func (s *ReportExportService) ValidateExpression(expr string) error {
	return s.jems.Validate(expr)
}

// Export fetches the overview report and applies the projection expression.
func (s *ReportExportService) Export(ctx context.Context, expr string) (any, error) {
	if err := s.jems.Validate(expr); err != nil {
		return nil, fmt.Errorf("invalid projection expression: %w", err)
	}

	report, err := s.reports.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch overview: %w", err)
	}

	// Round-trip through JSON so the evaluator sees generic maps and
	// slices keyed by the documented JSON field names.
	raw, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	if strings.TrimSpace(expr) == "" {
		return data, nil
	}

	result, err := s.jems.Evaluate(expr, data)
	if err != nil {
		return nil, fmt.Errorf("evaluate projection: %w", err)
	}
	return result, nil
}
