package httpx

import (
	"net/http"

	"github.com/coachbase/traindeck/internal/service"
)

// ReportHandlers provides HTTP handlers for the admin reporting endpoints.
type ReportHandlers struct {
	Svc    *service.ReportService
	Export *service.ReportExportService
}

// Trainings handles GET /api/reports/trainings.
func (h *ReportHandlers) Trainings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.TrainingCompletion(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "report_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"trainings": rows})
}

// Groups handles GET /api/reports/groups.
func (h *ReportHandlers) Groups(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.GroupCompletion(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "report_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"groups": rows})
}

// Overview handles GET /api/reports/overview, both aggregate views in one
// response for the dashboard.
func (h *ReportHandlers) Overview(w http.ResponseWriter, r *http.Request) {
	report, err := h.Svc.Overview(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "report_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// ExportData handles GET /api/reports/export?expr=<jmespath>. The optional
// expression projects the overview report into the shape an export consumer
// wants; an empty expression exports everything.
func (h *ReportHandlers) ExportData(w http.ResponseWriter, r *http.Request) {
	expr := r.URL.Query().Get("expr")

	result, err := h.Export.Export(r.Context(), expr)
	if err != nil {
		if exprErr := h.Export.ValidateExpression(expr); exprErr != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_expression", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "export_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"data": result})
}
