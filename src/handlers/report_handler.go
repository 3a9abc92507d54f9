package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/username/tobfolio/backend/src/logger"
	"github.com/username/tobfolio/backend/src/services"
	"github.com/username/tobfolio/backend/src/utils"
)

type ReportHandler struct {
	reportService services.ReportService
	outputDir     string
}

func NewReportHandler(reportService services.ReportService, outputDir string) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		outputDir:     outputDir,
	}
}

// HandleGetReport returns the JSON summary of a generated report.
func (h *ReportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	report, err := h.reportService.GetReport(id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			utils.SendJSONError(w, fmt.Sprintf("Report '%s' not found", id), http.StatusNotFound)
			return
		}
		logger.L.Error("Error retrieving report", "reportID", id, "error", err)
		utils.SendJSONError(w, "Error retrieving report.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.L.Error("Error encoding report JSON", "reportID", id, "error", err)
	}
}

// HandleDownload streams one of a report's generated artifacts.
func (h *ReportHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	kind := r.PathValue("kind")

	report, err := h.reportService.GetReport(id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			utils.SendJSONError(w, fmt.Sprintf("Report '%s' not found", id), http.StatusNotFound)
			return
		}
		logger.L.Error("Error retrieving report for download", "reportID", id, "error", err)
		utils.SendJSONError(w, "Error retrieving report.", http.StatusInternalServerError)
		return
	}

	filename, mimeType, err := h.reportService.ArtifactFile(report, kind)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, filepath.Join(h.outputDir, filename))
}
