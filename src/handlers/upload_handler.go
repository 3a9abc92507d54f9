package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/username/tobfolio/backend/src/config"
	"github.com/username/tobfolio/backend/src/logger"
	"github.com/username/tobfolio/backend/src/processors"
	"github.com/username/tobfolio/backend/src/security/validation"
	"github.com/username/tobfolio/backend/src/services"
	"github.com/username/tobfolio/backend/src/utils"
)

type UploadHandler struct {
	reportService services.ReportService
	textExtractor services.TextExtractor
}

func NewUploadHandler(reportService services.ReportService, textExtractor services.TextExtractor) *UploadHandler {
	return &UploadHandler{
		reportService: reportService,
		textExtractor: textExtractor,
	}
}

// HandleUpload accepts one or more broker statement files under the
// "statements" field, runs the calculation pipeline over the batch and
// responds with the generated report summary. Zero extracted transactions
// is a warning outcome, not an error.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	fileHeaders := r.MultipartForm.File["statements"]
	if len(fileHeaders) == 0 {
		utils.SendJSONError(w, "No statement files uploaded. Use the 'statements' field.", http.StatusBadRequest)
		return
	}

	var texts []services.StatementText
	for _, fileHeader := range fileHeaders {
		if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
			logger.L.Warn("Uploaded file too large", "filename", fileHeader.Filename, "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
			utils.SendJSONError(w, fmt.Sprintf("File '%s' too large, max %d MB", fileHeader.Filename, config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
			return
		}

		if err := validation.ValidateFileExtension(fileHeader.Filename, h.textExtractor.Extensions()); err != nil {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		clientContentType := fileHeader.Header.Get("Content-Type")
		if err := validation.ValidateClientContentType(clientContentType); err != nil {
			logger.L.Warn("Invalid client-declared file type", "filename", fileHeader.Filename, "contentType", clientContentType, "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			logger.L.Error("Failed to open uploaded file", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "Failed to read uploaded file.", http.StatusInternalServerError)
			return
		}

		if _, err := validation.ValidateFileContentByMagicBytes(file); err != nil {
			file.Close()
			logger.L.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		text, err := h.textExtractor.Extract(file)
		file.Close()
		if err != nil {
			logger.L.Error("Text extraction failed", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Could not extract text from '%s'.", fileHeader.Filename), http.StatusBadRequest)
			return
		}

		texts = append(texts, services.StatementText{Name: fileHeader.Filename, Text: text})
	}

	logger.L.Info("Processing statement upload", "fileCount", len(texts))
	report, err := h.reportService.GenerateReport(r.Context(), texts)
	if err != nil {
		h.respondPipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.L.Error("Error encoding JSON response for report", "reportID", report.ID, "error", err)
	}
}

func (h *UploadHandler) respondPipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyExtraction):
		// Not a failure: the caller messages the user and moves on.
		logger.L.Info("Upload produced no transactions")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"warning": "No transactions were extracted from the uploaded statements. Please verify you uploaded the correct statement type.",
		})
	case errors.Is(err, services.ErrUnknownFormat):
		logger.L.Warn("Upload contained unrecognised statement format", "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, processors.ErrRateUnavailable):
		logger.L.Warn("Exchange rate resolution failed", "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, processors.ErrRateSourceUnreachable):
		logger.L.Error("Exchange rate feed unreachable", "error", err)
		utils.SendJSONError(w, "The exchange rate source could not be reached. Please try again later.", http.StatusBadGateway)
	default:
		logger.L.Error("Internal error processing upload", "error", err)
		utils.SendJSONError(w, "An internal error occurred while processing the statements. Please try again later.", http.StatusInternalServerError)
	}
}
