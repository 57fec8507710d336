package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"capprice/internal/csvexport"
	"capprice/internal/domain"
	"capprice/internal/service"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	exportBatchSize  = 200
)

// SimulationHandler handles pricing simulation endpoints.
type SimulationHandler struct {
	simulationService service.SimulationService
	logger            *zap.Logger
}

// NewSimulationHandler creates a new SimulationHandler.
func NewSimulationHandler(simulationService service.SimulationService, logger *zap.Logger) *SimulationHandler {
	return &SimulationHandler{simulationService: simulationService, logger: logger}
}

// NormalizeRequest is the body of POST /api/v1/normalize.
type NormalizeRequest struct {
	Payload json.RawMessage    `json:"payload"`
	Context domain.FormContext `json:"context"`
}

// EmailReportRequest is the body of POST /api/v1/simulations/:id/email.
type EmailReportRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Create handles POST /api/v1/simulations
func (h *SimulationHandler) Create(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "could not read request body")
		return
	}

	var req service.SimulationRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be a JSON object")
		return
	}
	req.Raw = raw

	res, err := h.simulationService.Simulate(c.Request.Context(), req)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	RespondCreated(c, gin.H{
		"simulation":  res.Simulation,
		"scenarios":   res.Normalization.Scenarios,
		"report_html": res.ReportHTML,
	})
}

// Normalize handles POST /api/v1/normalize
func (h *SimulationHandler) Normalize(c *gin.Context) {
	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	RespondOK(c, h.simulationService.Normalize(req.Payload, req.Context))
}

// List handles GET /api/v1/simulations
func (h *SimulationHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if limit <= 0 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	sims, total, err := h.simulationService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	if sims == nil {
		sims = []domain.Simulation{}
	}

	RespondPaginated(c, sims, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/simulations/:id
func (h *SimulationHandler) GetByID(c *gin.Context) {
	id, ok := simulationID(c)
	if !ok {
		return
	}

	sim, err := h.simulationService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	RespondOK(c, gin.H{
		"simulation": sim,
		"has_report": sim.HasReport(),
	})
}

// ReportURL handles GET /api/v1/simulations/:id/report
func (h *SimulationHandler) ReportURL(c *gin.Context) {
	id, ok := simulationID(c)
	if !ok {
		return
	}

	url, err := h.simulationService.GetReportURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	RespondOK(c, gin.H{"report_url": url})
}

// EmailReport handles POST /api/v1/simulations/:id/email
func (h *SimulationHandler) EmailReport(c *gin.Context) {
	id, ok := simulationID(c)
	if !ok {
		return
	}

	var req EmailReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_EMAIL", "a valid email is required")
		return
	}

	if err := h.simulationService.EmailReport(c.Request.Context(), id, req.Email); err != nil {
		HandleError(c, h.logger, err)
		return
	}

	RespondOK(c, gin.H{"message": "report sent"})
}

// ExportCSV handles GET /api/v1/simulations/export/csv
func (h *SimulationHandler) ExportCSV(c *gin.Context) {
	ctx := c.Request.Context()

	// Fetch the first page before writing so a failure can still produce a JSON error.
	sims, total, err := h.simulationService.List(ctx, 0, exportBatchSize)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename(time.Now())+`"`)
	c.Status(http.StatusOK)
	_, _ = c.Writer.Write(csvexport.BOM)

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		h.logger.Error("simulationHandler.ExportCSV: writing header failed", zap.Error(err))
		return
	}

	offset := 0
	for len(sims) > 0 {
		if err := w.WriteSimulations(sims); err != nil {
			h.logger.Error("simulationHandler.ExportCSV: writing rows failed", zap.Error(err))
			return
		}
		offset += len(sims)
		if offset >= total {
			break
		}
		if sims, _, err = h.simulationService.List(ctx, offset, exportBatchSize); err != nil {
			h.logger.Error("simulationHandler.ExportCSV: listing failed mid-export",
				zap.Int("offset", offset), zap.Error(err))
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		h.logger.Error("simulationHandler.ExportCSV: flush failed", zap.Error(err))
	}
}

// simulationID parses the :id path parameter, writing a 400 response when it is invalid.
func simulationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid simulation ID")
		return uuid.Nil, false
	}
	return id, true
}
