package server

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/fiscalite/taxsim/internal/output"
	"github.com/fiscalite/taxsim/internal/report"
	"github.com/fiscalite/taxsim/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var contentTypes = map[string]string{
	"console":      "text/plain; charset=utf-8",
	"console-lite": "text/plain; charset=utf-8",
	"json":         "application/json; charset=utf-8",
	"csv":          "text/csv; charset=utf-8",
	"html":         "text/html; charset=utf-8",
	"pdf":          "application/pdf",
}

// health handles GET /health.
func (s *Server) health(c *gin.Context) {
	db := "disabled"
	if s.healthCheck != nil {
		db = "disconnected"
		if s.healthCheck(c.Request.Context()) {
			db = "connected"
		}
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  db,
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// listRateTables handles GET /api/v1/rate-tables.
func (s *Server) listRateTables(c *gin.Context) {
	c.JSON(http.StatusOK, RateTableIndex{
		Years:  s.engine.Rates.Years(),
		Latest: s.engine.Rates.Latest().Metadata.TaxYear,
	})
}

// getRateTable handles GET /api/v1/rate-tables/:year.
func (s *Server) getRateTable(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		badRequest(c, "Invalid tax year", err)
		return
	}
	rt, err := s.engine.Tables(year)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: CodeLookup})
		return
	}
	c.JSON(http.StatusOK, rt)
}

// simulate handles POST /api/v1/simulations/:kind. The body is a simulation
// request; the path selects the simulator. ?format= picks an output
// formatter instead of the JSON envelope. Results are only written to the
// simulation log with ?save=true.
func (s *Server) simulate(c *gin.Context) {
	kind, err := domain.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   err.Error(),
			Code:    CodeNotFound,
			Details: fmt.Sprintf("available: %v", domain.AllKinds),
		})
		return
	}

	var req domain.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	req.Simulator = kind

	var formatter output.Formatter
	if name := c.Query("format"); name != "" && name != "json" {
		formatter, err = output.ResolveFormatter(name)
		if err != nil {
			badRequest(c, "Invalid format", err)
			return
		}
	}

	save := false
	if v := c.Query("save"); v != "" {
		save, err = strconv.ParseBool(v)
		if err != nil {
			badRequest(c, "Invalid save flag", err)
			return
		}
	}
	if save && s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Simulation log is not configured", Code: CodeUnavailable})
		return
	}

	out, err := s.engine.Run(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	resp := SimulationResponse{Outcome: out}
	if save {
		sim, err := s.repo.Create(c.Request.Context(), req, *out, "")
		if err != nil {
			s.respondError(c, err)
			return
		}
		resp.ID = sim.ID.String()
		c.Header("X-Simulation-ID", resp.ID)
	}

	if formatter == nil {
		c.JSON(http.StatusOK, resp)
		return
	}
	data, err := formatter.Format(out)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypes[formatter.Name()], data)
}

// getSimulation handles GET /api/v1/simulations/:id.
func (s *Server) getSimulation(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Simulation log is not configured", Code: CodeUnavailable})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid simulation ID format", err)
		return
	}
	sim, err := s.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToStoredSimulationResponse(sim))
}

// listSimulations handles GET /api/v1/simulations?kind=&limit=.
func (s *Server) listSimulations(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Simulation log is not configured", Code: CodeUnavailable})
		return
	}
	var kind domain.SimulationKind
	if k := c.Query("kind"); k != "" {
		parsed, err := domain.ParseKind(k)
		if err != nil {
			badRequest(c, "Invalid simulator", err)
			return
		}
		kind = parsed
	}
	limit := 0
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil {
			badRequest(c, "Invalid limit", err)
			return
		}
		limit = n
	}

	sims, err := s.repo.ListRecent(c.Request.Context(), kind, limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	items := lo.Map(sims, func(sim *store.Simulation, _ int) StoredSimulationResponse {
		return ToStoredSimulationResponse(sim)
	})
	c.JSON(http.StatusOK, SimulationListResponse{Simulations: items, Count: len(items)})
}

// ReportResponse is the JSON answer of the report endpoint.
type ReportResponse struct {
	*report.Result
	PDFBase64 string `json:"pdf_base64,omitempty"`
}

// createReport handles POST /api/v1/reports. ?format=pdf returns the
// document itself; delivery status is then in the X-Email-Status header.
func (s *Server) createReport(c *gin.Context) {
	if s.reports == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Reports are not configured", Code: CodeUnavailable})
		return
	}
	var req report.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	res, err := s.reports.Generate(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if res.ID != nil {
		c.Header("X-Simulation-ID", res.ID.String())
	}
	c.Header("X-Email-Status", res.EmailStatus)
	if res.EmailRetryable {
		c.Header("X-Email-Retryable", "true")
	}
	if c.Query("format") == "pdf" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
		c.Data(http.StatusCreated, contentTypes["pdf"], res.PDF)
		return
	}

	resp := ReportResponse{Result: res}
	if c.Query("include_pdf") == "true" {
		resp.PDFBase64 = base64.StdEncoding.EncodeToString(res.PDF)
	}
	c.JSON(http.StatusCreated, resp)
}
