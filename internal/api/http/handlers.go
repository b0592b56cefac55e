package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/perfkit/eventforest/internal/forest"
	"github.com/perfkit/eventforest/internal/infrastructure/logging"
	"github.com/perfkit/eventforest/internal/infrastructure/monitoring"
	"github.com/perfkit/eventforest/internal/shared/id"
	"github.com/perfkit/eventforest/internal/trace"
)

// Handler serves the grouping API.
type Handler struct {
	log     *logging.Logger
	metrics *monitoring.Metrics
	rules   *forest.RuleSet
	maxBody int64
}

// NewHandler creates the grouping API handler.
func NewHandler(log *logging.Logger, metrics *monitoring.Metrics, rules *forest.RuleSet, maxBody int64) *Handler {
	return &Handler{log: log, metrics: metrics, rules: rules, maxBody: maxBody}
}

// GroupResponse is the grouping endpoint's payload.
type GroupResponse struct {
	RunID  id.RunID       `json:"run_id"`
	Report *forest.Report `json:"report"`
	Trace  *trace.Trace   `json:"trace"`
}

// Group handles POST /v1/traces/group. The body is a trace document (JSON,
// optionally gzip/zstd compressed); a `url` query parameter fetches the
// trace remotely instead. The response carries the mutated trace, group
// metadata, and the run report.
func (h *Handler) Group(c *gin.Context) {
	runID := id.NewRunID()

	tr, err := h.readTrace(c)
	if err != nil {
		h.log.Warn("failed to read trace", zap.String("run_id", string(runID)), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := forest.New(tr, forest.Options{
		Rules:     h.rules.Rules,
		RootKinds: h.rules.RootKinds,
		Semantics: h.rules.Semantics,
		Logger:    h.log,
		Metrics:   h.metrics,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("grouping trace",
		zap.String("run_id", string(runID)),
		zap.Int("events", tr.EventCount()),
		zap.String("request_id", c.GetString("request_id")))
	f.Grow()

	c.JSON(http.StatusOK, GroupResponse{
		RunID:  runID,
		Report: f.BuildReport(),
		Trace:  tr,
	})
}

func (h *Handler) readTrace(c *gin.Context) (*trace.Trace, error) {
	if url := c.Query("url"); url != "" {
		return trace.Fetch(c.Request.Context(), url)
	}
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	data, err = trace.Decompress(data)
	if err != nil {
		return nil, err
	}
	return trace.Unmarshal(data)
}

// Rules handles GET /v1/rules, exposing the active rule set.
func (h *Handler) Rules(c *gin.Context) {
	c.JSON(http.StatusOK, h.rules)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "eventforest"})
}
