package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/ErlanBelekov/task-tracker/internal/metrics"
	"github.com/gin-gonic/gin"
)

type statsUsecaser interface {
	Summary(ctx context.Context, ownerID string) (domain.StatsSummary, error)
}

type StatsHandler struct {
	uc     statsUsecaser
	logger *slog.Logger
}

func NewStatsHandler(uc statsUsecaser, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{uc: uc, logger: logger.With("component", "stats_handler")}
}

// GET /api/tasks/stats
// Response keys are part of the dashboard contract and are always present.
func (h *StatsHandler) Get(ctx *gin.Context) {
	summary, err := h.uc.Summary(ctx.Request.Context(), ctx.GetString("userID"))
	if err != nil {
		metrics.StatsComputedTotal.WithLabelValues("error").Inc()
		respondError(ctx, h.logger, "stats summary", err)
		return
	}
	metrics.StatsComputedTotal.WithLabelValues("ok").Inc()
	metrics.StatsTasksPerUser.Observe(float64(summary.StatusCounts.Total()))

	ctx.JSON(http.StatusOK, summary)
}
