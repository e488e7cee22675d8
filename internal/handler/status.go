// Package handler exposes the monitoring-mode ops API: health probe,
// latest ranked snapshot and run status.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"optionscan/internal/models"
)

type SnapshotSource interface {
	Latest() (models.ResultTable, time.Time, bool)
	Runs() int
}

type StatusHandler struct {
	Source  SnapshotSource
	Tickers int
	Top     int
}

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (h *StatusHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/api/v1/snapshot", h.snapshot)
	r.GET("/api/v1/status", h.status)
}

func (h *StatusHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *StatusHandler) snapshot(c *gin.Context) {
	table, at, ok := h.Source.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, apiResponse{
			Code:    http.StatusServiceUnavailable,
			Message: "no completed run yet",
		})
		return
	}
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    table.Top(h.Top),
		Meta: map[string]any{
			"generated_at": at.UTC().Format(time.RFC3339),
			"total_ranked": len(table),
		},
	})
}

func (h *StatusHandler) status(c *gin.Context) {
	_, at, ok := h.Source.Latest()
	data := gin.H{
		"runs":    h.Source.Runs(),
		"tickers": h.Tickers,
	}
	if ok {
		data["last_run_at"] = at.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, apiResponse{Code: 0, Message: "ok", Data: data})
}
