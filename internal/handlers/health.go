package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/vaughan-dsouza/simple-posts/internal/store"
	"github.com/vaughan-dsouza/simple-posts/internal/utils"
)

type HealthHandler struct {
	Store store.PostStore
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		utils.JSON(w, http.StatusServiceUnavailable, healthResponse{
			Status: "unhealthy",
			Checks: map[string]string{"db": "unhealthy"},
		})
		return
	}
	utils.JSON(w, http.StatusOK, healthResponse{
		Status: "healthy",
		Checks: map[string]string{"db": "ok"},
	})
}
