package menu

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mesero/internal/domain"
	apperrors "mesero/internal/errors"
)

type Controller struct {
	service Synchronizer
	logger  *zap.Logger
}

func NewController(service Synchronizer, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

type MenuEntryDTO struct {
	ID             string  `json:"id"`
	NameKey        string  `json:"nameKey"`
	DescriptionKey string  `json:"descriptionKey"`
	Price          string  `json:"price"`
	Category       string  `json:"category"`
	ImageURL       *string `json:"imageUrl"`
}

func (c *Controller) HandleGetMenu(w http.ResponseWriter, r *http.Request) {
	entries, err := c.service.FetchMenu(r.Context())
	if err != nil {
		c.writeRemoteError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, toMenuEntryDTOs(entries))
}

func (c *Controller) HandleGetMenuEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "menuItemId")

	entries, err := c.service.FetchMenu(r.Context())
	if err != nil {
		c.writeRemoteError(w, err)
		return
	}

	for _, e := range entries {
		if e.ID == id {
			c.writeJSON(w, http.StatusOK, toMenuEntryDTO(e))
			return
		}
	}

	c.writeJSON(w, http.StatusNotFound, map[string]string{
		"error":   "NOT_FOUND",
		"message": "menu entry not found in current catalog",
	})
}

func (c *Controller) HandleRefreshCatalog(w http.ResponseWriter, r *http.Request) {
	count, err := c.service.RefreshCatalog(r.Context())
	if err != nil {
		if _, ok := apperrors.IsRemoteError(err); ok {
			c.writeRemoteError(w, err)
			return
		}
		c.logger.Error("catalog refresh failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}
	c.writeJSON(w, http.StatusOK, map[string]int{"entries": count})
}

func (c *Controller) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	entries, err := c.service.SnapshotCatalog(r.Context())
	if err != nil {
		c.logger.Error("reading catalog snapshot failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}
	c.writeJSON(w, http.StatusOK, toMenuEntryDTOs(entries))
}

func (c *Controller) writeRemoteError(w http.ResponseWriter, err error) {
	re, ok := apperrors.IsRemoteError(err)
	if !ok {
		c.logger.Error("menu fetch failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	status := http.StatusBadGateway
	if re.Reason == apperrors.ReasonRemoteUnavailable {
		status = http.StatusServiceUnavailable
	}
	c.logger.Warn("catalog fetch failed", zap.String("reason", re.Reason), zap.Error(err))
	c.writeJSON(w, status, map[string]string{
		"error":   re.Reason,
		"message": "catalog fetch failed",
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

func toMenuEntryDTO(e domain.MenuEntry) MenuEntryDTO {
	return MenuEntryDTO{
		ID:             e.ID,
		NameKey:        e.NameKey,
		DescriptionKey: e.DescriptionKey,
		Price:          e.Price,
		Category:       e.Category,
		ImageURL:       e.ImageURL,
	}
}

func toMenuEntryDTOs(entries []domain.MenuEntry) []MenuEntryDTO {
	dtos := make([]MenuEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toMenuEntryDTO(e))
	}
	return dtos
}
