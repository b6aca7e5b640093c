package handlers

import (
	"slices"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
	"github.com/BruksfildServices01/barbershop-bot/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-bot/internal/models"
)

type DirectoryHandler struct {
	directory domain.DirectoryStore
}

func NewDirectoryHandler(directory domain.DirectoryStore) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

type locationResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type barberResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	LocationID uint   `json:"location_id"`
}

// GET /api/locations
func (h *DirectoryHandler) ListLocations(c *gin.Context) {
	locs, err := h.directory.ListLocations(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]locationResponse, 0, len(locs))
	for _, l := range locs {
		out = append(out, locationResponse{ID: l.ID, Name: l.Name})
	}
	httpresp.List(c, out)
}

// GET /api/locations/:id/barbers
func (h *DirectoryHandler) ListBarbers(c *gin.Context) {
	locationID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	locs, err := h.directory.ListLocations(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	if !slices.ContainsFunc(locs, func(l models.Location) bool { return l.ID == locationID }) {
		writeError(c, httperr.ErrBusiness(httperr.CodeLocationNotFound))
		return
	}

	barbers, err := h.directory.ListBarbers(ctx, locationID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]barberResponse, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, barberResponse{ID: b.ID, Name: b.Name, LocationID: b.LocationID})
	}
	httpresp.List(c, out)
}
