package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/repository"
)

const defaultSearchLimit = 50

type TrackHandler struct {
	trackRepo repository.TrackRepository
}

func NewTrackHandler(trackRepo repository.TrackRepository) *TrackHandler {
	return &TrackHandler{trackRepo: trackRepo}
}

// SearchTracks matches track or artist names case-insensitively; with no
// query term it returns all tracks up to limit, ordered by name. The
// reported total is the count of returned items, not the pre-limit match
// count.
func (h *TrackHandler) SearchTracks(c *gin.Context) {
	query := c.Query("q")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSearchLimit)))
	if err != nil || limit <= 0 {
		limit = defaultSearchLimit
	}

	rows, err := h.trackRepo.SearchTracks(query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to search tracks"})
		return
	}

	items := make([]trackResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, toTrackResponse(row))
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"items": items,
	})
}
