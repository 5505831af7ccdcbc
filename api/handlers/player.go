package handlers

import (
	"errors"
	"net/http"
	"riftroster/api/services"
	accountfetcher "riftroster/fetcher/data/account"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PlayerHandler is the handler for the player endpoints.
type PlayerHandler struct {
	playerService *services.PlayerService
}

// NewPlayerHandler creates a new instance of the player handler.
func NewPlayerHandler(service *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: service,
	}
}

// GetRank handles requests for a players current solo queue rank.
func (h *PlayerHandler) GetRank(c *gin.Context) {
	rank, err := h.playerService.GetRank(c.Request.Context(), c.Param("pseudo"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "rank": rank})
}

// GetMatchCount handles requests for a players in-season match count.
func (h *PlayerHandler) GetMatchCount(c *gin.Context) {
	count, err := h.playerService.GetMatchCount(c.Request.Context(), c.Param("pseudo"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// GetMatchHistory handles requests for a page of a players ranked history.
func (h *PlayerHandler) GetMatchHistory(c *gin.Context) {
	start, _ := strconv.Atoi(c.DefaultQuery("start", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	history, err := h.playerService.GetMatchHistory(c.Request.Context(), c.Param("pseudo"), start, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "matches": history.Matches, "hasMore": history.HasMore})
}

// GetTopChampions handles requests for a roster players top champions.
func (h *PlayerHandler) GetTopChampions(c *gin.Context) {
	champions, err := h.playerService.GetTopChampions(c.Request.Context(), c.Param("pseudo"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "champions": champions})
}

// PostSync handles manual one-off sync requests for a roster player.
func (h *PlayerHandler) PostSync(c *gin.Context) {
	if err := h.playerService.SyncPlayer(c.Request.Context(), c.Param("pseudo")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// respondError converts a service error into the response envelope.
// Client caused failures map to 400, a missing player to 404, anything
// upstream or internal to 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrInvalidPseudo):
		status = http.StatusBadRequest
	case errors.Is(err, accountfetcher.ErrPlayerNotFound):
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
