package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/mentorlink-backend/internal/matching"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/match"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
	logger       *slog.Logger
}

func NewMatchHandler(matchUseCase *match.MatchUseCase, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
		logger:       logger,
	}
}

// FindMatchesQuery are the query parameters of GET /matches
type FindMatchesQuery struct {
	Limit int `form:"limit"`
}

// BrowseMentorsQuery are the query parameters of GET /mentors
type BrowseMentorsQuery struct {
	Sector    string `form:"sector" binding:"omitempty,max=100"`
	Expertise string `form:"expertise" binding:"omitempty,max=500"`
	Stage     string `form:"stage" binding:"omitempty,stage"`
	Location  string `form:"location" binding:"omitempty,max=100"`
	ProBono   *bool  `form:"pro_bono"`
}

func (q *BrowseMentorsQuery) filter() matching.MentorFilter {
	f := matching.MentorFilter{
		Sector:   strings.TrimSpace(q.Sector),
		Stage:    q.Stage,
		Location: strings.TrimSpace(q.Location),
		ProBono:  q.ProBono,
	}
	for _, e := range strings.Split(q.Expertise, ",") {
		if e = strings.TrimSpace(e); e != "" {
			f.Expertise = append(f.Expertise, e)
		}
	}
	return f
}

// FindMatches handles GET /matches
// @Summary Recommended mentors
// @Description Mentors ranked by affinity with the founder's startup, excluding mentors already contacted
// @Tags matching
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum number of matches (default 10)"
// @Success 200 {array} matching.MatchScore
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matches [get]
func (h *MatchHandler) FindMatches(c *gin.Context) {
	founderID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var q FindMatchesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid limit",
		})
		return
	}

	matches, err := h.matchUseCase.FindMatches(c.Request.Context(), founderID, q.Limit)
	if err != nil {
		respondError(c, h.logger, err, "failed to find matches")
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatch handles GET /matches/:mentor_id
// @Summary Explain one mentor
// @Tags matching
// @Security BearerAuth
// @Produce json
// @Param mentor_id path string true "Mentor ID"
// @Success 200 {object} matching.MatchScore
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{mentor_id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	founderID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	mentorID, err := uuid.Parse(c.Param("mentor_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid mentor_id",
		})
		return
	}

	result, err := h.matchUseCase.GetMatch(c.Request.Context(), founderID, mentorID)
	if err != nil {
		respondError(c, h.logger, err, "failed to score mentor")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListMentors handles GET /mentors
// @Summary Browse mentors
// @Description Visible mentors filtered by sector, expertise, stage, location and pro bono, most experienced first
// @Tags mentors
// @Security BearerAuth
// @Produce json
// @Param sector query string false "Sector"
// @Param expertise query string false "Comma separated expertise tags, any may match"
// @Param stage query string false "idea, mvp, growth or scale"
// @Param location query string false "Location substring"
// @Param pro_bono query bool false "Pro bono only / paid only"
// @Success 200 {array} domain.MentorProfile
// @Failure 400 {object} ErrorResponse
// @Router /mentors [get]
func (h *MatchHandler) ListMentors(c *gin.Context) {
	var q BrowseMentorsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid filters",
		})
		return
	}

	mentors, err := h.matchUseCase.ListMentors(c.Request.Context(), q.filter())
	if err != nil {
		respondError(c, h.logger, err, "failed to list mentors")
		return
	}

	c.JSON(http.StatusOK, mentors)
}
