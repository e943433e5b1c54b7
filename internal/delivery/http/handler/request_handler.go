package handler

import (
	"log/slog"
	"net/http"

	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/mentorship"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestHandler struct {
	mentorshipUseCase *mentorship.MentorshipUseCase
	logger            *slog.Logger
}

func NewRequestHandler(mentorshipUseCase *mentorship.MentorshipUseCase, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		mentorshipUseCase: mentorshipUseCase,
		logger:            logger,
	}
}

// ListRequestsQuery are the query parameters of GET /requests
type ListRequestsQuery struct {
	Role   string `form:"role" binding:"omitempty,oneof=founder mentor"`
	Status string `form:"status" binding:"omitempty,oneof=pending accepted declined cancelled"`
}

// IntroDraftResponse carries the suggested message
type IntroDraftResponse struct {
	Message string `json:"message"`
}

// SendRequest handles POST /requests
// @Summary Send mentorship request
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body mentorship.SendRequestInput true "Mentor and message"
// @Success 201 {object} domain.MentorshipRequest
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /requests [post]
func (h *RequestHandler) SendRequest(c *gin.Context) {
	founderID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req mentorship.SendRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	created, err := h.mentorshipUseCase.SendRequest(c.Request.Context(), founderID, &req)
	if err != nil {
		respondError(c, h.logger, err, "failed to send mentorship request")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// RespondToRequest handles POST /requests/:id/respond
// @Summary Accept or decline a request
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body mentorship.RespondInput true "accepted or declined"
// @Success 200 {object} mentorship.RespondResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /requests/{id}/respond [post]
func (h *RequestHandler) RespondToRequest(c *gin.Context) {
	mentorID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request id",
		})
		return
	}

	var body mentorship.RespondInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "status must be accepted or declined",
		})
		return
	}

	result, err := h.mentorshipUseCase.RespondToRequest(c.Request.Context(), mentorID, requestID, body.Status)
	if err != nil {
		respondError(c, h.logger, err, "failed to respond to request")
		return
	}

	c.JSON(http.StatusOK, result)
}

// CancelRequest handles POST /requests/:id/cancel
// @Summary Withdraw a pending request
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} domain.MentorshipRequest
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /requests/{id}/cancel [post]
func (h *RequestHandler) CancelRequest(c *gin.Context) {
	founderID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request id",
		})
		return
	}

	req, err := h.mentorshipUseCase.CancelRequest(c.Request.Context(), founderID, requestID)
	if err != nil {
		respondError(c, h.logger, err, "failed to cancel request")
		return
	}

	c.JSON(http.StatusOK, req)
}

// ListRequests handles GET /requests
// @Summary My mentorship requests
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param role query string false "founder or mentor"
// @Param status query string false "pending, accepted, declined or cancelled"
// @Success 200 {array} domain.RequestView
// @Failure 400 {object} ErrorResponse
// @Router /requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var q ListRequestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid filters",
		})
		return
	}

	requests, err := h.mentorshipUseCase.ListRequests(c.Request.Context(), userID, repository.RequestFilter{
		Role:   domain.Role(q.Role),
		Status: domain.RequestStatus(q.Status),
	})
	if err != nil {
		respondError(c, h.logger, err, "failed to list requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

// DraftIntroduction handles POST /matches/:mentor_id/intro-draft
// @Summary Suggest a request message
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param mentor_id path string true "Mentor ID"
// @Success 200 {object} IntroDraftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{mentor_id}/intro-draft [post]
func (h *RequestHandler) DraftIntroduction(c *gin.Context) {
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

	text, err := h.mentorshipUseCase.DraftIntroduction(c.Request.Context(), founderID, mentorID)
	if err != nil {
		respondError(c, h.logger, err, "failed to draft introduction")
		return
	}

	c.JSON(http.StatusOK, IntroDraftResponse{Message: text})
}
