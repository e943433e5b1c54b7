package http

import (
	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

type Router struct {
	matchHandler   *handler.MatchHandler
	requestHandler *handler.RequestHandler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(
	matchHandler *handler.MatchHandler,
	requestHandler *handler.RequestHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		matchHandler:   matchHandler,
		requestHandler: requestHandler,
		authMiddleware: authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	v1.Use(r.authMiddleware.RequireAuth())
	{
		// Browsing is open to every signed-in user
		v1.GET("/mentors", r.matchHandler.ListMentors)

		// Founder routes
		founder := v1.Group("")
		founder.Use(r.authMiddleware.RequireRole(domain.RoleFounder))
		{
			matches := founder.Group("/matches")
			{
				matches.GET("", r.matchHandler.FindMatches)
				matches.GET("/:mentor_id", r.matchHandler.GetMatch)
				matches.POST("/:mentor_id/intro-draft", r.requestHandler.DraftIntroduction)
			}

			founder.POST("/requests", r.requestHandler.SendRequest)
			founder.POST("/requests/:id/cancel", r.requestHandler.CancelRequest)
		}

		// Mentor routes
		mentor := v1.Group("")
		mentor.Use(r.authMiddleware.RequireRole(domain.RoleMentor))
		{
			mentor.POST("/requests/:id/respond", r.requestHandler.RespondToRequest)
		}

		v1.GET("/requests", r.requestHandler.ListRequests)
	}

	return router
}
