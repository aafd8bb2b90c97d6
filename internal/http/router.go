// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seabid/internal/http/handlers"
	"seabid/internal/http/middleware"
	"seabid/internal/modules/bidding"
	"seabid/internal/modules/routes"
	"seabid/internal/modules/trip"
)

func NewRouter(
	biddingService *bidding.Service,
	tripService *trip.Service,
	routeService *routes.Service,
) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	requestHandler := handlers.NewRequestHandler(biddingService)
	r.POST("/api/requests", requestHandler.Submit)
	r.GET("/api/requests/active", requestHandler.Snapshot)
	r.POST("/api/requests/cancel", requestHandler.Cancel)
	r.POST("/api/requests/select", requestHandler.Select)
	r.POST("/api/requests/room/open", requestHandler.OpenRoom)
	r.POST("/api/requests/room/leave", requestHandler.LeaveRoom)

	tripHandler := handlers.NewTripHandler(tripService)
	r.GET("/api/trips", tripHandler.List)
	r.GET("/api/trips/:id", tripHandler.Get)
	r.POST("/api/trips/:id/pay", tripHandler.Pay)
	r.POST("/api/trips/:id/board", tripHandler.Board)
	r.POST("/api/trips/:id/complete", tripHandler.Complete)
	r.POST("/api/trips/:id/cancel", tripHandler.Cancel)
	r.POST("/api/trips/:id/review", tripHandler.Review)

	captainHandler := handlers.NewCaptainHandler(routeService, tripService)
	r.GET("/api/captain/routes", captainHandler.ListPresets)
	r.POST("/api/captain/routes", captainHandler.SavePreset)
	r.DELETE("/api/captain/routes/:id", captainHandler.DeletePreset)
	r.POST("/api/captain/quotes", captainHandler.SubmitQuote)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
