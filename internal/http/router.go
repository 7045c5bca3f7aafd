package api

import (
	"log"
	stdhttp "net/http"

	intconfig "journeyplanner/internal/config"
	h "journeyplanner/internal/http/handlers"
	"journeyplanner/internal/http/middleware"
	"journeyplanner/internal/navigation"
	"journeyplanner/internal/session"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, sessions *session.Manager) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	hd := h.New(sessions, navigation.Table(navigation.ParseRevision(env.NavRevision)))

	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/routes", h.Routes)

		api.GET("/navigation", hd.Navigation)
		api.GET("/navigation/resolve", hd.ResolveNavigation)

		api.POST("/session", hd.CreateSession)

		withSession := api.Group("", middleware.RequireSession(sessions))

		// Auth
		auth := withSession.Group("/auth")
		auth.POST("/register", hd.Register)
		auth.POST("/login", hd.Login)
		auth.POST("/logout", hd.Logout)
		auth.GET("/state", hd.AuthState)

		// Journeys
		journeys := withSession.Group("/journeys")
		journeys.GET("/search", hd.SearchJourneys)
		journeys.GET("/saved", hd.SavedJourneys)
		journeys.POST("/saved", hd.SaveJourney)
		journeys.GET("/saved/export", middleware.RequireUser(), hd.ExportSavedJourneys)
		journeys.DELETE("/saved/:id", hd.DeleteJourney)
	}

	h.SetRouter(r)
	return r
}
