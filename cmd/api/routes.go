package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(app.requestLogger())
	r.Use(app.cors())
	if app.Config.Limiter.Enabled {
		r.Use(app.rateLimit())
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/healthz", app.Handler.Healthz)
		v1.POST("/auth/signup", app.Handler.SignUp)
		v1.POST("/auth/login", app.Handler.Login)
		v1.POST("/auth/tokens/renew", app.Handler.RenewAccessToken)

		v1.POST("/render", app.Handler.Render)
		v1.GET("/render/styles.css", app.Handler.Stylesheet)
	}

	protected := v1.Group("/")
	protected.Use(app.AuthMiddleware())
	{
		protected.GET("/me", app.Handler.Me)
		protected.POST("/auth/logout", app.Handler.Logout)
		protected.POST("/auth/tokens/revoke", app.Handler.RevokeSession)

		// session routes
		protected.POST("/sessions", app.Handler.CreateSession)
		protected.GET("/sessions", app.Handler.ListSessions)
		protected.GET("/sessions/:id", app.Handler.GetSession)
		protected.GET("/sessions/:id/export", app.Handler.ExportSession)
		protected.DELETE("/sessions/:id", app.Handler.DeleteSession)
		protected.POST("/sessions/:id/questions", app.Handler.GenerateMore)

		// question routes
		protected.POST("/questions/:id/pin", app.Handler.TogglePin)
		protected.PUT("/questions/:id/note", app.Handler.UpdateNote)

		// stateless ai routes
		protected.POST("/ai/questions", app.Handler.GenerateQuestions)
		protected.POST("/ai/explain", app.Handler.ExplainConcept)
	}

	return r
}
