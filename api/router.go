package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter construit le moteur gin avec les middlewares et les routes
func NewRouter(h *Handlers, log *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery(), RequestID(), RequestLogger(log))

	h.RegisterRoutes(router)
	return router
}
