package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.SetHTMLTemplate(parseTemplates())

	r.GET("/", h.formHandler)
	r.POST("/generate", h.generateHandler)
	r.GET("/assets/logo", h.logoHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.POST("/cards", h.cardHandler)
		api.GET("/contests/:slug/qr", h.qrHandler)
		api.GET("/registrations", h.listHandler)
		api.POST("/registrations/filter", h.filterHandler)
	}
}
