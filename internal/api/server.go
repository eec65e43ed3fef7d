package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/kreeda/idcard/internal/config"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, h *Handler) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}
	s.MountMiddlewares()
	RegisterRoutes(engine, h)

	return s
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/health", "/metrics"},
	}))
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(corsMiddleware(s.Config.CORS.AllowedOrigins))
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	conf := cors.DefaultConfig()
	conf.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	for _, o := range origins {
		if o == "*" {
			conf.AllowAllOrigins = true
			return cors.New(conf)
		}
	}
	if len(origins) == 0 {
		conf.AllowAllOrigins = true
		return cors.New(conf)
	}
	conf.AllowOrigins = origins
	return cors.New(conf)
}
