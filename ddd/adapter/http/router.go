package http

import (
	"github.com/gin-gonic/gin"

	"video-hosting-service/ddd/application/app"
	"video-hosting-service/ddd/domain/service"
	"video-hosting-service/pkg/middleware"
)

// Router 路由配置
type Router struct {
	videoApp  app.VideoApp
	resolver  *service.PathResolver
	mediaRoot string
	jwtSecret string
	jwtIssuer string
}

// NewRouter 创建路由配置
func NewRouter(videoApp app.VideoApp, resolver *service.PathResolver, mediaRoot, jwtSecret, jwtIssuer string) *Router {
	return &Router{
		videoApp:  videoApp,
		resolver:  resolver,
		mediaRoot: mediaRoot,
		jwtSecret: jwtSecret,
		jwtIssuer: jwtIssuer,
	}
}

// SetupMiddleware 设置中间件
func (r *Router) SetupMiddleware(engine *gin.Engine) {
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestContextMiddleware())
	engine.Use(middleware.CORSMiddleware())
}

// SetupRoutes 设置路由
func (r *Router) SetupRoutes(engine *gin.Engine) {
	videoController := NewVideoController(r.videoApp, r.mediaRoot)
	hlsController := NewHLSController(r.resolver)

	v1 := engine.Group("/api/v1")
	{
		videos := v1.Group("/videos")
		{
			videos.GET("", videoController.ListVideos)
			videos.GET("/:id", videoController.GetVideo)

			// Playback stays anonymous; only the upload is gated when a
			// JWT secret is configured.
			if r.jwtSecret != "" {
				videos.POST("", middleware.AuthMiddleware(r.jwtSecret, r.jwtIssuer), videoController.CreateVideo)
			} else {
				videos.POST("", videoController.CreateVideo)
			}

			videos.GET("/:id/:quality/:file", hlsController.GetAsset)
		}
	}

	// 健康检查路由
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "video-hosting-service",
		})
	})
}
