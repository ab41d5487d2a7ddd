package route

import (
	"cafeapi/controller"
	"cafeapi/logger"
	"cafeapi/metrics"
	"cafeapi/utils"

	"github.com/gin-gonic/gin"
)

// Deps is everything the router needs to build handlers.
type Deps struct {
	Store          controller.CafeStore
	Logger         logger.Logger
	Metrics        *metrics.Manager
	AllowedOrigins []string
}

// NewRouter builds the gin engine with middleware and every cafe route.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		utils.RequestIDMiddleware(),
		utils.AccessLogMiddleware(d.Logger.Named("http")),
		utils.MetricsMiddleware(d.Metrics),
	)
	if len(d.AllowedOrigins) > 0 {
		router.Use(utils.CorsMiddleware(d.AllowedOrigins))
	}

	cafes := controller.NewCafeController(d.Store, d.Logger.Named("cafes"), d.Metrics)
	CafeRoutes(router, cafes)

	router.GET("/healthz", cafes.Health)
	router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	return router
}

func CafeRoutes(router *gin.Engine, cafes *controller.CafeController) {
	router.GET("/", controller.Home)
	router.GET("/random", cafes.GetRandomCafe)
	router.GET("/all", cafes.GetAllCafes)
	router.GET("/search", cafes.SearchCafes)
	router.GET("/export", cafes.ExportCafes)
	router.POST("/add_cafe", cafes.AddCafe)
	router.PATCH("/update-price/:id", cafes.UpdatePrice)
	router.DELETE("/:id", cafes.DeleteCafe)
}
