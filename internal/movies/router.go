package movies

import (
	"github.com/gin-gonic/gin"
)

func SetupMovieRoutes(router *gin.RouterGroup, controller *Controller) {
	movies := router.Group("/movies")
	{
		movies.GET("", controller.ListMovies)
		movies.GET("/available", controller.ListAvailableMovies)
		movies.GET("/search", controller.SearchMovies)
		movies.GET("/:id", controller.GetMovie)
		movies.POST("", controller.CreateMovie)
	}
}
