package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymsheet/training-app/internal/pkg/logger"
	"gymsheet/training-app/internal/service"
	"gymsheet/training-app/internal/storage"
)

// SetupRoutes wires every resource handler under /api/v1. Status code
// selection lives in the handlers; the engine underneath is verb-agnostic.
func SetupRoutes(
	router *gin.Engine,
	exerciseService service.ExerciseService,
	methodService service.MethodService,
	groupService service.GroupService,
	sheetService service.SheetService,
	fileStorage storage.FileStorage,
	logg *logger.Logger,
) {
	exerciseHandler := NewExerciseHandler(exerciseService, logg)
	methodHandler := NewMethodHandler(methodService, logg)
	groupHandler := NewGroupHandler(groupService, logg)
	sheetHandler := NewSheetHandler(sheetService, fileStorage, logg)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		// --- Exercise catalog ---
		exercises := apiV1.Group("/exercises")
		{
			exercises.POST("", exerciseHandler.CreateExercise)
			exercises.GET("", exerciseHandler.ListExercises)
			exercises.GET("/:id", exerciseHandler.GetExercise)
			exercises.PATCH("/:id", exerciseHandler.UpdateExercise)
			exercises.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		// --- Method catalog ---
		methods := apiV1.Group("/methods")
		{
			methods.POST("", methodHandler.CreateMethod)
			methods.GET("", methodHandler.ListMethods)
			methods.GET("/:id", methodHandler.GetMethod)
			methods.PATCH("/:id", methodHandler.UpdateMethod)
			methods.DELETE("/:id", methodHandler.DeleteMethod)
		}

		// --- Category lookup ---
		apiV1.GET("/exercise-group-categories", groupHandler.ListCategories)

		// --- Exercise groups ---
		groups := apiV1.Group("/exercise-groups")
		{
			groups.POST("", groupHandler.CreateGroup)
			groups.GET("", groupHandler.ListGroups)
			groups.GET("/:id", groupHandler.GetGroup)
			groups.PATCH("/:id", groupHandler.UpdateGroup)
			groups.DELETE("/:id", groupHandler.DeleteGroup)
			groups.POST("/:id/exercise-methods", groupHandler.AddExerciseMethod)
		}

		apiV1.DELETE("/exercise-methods/:id", groupHandler.DeleteExerciseMethod)

		configurations := apiV1.Group("/exercise-configurations")
		{
			configurations.GET("/:id", groupHandler.GetConfiguration)
			configurations.PATCH("/:id", groupHandler.UpdateConfiguration)
			configurations.DELETE("/:id", groupHandler.DeleteConfiguration)
		}

		// --- Training sheets ---
		sheets := apiV1.Group("/training-sheets")
		{
			sheets.POST("", sheetHandler.CreateSheet)
			sheets.GET("", sheetHandler.ListSheets)
			sheets.GET("/ids", sheetHandler.ListSheetIDs)
			sheets.GET("/:id", sheetHandler.GetSheet)
			sheets.PATCH("/:id", sheetHandler.UpdateSheet)
			sheets.PUT("/:id/pdf", sheetHandler.ReplaceSheetPDF)
			sheets.GET("/:id/pdf", sheetHandler.GetSheetPDFURL)
			sheets.DELETE("/:id", sheetHandler.DeleteSheet)
		}

		// Public slug fetch for workout clients.
		apiV1.GET("/workout-sheets/:slug", sheetHandler.GetSheetBySlug)
	}
}
