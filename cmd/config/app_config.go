package config

import (
	"os"
	"recipehub/internal/api/handlers"
	"recipehub/internal/api/routes"
	"recipehub/internal/middleware"
	"recipehub/internal/utils"
	"recipehub/internal/utils/mailing"
	"recipehub/internal/utils/storage"
	"recipehub/pkg/comment"
	"recipehub/pkg/engagement"
	"recipehub/pkg/jwt"
	"recipehub/pkg/recipe"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer()
	viewCooldown := time.Duration(utils.GetViewCooldownMinutes()) * time.Minute

	// Repository
	recipeRepository := recipe.NewRecipeRepository(db)
	commentRepository := comment.NewCommentRepository(db)
	engagementRepository := engagement.NewEngagementRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	recipeService := recipe.NewRecipeService(recipeRepository, mailer, s3)
	commentService := comment.NewCommentService(commentRepository, recipeRepository)
	engagementService := engagement.NewEngagementService(engagementRepository, recipeRepository, viewCooldown)

	// Handler
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	commentHandler := handlers.NewCommentHandler(commentService, validator)
	engagementHandler := handlers.NewEngagementHandler(engagementService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		RecipeHandler:     recipeHandler,
		CommentHandler:    commentHandler,
		EngagementHandler: engagementHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
