package routes

import (
	"recipehub/internal/api/handlers"
	"recipehub/internal/middleware"
	"recipehub/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	RecipeHandler     handlers.RecipeHandler
	CommentHandler    handlers.CommentHandler
	EngagementHandler handlers.EngagementHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Recipes()
	c.Comments()
	c.Engagement()
	c.GuestRoute()
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/v1/recipes")
	// recipe routes
	{
		recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
		recipes.Get("", optional, c.RecipeHandler.GetRecipes)
		recipes.Get("/popular", optional, c.RecipeHandler.GetPopularRecipes)
		recipes.Get("/:id", optional, c.RecipeHandler.GetRecipeDetail)
		recipes.Patch("/:id", auth, c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)
		recipes.Post("/:id/image", auth, c.RecipeHandler.UploadRecipeImage)

		// publication workflow
		recipes.Post("/:id/submit", auth, c.RecipeHandler.SubmitRecipe)
		recipes.Post("/:id/checks", auth, c.RecipeHandler.RecipeChecks)
		recipes.Post("/:id/approve", auth, c.RecipeHandler.ApproveRecipe)
		recipes.Post("/:id/reject", auth, c.RecipeHandler.RejectRecipe)
		recipes.Post("/:id/unpublish", auth, c.RecipeHandler.UnpublishRecipe)
	}
}

func (c *Config) Comments() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	c.App.Post("/api/v1/recipes/:id/comments", auth, c.CommentHandler.PostComment)
	c.App.Get("/api/v1/recipes/:id/comments", optional, c.CommentHandler.GetThread)
	c.App.Patch("/api/v1/comments/:id", auth, c.CommentHandler.EditComment)
	c.App.Delete("/api/v1/comments/:id", auth, c.CommentHandler.DeleteComment)
}

func (c *Config) Engagement() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	c.App.Post("/api/v1/recipes/:id/like", auth, c.EngagementHandler.ToggleLike)
	c.App.Post("/api/v1/recipes/:id/favorite", auth, c.EngagementHandler.ToggleFavorite)
	c.App.Post("/api/v1/recipes/:id/view", optional, c.EngagementHandler.RecordView)
	c.App.Get("/api/v1/recipes/:id/stats", optional, c.EngagementHandler.GetRecipeStats)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
