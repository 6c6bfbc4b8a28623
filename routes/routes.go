package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory/controllers"
)

type Handlers struct {
	Items  *controllers.ItemController
	Users  *controllers.UserController
	Health *controllers.HealthController
	// Auth guards the self-service user routes.
	Auth gin.HandlerFunc
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/healthz", h.Health.Health)

	api := r.Group("/api")
	{
		items := api.Group("/items")
		{
			items.GET("", h.Items.GetItems)
			items.POST("", h.Items.CreateItem)
			items.GET("/:id", h.Items.GetItem)
			items.PUT("/:id", h.Items.UpdateItem)
			items.DELETE("/:id", h.Items.DeleteItem)
		}

		users := api.Group("/users")
		{
			users.GET("", h.Users.GetUsers)
			users.POST("", h.Users.Register)
			users.POST("/login", h.Users.Login)
			users.GET("/chat-users", h.Users.ChatUsers)

			protected := users.Group("")
			protected.Use(h.Auth)
			{
				protected.PUT("/update-username", h.Users.UpdateUsername)
				protected.PUT("/change-password", h.Users.ChangePassword)
				protected.DELETE("/delete-account", h.Users.DeleteAccount)
				protected.POST("/logout", h.Users.Logout)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
}
