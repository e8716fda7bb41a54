package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/hihu/gita-notifier/internal/api/handlers/notification"
	"github.com/hihu/gita-notifier/internal/api/handlers/user"
	"github.com/hihu/gita-notifier/internal/middlewares"
)

func New(userHandler *user.Handler, notifHandler *notification.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api")
	{
		users := api.Group("/users")
		{
			users.GET("/:id/preferences", userHandler.GetPreferences)
			users.PUT("/:id/preferences", userHandler.UpdatePreferences)
			users.POST("/:id/progress/reset", userHandler.ResetProgress)
			users.POST("/:id/send", userHandler.SendNow)
			users.GET("/:id/notifications", notifHandler.ListByUser)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("/:id/status", notifHandler.GetStatus)
			notifications.PATCH("/:id/read", notifHandler.MarkRead)
		}
	}

	return e
}
