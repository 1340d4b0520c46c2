package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	config "github.com/fundspark/fundspark-go/config"
	controllers "github.com/fundspark/fundspark-go/controllers"
	middleware "github.com/fundspark/fundspark-go/middleware"
	models "github.com/fundspark/fundspark-go/models"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	auth := middleware.Authenticate(cfg)
	optional := middleware.OptionalAuth(cfg)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"message":   "FundSpark API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// auth
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", controllers.Register(cfg))
		authGroup.POST("/login", controllers.Login(cfg))
		authGroup.POST("/refresh", controllers.RefreshToken(cfg))
		authGroup.GET("/me", auth, controllers.GetMe(cfg))
		authGroup.PUT("/profile", auth, controllers.UpdateProfile(cfg))
		authGroup.PUT("/change-password", auth, controllers.ChangePassword(cfg))
	}

	// campaigns
	campaigns := api.Group("/campaigns")
	{
		campaigns.GET("", controllers.ListCampaigns(cfg))
		campaigns.GET("/my-campaigns", auth, controllers.GetMyCampaigns(cfg))
		campaigns.GET("/bookmarked", auth, controllers.GetBookmarkedCampaigns(cfg))
		campaigns.GET("/:id", optional, controllers.GetCampaign(cfg))

		campaigns.POST("", auth, middleware.Authorize(models.RoleCreator, models.RoleAdmin), controllers.CreateCampaign(cfg))
		campaigns.PUT("/:id", auth, controllers.UpdateCampaign(cfg))
		campaigns.DELETE("/:id", auth, controllers.DeleteCampaign(cfg))
		campaigns.POST("/:id/bookmark", auth, controllers.BookmarkCampaign(cfg))
		campaigns.POST("/:id/comments", auth, controllers.AddComment(cfg))

		campaigns.PUT("/:id/status", auth, middleware.Authorize(models.RoleAdmin), controllers.UpdateCampaignStatus(cfg))
	}

	// payments
	payment := api.Group("/payment")
	payment.Use(auth)
	{
		payment.POST("", controllers.ProcessPayment(cfg))
		payment.GET("/my-payments", controllers.GetMyPayments(cfg))
		payment.GET("/campaign/:id", controllers.GetCampaignPayments(cfg))
	}

	// analytics (admin)
	analytics := api.Group("/analytics")
	analytics.Use(auth, middleware.Authorize(models.RoleAdmin))
	{
		analytics.GET("/funding-trends", controllers.GetFundingTrends(cfg))
		analytics.GET("/dashboard", controllers.GetDashboardStats(cfg))
	}

	api.POST("/upload", auth, controllers.UploadImage(cfg))
	api.POST("/email/send", controllers.SendEmail(cfg))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "API endpoint not found",
		})
	})
}
