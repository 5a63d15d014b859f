package routes

import (
	"time"

	"servicefinder/handlers"
	"servicefinder/middleware"
	"servicefinder/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers the public provider listing.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.GET("", hb.Providers.SearchProviders)
		api.GET("/:id", hb.Providers.GetProvider)
		api.GET("/:id/services", hb.Catalogue.ListProviderServices)
		api.GET("/:id/reviews", hb.Reviews.ListProviderReviews)
	}
}

// RegisterProfileRoutes registers endpoints acting on the caller's own records.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	me := r.Group("/api/me")
	me.Use(middleware.JWTAuthMiddleware())
	{
		me.PUT("/fcm-token", hb.Providers.UpdateFCMToken)

		provider := me.Group("")
		provider.Use(middleware.RequireRole(models.RoleProvider))
		provider.GET("/provider", hb.Providers.GetMyProfile)
		provider.PUT("/provider", hb.Providers.UpsertMyProfile)
		provider.POST("/provider/photo", hb.Providers.UploadPhoto)
		provider.GET("/services", hb.Catalogue.ListMyServices)
	}
}

// RegisterServiceRoutes registers service listing endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("/:id", hb.Catalogue.GetService)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleProvider))
		protected.POST("", hb.Catalogue.AddService)
		protected.PUT("/:id", hb.Catalogue.EditService)
		protected.DELETE("/:id", hb.Catalogue.DeleteService)
	}
}

// RegisterBookingRoutes registers the booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", hb.Bookings.CreateBooking)
		api.GET("", hb.Bookings.ListMyBookings)
		api.GET("/:id", hb.Bookings.GetBooking)
	}
}

// RegisterPaymentRoutes registers checkout and payment confirmation.
// The webhook authenticates by signature rather than JWT.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/webhook", hb.Payments.Webhook)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("/create-order", hb.Payments.CreateOrder)
		protected.POST("/verify-payment", hb.Payments.VerifyPayment)
	}
}

// RegisterReviewRoutes registers review submission.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", hb.Reviews.SubmitReview)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterProviderRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
