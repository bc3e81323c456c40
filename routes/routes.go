package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nailstudio-backend/config"
	"nailstudio-backend/controllers"
	"nailstudio-backend/models"
	"nailstudio-backend/services"
	"nailstudio-backend/utils"
)

func SetupRouter(db *gorm.DB, cfg config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	notifier := services.NewNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	bookingService := services.NewBookingService(db)
	workService := services.NewWorkService(db)

	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	serviceController := controllers.NewServiceController(db)
	appointmentController := controllers.NewAppointmentController(db, bookingService, notifier)
	workController := controllers.NewWorkController(workService)

	admin := string(models.RoleAdmin)
	manicurist := string(models.RoleManicurist)
	client := string(models.RoleClient)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	users := api.Group("/users")
	users.Use(utils.AuthMiddleware())
	{
		users.GET("/profile", userController.GetProfile)
		users.PUT("/profile", userController.UpdateProfile)
		users.GET("/manicurists", userController.GetManicurists)

		users.GET("", utils.RequireRole(admin), userController.GetUsers)
		users.PUT("/:id", utils.RequireRole(admin), userController.UpdateUser)
		users.DELETE("/:id", utils.RequireRole(admin), userController.DeleteUser)
	}

	catalogue := api.Group("/services")
	catalogue.Use(utils.AuthMiddleware())
	{
		catalogue.GET("", serviceController.GetServices)

		catalogue.POST("", utils.RequireRole(admin), serviceController.CreateService)
		catalogue.PUT("/:id", utils.RequireRole(admin), serviceController.UpdateService)
		catalogue.DELETE("/:id", utils.RequireRole(admin), serviceController.DeleteService)
	}

	appointments := api.Group("/appointments")
	appointments.Use(utils.AuthMiddleware())
	{
		appointments.POST("", utils.RequireRole(client), appointmentController.CreateAppointment)
		appointments.POST("/admin", utils.RequireRole(admin), appointmentController.CreateAppointmentAdmin)

		appointments.GET("/client", utils.RequireRole(client), appointmentController.GetClientAppointments)
		appointments.GET("/manicurist", utils.RequireRole(manicurist), appointmentController.GetManicuristAppointments)
		appointments.GET("", utils.RequireRole(admin), appointmentController.GetAllAppointments)

		// Ownership is enforced inside the booking service.
		appointments.PUT("/:id/cancel", appointmentController.CancelAppointment)
		appointments.PUT("/:id/status", utils.RequireRole(manicurist, admin), appointmentController.UpdateAppointmentStatus)
		appointments.DELETE("/:id", utils.RequireRole(admin), appointmentController.DeleteAppointment)
	}

	works := api.Group("/works")
	works.Use(utils.AuthMiddleware())
	{
		works.POST("", utils.RequireRole(manicurist), workController.CreateWork)
		works.POST("/admin", utils.RequireRole(admin), workController.CreateWorkAdmin)

		works.GET("/mine", utils.RequireRole(manicurist), workController.GetMyWorks)
		works.GET("", utils.RequireRole(admin), workController.GetAllWorks)

		works.PUT("/:id", utils.RequireRole(manicurist, admin), workController.UpdateWork)
		works.PUT("/:id/pay", utils.RequireRole(admin), workController.MarkWorkPaid)
		works.DELETE("/:id", utils.RequireRole(manicurist, admin), workController.DeleteWork)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return r
}
