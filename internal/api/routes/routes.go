// server/internal/api/routes/routes.go
package routes

import (
	"time"

	"field-sales-ops-api-server/config"
	"field-sales-ops-api-server/internal/api/handlers"
	"field-sales-ops-api-server/internal/api/middleware"
	"field-sales-ops-api-server/internal/audit"
	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/internal/socket"
	"field-sales-ops-api-server/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires the handlers and their role gates.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	files storage.FileStore,
	wsHub *socket.Hub,
) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-admin-panel"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	recorder := audit.NewRecorder(db)

	authHandler := &handlers.AuthHandler{DB: db}
	userHandler := &handlers.UserHandler{DB: db}
	distributorHandler := &handlers.DistributorHandler{DB: db}
	shopHandler := &handlers.ShopHandler{DB: db, Recorder: recorder}
	productHandler := &handlers.ProductHandler{DB: db}
	orderHandler := &handlers.OrderHandler{DB: db, Recorder: recorder, Hub: wsHub}
	claimHandler := &handlers.DamageClaimHandler{DB: db, Recorder: recorder, Hub: wsHub, Files: files}
	inquiryHandler := &handlers.SalesInquiryHandler{DB: db, Recorder: recorder, Hub: wsHub}
	estimateHandler := &handlers.SupplyEstimateHandler{DB: db, Recorder: recorder, Hub: wsHub}
	taskHandler := &handlers.TaskHandler{DB: db, Recorder: recorder, Hub: wsHub}
	activityHandler := &handlers.ActivityHandler{DB: db, Recorder: recorder}
	shopActivityHandler := &handlers.ShopActivityHandler{DB: db, Recorder: recorder}
	assignmentHandler := &handlers.AssignmentHandler{DB: db, Recorder: recorder}
	staffActivityHandler := &handlers.StaffActivityHandler{DB: db}

	managers := []string{models.RoleAdmin, models.RoleSubAdmin, models.RoleMidLevelManager}
	admins := []string{models.RoleAdmin, models.RoleSubAdmin}
	allRoles := append(append([]string{}, managers...), models.RoleMarketingStaff)

	// Uploaded files are served straight from the uploads directory when
	// local storage is in use.
	if cfg.Upload.Dir != "" {
		router.Static("/uploads", cfg.Upload.Dir)
	}

	apiV1 := router.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.Authenticate(), authHandler.Me)
		}

		apiV1.GET("/ws", middleware.Authenticate(), handlers.ServeWs(wsHub))

		// Administration, Admin and SubAdmin only.
		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate())
		admin.Use(middleware.Authorize(admins...))
		{
			users := admin.Group("/users")
			{
				users.POST("/", userHandler.CreateUser)
				users.GET("/", userHandler.GetAllUsers)
				users.GET("/:id", userHandler.GetUserByID)
				users.PUT("/:id", userHandler.UpdateUser)
				users.DELETE("/:id", userHandler.DeactivateUser)
			}

			assignments := admin.Group("/assignments")
			{
				assignments.POST("/", assignmentHandler.Assign)
				assignments.PUT("/:staffId/remove", assignmentHandler.RemoveDistributors)
				assignments.DELETE("/:staffId", assignmentHandler.Deactivate)
			}

			audits := admin.Group("/staff-activities")
			{
				audits.GET("/", staffActivityHandler.GetActivities)
				audits.GET("/:staffId/summary", staffActivityHandler.GetStaffSummary)
			}
		}

		// Distributor management is Admin territory.
		distributors := apiV1.Group("/distributors")
		distributors.Use(middleware.Authenticate())
		distributors.Use(middleware.Authorize(admins...))
		{
			distributors.POST("/", distributorHandler.CreateDistributor)
			distributors.PUT("/:id", distributorHandler.UpdateDistributor)
			distributors.DELETE("/:id", distributorHandler.DeleteDistributor)
		}

		// Manager-facing reference data management.
		managerRoutes := apiV1.Group("/")
		managerRoutes.Use(middleware.Authenticate())
		managerRoutes.Use(middleware.Authorize(managers...))
		{
			brands := managerRoutes.Group("/brands")
			{
				brands.POST("/", productHandler.CreateBrand)
				brands.PUT("/:id", productHandler.UpdateBrand)
				brands.DELETE("/:id", productHandler.DeleteBrand)
			}

			products := managerRoutes.Group("/products")
			{
				products.POST("/", productHandler.CreateProduct)
				products.DELETE("/:id", productHandler.DeleteProduct)
			}

			shops := managerRoutes.Group("/shops")
			{
				shops.GET("/pending", shopHandler.GetPendingShops)
				shops.PUT("/:id/approve", shopHandler.ApproveShop)
				shops.PUT("/:id/reject", shopHandler.RejectShop)
			}
		}

		// Main business surface, any authenticated role. Finer-grained role
		// checks live in the workflow transition rules.
		businessRoutes := apiV1.Group("/")
		businessRoutes.Use(middleware.Authenticate())
		businessRoutes.Use(middleware.Authorize(allRoles...))
		{
			businessRoutes.GET("/distributors", distributorHandler.GetAllDistributors)
			businessRoutes.GET("/distributors/:id", distributorHandler.GetDistributorByID)
			businessRoutes.GET("/distributors/:id/shops", shopHandler.GetShopsByDistributor)
			businessRoutes.GET("/brands", productHandler.GetAllBrands)
			businessRoutes.GET("/products", productHandler.GetAllProducts)

			businessRoutes.POST("/shops", shopHandler.CreateShop)

			orders := businessRoutes.Group("/orders")
			{
				orders.POST("/", orderHandler.CreateOrder)
				orders.GET("/", orderHandler.GetAllOrders)
				orders.GET("/:id", orderHandler.GetOrder)
				orders.PUT("/:id/approve", orderHandler.Transition(models.OrderStatusApproved))
				orders.PUT("/:id/reject", orderHandler.Transition(models.OrderStatusRejected))
				orders.PUT("/:id/dispatch", orderHandler.Transition(models.OrderStatusDispatched))
				orders.DELETE("/:id", middleware.Authorize(admins...), orderHandler.DeleteOrder)
			}

			claims := businessRoutes.Group("/damage-claims")
			{
				claims.POST("/", claimHandler.CreateClaim)
				claims.GET("/", claimHandler.GetAllClaims)
				claims.GET("/:id", claimHandler.GetClaim)
				claims.POST("/:id/images", claimHandler.UploadImage)
				claims.PUT("/:id/comment", claimHandler.Comment)
				claims.PUT("/:id/decide", claimHandler.Decide)
				claims.PUT("/replacements/:trackingId", claimHandler.RegisterReplacement)
				claims.DELETE("/:id", middleware.Authorize(admins...), claimHandler.DeleteClaim)
			}

			inquiries := businessRoutes.Group("/sales-inquiries")
			{
				inquiries.POST("/", inquiryHandler.CreateInquiry)
				inquiries.GET("/", inquiryHandler.GetAllInquiries)
				inquiries.GET("/:id", inquiryHandler.GetInquiry)
				inquiries.PUT("/:id/comment", inquiryHandler.Transition(models.InquiryStatusCommented))
				inquiries.PUT("/:id/process", inquiryHandler.Transition(models.InquiryStatusProcessing))
				inquiries.PUT("/:id/complete", inquiryHandler.Transition(models.InquiryStatusCompleted))
				inquiries.PUT("/:id/reject", inquiryHandler.Transition(models.InquiryStatusRejected))
				inquiries.PUT("/:id/dispatch", inquiryHandler.Transition(models.InquiryStatusDispatched))
				inquiries.DELETE("/:id", middleware.Authorize(admins...), inquiryHandler.DeleteInquiry)
			}

			estimates := businessRoutes.Group("/supply-estimates")
			{
				estimates.POST("/", estimateHandler.CreateEstimate)
				estimates.GET("/", estimateHandler.GetAllEstimates)
				estimates.GET("/:id", estimateHandler.GetEstimate)
				estimates.PUT("/:id", estimateHandler.UpdateEstimate)
				estimates.PUT("/:id/approve", estimateHandler.Decide(models.EstimateStatusApproved))
				estimates.PUT("/:id/reject", estimateHandler.Decide(models.EstimateStatusRejected))
			}

			tasks := businessRoutes.Group("/tasks")
			{
				tasks.POST("/", taskHandler.CreateTask)
				tasks.GET("/", taskHandler.GetAllTasks)
				tasks.GET("/:id", taskHandler.GetTask)
				tasks.PUT("/:id/start", taskHandler.Transition(models.TaskStatusInProgress))
				tasks.PUT("/:id/complete", taskHandler.Transition(models.TaskStatusCompleted))
				tasks.PUT("/:id/punch-in", taskHandler.PunchIn)
				tasks.PUT("/:id/punch-out", taskHandler.PunchOut)
				tasks.DELETE("/:id", taskHandler.DeleteTask)
			}

			activities := businessRoutes.Group("/activities")
			{
				activities.POST("/punch-in", activityHandler.PunchIn)
				activities.POST("/punch-out", activityHandler.PunchOut)
				activities.GET("/open", activityHandler.GetOpenActivity)
				activities.GET("/", activityHandler.GetActivities)
				activities.POST("/shop-visits", shopActivityHandler.RecordVisit)
				activities.GET("/:activityId/shop-visits", shopActivityHandler.GetVisitsByActivity)
			}

			businessRoutes.GET("/assignments/:staffId", assignmentHandler.GetByStaff)
		}
	}

	return router
}
