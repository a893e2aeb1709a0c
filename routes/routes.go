package routes

import (
	"restx/configs"
	"restx/controllers"
	"restx/entity"
	"restx/middlewares"
	"restx/repository"
	"restx/services"
	"restx/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RegisterRoutes mounts every endpoint. tableSvc is shared with the hub, which
// serves the same table status updates over the socket.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.Hub, tableSvc *services.TableService, log logrus.FieldLogger) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.Static("/uploads", cfg.UploadDir)

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	tableRepo := repository.NewTableRepository(db)
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, restRepo, cfg.JWTSecret, cfg.JWTTTL)
	orderSvc := services.NewOrderService(db, orderRepo, menuRepo, tableRepo, customerRepo, log)
	detailSvc := services.NewOrderDetailService(orderRepo, log)
	paymentSvc := services.NewPaymentService(db, orderRepo, paymentRepo)

	// Controllers
	cookie := controllers.CookieConfig{Name: cfg.CookieName, Secure: cfg.IsProduction(), TTL: cfg.JWTTTL}
	authCtrl := controllers.NewAuthController(authSvc, cookie)
	customerCtrl := controllers.NewCustomerController(services.NewCustomerService(customerRepo, restRepo), authSvc, cookie)
	menuCtrl := controllers.NewMenuController(services.NewMenuService(menuRepo, tableRepo, restRepo))
	cartCtrl := controllers.NewCartController(services.NewCartService(menuRepo), orderSvc, hub, log)
	orderCtrl := controllers.NewOrderController(orderSvc, detailSvc, paymentSvc, hub, log)
	tableCtrl := controllers.NewTableController(tableSvc, hub, log)
	dishCtrl := controllers.NewDishController(services.NewDishService(db, menuRepo, cfg.UploadDir), services.NewCategoryService(menuRepo))
	staffCtrl := controllers.NewStaffController(services.NewStaffService(db, userRepo, cfg.UploadDir))
	ownerCtrl := controllers.NewOwnerController(
		services.NewOwnerService(db, restRepo, userRepo, cfg.UploadDir),
		services.NewDashboardService(orderRepo, restRepo),
	)

	optionalAuth := middlewares.OptionalAuth(cfg.JWTSecret, cfg.CookieName)
	restaurant := middlewares.RestaurantContext()

	// Auth (staff/owner)
	a := r.Group("/auth")
	{
		a.POST("/login", authCtrl.Login)
		a.POST("/logout", authCtrl.Logout)
	}

	// Customer pages, reached from a table QR code
	r.GET("/home/:ownerId/:tableId", restaurant, menuCtrl.Home)
	r.GET("/menu/:ownerId/:tableId", restaurant, menuCtrl.Customer)

	cust := r.Group("/customer")
	{
		cust.POST("/login/:ownerId/:tableId", restaurant, customerCtrl.Login)
		cust.POST("/logout", customerCtrl.Logout)
		cust.GET("/check-phone/:ownerId", restaurant, customerCtrl.CheckPhone)
	}

	cart := r.Group("/cart/:ownerId/:tableId", restaurant, optionalAuth)
	{
		cart.GET("", cartCtrl.View)
		cart.POST("/checkout", cartCtrl.Checkout)
	}
	r.GET("/orders/history/:ownerId/:tableId", restaurant, optionalAuth, orderCtrl.History)

	// Staff (owners may use every staff page)
	staff := r.Group("/staff", middlewares.AuthMiddleware(cfg.JWTSecret, cfg.CookieName, entity.RoleStaff, entity.RoleOwner))
	{
		staff.GET("/requests", orderCtrl.Requests)
		staff.GET("/menu", menuCtrl.Staff)
		staff.GET("/tables", tableCtrl.Board)
		staff.PATCH("/tables/:id/status", tableCtrl.UpdateStatus)
		staff.POST("/dishes/availability", dishCtrl.SetAvailability)
		staff.POST("/order-details/status", orderCtrl.UpdateDetailStatus)
		staff.GET("/orders/:id", orderCtrl.Detail)
		staff.PATCH("/orders/:id/status", orderCtrl.SetStatus)
		staff.PATCH("/orders/:id/close", orderCtrl.Close)
		staff.POST("/orders/:id/payments", orderCtrl.RecordPayment)
		staff.GET("/payment-methods", orderCtrl.PaymentMethods)
		staff.GET("/profile", staffCtrl.Profile)
	}

	// Owner
	owner := r.Group("/owner", middlewares.AuthMiddleware(cfg.JWTSecret, cfg.CookieName, entity.RoleOwner))
	{
		owner.GET("/dashboard", ownerCtrl.DashboardView)
		owner.GET("/profile", ownerCtrl.Profile)
		owner.PATCH("/profile", ownerCtrl.UpdateProfile)

		owner.GET("/dishes", dishCtrl.List)
		owner.GET("/dishes/:id", dishCtrl.Get)
		owner.POST("/dishes", dishCtrl.Create)
		owner.PUT("/dishes/:id", dishCtrl.Update)
		owner.DELETE("/dishes/:id", dishCtrl.Delete)

		owner.GET("/categories", dishCtrl.ListCategories)
		owner.POST("/categories", dishCtrl.CreateCategory)

		owner.GET("/tables", tableCtrl.List)
		owner.POST("/tables", tableCtrl.Create)
		owner.PUT("/tables/:id", tableCtrl.Update)
		owner.DELETE("/tables/:id", tableCtrl.Delete)
		owner.GET("/tables/:id/qrcode", tableCtrl.QRCode)

		owner.GET("/staff", staffCtrl.List)
		owner.GET("/staff/:id", staffCtrl.Get)
		owner.POST("/staff", staffCtrl.Create)
		owner.PUT("/staff/:id", staffCtrl.Update)
		owner.DELETE("/staff/:id", staffCtrl.Delete)

		owner.GET("/customers", customerCtrl.List)
		owner.GET("/customers/:id", customerCtrl.Get)
		owner.POST("/customers", customerCtrl.Create)
		owner.PUT("/customers/:id", customerCtrl.Update)
		owner.DELETE("/customers/:id", customerCtrl.Delete)
	}

	// Realtime order list / table board
	r.GET("/ws/staff", middlewares.WSAuthMiddleware(cfg.JWTSecret, cfg.CookieName, entity.RoleStaff, entity.RoleOwner), hub.HandleWebSocket)
}
