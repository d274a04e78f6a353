package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/malikaashish/Inventory-Management-System/internal/application/auth"
	"github.com/malikaashish/Inventory-Management-System/internal/application/inventory"
	"github.com/malikaashish/Inventory-Management-System/internal/application/notification"
	"github.com/malikaashish/Inventory-Management-System/internal/application/purchasing"
	"github.com/malikaashish/Inventory-Management-System/internal/application/sales"
	"github.com/malikaashish/Inventory-Management-System/internal/application/usecase"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CompanyUC       *usecase.CompanyUseCase
	UserUC          *usecase.UserUseCase
	ProductUC       *usecase.ProductUseCase
	SupplierUC      *usecase.SupplierUseCase
	CustomerUC      *usecase.CustomerUseCase
	ModuleService   *usecase.ModuleService
	AdjustmentUC    *inventory.StockAdjustmentUseCase
	Replenishment   *inventory.ReplenishmentUseCase
	AutoReorderUC   *inventory.AutoReorderUseCase
	SalesUC         *sales.SalesOrderUseCase
	PurchaseUC      *purchasing.PurchaseOrderUseCase
	NotificationUC  *notification.NotificationUseCase
	JWTSecret       string
	Log             *logger.Logger
	MetricsHandler  fiber.Handler // nil = sin /metrics
	MetricsRecorder fiber.Handler // nil = sin métricas HTTP
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))
	if deps.MetricsRecorder != nil {
		app.Use(deps.MetricsRecorder)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", deps.MetricsHandler)
	}

	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret)
	admin := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authMW, admin, authHandler.Register)

	// Empresa y usuarios
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies := api.Group("/companies", authMW)
	companies.Get("/me", companyHandler.Me)
	companies.Get("/me/modules", companyHandler.ListModules)
	companies.Put("/me/modules", admin, companyHandler.SetModule)

	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/users", authMW)
	users.Get("/me", userHandler.Me)
	users.Get("/", admin, userHandler.List)

	// Catálogo: lectura para cualquier rol, escritura según el área.
	catalogWriters := RequireRole(entity.RoleAdmin, entity.RoleInventoryStaff, entity.RolePurchaseStaff)
	productHandler := NewProductHandler(deps.ProductUC, deps.SupplierUC)
	products := api.Group("/products", authMW)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/suppliers", productHandler.Suppliers)
	products.Post("/", catalogWriters, productHandler.Create)
	products.Put("/:id", catalogWriters, productHandler.Update)

	supplierWriters := RequireRole(entity.RoleAdmin, entity.RolePurchaseStaff)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := api.Group("/suppliers", authMW)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", supplierWriters, supplierHandler.Create)
	suppliers.Post("/:id/products", supplierWriters, supplierHandler.LinkProduct)

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := api.Group("/customers", authMW, RequireRole(entity.RoleAdmin, entity.RoleSalesStaff))
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", customerHandler.Create)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.AdjustmentUC, deps.Replenishment, deps.AutoReorderUC)
	inv := api.Group("/inventory", authMW, RequireModule(entity.ModuleInventory, deps.ModuleService, deps.Log))
	stockRoles := RequireRole(entity.RoleAdmin, entity.RoleInventoryStaff)
	inv.Post("/adjust", stockRoles, inventoryHandler.Adjust)
	inv.Get("/adjustments/:productId", stockRoles, inventoryHandler.History)
	inv.Get("/adjustments/:productId/export", stockRoles, inventoryHandler.ExportHistory)
	inv.Get("/low-stock", RequireRole(entity.RoleAdmin, entity.RoleInventoryStaff, entity.RolePurchaseStaff), inventoryHandler.LowStock)
	inv.Post("/bot/trigger", admin, inventoryHandler.TriggerAutoReorder)

	// Ventas
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesOrders := api.Group("/sales/orders",
		authMW,
		RequireModule(entity.ModuleSales, deps.ModuleService, deps.Log),
		RequireRole(entity.RoleAdmin, entity.RoleSalesStaff),
	)
	salesOrders.Get("/", salesHandler.List)
	salesOrders.Get("/recent", salesHandler.Recent)
	salesOrders.Get("/:id", salesHandler.Get)
	salesOrders.Post("/", salesHandler.Create)
	salesOrders.Patch("/:id/status", salesHandler.UpdateStatus)

	// Compras
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchaseOrders := api.Group("/purchases/orders",
		authMW,
		RequireModule(entity.ModulePurchasing, deps.ModuleService, deps.Log),
		RequireRole(entity.RoleAdmin, entity.RolePurchaseStaff),
	)
	purchaseOrders.Get("/", purchaseHandler.List)
	purchaseOrders.Get("/pending", purchaseHandler.Pending)
	purchaseOrders.Get("/:id", purchaseHandler.Get)
	purchaseOrders.Get("/:id/pdf", purchaseHandler.PDF)
	purchaseOrders.Post("/", purchaseHandler.Create)
	purchaseOrders.Patch("/:id/status", purchaseHandler.UpdateStatus)
	purchaseOrders.Post("/:id/receive", purchaseHandler.Receive)

	// Notificaciones (cualquier rol, siempre las propias)
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications := api.Group("/notifications", authMW)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread", notificationHandler.Unread)
	notifications.Get("/unread/count", notificationHandler.UnreadCount)
	notifications.Patch("/read-all", notificationHandler.MarkAllRead)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
}
