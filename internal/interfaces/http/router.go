package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sairmh/libreria-api/internal/application/auth"
	"github.com/sairmh/libreria-api/internal/application/inventory"
	"github.com/sairmh/libreria-api/internal/application/sales"
	"github.com/sairmh/libreria-api/internal/application/usecase"
	"github.com/sairmh/libreria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	ProductUC  *usecase.ProductUseCase
	CatalogUC  *usecase.CatalogUseCase
	MovementUC *inventory.StockMovementUseCase
	SaleUC     *sales.SaleUseCase
	RoleUC     *usecase.RoleUseCase
	UserUC     *usecase.UserUseCase
	ReportUC   *usecase.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Cada ruta protegida exige el permiso
// del conjunto cerrado que le corresponde, encadenado tras AuthMiddleware.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequirePermission(entity.PermCreateProduct), productHandler.Create)
	products.Get("/", RequirePermission(entity.PermGetProducts), productHandler.List)
	products.Get("/:id", RequirePermission(entity.PermGetProduct), productHandler.GetByID)
	products.Put("/:id", RequirePermission(entity.PermUpdateProduct), productHandler.Update)
	products.Delete("/:id", RequirePermission(entity.PermDeleteProduct), productHandler.Delete)

	// Catálogo de referencia: autores, categorías y editoriales. Comparte los
	// permisos de producto porque se administra junto al catálogo de libros.
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	protected.Post("/authors", RequirePermission(entity.PermCreateProduct), catalogHandler.CreateAuthor)
	protected.Get("/authors", RequirePermission(entity.PermGetProducts), catalogHandler.ListAuthors)
	protected.Post("/categories", RequirePermission(entity.PermCreateProduct), catalogHandler.CreateCategory)
	protected.Get("/categories", RequirePermission(entity.PermGetProducts), catalogHandler.ListCategories)
	protected.Post("/editorials", RequirePermission(entity.PermCreateProduct), catalogHandler.CreateEditorial)
	protected.Get("/editorials", RequirePermission(entity.PermGetProducts), catalogHandler.ListEditorials)

	// Stock movements
	movements := protected.Group("/stock-movements")
	inventoryHandler := NewInventoryHandler(deps.MovementUC)
	movements.Post("/", RequirePermission(entity.PermCreateStockMovement), inventoryHandler.Register)
	movements.Get("/", RequirePermission(entity.PermGetStockMovements), inventoryHandler.List)
	movements.Get("/product/:productId", RequirePermission(entity.PermGetStockMovements), inventoryHandler.ListByProduct)
	movements.Get("/:id", RequirePermission(entity.PermGetStockMovement), inventoryHandler.GetByID)
	movements.Put("/:id", RequirePermission(entity.PermUpdateStockMovement), inventoryHandler.Update)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", RequirePermission(entity.PermCreateSale), saleHandler.Register)
	salesGroup.Get("/", RequirePermission(entity.PermGetSales), saleHandler.List)
	salesGroup.Get("/user/:userId", RequirePermission(entity.PermGetSales), saleHandler.ListByUser)
	salesGroup.Get("/:id", RequirePermission(entity.PermGetSale), saleHandler.GetByID)

	// Roles y permisos
	roles := protected.Group("/roles")
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Post("/", RequirePermission(entity.PermCreateRole), roleHandler.Create)
	roles.Get("/", RequirePermission(entity.PermGetRoles), roleHandler.List)
	roles.Get("/:id", RequirePermission(entity.PermGetRole), roleHandler.GetByID)
	roles.Put("/:id", RequirePermission(entity.PermUpdateRole), roleHandler.Update)
	roles.Delete("/:id", RequirePermission(entity.PermDeleteRole), roleHandler.Delete)
	roles.Post("/:roleId/permissions/:permissionName", RequirePermission(entity.PermAssignRolePermission), roleHandler.AddPermission)
	roles.Delete("/:roleId/permissions/:permissionName", RequirePermission(entity.PermRemoveRolePermission), roleHandler.RemovePermission)
	protected.Get("/permissions", RequirePermission(entity.PermGetRoles), roleHandler.ListPermissions)

	// Usuarios y personas
	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users/short", RequirePermission(entity.PermGetUsers), userHandler.ListShort)
	persons := protected.Group("/persons")
	persons.Post("/", RequirePermission(entity.PermCreatePerson), userHandler.CreatePerson)
	persons.Get("/profile", userHandler.GetProfile) // la propia identidad no exige permiso extra
	persons.Get("/:id", RequirePermission(entity.PermGetPerson), userHandler.GetPersonByID)
	persons.Put("/:id", RequirePermission(entity.PermUpdatePerson), userHandler.UpdatePerson)
	persons.Delete("/:id", RequirePermission(entity.PermDeletePerson), userHandler.DeletePerson)

	// Reportes
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/top-products", RequirePermission(entity.PermReportsView), reportHandler.TopProducts)
	reports.Get("/top-products/pdf", RequirePermission(entity.PermReportsView), reportHandler.TopProductsPDF)
}
