package entity

import "time"

// Permission capacidad atómica verificada antes de cada operación mutante.
// Datos de referencia inmutables, sembrados al arranque.
type Permission struct {
	ID        string
	Name      string // único, del conjunto cerrado de abajo
	Label     string
	CreatedAt time.Time
}

// Conjunto cerrado de permisos. Los handlers referencian estas constantes y el
// sembrador valida al arranque que cada una exista en la tabla permissions.
const (
	PermCreateProduct        = "CREATE_PRODUCT"
	PermGetProduct           = "GET_PRODUCT"
	PermGetProducts          = "GET_PRODUCTS"
	PermUpdateProduct        = "UPDATE_PRODUCT"
	PermDeleteProduct        = "DELETE_PRODUCT"
	PermCreateStockMovement  = "CREATE_STOCK_MOVEMENT"
	PermUpdateStockMovement  = "UPDATE_STOCK_MOVEMENT"
	PermGetStockMovement     = "GET_STOCK_MOVEMENT"
	PermGetStockMovements    = "GET_STOCK_MOVEMENTS"
	PermCreateSale           = "CREATE_SALE"
	PermGetSale              = "GET_SALE"
	PermGetSales             = "GET_SALES"
	PermCreateRole           = "CREATE_ROLE"
	PermGetRole              = "GET_ROLE"
	PermGetRoles             = "GET_ROLES"
	PermUpdateRole           = "UPDATE_ROLE"
	PermDeleteRole           = "DELETE_ROLE"
	PermAssignRolePermission = "ASSIGN_ROLE_PERMISSION"
	PermRemoveRolePermission = "REMOVE_ROLE_PERMISSION"
	PermCreatePerson         = "CREATE_PERSON"
	PermGetPerson            = "GET_PERSON"
	PermUpdatePerson         = "UPDATE_PERSON"
	PermDeletePerson         = "DELETE_PERSON"
	PermGetUsers             = "GET_USERS"
	PermReportsView          = "REPORTS_VIEW"
)

// PermissionSeed permiso del conjunto cerrado con su etiqueta legible.
type PermissionSeed struct {
	Name  string
	Label string
}

// AllPermissions conjunto cerrado completo, en el orden en que se siembra.
func AllPermissions() []PermissionSeed {
	return []PermissionSeed{
		{PermCreateProduct, "Crear productos"},
		{PermGetProduct, "Ver producto"},
		{PermGetProducts, "Listar productos"},
		{PermUpdateProduct, "Actualizar productos"},
		{PermDeleteProduct, "Eliminar productos"},
		{PermCreateStockMovement, "Registrar movimientos de stock"},
		{PermUpdateStockMovement, "Actualizar movimientos de stock"},
		{PermGetStockMovement, "Ver movimiento de stock"},
		{PermGetStockMovements, "Listar movimientos de stock"},
		{PermCreateSale, "Registrar ventas"},
		{PermGetSale, "Ver venta"},
		{PermGetSales, "Listar ventas"},
		{PermCreateRole, "Crear roles"},
		{PermGetRole, "Ver rol"},
		{PermGetRoles, "Listar roles"},
		{PermUpdateRole, "Actualizar roles"},
		{PermDeleteRole, "Eliminar roles"},
		{PermAssignRolePermission, "Asignar permisos a roles"},
		{PermRemoveRolePermission, "Quitar permisos de roles"},
		{PermCreatePerson, "Crear personas"},
		{PermGetPerson, "Ver persona"},
		{PermUpdatePerson, "Actualizar personas"},
		{PermDeletePerson, "Eliminar personas"},
		{PermGetUsers, "Listar usuarios"},
		{PermReportsView, "Ver reportes"},
	}
}

// VendedorPermissions permisos que se asignan al rol VENDEDOR al sembrar.
func VendedorPermissions() []string {
	return []string{
		PermGetProduct, PermGetProducts,
		PermCreateSale, PermGetSale, PermGetSales,
		PermGetStockMovement, PermGetStockMovements,
	}
}
