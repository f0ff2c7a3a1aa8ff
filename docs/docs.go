// Package docs registra la especificación OpenAPI de la Librería API.
//
// El archivo swagger.json se mantiene junto a este paquete y se sirve
// tanto embebido (swag) como desde disco por el middleware de Fiber.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo expone los metadatos de la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Librería API",
	Description:      "API de back-office para librería: catálogo, inventario, ventas, roles y reportes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
