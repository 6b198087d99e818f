// Package docs registra la especificación Swagger de la API (generada con swag a partir
// de las anotaciones godoc de internal/interfaces/http).
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var doc string

// SwaggerInfo metadatos de la API; cmd/api ajusta Host y sirve ReadDoc() en /docs.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Kardex API",
	Description:      "Evaluación de stock de medicamentos para residencias de cuidado.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  doc,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
