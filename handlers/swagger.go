package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the minutes service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>minutes-pdf-service — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the generation endpoint and the
// operational endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "minutes-pdf-service", "version": "v0.1.0" },
  "paths": {
    "/{id}": {
      "get": {
        "summary": "Generate the official PDF for a minutes document and swap its canonical file reference",
        "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": {
          "200": { "description": "metadata of the newly generated file", "content": { "application/json": { "schema": { "type": "object", "properties": { "id": {"type":"string"}, "name": {"type":"string"}, "format": {"type":"string"}, "size": {"type":"integer"}, "extension": {"type":"string"}, "created": {"type":"string","format":"date-time"}, "uri": {"type":"string"} } } } } },
          "500": { "description": "not found, not editable due to signatures, or an internal failure (plain text reason)" }
        }
      }
    },
    "/generations/{id}": {
      "get": { "summary": "Most recent generation attempt recorded for a minutes document (requires the audit journal)", "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ], "responses": { "200": { "description": "generation record" }, "404": { "description": "no generation recorded" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics exposition" } } } }
  }
}`
