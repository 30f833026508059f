package web

import (
	_ "empdir/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

const SwaggerPath = "/docs"

// возвращает конфигурацию Swagger UI
func GetSwaggerConfig() swagger.Config {
	return swagger.Config{
		// URL для получения OpenAPI спецификации
		URL: SwaggerPath + "/doc.json",

		// Включить deep linking
		DeepLinking: true,

		// Настройки раскрытия разделов по умолчанию
		DocExpansion: "list",

		DefaultModelsExpandDepth: 1,
		DefaultModelExpandDepth:  1,

		SupportedSubmitMethods: []string{
			"get", "post", "put", "delete", "patch",
		},

		// Заголовок страницы
		Title: "Employee Directory API Documentation",
	}
}

// подключает Swagger UI и документ API по пути /docs
func InitSwagger(app *fiber.App) {
	app.Get(SwaggerPath+"/*", swagger.New(GetSwaggerConfig()))
}
