// @title           AskPro API
// @version         1.0
// @description     Q&A-платформа: вопросы пользователей, ответы сертифицированных профессионалов (документация Swagger).
// @contact.name    AskPro
// @contact.email   support@askpro.dev
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	_ "github.com/joho/godotenv/autoload"

	"askpro_backend/internal/app"
)

func main() {
	app.Run()
}
