// Package routesはroutingを行います。
package routes

import (
	"database/sql"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"task-tracker/backend/internal/handlers"
	"task-tracker/backend/internal/repositories"
	"task-tracker/backend/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(db *sql.DB) *gin.Engine {
	r := gin.Default()
	// 旧Flask版はコレクションに末尾スラッシュ付きルートを使っていたため、
	// /api/users と /api/users/ の両方を受け付ける
	r.RedirectTrailingSlash = true

	// CORS対策
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = true
	r.Use(cors.New(config))

	// リポジトリ
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// サービス
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	jwtService := services.NewJWTService()

	// ハンドラー
	authHandler := handlers.NewAuthHandler(authService, jwtService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// ルーティング
	r.GET("/api/hello", HelloHandler)
	r.GET("/api/dbcheck", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database connection failed", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection is healthy"})
	})

	// 認証
	auth := r.Group("/api/auth")
	{
		auth.POST("/sign-up", authHandler.SignUpHandler)
		auth.POST("/login", authHandler.LoginHandler)
		auth.GET("/me", AuthMiddleware(jwtService), authHandler.MeHandler)
	}

	// ユーザー管理（管理者のみ）
	users := r.Group("/api/users")
	users.Use(AuthMiddleware(jwtService), AdminMiddleware(userRepo))
	{
		users.GET("", userHandler.GetUsersHandler)
		users.GET("/:id", userHandler.GetUserByIDHandler)
		users.DELETE("/:id", userHandler.DeleteUserHandler)
		users.POST("/seed", userHandler.SeedUsersHandler)
	}

	// タスク（認証不要）
	tasks := r.Group("/api/tasks")
	{
		tasks.GET("", taskHandler.GetTasksHandler)
		tasks.GET("/:id", taskHandler.GetTaskByIDHandler)
		tasks.POST("", taskHandler.CreateTaskHandler)
		tasks.PUT("/:id/status", taskHandler.UpdateTaskStatusHandler)
	}

	return r
}

func HelloHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from Go Backend!"})
}
