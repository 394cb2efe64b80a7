// createadmin は初期管理者アカウントを作成するCLIです。
// サインアップからは管理者を作れないため、最初の管理者はこのコマンドで投入します。
//
// 使用方法: createadmin <username> <email> <password>
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"task-tracker/backend/internal/database"
	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "Usage: createadmin <username> <email> <password>")
		os.Exit(1)
	}
	username := os.Args[1]
	email := os.Args[2]
	password := os.Args[3]

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db := database.InitDB()
	defer db.Close()

	hashedPassword, err := repositories.HashPassword(password)
	if err != nil {
		log.Fatalf("Fatal: Failed to hash password: %v", err)
	}

	admin := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		IsAdmin:      true,
	}

	userRepo := repositories.NewUserRepository(db)
	created, err := userRepo.Create(admin)
	if err != nil {
		log.Fatalf("Fatal: Failed to create admin account: %v", err)
	}

	log.Printf("Admin account created: %s (id=%d)", created.Username, created.ID)
}
