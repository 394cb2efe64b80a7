package main

import (
	"log"

	"github.com/joho/godotenv"

	"task-tracker/backend/internal/database"
	"task-tracker/backend/internal/routes"
)

func main() {
	// .env が無い環境（本番など）では環境変数をそのまま使う
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db := database.InitDB()
	defer db.Close()

	r := routes.SetupRouter(db)

	// サーバー起動
	log.Println("Server listening on port 8080...")
	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
