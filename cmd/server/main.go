package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"library_backend/pkg/database"
	"library_backend/pkg/handlers"
	"library_backend/pkg/models"
	"library_backend/pkg/services"
	"library_backend/pkg/token"
)

func main() {
	log.Println("Starting library service...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db := database.Init()

	tokens := token.NewService(getEnv("JWT_SECRET", "change-me"), 24*time.Hour)

	careers := services.NewCareerService(db)
	books := services.NewBookService(db)
	students := services.NewStudentService(db, careers)
	loans := services.NewLoanService(db, students, books)
	reservations := services.NewReservationService(db, students, books)
	users := services.NewUserService(db)

	seedAdminUser(users)

	server := gin.Default()
	handlers.Register(server, db, tokens, careers, books, students, loans, reservations, users)

	port := getEnv("PORT", "8080")
	log.Printf("Library service starting on :%s", port)
	if err := server.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// seedAdminUser makes sure at least one librarian account exists, using the
// administrative create path.
func seedAdminUser(users *services.UserService) {
	username := getEnv("ADMIN_USERNAME", "admin")
	if _, err := users.GetByUsername(username); err == nil {
		return
	}
	password := getEnv("ADMIN_PASSWORD", "admin123")
	_, err := users.CreateUser("Administrator", username, password, "admin@library.local", models.RoleLibrarian)
	if err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	log.Printf("Seeded admin user %q", username)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
