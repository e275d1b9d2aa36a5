package main

import (
	"fmt"
	"log"
	"os"

	"github.com/MohamedAmineBenGhouizia/real-estate/models"
	"github.com/MohamedAmineBenGhouizia/real-estate/storage"

	"golang.org/x/crypto/bcrypt"
)

// One-shot seeding of the initial admin account. Safe to re-run: does
// nothing if the email is already registered.
func main() {
	storage.InitializeDB()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD environment variables are required")
	}

	var existing models.User
	if err := storage.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("Admin %s already exists, nothing to do\n", email)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing password: %v", err)
	}

	admin := models.User{
		FirstName: "Admin",
		LastName:  "User",
		Email:     email,
		Password:  string(hashed),
		Role:      "admin",
	}

	if err := storage.DB.Create(&admin).Error; err != nil {
		log.Fatalf("Error creating admin: %v", err)
	}

	fmt.Printf("Admin %s created successfully\n", email)
}
