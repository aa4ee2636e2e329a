// Command admin_seed creates the initial admin account from environment
// variables. Safe to run repeatedly; an existing admin is left untouched.
package main

import (
	"log"
	"os"

	"investplus/internal/config"
	"investplus/internal/models"
	"investplus/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminMobile := os.Getenv("ADMIN_MOBILE")

	if adminEmail == "" || adminPassword == "" || adminMobile == "" {
		log.Fatal("ADMIN_EMAIL, ADMIN_PASSWORD, and ADMIN_MOBILE must be set in environment")
	}

	db, err := repositories.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Failed to close database connection: %v", err)
			}
		}
	}()

	var existing models.User
	if err := db.Where("mobile = ?", adminMobile).First(&existing).Error; err == nil {
		log.Println("Admin user already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Name:         "Administrator",
		Mobile:       adminMobile,
		Email:        adminEmail,
		Password:     string(hashedPassword),
		Role:         "admin",
		Status:       "active",
		TokenVersion: 1,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}
	if err := db.Create(&models.Wallet{UserID: admin.ID}).Error; err != nil {
		log.Fatal("Failed to create admin wallet:", err)
	}

	log.Println("Admin account created successfully")
}
