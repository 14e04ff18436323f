package main

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"grievgo/backend/internal/models"
	"grievgo/backend/internal/storage"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "create-admin":
		if len(os.Args) != 6 {
			fmt.Println("Usage: admin create-admin <username> <password> <email> <full_name>")
			os.Exit(1)
		}
		if err := createAdmin(storageSvc, os.Args[2], os.Args[3], os.Args[4], os.Args[5]); err != nil {
			log.Fatalf("Error creating admin: %v", err)
		}
		fmt.Printf("Admin %s created.\n", os.Args[2])
	case "promote":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin promote <username> <role>")
			os.Exit(1)
		}
		if err := promote(storageSvc, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %s is now %s.\n", os.Args[2], os.Args[3])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func createAdmin(s *storage.Service, username, password, email, fullName string) error {
	existing, err := s.GetUserByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("username %q already exists", username)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleAdmin,
		FullName: fullName,
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	return s.CreateUser(user)
}

func promote(s *storage.Service, username, role string) error {
	switch role {
	case models.RoleStudent, models.RoleStaff, models.RoleAdmin:
	default:
		return fmt.Errorf("invalid role %q", role)
	}

	user, err := s.GetUserByUsername(username)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %q not found", username)
	}

	return s.DB.Model(user).Update("role", role).Error
}
