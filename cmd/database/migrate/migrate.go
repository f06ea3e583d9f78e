package migration

import (
	"CanteenHub-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.FoodItem{}); err != nil {
		log.Fatalf("Error migrating food item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Order{}); err != nil {
		log.Fatalf("Error migrating order database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.OrderItem{}); err != nil {
		log.Fatalf("Error migrating order item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.CancelledOrder{}); err != nil {
		log.Fatalf("Error migrating cancelled order database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PaymentTransaction{}); err != nil {
		log.Fatalf("Error migrating payment transaction database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
