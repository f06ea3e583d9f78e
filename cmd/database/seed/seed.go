package seed

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/entities"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed inserts the bootstrap admin and a starter menu. Safe to run more
// than once, existing rows are left alone.
func Seed(db *gorm.DB) error {
	if err := seedPermanentAdmin(db); err != nil {
		return err
	}
	if err := seedMenu(db); err != nil {
		return err
	}
	fmt.Println("Database seeding complete")
	return nil
}

// seedPermanentAdmin creates the root admin account. Its role and
// previous_role are both "admin", which makes it undeletable.
func seedPermanentAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entities.User{}).
		Where("role = ? AND previous_role = ?", domain.RoleAdmin, domain.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("changeme-admin"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return err
	}

	admin := entities.User{
		Username:     "canteen_admin",
		RollNumber:   "ADMIN-0001",
		PhoneNumber:  "0000000000",
		Email:        "admin@canteenhub.local",
		Password:     string(hashed),
		Role:         domain.RoleAdmin,
		PreviousRole: domain.RoleAdmin,
		Verified:     true,
	}
	return db.Create(&admin).Error
}

func seedMenu(db *gorm.DB) error {
	items := []entities.FoodItem{
		{ItemName: "masala dosa", Price: 40, Category: domain.CategoryBreakfast, Stock: 30, InStock: true, Description: "Crispy dosa with potato filling"},
		{ItemName: "idli sambar", Price: 25, Category: domain.CategoryBreakfast, Stock: 40, InStock: true, Description: "Steamed idli with sambar and chutney"},
		{ItemName: "veg thali", Price: 80, Category: domain.CategoryLunch, Stock: 25, InStock: true, Description: "Rice, dal, two sabzi, roti and curd"},
		{ItemName: "paneer roll", Price: 60, Category: domain.CategoryLunch, Stock: 20, InStock: true, Description: "Grilled paneer wrap"},
		{ItemName: "tea", Price: 10, Category: domain.CategoryDinner, Stock: 100, InStock: true, Description: "Hot masala chai"},
		{ItemName: "fried rice", Price: 70, Category: domain.CategoryDinner, Stock: 15, InStock: true, Description: "Veg fried rice"},
	}

	for _, item := range items {
		var count int64
		if err := db.Model(&entities.FoodItem{}).
			Where("item_name = ?", item.ItemName).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}
