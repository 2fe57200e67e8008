package database

import (
	"log"
	"os"

	"github.com/Tomm10100/el-dorado-ecommerce/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=eldorado port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartRecord{},
		&models.ChatMessage{},
		&models.Subscriber{},
	)
}

func CreateDefaultAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" {
		adminEmail = "admin@eldorado.jewelry"
	}
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	var existingUser models.User
	result := db.Where("email = ?", adminEmail).First(&existingUser)
	if result.Error == nil {
		// Admin already exists
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
		Name:     "Admin User",
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Default admin created: %s", adminEmail)
	return nil
}

// SeedCatalog loads the launch collection into an empty products table.
// An already populated catalog is left alone.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{
			Name:        "Cruz-Ki",
			Price:       200,
			Image:       "/images/cruz-ki.jpg",
			Description: "A sterling silver pendant carrying the Cruz-Ki sigil, tuned to the 963Hz frequency of awakening.",
			Category:    "pendant",
			Resonance:   "963Hz",
		},
		{
			Name:        "Fuego Cadena",
			Price:       1200,
			Image:       "/images/fuego-cadena.jpg",
			Description: "The flagship chain. Heavy sterling silver links forged for presence, resonating at 963Hz.",
			Category:    "chain",
			Resonance:   "963Hz",
		},
		{
			Name:        "Dumfe",
			Price:       400,
			Image:       "/images/dumfe.jpg",
			Description: "A sculpted silver bracelet with a weight you can feel, carrying the 963Hz resonance.",
			Category:    "bracelet",
			Resonance:   "963Hz",
		},
		{
			Name:        "Chan",
			Price:       300,
			Image:       "/images/chan.jpg",
			Description: "A clean-lined silver bracelet for everyday wear, tuned to 963Hz.",
			Category:    "bracelet",
			Resonance:   "963Hz",
		},
		{
			Name:        "Oni",
			Price:       200,
			Image:       "/images/oni.jpg",
			Description: "A bold silver bracelet drawing on protective imagery, resonating at 963Hz.",
			Category:    "bracelet",
			Resonance:   "963Hz",
		},
		{
			Name:        "Fan",
			Price:       200,
			Image:       "/images/fan.jpg",
			Description: "A light, open silver bracelet with a fan motif, tuned to 963Hz.",
			Category:    "bracelet",
			Resonance:   "963Hz",
		},
	}

	if err := db.Create(&products).Error; err != nil {
		return err
	}

	log.Printf("Seeded catalog with %d products", len(products))
	return nil
}
