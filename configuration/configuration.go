package configuration

import (
	"log"
	"os"

	"github.com/SOUNDAR42/medicare-backend/models"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// hold connection to db
var DB *gorm.DB

// initializing db connection
func ConfigDB() {
	if os.Getenv("APP_ENV") != "test" {
		if err := godotenv.Load(".env"); err != nil {
			log.Fatal("Error loading .env file")
		}
	}

	var err error
	if os.Getenv("APP_ENV") == "test" {
		// in-memory database so tests never need a running Postgres
		DB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	} else {
		DB, err = gorm.Open(postgres.Open(os.Getenv("DB")), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("Failed to connect to the database: ", err)
	}

	if err := DB.AutoMigrate(
		&models.Patient{},
		&models.Doctor{},
		&models.Hospital{},
		&models.Specialization{},
		&models.Affiliation{},
		&models.Appointment{},
		&models.TokenSequence{},
	); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
}
