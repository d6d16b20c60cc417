package geofence

import (
	"log"

	"github.com/RafiqApp/Rafiq-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "geo"); err != nil {
		log.Fatal("Failed to ensure schema geo: ", err)
	}

	if err := db.DB.AutoMigrate(&Geofence{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
