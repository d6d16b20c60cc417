package groups

import (
	"log"

	"github.com/RafiqApp/Rafiq-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "geo"); err != nil {
		log.Fatal("Failed to ensure schema geo: ", err)
	}

	if err := db.DB.AutoMigrate(&Group{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
