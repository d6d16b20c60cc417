// Seeds a group's standard safety zones from a YAML file.
//
// Usage:
//
//	go run ./cmd/seed -file zones.yaml -group <group-id> -by <member-id>
package main

import (
	"flag"
	"log"
	"os"

	"github.com/RafiqApp/Rafiq-Backend/internal/db"
	"github.com/RafiqApp/Rafiq-Backend/internal/geofence"
	"github.com/joho/godotenv"
)

func main() {
	file := flag.String("file", "zones.yaml", "zone seed file")
	groupID := flag.String("group", "", "group id to attach the zones to")
	createdBy := flag.String("by", "seed", "member id recorded as creator")
	flag.Parse()

	if *groupID == "" {
		log.Fatal("-group is required")
	}

	_ = godotenv.Load(".env.local")
	if err := db.Connect(os.Getenv("DATABASE_URL")); err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	geofence.Init()

	created, err := geofence.SeedFromYAML(*file, *groupID, *createdBy)
	if err != nil {
		log.Fatalf("Seeded %d zones before failing: %v", created, err)
	}
	log.Printf("Seeded %d zones for group %s", created, *groupID)
}
