package main

import (
	"log"
	"os"

	"documind-be/internal/entity"
	"documind-be/internal/mapper"
	"documind-be/internal/model"
	"documind-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding starter notes...")

	noteMapper := mapper.NewNoteMapper()
	notes := []entity.Note{
		{
			Id:      uuid.New(),
			Title:   "Welcome to DocuMind",
			Content: "Upload a PDF on the documents page and start asking questions about it. Each upload opens a chat session scoped to those files.",
			Tags:    []string{"getting-started"},
			Folder:  "General",
		},
		{
			Id:      uuid.New(),
			Title:   "Prompt variants",
			Content: "The default variant lets the model phrase refusals freely. The strict variant pins answers to the retrieved context and refuses with a fixed sentence when the context has no answer.",
			Tags:    []string{"getting-started", "chat"},
			Folder:  "General",
		},
		{
			Id:      uuid.New(),
			Title:   "Where sessions live",
			Content: "Transcripts are stored in Postgres; the vector index for each session is a file on disk named after the session id. Deleting a session removes both.",
			Tags:    []string{"internals"},
			Folder:  "Reference",
		},
	}

	for _, n := range notes {
		// Skip titles that are already present so the seeder stays idempotent
		var existing model.Note
		if err := db.Where("title = ?", n.Title).First(&existing).Error; err == nil {
			log.Printf("Note '%s' already exists, skipping...", n.Title)
			continue
		}

		row, err := noteMapper.ToModel(&n)
		if err != nil {
			log.Printf("Error encoding note '%s': %v", n.Title, err)
			continue
		}
		if err := db.Create(row).Error; err != nil {
			log.Printf("Error creating note '%s': %v", n.Title, err)
		} else {
			log.Printf("Created note: %s", n.Title)
		}
	}

	log.Println("Note seeding completed!")
}
