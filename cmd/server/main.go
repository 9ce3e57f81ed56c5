package main

import (
	"context"
	"log"

	"capstone-collab-api/internal/config"
	"capstone-collab-api/internal/database"
	"capstone-collab-api/internal/objstore"
	"capstone-collab-api/internal/routes"
)

func main() {
	cfg := config.Load()

	// Init database
	database.InitDB(cfg.DatabaseDSN)

	// Init object storage for submission files
	if cfg.StorageBucket != "" {
		store, err := objstore.NewGCSStore(context.Background(), cfg.StorageBucket, cfg.CredentialsFile)
		if err != nil {
			log.Fatal("Failed to connect to object storage: ", err)
		}
		objstore.SetDefault(store)
	} else {
		log.Println("STORAGE_BUCKET not set, using in-memory object store (local development only)")
		objstore.SetDefault(objstore.NewMemoryStore())
	}

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes()

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server starting on port %s", port)
	log.Println("API endpoints:")
	log.Println("  GET    /api/tasks")
	log.Println("  POST   /api/tasks")
	log.Println("  GET    /api/tasks/:id")
	log.Println("  PATCH  /api/tasks/:id")
	log.Println("  PATCH  /api/tasks/:id/status")
	log.Println("  DELETE /api/tasks/:id")
	log.Println("  GET    /api/tasks/:id/submissions")
	log.Println("  POST   /api/tasks/:id/submissions")
	log.Println("  POST   /api/submissions/:id/grade")
	log.Println("  GET    /api/tasks/:id/notes")
	log.Println("  POST   /api/tasks/:id/notes")
	log.Println("  DELETE /api/notes/:id")
	log.Println("  GET    /api/users")
	log.Println("  GET    /api/ws")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
