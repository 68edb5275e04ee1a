package main

import (
	"context"
	"elearn/config"
	"elearn/database"
	"flag"
	"log"
	"time"
)

func main() {
	// Load config and connect to the store
	config.LoadConfig()
	file := flag.String("file", config.AppConfig.SeedFile, "course catalog YAML file")
	flag.Parse()

	database.ConnectDb()
	defer database.Database.Store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := database.SeedCourses(ctx, database.Database.Store, *file)
	if err != nil {
		log.Fatalf("Failed to seed courses: %v", err)
	}
	log.Printf("Seeded %d courses from %s into the %s store", n, *file, config.AppConfig.StoreDriver)
}
