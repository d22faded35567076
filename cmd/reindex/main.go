package main

import (
	"log"

	"github.com/khanh-pt/realworld/app/repository"
	"github.com/khanh-pt/realworld/internal/pkg/database"
	"github.com/khanh-pt/realworld/internal/pkg/env"
	"github.com/khanh-pt/realworld/internal/pkg/search"
)

// Baut den Suchindex komplett neu aus der Datenbank auf
func main() {
	env.SetupEnvFile()
	database.SetupDatabase()
	search.SetupSearch()

	indexer := search.GetIndexer()
	if indexer == nil {
		log.Fatal("search is not configured, set ELASTICSEARCH_URL")
	}

	repository.InitializeFactory(database.GetDB())
	articles, err := repository.GetGlobalFactory().GetArticleRepository().GetAllForIndexing()
	if err != nil {
		log.Fatalf("failed to load articles: %v", err)
	}

	if err := indexer.Reindex(articles); err != nil {
		log.Fatalf("reindex failed: %v", err)
	}
	log.Printf("reindexed %d articles", len(articles))
}
