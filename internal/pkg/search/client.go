package search

import (
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gofiber/fiber/v2/log"

	"github.com/khanh-pt/realworld/internal/pkg/env"
)

var (
	globalIndexer *Indexer
	setupOnce     sync.Once
)

// SetupSearch initializes the global Elasticsearch indexer from the
// environment. The search index is a best-effort mirror; a failed setup is
// logged and the application keeps running without search.
func SetupSearch() {
	setupOnce.Do(func() {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{env.GetEnv("ELASTICSEARCH_URL", "http://localhost:9200")},
			Username:  env.GetEnv("ELASTICSEARCH_USERNAME", ""),
			Password:  env.GetEnv("ELASTICSEARCH_PASSWORD", ""),
		})
		if err != nil {
			log.Warnf("[Search] Elasticsearch unavailable: %v", err)
			return
		}

		indexer := NewIndexer(client, env.GetEnv("ELASTICSEARCH_ARTICLE_INDEX", "articles"))
		if err := indexer.EnsureIndex(); err != nil {
			log.Warnf("[Search] could not ensure article index: %v", err)
		}
		globalIndexer = indexer
	})
}

// GetIndexer returns the global indexer, or nil when search is not configured
func GetIndexer() *Indexer {
	return globalIndexer
}
