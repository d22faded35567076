package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/khanh-pt/realworld/app/models"
	"github.com/khanh-pt/realworld/app/repository"
	"github.com/khanh-pt/realworld/internal/pkg/search"
	"github.com/khanh-pt/realworld/internal/pkg/storage"
	"github.com/khanh-pt/realworld/internal/pkg/usercontext"
)

const defaultPageSize = 20

// parsePagination reads limit/offset query params with sane defaults
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPageSize)
	if limit <= 0 {
		limit = defaultPageSize
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// followingSetFor loads the requester's following-set restricted to the given
// author ids in one query. Anonymous requesters get an empty set.
func followingSetFor(c *fiber.Ctx, authorIDs []uint) (map[uint]bool, error) {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return map[uint]bool{}, nil
	}
	return repository.GetGlobalFactory().GetFollowRepository().
		FollowingIDSet(userCtx.UserID, authorIDs)
}

// articleFileURLs resolves display URLs for every file attached to the given
// articles. URL resolution is best-effort: a storage or cache failure is
// logged and the file is served without a URL.
func articleFileURLs(articles ...*models.Article) map[uint]string {
	urls := make(map[uint]string)
	client := storage.GetClient()
	if client == nil {
		return urls
	}

	ctx := context.Background()
	for _, article := range articles {
		for _, af := range article.Files {
			if _, ok := urls[af.FileID]; ok {
				continue
			}
			url, err := client.DownloadURL(ctx, af.File.Key)
			if err != nil {
				log.Warnf("[Storage] could not resolve URL for file %d: %v", af.FileID, err)
				continue
			}
			urls[af.FileID] = url
		}
	}
	return urls
}

// getIndexer is swappable in tests
var getIndexer = search.GetIndexer

// syncSearchIndex runs a search-index mutation as a best-effort side effect.
// The index is a non-authoritative mirror: failures are logged and absorbed,
// never surfaced to the client.
func syncSearchIndex(action string, fn func(*search.Indexer) error) {
	indexer := getIndexer()
	if indexer == nil {
		return
	}
	if err := fn(indexer); err != nil {
		log.Warnf("[Search] %s failed: %v", action, err)
	}
}
