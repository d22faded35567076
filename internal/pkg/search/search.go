package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Highlights carries the highlighted snippets for a search hit
type Highlights struct {
	Title       []string `json:"title,omitempty"`
	Description []string `json:"description,omitempty"`
	Body        []string `json:"body,omitempty"`
}

// HitAuthor is the author sub-object of a search hit. Following-state is not
// stored in the index and is always false here; the primary listing endpoint
// is authoritative for it.
type HitAuthor struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// Hit is a single search result
type Hit struct {
	ID             uint       `json:"id"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Body           string     `json:"body"`
	Highlights     Highlights `json:"highlights"`
	TagList        []string   `json:"tagList"`
	CreatedAt      string     `json:"createdAt"`
	UpdatedAt      string     `json:"updatedAt"`
	Favorited      bool       `json:"favorited"`
	FavoritesCount int        `json:"favoritesCount"`
	Author         HitAuthor  `json:"author"`
	Score          float64    `json:"score,omitempty"`
}

// Facet is one bucket of a terms aggregation
type Facet struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Meta describes the overall search execution
type Meta struct {
	Total    int64   `json:"total"`
	Took     int     `json:"took"`
	MaxScore float64 `json:"maxScore"`
}

// Result is the full search response for the articles-search endpoint
type Result struct {
	Articles      []Hit   `json:"articles"`
	ArticlesCount int     `json:"articlesCount"`
	Meta          Meta    `json:"searchMeta"`
	TagFacets     []Facet `json:"tagFacets"`
	AuthorFacets  []Facet `json:"authorFacets"`
}

// wire shape of the Elasticsearch search response
type searchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		MaxScore *float64 `json:"max_score"`
		Hits     []struct {
			Score     *float64            `json:"_score"`
			Source    ArticleDocument     `json:"_source"`
			Highlight map[string][]string `json:"highlight"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]struct {
		Buckets []struct {
			Key      string `json:"key"`
			DocCount int64  `json:"doc_count"`
		} `json:"buckets"`
	} `json:"aggregations"`
}

// SearchArticles runs the full-text query against the article index.
// currentUserID (0 for anonymous) is used to compute the favorited flag from
// the favoriter ids embedded in each document.
func (i *Indexer) SearchArticles(ctx context.Context, p Params, currentUserID uint) (*Result, error) {
	body, err := json.Marshal(BuildQuery(p))
	if err != nil {
		return nil, err
	}

	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(i.indexName),
		i.es.Search.WithFrom(p.Offset),
		i.es.Search.WithSize(limit),
		i.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search failed: %s", res.String())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("search response decode failed: %w", err)
	}

	result := &Result{
		Articles: make([]Hit, 0, len(parsed.Hits.Hits)),
		Meta:     Meta{Total: parsed.Hits.Total.Value, Took: parsed.Took},
	}
	if parsed.Hits.MaxScore != nil {
		result.Meta.MaxScore = *parsed.Hits.MaxScore
	}

	for _, hit := range parsed.Hits.Hits {
		result.Articles = append(result.Articles, mapHit(hit.Source, hit.Highlight, hit.Score, currentUserID))
	}
	result.ArticlesCount = len(result.Articles)
	result.TagFacets = mapFacets(parsed, "tags")
	result.AuthorFacets = mapFacets(parsed, "authors")

	return result, nil
}

func mapHit(doc ArticleDocument, highlight map[string][]string, score *float64, currentUserID uint) Hit {
	favorited := false
	if currentUserID != 0 {
		for _, id := range doc.FavoritedBy {
			if id == currentUserID {
				favorited = true
				break
			}
		}
	}

	hit := Hit{
		ID:          doc.ArticleID,
		Slug:        doc.Slug,
		Title:       doc.Title,
		Description: doc.Description,
		Body:        doc.Body,
		Highlights: Highlights{
			Title:       highlight["title"],
			Description: highlight["description"],
			Body:        highlight["body"],
		},
		TagList:        doc.TagList,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: doc.FavoritesCount,
		Author: HitAuthor{
			Username: doc.Author.Username,
			Bio:      doc.Author.Bio,
			Image:    doc.Author.Image,
		},
	}
	if score != nil {
		hit.Score = *score
	}
	return hit
}

func mapFacets(parsed searchResponse, name string) []Facet {
	agg, ok := parsed.Aggregations[name]
	if !ok {
		return nil
	}
	facets := make([]Facet, 0, len(agg.Buckets))
	for _, b := range agg.Buckets {
		facets = append(facets, Facet{Key: b.Key, Count: b.DocCount})
	}
	return facets
}
