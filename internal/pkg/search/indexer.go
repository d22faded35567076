package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/khanh-pt/realworld/app/models"
)

// indexMapping defines the article index: a custom analyzer for the text
// fields, keyword fields for exact filtering and aggregation.
const indexMapping = `{
  "settings": {
    "analysis": {
      "analyzer": {
        "article_analyzer": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase", "stop", "snowball"]
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "articleId": {"type": "integer"},
      "slug": {"type": "keyword"},
      "title": {
        "type": "text",
        "analyzer": "article_analyzer",
        "fields": {"keyword": {"type": "keyword"}}
      },
      "description": {"type": "text", "analyzer": "article_analyzer"},
      "body": {"type": "text", "analyzer": "article_analyzer"},
      "tagList": {"type": "keyword"},
      "createdAt": {"type": "date"},
      "updatedAt": {"type": "date"},
      "author": {
        "properties": {
          "id": {"type": "integer"},
          "username": {"type": "keyword"},
          "bio": {"type": "text"},
          "image": {"type": "keyword"}
        }
      },
      "favoritesCount": {"type": "integer"},
      "favoritedBy": {"type": "integer"}
    }
  }
}`

// Indexer mirrors article state into the Elasticsearch index. The primary
// database is the source of truth; every method here returns an error the
// caller logs but never surfaces to the client.
type Indexer struct {
	es        *elasticsearch.Client
	indexName string
}

// NewIndexer creates an indexer for the given article index
func NewIndexer(es *elasticsearch.Client, indexName string) *Indexer {
	return &Indexer{es: es, indexName: indexName}
}

// EnsureIndex creates the article index if it does not exist yet
func (i *Indexer) EnsureIndex() error {
	res, err := i.es.Indices.Exists([]string{i.indexName})
	if err != nil {
		return fmt.Errorf("index exists check failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}
	return i.createIndex()
}

func (i *Indexer) createIndex() error {
	res, err := i.es.Indices.Create(i.indexName,
		i.es.Indices.Create.WithBody(bytes.NewReader([]byte(indexMapping))))
	if err != nil {
		return fmt.Errorf("index create failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index create failed: %s", res.String())
	}
	return nil
}

// IndexArticle writes the article's document into the index. The document id
// is the article id, so re-indexing the same article is an upsert.
func (i *Indexer) IndexArticle(article *models.Article) error {
	doc := NewArticleDocument(article)
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	res, err := i.es.Index(i.indexName, bytes.NewReader(body),
		i.es.Index.WithDocumentID(strconv.FormatUint(uint64(article.ID), 10)),
		i.es.Index.WithContext(context.Background()))
	if err != nil {
		return fmt.Errorf("index article %d failed: %w", article.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index article %d failed: %s", article.ID, res.String())
	}
	return nil
}

// UpdateArticle re-indexes the article; index writes are upserts
func (i *Indexer) UpdateArticle(article *models.Article) error {
	return i.IndexArticle(article)
}

// DeleteArticle removes the article's document from the index
func (i *Indexer) DeleteArticle(articleID uint) error {
	res, err := i.es.Delete(i.indexName, strconv.FormatUint(uint64(articleID), 10))
	if err != nil {
		return fmt.Errorf("delete article %d from index failed: %w", articleID, err)
	}
	defer res.Body.Close()
	// 404 means the document never made it into the index; the mirror is
	// allowed to drift, nothing to do.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete article %d from index failed: %s", articleID, res.String())
	}
	return nil
}

// BulkIndexArticles indexes a batch of articles in one bulk request
func (i *Indexer) BulkIndexArticles(articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for idx := range articles {
		article := &articles[idx]
		action := fmt.Sprintf(`{"index":{"_index":%q,"_id":%q}}`,
			i.indexName, strconv.FormatUint(uint64(article.ID), 10))
		doc, err := json.Marshal(NewArticleDocument(article))
		if err != nil {
			return err
		}
		buf.WriteString(action)
		buf.WriteByte('\n')
		buf.Write(doc)
		buf.WriteByte('\n')
	}

	res, err := i.es.Bulk(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk index failed: %s", res.String())
	}
	return nil
}

// DeleteIndex drops the article index
func (i *Indexer) DeleteIndex() error {
	res, err := i.es.Indices.Delete([]string{i.indexName})
	if err != nil {
		return fmt.Errorf("index delete failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("index delete failed: %s", res.String())
	}
	return nil
}

// Reindex rebuilds the index from scratch: drop, recreate, bulk index
func (i *Indexer) Reindex(articles []models.Article) error {
	if err := i.DeleteIndex(); err != nil {
		return err
	}
	if err := i.createIndex(); err != nil {
		return err
	}
	return i.BulkIndexArticles(articles)
}
