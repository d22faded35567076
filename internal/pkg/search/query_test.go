package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuery(t *testing.T) {
	boolClause := func(q map[string]interface{}) map[string]interface{} {
		return q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	}

	t.Run("empty query falls back to match_all", func(t *testing.T) {
		q := BuildQuery(Params{})
		must := boolClause(q)["must"].([]interface{})
		assert.Len(t, must, 1)
		assert.Contains(t, must[0].(map[string]interface{}), "match_all")
	})

	t.Run("full-text query uses weighted multi_match", func(t *testing.T) {
		q := BuildQuery(Params{Query: "golang"})
		must := boolClause(q)["must"].([]interface{})
		multiMatch := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
		assert.Equal(t, "golang", multiMatch["query"])
		assert.Equal(t, []string{"title^3", "description^2", "body"}, multiMatch["fields"])
		assert.Equal(t, "AUTO", multiMatch["fuzziness"])
	})

	t.Run("author and tag become term filters", func(t *testing.T) {
		q := BuildQuery(Params{Author: "jake", Tag: "dragons"})
		filter := boolClause(q)["filter"].([]interface{})
		assert.Len(t, filter, 2)

		authorTerm := filter[0].(map[string]interface{})["term"].(map[string]interface{})
		assert.Equal(t, "jake", authorTerm["author.username"])

		tagTerm := filter[1].(map[string]interface{})["term"].(map[string]interface{})
		assert.Equal(t, "dragons", tagTerm["tagList"])
	})

	t.Run("no filters when params are empty", func(t *testing.T) {
		q := BuildQuery(Params{Query: "anything"})
		assert.Empty(t, boolClause(q)["filter"])
	})

	t.Run("default sort is createdAt descending", func(t *testing.T) {
		q := BuildQuery(Params{Query: "golang"})
		sort := q["sort"].([]interface{})
		createdAt := sort[0].(map[string]interface{})["createdAt"].(map[string]interface{})
		assert.Equal(t, "desc", createdAt["order"])
	})

	t.Run("relevance sort requires a query", func(t *testing.T) {
		q := BuildQuery(Params{Query: "golang", SortBy: "relevance", SortOrder: "asc"})
		sort := q["sort"].([]interface{})
		assert.Contains(t, sort[0].(map[string]interface{}), "_score")

		// without a query there are no scores to sort on
		q = BuildQuery(Params{SortBy: "relevance"})
		sort = q["sort"].([]interface{})
		assert.Contains(t, sort[0].(map[string]interface{}), "createdAt")
	})

	t.Run("invalid sort order falls back to desc", func(t *testing.T) {
		q := BuildQuery(Params{SortBy: "updatedAt", SortOrder: "sideways"})
		sort := q["sort"].([]interface{})
		updatedAt := sort[0].(map[string]interface{})["updatedAt"].(map[string]interface{})
		assert.Equal(t, "desc", updatedAt["order"])
	})

	t.Run("facet aggregations are always present", func(t *testing.T) {
		q := BuildQuery(Params{})
		aggs := q["aggs"].(map[string]interface{})
		assert.Contains(t, aggs, "tags")
		assert.Contains(t, aggs, "authors")

		tags := aggs["tags"].(map[string]interface{})["terms"].(map[string]interface{})
		assert.Equal(t, "tagList", tags["field"])
		assert.Equal(t, 10, tags["size"])
	})
}
