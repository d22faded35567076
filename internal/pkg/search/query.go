package search

// Params narrows and orders the full-text article search
type Params struct {
	Query     string
	Author    string
	Tag       string
	Favorited string
	Limit     int
	Offset    int
	SortBy    string // relevance | createdAt | updatedAt
	SortOrder string // asc | desc
}

// BuildQuery assembles the Elasticsearch request body for the given params:
// a bool query of a multi_match (or match_all) plus term filters, sorting,
// highlighting and tags/authors facet aggregations.
func BuildQuery(p Params) map[string]interface{} {
	must := make([]interface{}, 0, 1)
	filter := make([]interface{}, 0, 3)

	if p.Query != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     p.Query,
				"fields":    []string{"title^3", "description^2", "body"},
				"type":      "best_fields",
				"fuzziness": "AUTO",
			},
		})
	} else {
		must = append(must, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	if p.Author != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"author.username": p.Author},
		})
	}
	if p.Tag != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"tagList": p.Tag},
		})
	}
	if p.Favorited != "" {
		// favoriter usernames are not stored in the document, only ids;
		// restrict to articles anyone favorited
		filter = append(filter, map[string]interface{}{
			"exists": map[string]interface{}{"field": "favoritedBy"},
		})
	}

	order := p.SortOrder
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	var sort []interface{}
	switch {
	case p.SortBy == "relevance" && p.Query != "":
		sort = []interface{}{map[string]interface{}{"_score": map[string]interface{}{"order": order}}}
	case p.SortBy == "createdAt":
		sort = []interface{}{map[string]interface{}{"createdAt": map[string]interface{}{"order": order}}}
	case p.SortBy == "updatedAt":
		sort = []interface{}{map[string]interface{}{"updatedAt": map[string]interface{}{"order": order}}}
	default:
		sort = []interface{}{map[string]interface{}{"createdAt": map[string]interface{}{"order": "desc"}}}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
		"sort": sort,
		"highlight": map[string]interface{}{
			"fields": map[string]interface{}{
				"title":       map[string]interface{}{},
				"description": map[string]interface{}{},
				"body": map[string]interface{}{
					"fragment_size":       150,
					"number_of_fragments": 3,
				},
			},
			"pre_tags":  []string{"<em>"},
			"post_tags": []string{"</em>"},
		},
		"aggs": map[string]interface{}{
			"tags": map[string]interface{}{
				"terms": map[string]interface{}{"field": "tagList", "size": 10},
			},
			"authors": map[string]interface{}{
				"terms": map[string]interface{}{"field": "author.username", "size": 10},
			},
		},
	}
}
