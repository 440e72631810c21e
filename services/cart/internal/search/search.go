// Package search serves catalog queries from an Elasticsearch index.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/trustbasket/services/cart/internal/domain"
)

const DefaultIndex = "catalog_items"

type Elastic struct {
	Client *elasticsearch.Client
	Index  string
}

// NewClient connects and checks the cluster answers Info.
func NewClient(addr, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{addr},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch info: %s: %s", res.Status(), body)
	}
	return client, nil
}

func NewElastic(client *elasticsearch.Client, index string) *Elastic {
	if index == "" {
		index = DefaultIndex
	}
	return &Elastic{Client: client, Index: index}
}

func (e *Elastic) Search(ctx context.Context, f domain.Filter, offset, limit int) (int64, []domain.CatalogItem, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(f, offset, limit)); err != nil {
		return 0, nil, fmt.Errorf("encode search body: %w", err)
	}

	res, err := e.Client.Search(
		e.Client.Search.WithContext(ctx),
		e.Client.Search.WithIndex(e.Index),
		e.Client.Search.WithBody(&buf),
		e.Client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return 0, nil, fmt.Errorf("search: %s: %s", res.Status(), body)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source domain.CatalogItem `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	items := make([]domain.CatalogItem, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		items[i] = hit.Source
	}
	return r.Hits.Total.Value, items, nil
}

// IndexItem upserts the item document under its catalog id.
func (e *Elastic) IndexItem(ctx context.Context, item domain.CatalogItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}

	res, err := e.Client.Index(
		e.Index,
		bytes.NewReader(data),
		e.Client.Index.WithContext(ctx),
		e.Client.Index.WithDocumentID(strconv.FormatUint(uint64(item.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index item %d: %w", item.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("index item %d: %s: %s", item.ID, res.Status(), body)
	}
	return nil
}

func buildQuery(f domain.Filter, offset, limit int) map[string]any {
	var must []map[string]any
	var filter []map[string]any

	if q := strings.TrimSpace(f.Query); q != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^2", "supplier.name"},
				"fuzziness": "AUTO",
			},
		})
	}
	if f.Category != "" && f.Category != domain.CategoryAll {
		filter = append(filter, map[string]any{
			"term": map[string]any{"category.keyword": strings.ToLower(f.Category)},
		})
	}
	if lo, hi := f.Price.Bounds(); lo > 0 || hi > 0 {
		rng := map[string]any{}
		if lo > 0 {
			rng["gt"] = lo
		}
		if hi > 0 {
			rng["lte"] = hi
		}
		filter = append(filter, map[string]any{"range": map[string]any{"price": rng}})
	}

	query := map[string]any{"match_all": map[string]any{}}
	if len(must) > 0 || len(filter) > 0 {
		b := map[string]any{}
		if len(must) > 0 {
			b["must"] = must
		}
		if len(filter) > 0 {
			b["filter"] = filter
		}
		query = map[string]any{"bool": b}
	}

	return map[string]any{
		"query": query,
		"from":  offset,
		"size":  limit,
		"sort":  []any{"_score", map[string]any{"id": "asc"}},
	}
}
