package search

import (
	"fmt"

	"pet-board/pkg/config"

	"github.com/elastic/go-elasticsearch/v8"
)

// NewElasticsearchClient connects to ES_ADDRESSES. It returns a nil client
// and no error when no address is configured, which leaves search on SQL.
func NewElasticsearchClient(cfg *config.Config) (*elasticsearch.Client, error) {
	if len(cfg.ESAddresses) == 0 {
		return nil, nil
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.ESAddresses,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client creation failed: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch connection failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	return es, nil
}
