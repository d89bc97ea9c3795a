package app

import (
	"context"
	"fmt"

	"github.com/Roblokonha/StudyVault/internal/platform/logger"
	"github.com/Roblokonha/StudyVault/internal/platform/neo4jdb"
	"github.com/Roblokonha/StudyVault/internal/platform/rediscache"
)

// Clients are the optional external integrations. Each one degrades to a no-op when
// its environment is unset.
type Clients struct {
	Cache rediscache.Cache
	Neo4j *neo4jdb.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	cache, err := rediscache.NewFromEnv(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis cache: %w", err)
	}

	// Neo4j
	graphDB, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		_ = cache.Close()
		return Clients{}, fmt.Errorf("init neo4j client: %w", err)
	}

	return Clients{Cache: cache, Neo4j: graphDB}, nil
}

func (c *Clients) Close(ctx context.Context) {
	if c == nil {
		return
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.Neo4j != nil {
		_ = c.Neo4j.Close(ctx)
	}
}
