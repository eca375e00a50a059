package sink

import (
	"context"
	"fmt"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

const upsertPairQuery = `
MATCH (p:Project {datasetName: $datasetName})
MERGE (p)-[:OWNS]->(sender:User {email: $senderEmail})
MERGE (p)-[:OWNS]->(receiver:User {email: $receiverEmail})
MERGE (sender)-[r:SENTIMENT]-(receiver)
ON CREATE SET r.sentiment = $sentiment, r.emailsSent = $emailsSent
ON MATCH SET r.sentiment = $sentiment, r.emailsSent = $emailsSent
RETURN sender, receiver, r
`

const ensureProjectQuery = `
MERGE (p:Project {datasetName: $datasetName})
RETURN p
`

// Neo4jSink writes pair aggregates as an undirected SENTIMENT relationship
// between User nodes owned by a Project node.
type Neo4jSink struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewNeo4jSink connects to Neo4j and verifies connectivity up front, so a
// misconfigured sink fails before any scoring work starts.
func NewNeo4jSink(ctx context.Context, uri, username, password string, logger *zap.Logger) (*Neo4jSink, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to Neo4j: %w", err)
	}

	logger.Info("Connected to Neo4j", zap.String("uri", uri))

	return &Neo4jSink{driver: driver, logger: logger}, nil
}

// EnsureDataset creates the Project node for a dataset if it does not
// already exist.
func (s *Neo4jSink) EnsureDataset(ctx context.Context, dataset string) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, ensureProjectQuery, map[string]any{
			"datasetName": dataset,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to ensure dataset %q: %w", dataset, err)
	}
	return nil
}

// UpsertPair merges the SENTIMENT edge for an address pair. The MERGE on an
// undirected relationship makes repeated upserts update the same edge
// regardless of which address comes first.
func (s *Neo4jSink) UpsertPair(ctx context.Context, dataset string, agg core.PairAggregate) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, upsertPairQuery, map[string]any{
			"datasetName":   dataset,
			"senderEmail":   agg.AddrA,
			"receiverEmail": agg.AddrB,
			"sentiment":     agg.MeanSentiment,
			"emailsSent":    agg.Count,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to upsert pair %s/%s: %w", agg.AddrA, agg.AddrB, err)
	}
	return nil
}

// Close closes the underlying driver.
func (s *Neo4jSink) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}
