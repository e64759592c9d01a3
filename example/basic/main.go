package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/retriever"
	"github.com/siherrmann/retriever/helper"
	"github.com/siherrmann/retriever/model"
)

var sampleChunks = []string{
	`Hybrid retrieval combines vector similarity search with classical full text search.
Running both in parallel and merging the candidates gives better recall than either alone.`,
	`PostgreSQL with the pgvector extension supports approximate nearest neighbour search
over embeddings, while its built-in tsvector support covers keyword matching.`,
	`Cross-encoder reranking scores each query and passage pair jointly and is far more
accurate than embedding similarity, at the cost of a model forward pass per candidate.`,
}

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	r, err := retriever.NewRetriever(dbConfig, 384, nil)
	if err != nil {
		log.Fatalf("Failed to create retriever: %v", err)
	}
	defer r.Close()

	// Load the default embedding and cross encoder models
	if err := r.UseDefaultModels(); err != nil {
		log.Fatalf("Failed to load models: %v", err)
	}

	content := &model.Content{
		TenantID:    "example-tenant",
		Title:       "Hybrid Retrieval Primer",
		Domain:      "docs.example.com",
		ContentType: "article",
		SourceURL:   "https://docs.example.com/retrieval/primer",
		Metadata: model.Metadata{
			"author": "Example Author",
			"topic":  "hybrid retrieval",
		},
	}

	fmt.Println("Ingesting content...")
	numChunks, err := r.IngestContent(content, sampleChunks)
	if err != nil {
		log.Fatalf("Failed to ingest content: %v", err)
	}
	fmt.Printf("Content inserted with ID: %s\n", content.RID)
	fmt.Printf("Inserted %d chunks\n", numChunks)

	queryText := "How does hybrid search improve recall?"
	fmt.Printf("\nQuerying: %s\n", queryText)

	response, err := r.HybridSearch(context.Background(), "example-tenant", queryText, 5)
	if err != nil {
		log.Fatalf("Failed to search: %v", err)
	}

	fmt.Printf("\nFound %d results (candidates: %d, reranked: %v):\n",
		len(response.Results), response.Stats.TotalCandidates, response.Stats.Reranked)
	for i, result := range response.Results {
		fmt.Printf("\n%d. [%s] score=%.4f\n", i+1, result.SearchType, result.FinalScore())
		fmt.Printf("   %s\n", result.Text)
	}
}
