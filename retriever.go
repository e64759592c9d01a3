package retriever

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/siherrmann/retriever/core/pipeline"
	"github.com/siherrmann/retriever/core/retrieval"
	"github.com/siherrmann/retriever/database"
	"github.com/siherrmann/retriever/helper"
	"github.com/siherrmann/retriever/model"
	loadSql "github.com/siherrmann/retriever/sql"
)

// Retriever provides a unified interface to the corpus handlers and the
// retrieval engine
type Retriever struct {
	DB       *helper.Database
	Contents *database.ContentsDBHandler
	Chunks   *database.ChunksDBHandler
	Engine   *retrieval.Engine
	// Model functions, optional until search is used
	Embedder     pipeline.EmbedFunc
	EmbedderMany pipeline.EmbedManyFunc
	CrossEncode  pipeline.CrossEncodeFunc
	// Retrieval behaviour
	config model.RetrievalConfig
	// Logging
	log *slog.Logger
}

// NewRetriever creates a new Retriever instance with all handlers initialized.
// Model functions are not loaded here; call UseDefaultModels or set custom
// functions with SetEmbedder/SetCrossEncoder before searching.
func NewRetriever(dbConfig *helper.DatabaseConfiguration, embeddingDim int, config *model.RetrievalConfig) (*Retriever, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Initialize database
	db := helper.NewDatabase("retriever", dbConfig, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// Create handlers in the correct order (contents first, then chunks)
	// force=false to not reload if functions already exist
	contents, err := database.NewContentsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create contents handler", err)
	}

	chunks, err := database.NewChunksDBHandler(db, embeddingDim, false)
	if err != nil {
		return nil, helper.NewError("create chunks handler", err)
	}

	retrievalConfig := model.DefaultRetrievalConfig()
	if config != nil {
		retrievalConfig = *config
	}

	r := &Retriever{
		DB:       db,
		Contents: contents,
		Chunks:   chunks,
		config:   retrievalConfig,
		log:      logger,
	}
	r.rebuildEngine()

	return r, nil
}

// Close closes the database connection
func (r *Retriever) Close() error {
	if r.DB != nil && r.DB.Instance != nil {
		return r.DB.Instance.Close()
	}
	return nil
}

// UseDefaultModels loads the default embedding and cross-encoder models.
// This uses DefaultEmbedder with the all-MiniLM-L6-v2 model (384 dimensions)
// and DefaultCrossEncoder with the ms-marco-MiniLM-L-6-v2 model.
func (r *Retriever) UseDefaultModels() error {
	embed, embedMany, err := pipeline.DefaultEmbedder()
	if err != nil {
		return helper.NewError("create default embedder", err)
	}

	crossEncode, err := pipeline.DefaultCrossEncoder()
	if err != nil {
		return helper.NewError("create default cross encoder", err)
	}

	r.Embedder = embed
	r.EmbedderMany = embedMany
	r.CrossEncode = crossEncode
	r.rebuildEngine()
	return nil
}

// SetEmbedder sets a custom embedding function. Any previously configured
// batch embedder is cleared to keep the two consistent.
func (r *Retriever) SetEmbedder(embed pipeline.EmbedFunc) {
	r.Embedder = embed
	r.EmbedderMany = nil
	r.rebuildEngine()
}

// SetCrossEncoder sets a custom cross encoder scoring function
func (r *Retriever) SetCrossEncoder(crossEncode pipeline.CrossEncodeFunc) {
	r.CrossEncode = crossEncode
	r.rebuildEngine()
}

// rebuildEngine recreates the retrieval engine with the current model
// functions. A nil cross encoder yields a pass-through reranker.
func (r *Retriever) rebuildEngine() {
	semantic := retrieval.NewSemanticStrategy(r.Chunks, r.Embedder)
	keyword := retrieval.NewKeywordStrategy(r.Chunks)
	domain := retrieval.NewDomainFilteredStrategy(r.Chunks, r.Embedder)
	reranker := retrieval.NewReranker(r.CrossEncode, r.config.RerankTokenBudget, r.config.RerankTimeout, r.log)

	r.Engine = retrieval.NewEngine(semantic, keyword, domain, reranker, r.config, r.log)
}

// IngestContent inserts the content metadata and all passed chunk texts.
// Embeddings are generated with the configured embedder. Returns the number
// of chunks inserted and any error encountered.
func (r *Retriever) IngestContent(content *model.Content, texts []string) (int, error) {
	if r.Embedder == nil {
		return 0, helper.NewError("ingest content", fmt.Errorf("embedder not set, use UseDefaultModels() first"))
	}
	if len(texts) == 0 {
		return 0, helper.NewError("ingest content", fmt.Errorf("no chunk texts given"))
	}

	if err := r.Contents.InsertContent(content); err != nil {
		return 0, helper.NewError("insert content", err)
	}

	r.log.Info("Inserted content", slog.String("content_id", content.RID.String()), slog.String("title", content.Title))

	embeddings, err := r.embedTexts(texts)
	if err != nil {
		return 0, helper.NewError("embed chunks", err)
	}

	for i, text := range texts {
		index := i
		chunk := &model.Chunk{
			ContentID:  content.ID,
			Text:       text,
			Embedding:  embeddings[i],
			ChunkIndex: &index,
		}
		if err := r.Chunks.InsertChunk(chunk); err != nil {
			return i, helper.NewError(fmt.Sprintf("insert chunk %d", i), err)
		}
	}

	return len(texts), nil
}

// embedTexts embeds all texts, batched when a batch embedder is available
func (r *Retriever) embedTexts(texts []string) ([][]float32, error) {
	if r.EmbedderMany != nil {
		return r.EmbedderMany(texts)
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embedding, err := r.Embedder(text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

// DeleteContent removes a content row and all its chunks
func (r *Retriever) DeleteContent(rid uuid.UUID) error {
	return r.Contents.DeleteContent(rid)
}

// Retrieve runs the full retrieval pipeline for a request
func (r *Retriever) Retrieve(ctx context.Context, req *model.RetrievalRequest) (*model.RetrievalResponse, error) {
	if req != nil && req.Mode != model.SearchModeKeyword && r.Embedder == nil {
		return nil, helper.NewError("retrieve", fmt.Errorf("embedder not set, use UseDefaultModels() first"))
	}
	return r.Engine.Retrieve(ctx, req)
}

// HybridSearch runs all retrieval strategies concurrently for a query
func (r *Retriever) HybridSearch(ctx context.Context, tenantID, query string, topK int) (*model.RetrievalResponse, error) {
	return r.Retrieve(ctx, &model.RetrievalRequest{
		Query:    query,
		TenantID: tenantID,
		Mode:     model.SearchModeHybrid,
		TopK:     topK,
	})
}

// SemanticSearch runs only the vector similarity strategy
func (r *Retriever) SemanticSearch(ctx context.Context, tenantID, query string, topK int) (*model.RetrievalResponse, error) {
	return r.Retrieve(ctx, &model.RetrievalRequest{
		Query:    query,
		TenantID: tenantID,
		Mode:     model.SearchModeSemantic,
		TopK:     topK,
	})
}

// KeywordSearch runs only the full text strategy
func (r *Retriever) KeywordSearch(ctx context.Context, tenantID, query string, topK int) (*model.RetrievalResponse, error) {
	return r.Retrieve(ctx, &model.RetrievalRequest{
		Query:    query,
		TenantID: tenantID,
		Mode:     model.SearchModeKeyword,
		TopK:     topK,
	})
}

// DomainSearch runs only the domain-filtered strategy. It returns results
// only when the query itself names a source.
func (r *Retriever) DomainSearch(ctx context.Context, tenantID, query string, topK int) (*model.RetrievalResponse, error) {
	return r.Retrieve(ctx, &model.RetrievalRequest{
		Query:    query,
		TenantID: tenantID,
		Mode:     model.SearchModeDomain,
		TopK:     topK,
	})
}

// ChangeIndexType rebuilds the vector index on the chunks table.
func (r *Retriever) ChangeIndexType(ctx context.Context, indexType database.VectorIndexType, options *database.VectorIndexOptions) error {
	return r.Chunks.ChangeIndexType(ctx, indexType, options)
}
