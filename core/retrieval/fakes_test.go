package retrieval

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/siherrmann/retriever/model"
)

// indexCall records the predicates a strategy passed to the index
type indexCall struct {
	tenantID string
	domain   string
	hint     string
	limit    int
	terms    []string
}

// fakeVectorIndex is an in-memory VectorIndex. It applies the tenant and
// domain predicates the way the SQL functions do and records every call.
type fakeVectorIndex struct {
	mu     sync.Mutex
	chunks []*model.Chunk
	err    error

	similarityCalls []indexCall
	domainCalls     []indexCall
}

func (f *fakeVectorIndex) SelectChunksBySimilarity(ctx context.Context, embedding []float32, limit int, tenantID string, domain string, contentType string) ([]*model.Chunk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.similarityCalls = append(f.similarityCalls, indexCall{tenantID: tenantID, domain: domain, limit: limit})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}

	var out []*model.Chunk
	for _, chunk := range f.chunks {
		if chunk.TenantID != tenantID {
			continue
		}
		if domain != "" && chunk.Domain != domain {
			continue
		}
		if contentType != "" && chunk.ContentType != contentType {
			continue
		}
		out = append(out, chunk)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeVectorIndex) SelectChunksBySimilarityInDomain(ctx context.Context, embedding []float32, limit int, tenantID string, domainHint string) ([]*model.Chunk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.domainCalls = append(f.domainCalls, indexCall{tenantID: tenantID, hint: domainHint, limit: limit})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}

	var out []*model.Chunk
	for _, chunk := range f.chunks {
		if chunk.TenantID != tenantID || !strings.Contains(chunk.Domain, domainHint) {
			continue
		}
		out = append(out, chunk)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeFulltextIndex is an in-memory FulltextIndex with OR term semantics
type fakeFulltextIndex struct {
	mu     sync.Mutex
	chunks []*model.Chunk
	err    error

	calls []indexCall
}

func (f *fakeFulltextIndex) SearchChunksByTerms(ctx context.Context, terms []string, limit int, tenantID string, domain string, contentType string) ([]*model.Chunk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, indexCall{tenantID: tenantID, domain: domain, limit: limit, terms: terms})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}

	var out []*model.Chunk
	for _, chunk := range f.chunks {
		if chunk.TenantID != tenantID {
			continue
		}
		text := strings.ToLower(chunk.Text)
		for _, term := range terms {
			if strings.Contains(text, term) {
				out = append(out, chunk)
				break
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// testChunk builds a chunk fixture with a deterministic identity
func testChunk(tenantID, text, domain string, score float64) *model.Chunk {
	return &model.Chunk{
		RID:        uuid.New(),
		ContentRID: uuid.New(),
		TenantID:   tenantID,
		Text:       text,
		Domain:     domain,
		Similarity: score,
		Rank:       score,
	}
}

// okEmbed returns a fixed embedding for any text
func okEmbed(text string) ([]float32, error) {
	return make([]float32, 4), nil
}

// failEmbed simulates an unavailable embedding provider
func failEmbed(text string) ([]float32, error) {
	return nil, context.DeadlineExceeded
}

// testResult builds a merged-stage result fixture
func testResult(text string, searchType model.SearchType, score float64) *model.SearchResult {
	return &model.SearchResult{
		Text:          text,
		OriginalScore: score,
		SearchType:    searchType,
		ContentHash:   model.HashContent(text),
	}
}
