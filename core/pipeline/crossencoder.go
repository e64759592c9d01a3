package pipeline

import (
	"fmt"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/siherrmann/retriever/helper"
)

// DefaultCrossEncoder creates a pairwise relevance scorer using a real
// cross-encoder model. Uses the ms-marco-MiniLM-L-6-v2 model, which scores
// a query and a passage jointly in a single forward pass.
func DefaultCrossEncoder() (CrossEncodeFunc, error) {
	// Prepare model (download if needed)
	modelName := "cross-encoder/ms-marco-MiniLM-L-6-v2"
	modelPath, err := helper.PrepareModel(modelName, "onnx/model.onnx")
	if err != nil {
		return nil, err
	}

	// Initialize hugot session with Go backend
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	// Create text classification pipeline configuration. Cross-encoder
	// relevance models are single-label classifiers over concatenated pairs.
	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "reranker-pipeline",
	}
	rerankPipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create reranker pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create reranker pipeline: %w", err)
	}

	return func(query string, passages []string) ([]float64, error) {
		if len(passages) == 0 {
			return nil, nil
		}

		inputs := make([]string, len(passages))
		for i, passage := range passages {
			inputs[i] = strings.Join([]string{query, passage}, " [SEP] ")
		}

		result, err := rerankPipeline.RunPipeline(inputs)
		if err != nil {
			return nil, fmt.Errorf("failed to score pairs: %w", err)
		}

		if len(result.ClassificationOutputs) != len(passages) {
			return nil, fmt.Errorf("expected %d scores, got %d", len(passages), len(result.ClassificationOutputs))
		}

		scores := make([]float64, len(passages))
		for i, outputs := range result.ClassificationOutputs {
			if len(outputs) == 0 {
				return nil, fmt.Errorf("no classification output for passage %d", i)
			}
			scores[i] = float64(outputs[0].Score)
		}

		return scores, nil
	}, nil
}
