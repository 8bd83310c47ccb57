package detect

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/claimlens/internal/domain"
	"github.com/kailas-cloud/claimlens/internal/logger"
)

const defaultMaxSources = 5

// Service runs the claim verification pipeline: summarize the claim into a
// search query, retrieve evidence articles, ask the model for a verdict.
// The pipeline is strictly sequential with no retries and no shared state.
type Service struct {
	llm        LLM
	search     Searcher
	maxSources int
}

// New creates a detect service.
func New(llm LLM, search Searcher) *Service {
	return &Service{llm: llm, search: search, maxSources: defaultMaxSources}
}

// WithMaxSources overrides how many articles are kept as evidence.
func (s *Service) WithMaxSources(n int) *Service {
	if n > 0 {
		s.maxSources = n
	}
	return s
}

// Detect runs the full pipeline for one claim. Errors wrap the domain
// sentinel of the stage that failed; the first failure stops the pipeline.
// Zero retrieved sources is a terminal happy path, not an error.
func (s *Service) Detect(ctx context.Context, claim string) (domain.Verdict, error) {
	if strings.TrimSpace(claim) == "" {
		return nil, domain.ErrMissingClaim
	}

	query, err := s.Summarize(ctx, claim)
	if err != nil {
		return nil, err
	}

	sources, err := s.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(sources) == 0 {
		logger.FromContext(ctx).Info("no relevant sources",
			zap.String("search_query", query),
		)
		return domain.Verdict{
			"verdict":      domain.VerdictUnverifiable,
			"explanation":  "No relevant sources found",
			"sources":      []string{},
			"search_query": query,
		}, nil
	}

	reply, err := s.llm.Complete(ctx, BuildVerdictPrompt(claim, sources))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrVerdict, err)
	}

	verdict := domain.ParseVerdict(reply)
	verdict.SetDefault("sources", sources)
	verdict.SetDefault("search_query", query)

	return verdict, nil
}

// Summarize compresses a free-text claim into a short search query.
// The query is the first non-empty line of the model's reply, trimmed.
func (s *Service) Summarize(ctx context.Context, claim string) (string, error) {
	reply, err := s.llm.Complete(ctx, buildSummarizePrompt(claim))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSummarize, err)
	}
	return firstLine(reply), nil
}

// Retrieve fetches up to maxSources evidence strings for a query, in the
// search provider's ranking order.
func (s *Service) Retrieve(ctx context.Context, query string) ([]string, error) {
	articles, err := s.search.Search(ctx, query, s.maxSources)
	if err != nil {
		return nil, domain.NewSearchFailed(query, err)
	}

	if len(articles) > s.maxSources {
		articles = articles[:s.maxSources]
	}

	sources := make([]string, len(articles))
	for i, a := range articles {
		sources[i] = a.Source()
	}
	return sources, nil
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return strings.TrimSpace(text)
}
