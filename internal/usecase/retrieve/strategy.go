package retrieve

import (
	"context"

	"go.uber.org/zap"

	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/domain/query"
	"github.com/careerdex/careerdex/internal/domain/search/result"
	"github.com/careerdex/careerdex/internal/metrics"
)

// strategy is one way of answering a search. Strategies are tried in
// priority order; the first one to succeed answers the request.
type strategy struct {
	name string
	run  func(ctx context.Context, q query.Query, d domain.Domain, k int) ([]result.Result, error)
}

// runChain tries each strategy in order. A failed strategy other than the
// last logs a degraded-mode warning and passes the request on; the final
// strategy's error, if any, is the caller's error.
func (s *Service) runChain(
	ctx context.Context, chain []strategy, q query.Query, d domain.Domain, k int,
) ([]result.Result, string, error) {
	var lastErr error
	for i, st := range chain {
		results, err := st.run(ctx, q, d, k)
		if err == nil {
			return results, st.name, nil
		}
		lastErr = err
		if i < len(chain)-1 {
			s.logger.Warn("Retrieval strategy failed, degrading to next",
				zap.String("strategy", st.name),
				zap.String("domain", string(d)),
				zap.Error(err),
			)
			metrics.SearchDegradedTotal.WithLabelValues(string(d), st.name).Inc()
		}
	}
	return nil, "", lastErr
}
