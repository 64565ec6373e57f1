package retrieve

import (
	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/domain/query"
)

// FusionWeights scale cross-domain similarities by how related a result's
// domain is to the query intent. The matching domain keeps its full score;
// the others are discounted, not suppressed.
type FusionWeights struct {
	Match   float64
	Related float64
	Distant float64
}

// DefaultFusionWeights returns the standard 1.0/0.65/0.5 discounts.
func DefaultFusionWeights() FusionWeights {
	return FusionWeights{Match: 1.0, Related: 0.65, Distant: 0.5}
}

// ForIntent maps each domain to its weight under the given intent.
// Resume-intent queries surface advice articles first (resume and interview
// guidance lives there) while keeping job postings visible.
func (w FusionWeights) ForIntent(intent query.Intent) map[domain.Domain]float64 {
	switch intent {
	case query.IntentResume:
		return map[domain.Domain]float64{
			domain.DomainAdvice:  w.Match,
			domain.DomainJob:     w.Related,
			domain.DomainProfile: w.Distant,
		}
	case query.IntentProfile:
		return map[domain.Domain]float64{
			domain.DomainProfile: w.Match,
			domain.DomainJob:     w.Related,
			domain.DomainAdvice:  w.Distant,
		}
	default:
		return map[domain.Domain]float64{
			domain.DomainJob:     w.Match,
			domain.DomainAdvice:  w.Related,
			domain.DomainProfile: w.Distant,
		}
	}
}

// bestDomain is the single domain searched when the combined index is
// unavailable.
func bestDomain(intent query.Intent) domain.Domain {
	switch intent {
	case query.IntentResume:
		return domain.DomainAdvice
	case query.IntentProfile:
		return domain.DomainProfile
	default:
		return domain.DomainJob
	}
}
