package domain

import "fmt"

// Domain is a category of knowledge source. Each domain owns its own index
// and metadata pair on disk.
type Domain string

const (
	// DomainJob holds job postings and role descriptions.
	DomainJob Domain = "job"
	// DomainAdvice holds career-advice articles.
	DomainAdvice Domain = "advice"
	// DomainProfile holds user profiles.
	DomainProfile Domain = "profile"
	// DomainCombined is the cross-domain index spanning all of the above.
	DomainCombined Domain = "combined"
)

// Domains lists the single-source domains, in build order.
// DomainCombined is derived from these and is not listed.
func Domains() []Domain {
	return []Domain{DomainJob, DomainAdvice, DomainProfile}
}

// ParseDomain validates a domain identifier.
func ParseDomain(s string) (Domain, error) {
	switch Domain(s) {
	case DomainJob, DomainAdvice, DomainProfile, DomainCombined:
		return Domain(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
}
