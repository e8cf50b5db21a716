package resolver

import (
	"regexp"
	"strings"
)

var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

// Resolver turns image references returned by the extraction service into
// fetchable locations.
type Resolver struct {
	base string
}

func New(base string) *Resolver {
	return &Resolver{
		base: strings.TrimRight(base, "/"),
	}
}

// Resolve returns ref unchanged when it is already root-relative or absolute,
// otherwise it is placed under {base}/images/. Resolving twice is a no-op.
func (r *Resolver) Resolve(ref string) string {
	if strings.HasPrefix(ref, "/") || schemePattern.MatchString(ref) {
		return ref
	}

	return r.base + "/images/" + ref
}

func (r *Resolver) ResolveAll(refs []string) []string {
	resolved := make([]string, 0, len(refs))
	for _, ref := range refs {
		resolved = append(resolved, r.Resolve(ref))
	}

	return resolved
}
