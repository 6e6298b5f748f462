package moderation

import (
	"net/url"
	"strings"
)

// DomainValidator decides whether a link points at an allow-listed domain.
type DomainValidator struct {
	domains []string
}

func NewDomainValidator(domains []string) *DomainValidator {
	v := &DomainValidator{}
	for _, d := range domains {
		d = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(d)), "www.")
		if d != "" {
			v.domains = append(v.domains, d)
		}
	}
	return v
}

// IsOfficial reports whether link's host equals, or is a subdomain of, an
// allow-listed domain. Unparseable links are never official.
func (v *DomainValidator) IsOfficial(link string) bool {
	link = strings.TrimSpace(link)
	lower := strings.ToLower(link)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		link = "https://" + link
	}

	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" {
		return false
	}

	for _, d := range v.domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// AllOfficial reports whether every link in the set is official. An empty set
// is trivially official.
func (v *DomainValidator) AllOfficial(links map[string]struct{}) bool {
	for l := range links {
		if !v.IsOfficial(l) {
			return false
		}
	}
	return true
}
