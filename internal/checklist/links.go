package checklist

import (
	"net/url"
	"strings"

	dErrors "grantflow/pkg/domain-errors"
)

// LinkPolicy validates evidence URLs against the allow-listed set of
// document-hosting domains.
type LinkPolicy struct {
	allowed map[string]bool
}

// NewLinkPolicy builds a policy from the configured host list. Hosts compare
// case-insensitively.
func NewLinkPolicy(hosts []string) *LinkPolicy {
	allowed := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		allowed[strings.ToLower(strings.TrimSpace(h))] = true
	}
	return &LinkPolicy{allowed: allowed}
}

// Validate rejects anything that is not an https link on an allow-listed
// host. The empty string is permitted; it clears a slot.
func (p *LinkPolicy) Validate(rawURL string) error {
	if rawURL == "" {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidLinkDomain, "evidence link is not a valid URL")
	}
	if parsed.Scheme != "https" {
		return dErrors.New(dErrors.CodeInvalidLinkDomain, "evidence link must use https")
	}
	host := strings.ToLower(parsed.Hostname())
	if !p.allowed[host] {
		return dErrors.New(dErrors.CodeInvalidLinkDomain, "evidence link host is not allow-listed: "+host)
	}
	return nil
}
