// Package urlnorm canonicalizes candidate URLs to the "domain URL" form used
// as the join key between search results and model-reported scores. The
// same function must be applied on both sides of every comparison.
package urlnorm

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// DomainURL reduces rawURL to scheme://host/ with a lower-cased scheme, an
// ASCII (punycode) lower-cased host and default ports removed. Path, query
// and fragment are dropped. A missing scheme is treated as https.
//
// DomainURL is total: input that cannot be parsed as a URL with a host is
// returned trimmed and otherwise unchanged.
func DomainURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return ""
	}

	candidate := trimmed
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}

	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Host == "" {
		return trimmed
	}

	scheme := strings.ToLower(parsed.Scheme)
	host := canonicalHost(parsed.Hostname())
	if host == "" {
		return trimmed
	}

	if port := parsed.Port(); port != "" && !isDefaultPort(scheme, port) {
		host = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		// bare IPv6 literal
		host = "[" + host + "]"
	}

	return scheme + "://" + host + "/"
}

func canonicalHost(host string) string {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" {
		return ""
	}
	if ascii, err := idna.Lookup.ToASCII(host); err == nil && ascii != "" {
		return ascii
	}
	return host
}

func isDefaultPort(scheme, port string) bool {
	return (scheme == "http" && port == "80") || (scheme == "https" && port == "443")
}
