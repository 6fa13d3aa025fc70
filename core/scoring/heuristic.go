package scoring

import (
	"regexp"
	"strings"

	"github.com/leofalp/sitefinder/core/address"
	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/urlnorm"
)

// HeuristicReason is attached to every score produced by HeuristicScore.
const HeuristicReason = "Heuristic fallback score due to parsing error."

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

// Signal weights in tenths, so sums stay exact.
const (
	baseTenths           = 2
	domainNameTenths     = 5
	snippetNameTenths    = 2
	licenseAddressTenths = 1
	licenseNumberTenths  = 1
	maxTenths            = 10
)

// HeuristicScore scores pages without an LLM. Each page starts at 0.2 and
// gains 0.5 when its domain contains the alphanumeric part of the company
// name, 0.2 when its snippet mentions the name, 0.1 when its content
// mentions the license address and 0.1 when its content contains the license
// number verbatim. Scores are capped at 1. A name with no ASCII letters or
// digits strips to "" and so matches every domain.
//
// The result has exactly one entry per page, in page order, and the
// headquarters address found by address.Extract.
func HeuristicScore(info company.Info, pages []company.PageContent) company.ScoreResult {
	compactName := nonAlphanumeric.ReplaceAllString(strings.ToLower(info.Name), "")
	lowerName := strings.ToLower(info.Name)
	lowerAddress := strings.ToLower(info.LicenseAddress)

	urls := make([]company.ScoredURL, 0, len(pages))
	for _, page := range pages {
		domainURL := urlnorm.DomainURL(page.URL)

		tenths := baseTenths
		if strings.Contains(strings.ToLower(domainURL), compactName) {
			tenths += domainNameTenths
		}
		if page.Snippet != "" && strings.Contains(strings.ToLower(page.Snippet), lowerName) {
			tenths += snippetNameTenths
		}
		if lowerAddress != "" && strings.Contains(strings.ToLower(page.Content), lowerAddress) {
			tenths += licenseAddressTenths
		}
		if info.LicenseNumber != "" && strings.Contains(page.Content, info.LicenseNumber) {
			tenths += licenseNumberTenths
		}

		urls = append(urls, company.ScoredURL{
			URL:    domainURL,
			Score:  float64(min(tenths, maxTenths)) / 10,
			Reason: HeuristicReason,
		})
	}

	return company.ScoreResult{
		URLs:                urls,
		HeadquartersAddress: address.Extract(pages),
	}
}
