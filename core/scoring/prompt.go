package scoring

import (
	"fmt"
	"strings"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/internal/utils"
)

// DefaultPreviewRunes is how much page content each candidate block carries.
const DefaultPreviewRunes = 1000

const pageSeparator = "\n---\n"

const scoringInstructions = `SCORING CRITERIA (be strict):
• 0.0-0.2: Clearly NOT the official website (social media, job boards, news articles, Wikipedia, review sites, etc.)
• 0.3-0.5: Related to the company but likely not the official corporate site (press releases, third-party listings)
• 0.6-0.8: Possibly the official website but with some uncertainty
• 0.9-1.0: Almost certainly the official corporate website

SITES TO SCORE LOW (0.0-0.3):
- Social media: Twitter/X, Facebook, LinkedIn, Instagram, YouTube channels
- Job boards: Indeed, Rikunabi, Wantedly, Green, recruitment portals
- News/Media: News articles, press releases on news sites, blog posts about the company
- Information aggregators: Wikipedia, company databases, review sites, rating sites
- E-commerce platforms: Amazon, Rakuten, Yahoo Shopping stores

OFFICIAL WEBSITE INDICATORS (score high):
- Domain name closely matches company name
- Contains company information matching the provided license number/address/description
- Corporate structure (About Us, Services, Contact pages)
- Self-hosted content, not on third-party platforms

HEADQUARTERS ADDRESS: Prefer the official headquarters/main office address from the company's own site. If multiple addresses exist, choose the headquarters/head office. If none are found, return null.

EVALUATE: Domain relevance, content ownership, site type, company info accuracy, and alignment with the provided license info. Always return scores for every provided URL. Return ONLY the JSON object, nothing else.`

// BuildPrompt renders the single user message sent to the model. Each page
// contributes its URL, title, snippet and the first previewRunes runes of its
// content; previewRunes <= 0 means DefaultPreviewRunes.
func BuildPrompt(info company.Info, pages []company.PageContent, previewRunes int) string {
	if previewRunes <= 0 {
		previewRunes = DefaultPreviewRunes
	}

	summaries := make([]string, len(pages))
	for i, page := range pages {
		snippet := page.Snippet
		if snippet == "" {
			snippet = "N/A"
		}
		summaries[i] = fmt.Sprintf("URL: %s\nTitle: %s\nSnippet: %s\nContent Preview: %s",
			page.URL, page.Title, snippet, utils.FirstRunes(page.Content, previewRunes))
	}

	licenseAddress := "License address: Not provided"
	if info.LicenseAddress != "" {
		licenseAddress = "License address: " + info.LicenseAddress
	}
	description := "Description: Not provided"
	if info.Description != "" {
		description = "Description: " + info.Description
	}

	var b strings.Builder
	b.WriteString("You are evaluating candidate company websites to identify the OFFICIAL CORPORATE WEBSITE and confirm the headquarters address. Return ONLY a raw JSON object (no markdown, no code blocks, no backticks).\n\n")
	b.WriteString("The JSON must have the following properties:\n")
	b.WriteString(`"urls": an array of objects shaped like {"url": string, "score": number between 0 and 1, "reason": string}` + "\n")
	b.WriteString(`"headquarters_address": string | null (the best headquarters/main office address you can find from the candidate pages)` + "\n\n")
	fmt.Fprintf(&b, "Company name: %s\n", info.Name)
	fmt.Fprintf(&b, "Paid Employment Placement license number: %s\n", info.LicenseNumber)
	fmt.Fprintf(&b, "%s\n%s\n\nCandidate pages:\n%s\n\n", licenseAddress, description, strings.Join(summaries, pageSeparator))
	b.WriteString(scoringInstructions)

	return b.String()
}
