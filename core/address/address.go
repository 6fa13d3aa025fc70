// Package address finds Japanese headquarters address fragments in raw page
// text. It is a fallback signal: the first plausible hit wins.
package address

import (
	"regexp"
	"strings"

	"github.com/leofalp/sitefinder/core/company"
)

// Prefectures lists the 47 first-level administrative regions of Japan in
// their conventional north-to-south order.
var Prefectures = []string{
	"北海道",
	"青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県",
	"岐阜県", "静岡県", "愛知県", "三重県",
	"滋賀県", "京都府", "大阪府", "兵庫県", "奈良県", "和歌山県",
	"鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県",
	"福岡県", "佐賀県", "長崎県", "熊本県", "大分県", "宮崎県", "鹿児島県",
	"沖縄県",
}

var (
	// postal code with optional 〒 marker; \s in RE2 is ASCII-only so the
	// ideographic space is listed explicitly.
	postalCodePattern = regexp.MustCompile(`〒?\d{3}-\d{4}[\s\x{3000}]*`)

	addressPattern = regexp.MustCompile(
		`(〒?\d{3}-\d{4}[\s\x{3000}]*)?(?:` + strings.Join(quoteAll(Prefectures), "|") + `)[^\n]{5,80}`,
	)
)

// Extract returns the first address fragment found across pages, scanning
// each page's content before its snippet and pages in order. Whitespace in
// the match is collapsed and any postal code is removed. An empty string
// means no page matched.
func Extract(pages []company.PageContent) string {
	for _, page := range pages {
		if candidate := scan(page.Content); candidate != "" {
			return candidate
		}
		if candidate := scan(page.Snippet); candidate != "" {
			return candidate
		}
	}
	return ""
}

// StripPostalCode removes every postal code token from text and trims the
// result.
func StripPostalCode(text string) string {
	return strings.TrimSpace(postalCodePattern.ReplaceAllString(text, ""))
}

// Normalize trims candidate and strips postal codes from it. Blank input
// yields "".
func Normalize(candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	return StripPostalCode(trimmed)
}

func scan(text string) string {
	if text == "" {
		return ""
	}
	match := addressPattern.FindString(text)
	if match == "" {
		return ""
	}
	return StripPostalCode(strings.Join(strings.Fields(match), " "))
}

func quoteAll(values []string) []string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = regexp.QuoteMeta(v)
	}
	return quoted
}
