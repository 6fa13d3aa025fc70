package scoring

import (
	"testing"

	"github.com/leofalp/sitefinder/core/company"
)

func pageOf(url, snippet, content string) company.PageContent {
	return company.PageContent{
		SearchResultItem: company.SearchResultItem{URL: url, Title: url, Snippet: snippet},
		Content:          content,
	}
}

func TestHeuristicScore(t *testing.T) {
	tests := []struct {
		name string
		info company.Info
		page company.PageContent
		want float64
	}{
		{
			name: "all signals capped at one",
			info: company.Info{Name: "Acme", LicenseNumber: "13-ユ-123456", LicenseAddress: "Tokyo"},
			page: pageOf("https://www.acme.com/about", "Welcome to ACME", "Head office tokyo. License 13-ユ-123456"),
			want: 1,
		},
		{
			name: "base score only",
			info: company.Info{Name: "Acme", LicenseNumber: "13-ユ-123456"},
			page: pageOf("https://jobs.example.com", "", ""),
			want: 0.2,
		},
		{
			name: "domain and license number",
			info: company.Info{Name: "Acme", LicenseNumber: "13-ユ-123456"},
			page: pageOf("https://acme.example.org", "news", "license 13-ユ-123456"),
			want: 0.8,
		},
		{
			name: "name punctuation stripped for domain match",
			info: company.Info{Name: "Acme-Holdings, Inc.", LicenseNumber: "x"},
			page: pageOf("https://AcmeHoldingsInc.co.jp", "", ""),
			want: 0.7,
		},
		{
			name: "path does not count as domain",
			info: company.Info{Name: "Acme", LicenseNumber: "x"},
			page: pageOf("https://directory.example.com/acme", "", ""),
			want: 0.2,
		},
		{
			name: "license number is case sensitive",
			info: company.Info{Name: "Zeta", LicenseNumber: "ab-1"},
			page: pageOf("https://example.com", "", "AB-1"),
			want: 0.2,
		},
		{
			name: "license address is case insensitive",
			info: company.Info{Name: "Zeta", LicenseNumber: "x", LicenseAddress: "Chiyoda"},
			page: pageOf("https://example.com", "", "CHIYODA-KU"),
			want: 0.3,
		},
		{
			name: "non-latin name matches every domain and the snippet",
			info: company.Info{Name: "株式会社テスト", LicenseNumber: "x"},
			page: pageOf("https://test.jp", "株式会社テストの公式サイト", ""),
			want: 0.9,
		},
		{
			name: "non-latin name matches every domain",
			info: company.Info{Name: "株式会社テスト", LicenseNumber: "x"},
			page: pageOf("https://example.com", "unrelated", ""),
			want: 0.7,
		},
		{
			name: "empty name matches domain and any snippet",
			info: company.Info{LicenseNumber: "x"},
			page: pageOf("https://example.com", "anything", ""),
			want: 0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HeuristicScore(tt.info, []company.PageContent{tt.page})
			if len(result.URLs) != 1 {
				t.Fatalf("expected 1 url, got %d", len(result.URLs))
			}
			got := result.URLs[0]
			if got.Score != tt.want {
				t.Errorf("score = %v, want %v", got.Score, tt.want)
			}
			if got.Reason != HeuristicReason {
				t.Errorf("reason = %q", got.Reason)
			}
		})
	}
}

func TestHeuristicScore_OrderAndAddress(t *testing.T) {
	pages := []company.PageContent{
		pageOf("https://b.example.com/x", "", ""),
		pageOf("https://a.example.com", "", "所在地 〒150-0002 東京都渋谷区渋谷2-2-2"),
		pageOf("https://b.example.com/y", "", ""),
	}

	result := HeuristicScore(company.Info{Name: "Acme", LicenseNumber: "x"}, pages)

	wantURLs := []string{"https://b.example.com/", "https://a.example.com/", "https://b.example.com/"}
	if len(result.URLs) != len(wantURLs) {
		t.Fatalf("expected %d urls, got %d", len(wantURLs), len(result.URLs))
	}
	for i, want := range wantURLs {
		if result.URLs[i].URL != want {
			t.Errorf("URLs[%d] = %q, want %q", i, result.URLs[i].URL, want)
		}
		if s := result.URLs[i].Score; s < 0 || s > 1 {
			t.Errorf("URLs[%d] score %v out of range", i, s)
		}
	}
	if result.HeadquartersAddress != "東京都渋谷区渋谷2-2-2" {
		t.Errorf("address = %q", result.HeadquartersAddress)
	}
}

func TestHeuristicScore_Empty(t *testing.T) {
	result := HeuristicScore(company.Info{Name: "Acme"}, nil)
	if len(result.URLs) != 0 || result.HeadquartersAddress != "" {
		t.Errorf("expected empty result, got %+v", result)
	}
}
