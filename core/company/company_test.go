package company

import "testing"

func TestScoreResultBest(t *testing.T) {
	tests := []struct {
		name    string
		result  ScoreResult
		wantURL string
		wantOK  bool
	}{
		{name: "empty", result: ScoreResult{}, wantOK: false},
		{
			name: "highest wins",
			result: ScoreResult{URLs: []ScoredURL{
				{URL: "https://a.example/", Score: 0.3},
				{URL: "https://b.example/", Score: 0.9},
				{URL: "https://c.example/", Score: 0.5},
			}},
			wantURL: "https://b.example/",
			wantOK:  true,
		},
		{
			name: "tie keeps earliest",
			result: ScoreResult{URLs: []ScoredURL{
				{URL: "https://a.example/", Score: 0.7},
				{URL: "https://b.example/", Score: 0.7},
			}},
			wantURL: "https://a.example/",
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, ok := tt.result.Best()
			if ok != tt.wantOK {
				t.Fatalf("Best() ok = %v, want %v", ok, tt.wantOK)
			}
			if best.URL != tt.wantURL {
				t.Errorf("Best() url = %q, want %q", best.URL, tt.wantURL)
			}
		})
	}
}
