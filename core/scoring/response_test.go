package scoring

import (
	"errors"
	"reflect"
	"testing"

	"github.com/leofalp/sitefinder/core/company"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want company.ScoreResult
	}{
		{
			name: "plain JSON with snake case address",
			text: `{"urls":[{"url":"https://www.acme.com","score":0.9,"reason":"Official domain"}],"headquarters_address":"123 HQ Street"}`,
			want: company.ScoreResult{
				URLs:                []company.ScoredURL{{URL: "https://www.acme.com/", Score: 0.9, Reason: "Official domain"}},
				HeadquartersAddress: "123 HQ Street",
			},
		},
		{
			name: "code fence with json tag",
			text: "```json\n{\"urls\":[{\"url\":\"acme.com/about\",\"score\":0.5}]}\n```",
			want: company.ScoreResult{
				URLs: []company.ScoredURL{{URL: "https://acme.com/", Score: 0.5}},
			},
		},
		{
			name: "camel case preferred over snake case",
			text: `{"urls":[],"headquartersAddress":"〒100-0001 東京都千代田区1-1-1","headquarters_address":"ignored"}`,
			want: company.ScoreResult{
				URLs:                []company.ScoredURL{},
				HeadquartersAddress: "東京都千代田区1-1-1",
			},
		},
		{
			name: "blank camel case falls back to snake case",
			text: `{"urls":[],"headquartersAddress":"  ","headquarters_address":"大阪府大阪市"}`,
			want: company.ScoreResult{
				URLs:                []company.ScoredURL{},
				HeadquartersAddress: "大阪府大阪市",
			},
		},
		{
			name: "null address",
			text: `{"urls":[],"headquarters_address":null}`,
			want: company.ScoreResult{URLs: []company.ScoredURL{}},
		},
		{
			name: "scores clamped",
			text: `{"urls":[{"url":"https://a.com","score":-5},{"url":"https://b.com","score":12}]}`,
			want: company.ScoreResult{
				URLs: []company.ScoredURL{
					{URL: "https://a.com/", Score: 0},
					{URL: "https://b.com/", Score: 1},
				},
			},
		},
		{
			name: "malformed entries dropped",
			text: `{"urls":[{"url":"https://a.com"},{"score":0.3},{"url":7,"score":0.3},{"url":"https://b.com","score":"0.8"},"junk",{"url":"https://c.com","score":0.4,"reason":5}]}`,
			want: company.ScoreResult{
				URLs: []company.ScoredURL{{URL: "https://c.com/", Score: 0.4}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResponse(tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseResponse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseResponse_Failures(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		reason FailureReason
	}{
		{name: "empty", text: "", reason: FailureEmptyResponse},
		{name: "whitespace", text: "  \n ", reason: FailureEmptyResponse},
		{name: "empty fence", text: "```json\n```", reason: FailureEmptyResponse},
		{name: "urls not an array", text: `{"urls":{"url":"https://a.com"}}`, reason: FailureSchemaMismatch},
		{name: "urls missing", text: `{"results":[]}`, reason: FailureSchemaMismatch},
		{name: "top-level array", text: `[{"url":"https://a.com","score":1}]`, reason: FailureSchemaMismatch},
		{name: "truncated object", text: `{"urls":[{"url":"https://www.acme.com","score":0.9,"reason":"ok"}`, reason: FailureInvalidJSON},
		{name: "trailing comma", text: `{"urls":[{"url":"https://a.com","score":0.5},]}`, reason: FailureInvalidJSON},
		{name: "unquoted keys", text: `{urls:[{url:"https://a.com",score:0.5}]}`, reason: FailureInvalidJSON},
		{name: "prose around broken JSON", text: "Sure, here you go: {not valid json", reason: FailureInvalidJSON},
		{name: "truncated inside fence", text: "```json\n{\"urls\":[\n```", reason: FailureInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse(tt.text)
			if err == nil {
				t.Fatal("expected error")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if parseErr.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", parseErr.Reason, tt.reason)
			}
		})
	}
}

func TestFailureReasonOf(t *testing.T) {
	if got := FailureReasonOf(errors.New("dial tcp: timeout")); got != FailureTransport {
		t.Errorf("plain error reason = %q, want %q", got, FailureTransport)
	}
	wrapped := errors.Join(errors.New("outer"), &ParseError{Reason: FailureInvalidJSON})
	if got := FailureReasonOf(wrapped); got != FailureInvalidJSON {
		t.Errorf("wrapped reason = %q, want %q", got, FailureInvalidJSON)
	}
}

func TestClampScore(t *testing.T) {
	for input, want := range map[float64]float64{-5: 0, 0: 0, 0.42: 0.42, 1: 1, 12: 1} {
		if got := ClampScore(input); got != want {
			t.Errorf("ClampScore(%v) = %v, want %v", input, got, want)
		}
	}
}
