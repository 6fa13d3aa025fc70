package normalize

import "testing"

func TestForQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full-width name with ideographic space", "ＡＣＭＥ　Ｉｎｃ", "ACME Inc"},
		{"digits", "株式会社１２３", "株式会社123"},
		{"ascii untouched", "Acme Corp", "Acme Corp"},
		{"katakana untouched", "アクメ・コーポレーション", "アクメ・コーポレーション"},
		{"dashes untouched in names", "Ａ－Ｂ", "A－B"},
		{"repeated spaces kept", "Ａ　　Ｂ", "A  B"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForQuery(tt.input); got != tt.want {
				t.Errorf("ForQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLicenseNumberForQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full-width digits and dash", "１３－ユ－１２３４５６", "13-ユ-123456"},
		{"prolonged sound mark", "13ーユー123456", "13-ユ-123456"},
		{"minus sign and en dash", "13−ユ–123456", "13-ユ-123456"},
		{"horizontal bar", "13―ユ―123456", "13-ユ-123456"},
		{"whitespace collapsed and trimmed", "　13-ユ-123456  \t ", "13-ユ-123456"},
		{"inner runs collapsed", "許可番号　　13-ユ-1", "許可番号 13-ユ-1"},
		{"already canonical", "13-ユ-123456", "13-ユ-123456"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LicenseNumberForQuery(tt.input); got != tt.want {
				t.Errorf("LicenseNumberForQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizationIsIdempotent(t *testing.T) {
	inputs := []string{
		"ＡＣＭＥ　Ｉｎｃ",
		"１３－ユ－１２３４５６",
		"  mixed ＭＩＸ　ed  ",
		"東京都千代田区１－１－１",
		"",
	}

	for _, input := range inputs {
		once := ForQuery(input)
		if twice := ForQuery(once); twice != once {
			t.Errorf("ForQuery not idempotent for %q: %q then %q", input, once, twice)
		}
		onceLicense := LicenseNumberForQuery(input)
		if twiceLicense := LicenseNumberForQuery(onceLicense); twiceLicense != onceLicense {
			t.Errorf("LicenseNumberForQuery not idempotent for %q: %q then %q", input, onceLicense, twiceLicense)
		}
	}
}
