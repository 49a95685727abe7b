package vision

import (
	"strings"
	"testing"
)

func TestParseResult(t *testing.T) {
	got, err := ParseResult([]byte(`{"text":"Here is the text extracted from the image:\n  Hello world  ","model":"gpt-4o","confidence":0.9}`))
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "Hello world" {
		t.Fatalf("Text = %q, want preamble stripped and trimmed", got.Text)
	}
	if got.Model != "gpt-4o" || got.Confidence != 0.9 {
		t.Fatalf("unexpected envelope fields: %+v", got)
	}
}

func TestParseResult_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing text":     `{"model":"m"}`,
		"wrong type":       `{"text":42}`,
		"unknown key":      `{"text":"x","verdict":"ok"}`,
		"confidence range": `{"text":"x","confidence":1.5}`,
		"not json":         `here you go: {`,
	}
	for name, payload := range cases {
		if _, err := ParseResult([]byte(payload)); err == nil {
			t.Fatalf("%s: expected validation error for %s", name, payload)
		}
	}
}

func TestValidateResultJSON_OK(t *testing.T) {
	if err := ValidateResultJSON([]byte(`{"text":""}`)); err != nil {
		t.Fatalf("minimal envelope should validate: %v", err)
	}
}

func TestParseResult_LargeText(t *testing.T) {
	text := strings.Repeat("a", 10000)
	got, err := ParseResult([]byte(`{"text":"` + text + `"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != text {
		t.Fatal("large transcription must round-trip untouched")
	}
}
