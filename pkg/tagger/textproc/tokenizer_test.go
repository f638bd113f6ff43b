package textproc

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenizerBasic(t *testing.T) {
	tokenizer := NewTokenizer(DefaultStopwords)

	tokens := tokenizer.Tokenize("Brand new TI-84 graphing calculator")

	// Condition qualifiers should be filtered out
	for _, tok := range tokens {
		if tok == "brand" || tok == "new" {
			t.Errorf("Stopword %q should be filtered", tok)
		}
	}

	want := []string{"ti-84", "graphing", "calculator"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokenize = %v, want %v", tokens, want)
	}
}

func TestTokenizerCaseNormalization(t *testing.T) {
	tokenizer := NewTokenizer(nil)

	tokens := tokenizer.Tokenize("MacBook Pro CHARGER")

	for _, tok := range tokens {
		if tok != strings.ToLower(tok) {
			t.Errorf("Token %s should be lowercased", tok)
		}
	}
}

func TestTokenizerHyphens(t *testing.T) {
	tokenizer := NewTokenizer(nil)

	tests := []struct {
		text string
		want []string
	}{
		{"dry-erase markers", []string{"dry-erase", "markers"}},
		{"mini--fridge", []string{"mini-fridge"}},
		{"-leading and trailing- hyphens", []string{"leading", "and", "trailing", "hyphens"}},
	}

	for _, tt := range tests {
		if got := tokenizer.Tokenize(tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestTokenizerDropsNoise(t *testing.T) {
	tokenizer := NewTokenizer(nil)

	tests := []struct {
		text string
		want []string
	}{
		// single-character tokens dropped
		{"a b notebook", []string{"notebook"}},
		// pure-numeric tokens dropped, mixed kept
		{"2019 ps5 console", []string{"ps5", "console"}},
		{"size 10 cleats", []string{"size", "cleats"}},
		// punctuation is a separator
		{"desk, chair & lamp!", []string{"desk", "chair", "lamp"}},
	}

	for _, tt := range tests {
		if got := tokenizer.Tokenize(tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestAddStopword(t *testing.T) {
	tokenizer := NewTokenizer(nil)

	tokens := tokenizer.Tokenize("vintage lamp")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %v", tokens)
	}

	tokenizer.AddStopword("Vintage")
	tokens = tokenizer.Tokenize("vintage lamp")
	if len(tokens) != 1 || tokens[0] != "lamp" {
		t.Errorf("expected [lamp] after adding stopword, got %v", tokens)
	}
}
