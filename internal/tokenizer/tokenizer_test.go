package tokenizer

import (
	"reflect"
	"testing"
	"unicode"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{"empty string", "", []Token{}},
		{"simple words", "hello world", []Token{{"hello", 0, 5}, {"world", 6, 11}}},
		{"with punctuation", "hello, world!", []Token{{"hello", 0, 5}, {"world", 7, 12}}},
		{"with numbers", "item123 test", []Token{{"item123", 0, 7}, {"test", 8, 12}}},
		{"underscore joins", "my_variable", []Token{{"my_variable", 0, 11}}},
		{"hyphen splits", "state-of-art", []Token{{"state", 0, 5}, {"of", 6, 8}, {"art", 9, 12}}},
		{"only symbols", "!@#$%^", []Token{}},
		{"arabic words", "ذهب الولد", []Token{{"ذهب", 0, 3}, {"الولد", 4, 9}}},
		{"arabic with harakat", "كَتَبَ درسًا", []Token{{"كَتَبَ", 0, 6}, {"درسًا", 7, 12}}},
		{"arabic comma", "نعم، لا", []Token{{"نعم", 0, 3}, {"لا", 5, 7}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsWordRune(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true},
		{'Z', true},
		{'7', true},
		{'_', true},
		{'ب', true},
		{'َ', true}, // fatha
		{'٣', true}, // arabic-indic digit three
		{' ', false},
		{'-', false},
		{'.', false},
		{'،', false}, // arabic comma
		{'؟', false}, // arabic question mark
		{'\n', false},
	}

	for _, tt := range tests {
		if got := IsWordRune(tt.r); got != tt.want {
			t.Errorf("IsWordRune(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestIsBoundary(t *testing.T) {
	runes := []rune("the cat, concat")

	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"whole word at start", 0, 3, true},
		{"whole word followed by comma", 4, 7, true},
		{"suffix of a longer word", 12, 15, false},
		{"prefix of a longer word", 9, 12, false},
		{"whole text", 0, len(runes), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBoundary(runes, tt.start, tt.end); got != tt.want {
				t.Errorf("IsBoundary(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestFold(t *testing.T) {
	got := string(Fold([]rune("TeH ÉCOLE كتب")))
	want := "teh école كتب"
	if got != want {
		t.Errorf("Fold() = %q, want %q", got, want)
	}
	if len([]rune(got)) != len([]rune("TeH ÉCOLE كتب")) {
		t.Error("Fold must preserve rune count")
	}
}

func TestFoldRune_SimpleFoldOrbits(t *testing.T) {
	tests := []struct {
		name  string
		runes []rune
		want  rune
	}{
		{"ascii", []rune{'K', 'k'}, 'k'},
		{"kelvin sign", []rune{'\u212A', 'K', 'k'}, 'k'},
		{"long s", []rune{'ſ', 'S', 's'}, 's'},
		{"greek sigma", []rune{'Σ', 'σ', 'ς'}, 'σ'},
		{"greek theta", []rune{'Θ', 'θ', 'ϑ', 'ϴ'}, 'θ'},
		{"titlecase digraph", []rune{'Ǆ', 'ǅ', 'ǆ'}, 'ǆ'},
		{"arabic", []rune{'ب'}, 'ب'},
		{"dotted capital i has no simple folding", []rune{'İ'}, 'İ'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, r := range tt.runes {
				if got := FoldRune(r); got != tt.want {
					t.Errorf("FoldRune(%q) = %q, want %q", r, got, tt.want)
				}
			}
		})
	}
}

func TestFoldRune_ConsistentWithSimpleFold(t *testing.T) {
	for r := rune(0); r <= 0x1FFFF; r++ {
		folded := FoldRune(r)
		for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
			if FoldRune(f) != folded {
				t.Fatalf("FoldRune(%q) = %q but FoldRune(%q) = %q", r, folded, f, FoldRune(f))
			}
		}
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"   ", 0},
		{"I saw teh cat and teh dog.", 7},
		{"ذهب الولد إلى المدرسة", 4},
		{"one,two;three", 3},
	}

	for _, tt := range tests {
		if got := CountWords(tt.input); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
