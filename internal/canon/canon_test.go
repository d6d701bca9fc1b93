package canon

import "testing"

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases_ascii",
			input: "ROOT|KTB",
			want:  "root|ktb",
		},
		{
			name:  "collapses_whitespace",
			input: "  foo \t bar\n baz  ",
			want:  "foo bar baz",
		},
		{
			name:  "leaves_arabic_untouched",
			input: "كَتَبَ",
			want:  "كَتَبَ",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "idempotent",
			input: "already canonical",
			want:  "already canonical",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Canonicalize(tc.input)
			if got != tc.want {
				t.Fatalf("Canonicalize(%q)=%q, want %q", tc.input, got, tc.want)
			}
			if again := Canonicalize(got); again != got {
				t.Fatalf("Canonicalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeGrammarKey(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips_diacritics_and_marks",
			input: "Ism al-Fāʿil",
			want:  "ism_al_fail",
		},
		{
			name:  "idafa_variants_converge",
			input: "Iḍāfa",
			want:  "idafa",
		},
		{
			name:  "plain_variant_matches",
			input: "idafa",
			want:  "idafa",
		},
		{
			name:  "hyphens_become_underscores",
			input: "jumla-ismiyya",
			want:  "jumla_ismiyya",
		},
		{
			name:  "key_template_uses_last_segment",
			input: "GRAM|Iḍāfa",
			want:  "idafa",
		},
		{
			name:  "curly_quotes_dropped",
			input: "maf‘ūl bihi",
			want:  "maful_bihi",
		},
		{
			name:  "arabic_folds_to_empty",
			input: "إضافة",
			want:  "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeGrammarKey(tc.input)
			if got != tc.want {
				t.Fatalf("NormalizeGrammarKey(%q)=%q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeLookupKeyFallback(t *testing.T) {
	if got := NormalizeLookupKey("Iḍāfa"); got != "idafa" {
		t.Fatalf("expected ascii key, got %q", got)
	}
	got := NormalizeLookupKey(" إضافة ")
	if got != "إضافة" {
		t.Fatalf("expected NFKC-trimmed fallback, got %q", got)
	}
}

func TestContentIDDeterminism(t *testing.T) {
	a, inputA := ContentID(RootKey("ktb"))
	b, inputB := ContentID(RootKey("ktb"))
	if a != b || inputA != inputB {
		t.Fatalf("identical keys must produce identical ids: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("content id must be 64 hex chars, got %d", len(a))
	}

	c, _ := ContentID(RootKey("drs"))
	if c == a {
		t.Fatalf("distinct keys must produce distinct ids")
	}

	upper, _ := ContentID("ROOT|KTB")
	if upper != a {
		t.Fatalf("canonicalization must fold case before hashing")
	}
}

func TestKeyTemplates(t *testing.T) {
	if got := TokenKey("kataba", "verb", ""); got != "TOK|kataba|verb|" {
		t.Fatalf("TokenKey with empty root = %q", got)
	}
	if got := SentenceKey("default", []string{"a", "b"}); got != "SENT|default|a;b" {
		t.Fatalf("SentenceKey = %q", got)
	}
	if got := SpanKey("idafa", []string{"t1", "t2"}); got != "SPAN|idafa|t1,t2" {
		t.Fatalf("SpanKey = %q", got)
	}
	if got := LexiconKey("kataba", "verb", "ktb", "", ""); got != "LEX|kataba|verb|ktb||" {
		t.Fatalf("LexiconKey with empty optionals = %q", got)
	}
	if got := SentenceOccurrenceSeed("quran", "1", 3, "text"); got != "occ_sentence|quran|1|3|text" {
		t.Fatalf("SentenceOccurrenceSeed = %q", got)
	}
	if got := NoteSeed("lesson-1", "n1"); got != "note|lesson-1|n1" {
		t.Fatalf("NoteSeed = %q", got)
	}
}

func TestDigestSeedStability(t *testing.T) {
	a := DigestSeed("note|abc|1")
	b := DigestSeed("note|abc|1")
	if a != b {
		t.Fatalf("DigestSeed must be deterministic")
	}
	if DigestSeed("note|abc|2") == a {
		t.Fatalf("distinct seeds must hash differently")
	}
}
