package normalize

import "testing"

func TestDate(t *testing.T) {
	if got := Date("11-15-2025"); got != "2025-11-15T00:00:00.000Z" {
		t.Fatalf("date: %s", got)
	}
	if got := Date("1/5/25"); got != "2025-01-05T00:00:00.000Z" {
		t.Fatalf("two digit year: %s", got)
	}
	if got := Date("not a date"); got != "not a date" {
		t.Fatalf("expected invalid input unchanged, got %s", got)
	}
	if got := Date("13-45-2025"); got != "13-45-2025" {
		t.Fatalf("expected out-of-range date unchanged, got %s", got)
	}
	if got := Date(""); got != "" {
		t.Fatalf("empty: %q", got)
	}
}

func TestMCN(t *testing.T) {
	if got := MCN("12-345 abc"); got != "12345ABC" {
		t.Fatalf("mcn: %s", got)
	}
	if got := MCN(""); got != "" {
		t.Fatalf("empty mcn: %q", got)
	}
	if got := MCN("  #A-1!  "); got != "A1" {
		t.Fatalf("punctuation: %s", got)
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"JOHN SMITH":  "John Smith",
		"mcdonald":    "McDonald",
		"MACDONALD":   "MacDonald",
		"MACY":        "Macy",
		"o'brien":     "O'Brien",
		"  jane  doe": "Jane Doe",
	}
	for in, want := range cases {
		if got := TitleCase(in); got != want {
			t.Fatalf("title case %q: got %q want %q", in, got, want)
		}
	}
}

func TestImportName(t *testing.T) {
	n := ImportName("SMITH, JOHN JR")
	if n.First != "John Jr" || n.Last != "Smith" {
		t.Fatalf("suffix in first segment: %+v", n)
	}
	n = ImportName("O'BRIEN, MARY")
	if n.First != "Mary" || n.Last != "O'Brien" {
		t.Fatalf("apostrophe surname: %+v", n)
	}
	n = ImportName("DOE, JANE, III")
	if n.First != "Jane Iii" || n.Last != "Doe" {
		t.Fatalf("trailing suffix segment: %+v", n)
	}
	n = ImportName("MADONNA")
	if n.First != "" || n.Last != "Madonna" {
		t.Fatalf("single segment: %+v", n)
	}
	n = ImportName("")
	if n.First != "" || n.Last != "" {
		t.Fatalf("empty: %+v", n)
	}
}
