package locale

import "testing"

func TestParse(t *testing.T) {
	tests := map[string]Locale{
		"":               ES,
		"es":             ES,
		"EN":             EN,
		" en-US ":        EN,
		"en_GB":          EN,
		"en-US,en;q=0.9": EN,
		"es-AR,es;q=0.8": ES,
		"fr":             ES,
		"de-DE,en;q=0.5": ES,
	}
	for in, want := range tests {
		if got := Parse(in); got != want {
			t.Fatalf("Parse(%q)=%q want %q", in, got, want)
		}
	}
}

func TestPick(t *testing.T) {
	msgs := map[Locale]string{ES: "hola", EN: "hello"}
	if got := Pick(EN, msgs); got != "hello" {
		t.Fatalf("Pick(en)=%q", got)
	}
	if got := Pick("pt", msgs); got != "hola" {
		t.Fatalf("Pick(pt)=%q", got)
	}
}
