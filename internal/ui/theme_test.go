package ui

import "testing"

func TestThemeByName(t *testing.T) {
	if got := ThemeByName("Slate"); got.Name != "Slate" {
		t.Fatalf("ThemeByName(Slate) = %q", got.Name)
	}
	if got := ThemeByName("nope"); got.Name != themes[0].Name {
		t.Fatalf("unknown theme = %q, want fallback %q", got.Name, themes[0].Name)
	}
	if got := ThemeByName(""); got.Name != themes[0].Name {
		t.Fatalf("empty theme = %q, want fallback", got.Name)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	start := themes[0].Name
	seen := map[string]bool{start: true}
	name := start
	for range themes {
		name = NextTheme(name).Name
		seen[name] = true
	}
	if name != start {
		t.Fatalf("cycle did not return to %q, ended at %q", start, name)
	}
	if len(seen) != len(themes) {
		t.Fatalf("cycle visited %d themes, want %d", len(seen), len(themes))
	}
}
