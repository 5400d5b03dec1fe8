package payload

import (
	"testing"

	"github.com/hexvoid/voidpanel/internal/voidshell"
)

func listing(names ...string) []voidshell.PayloadFile {
	out := make([]voidshell.PayloadFile, len(names))
	for i, n := range names {
		out[i] = voidshell.PayloadFile{Name: n}
	}
	return out
}

func names(files []voidshell.PayloadFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func TestResolve_RankedFirstThenListingOrder(t *testing.T) {
	got := names(Resolve(listing("c.elf", "a.elf", "b.elf"), []string{"a.elf", "b.elf"}))
	want := []string{"a.elf", "b.elf", "c.elf"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Resolve = %v, want %v", got, want)
		}
	}
}

func TestResolve_EmptyOrderKeepsListing(t *testing.T) {
	got := names(Resolve(listing("c.elf", "a.elf", "b.elf"), nil))
	want := []string{"c.elf", "a.elf", "b.elf"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Resolve = %v, want %v", got, want)
		}
	}
}

func TestResolve_UnrankedStayStable(t *testing.T) {
	got := names(Resolve(
		listing("z.elf", "m.elf", "a.elf", "k.elf"),
		[]string{"k.elf"},
	))
	want := []string{"k.elf", "z.elf", "m.elf", "a.elf"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Resolve = %v, want %v", got, want)
		}
	}
}

func TestResolve_OrderNamingAbsentEntries(t *testing.T) {
	got := names(Resolve(listing("b.elf"), []string{"a.elf", "b.elf"}))
	if len(got) != 1 || got[0] != "b.elf" {
		t.Fatalf("Resolve = %v, want [b.elf]", got)
	}
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	in := listing("c.elf", "a.elf")
	Resolve(in, []string{"a.elf"})
	if in[0].Name != "c.elf" || in[1].Name != "a.elf" {
		t.Fatalf("input mutated: %v", names(in))
	}
}
