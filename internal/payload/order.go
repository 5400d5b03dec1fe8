// Package payload arranges the daemon's ELF payload listing for
// display. The daemon exposes the directory listing and, separately, a
// preferred display order; the two are merged client-side.
package payload

import (
	"sort"

	"github.com/hexvoid/voidpanel/internal/voidshell"
)

// unrankedRank sorts entries missing from the preference list after
// every ranked entry while keeping their listing order intact.
const unrankedRank = 1 << 30

// Resolve orders the payload listing by the preference list. Entries
// named in order come first, in preference order; entries the list does
// not mention follow in their original listing order. The input slice
// is not modified.
func Resolve(listing []voidshell.PayloadFile, order []string) []voidshell.PayloadFile {
	rank := make(map[string]int, len(order))
	for i, name := range order {
		if _, seen := rank[name]; !seen {
			rank[name] = i
		}
	}

	out := append([]voidshell.PayloadFile(nil), listing...)
	sort.SliceStable(out, func(i, j int) bool {
		return rankOf(rank, out[i].Name) < rankOf(rank, out[j].Name)
	})
	return out
}

func rankOf(rank map[string]int, name string) int {
	if r, ok := rank[name]; ok {
		return r
	}
	return unrankedRank
}
