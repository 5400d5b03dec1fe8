package confstore

import (
	"strings"

	"github.com/hexvoid/voidpanel/internal/iniconf"
)

// SetList edits a presence-only section (whitelist, blacklist): the key
// is the signal, the value is always empty. Every mutation funnels
// through ReplaceSection so a later Save sees it.
type SetList struct {
	store   *Store
	section string
}

// SetList returns an editor over the named presence-only section.
func (s *Store) SetList(section string) SetList {
	return SetList{store: s, section: section}
}

// Add inserts the key if absent. No-op when already present.
func (l SetList) Add(key string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	sec := l.store.SectionSnapshot(l.section)
	if sec.Has(key) {
		return
	}
	sec.Set(key, "")
	l.store.ReplaceSection(l.section, sec)
}

// Remove deletes the key if present. No-op otherwise.
func (l SetList) Remove(key string) {
	sec := l.store.SectionSnapshot(l.section)
	if !sec.Has(key) {
		return
	}
	sec.Delete(key)
	l.store.ReplaceSection(l.section, sec)
}

// Keys returns the section's entries in order.
func (l SetList) Keys() []string {
	return l.store.SectionSnapshot(l.section).Keys()
}

// Has reports membership.
func (l SetList) Has(key string) bool {
	return l.store.SectionSnapshot(l.section).Has(key)
}

// DelayMap edits a section whose values carry meaning, such as the
// per-game sentinel delay in milliseconds.
type DelayMap struct {
	store   *Store
	section string
}

// DelayMap returns an editor over the named key/value section.
func (s *Store) DelayMap(section string) DelayMap {
	return DelayMap{store: s, section: section}
}

// Add inserts or overwrites an entry.
func (m DelayMap) Add(key, value string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	sec := m.store.SectionSnapshot(m.section)
	sec.Set(key, value)
	m.store.ReplaceSection(m.section, sec)
}

// Remove deletes the key if present.
func (m DelayMap) Remove(key string) {
	sec := m.store.SectionSnapshot(m.section)
	if !sec.Has(key) {
		return
	}
	sec.Delete(key)
	m.store.ReplaceSection(m.section, sec)
}

// Value returns the entry's value, or empty string when absent.
func (m DelayMap) Value(key string) string {
	return m.store.SectionSnapshot(m.section).Value(key)
}

// Keys returns the section's entries in order.
func (m DelayMap) Keys() []string {
	return m.store.SectionSnapshot(m.section).Keys()
}

// RawList edits a section expressed to the operator as free text, one
// entry per line (custom scan paths). Each surviving line becomes a
// bare key.
type RawList struct {
	store   *Store
	section string
}

// RawList returns a free-text editor over the named section.
func (s *Store) RawList(section string) RawList {
	return RawList{store: s, section: section}
}

// SetText replaces the section from newline-delimited text. Blank lines
// are discarded; remaining lines are trimmed and stored as bare keys.
func (l RawList) SetText(text string) {
	sec := iniconf.NewSection()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sec.Set(line, "")
	}
	l.store.ReplaceSection(l.section, sec)
}

// Text renders the section for display: keys joined by newlines in
// mapping order.
func (l RawList) Text() string {
	return strings.Join(l.store.SectionSnapshot(l.section).Keys(), "\n")
}
