package iniconf

import (
	"strings"
)

// RootSection names the implicit section that collects keys appearing
// before the first [header] line.
const RootSection = "root"

// encodeHeader is emitted as the first line of every encoded document.
const encodeHeader = "# VoidShell Config"

// Config is a section-keyed configuration document. Section order and,
// within a section, key order follow insertion so that an unmodified
// document re-serializes stably.
type Config struct {
	names    []string
	sections map[string]*Section
}

// Section is an ordered set of key/value entries. A key with an empty
// value is a "bare" entry: presence is the only signal.
type Section struct {
	keys   []string
	values map[string]string
}

// New returns an empty Config.
func New() *Config {
	return &Config{sections: make(map[string]*Section)}
}

// Ensure returns the named section, creating it empty if absent.
// Ensuring an existing section never clears it.
func (c *Config) Ensure(name string) *Section {
	if c.sections == nil {
		c.sections = make(map[string]*Section)
	}
	if s, ok := c.sections[name]; ok {
		return s
	}
	s := newSection()
	c.sections[name] = s
	c.names = append(c.names, name)
	return s
}

// Lookup returns the named section if it exists.
func (c *Config) Lookup(name string) (*Section, bool) {
	s, ok := c.sections[name]
	return s, ok
}

// Replace swaps the named section's contents wholesale, creating the
// section if needed.
func (c *Config) Replace(name string, s *Section) {
	if s == nil {
		s = newSection()
	}
	if c.sections == nil {
		c.sections = make(map[string]*Section)
	}
	if _, ok := c.sections[name]; !ok {
		c.names = append(c.names, name)
	}
	c.sections[name] = s
}

// Names returns the section names in insertion order.
func (c *Config) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func newSection() *Section {
	return &Section{values: make(map[string]string)}
}

// NewSection returns an empty section.
func NewSection() *Section { return newSection() }

// Set inserts or overwrites an entry. Insertion order is preserved;
// overwriting keeps the key's original position.
func (s *Section) Set(key, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value for key and whether the key exists.
func (s *Section) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Value returns the value for key, or empty string when absent.
func (s *Section) Value(key string) string {
	return s.values[key]
}

// Has reports whether the key exists.
func (s *Section) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Delete removes an entry if present.
func (s *Section) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (s *Section) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of entries.
func (s *Section) Len() int { return len(s.keys) }

// Clone returns an independent copy of the section.
func (s *Section) Clone() *Section {
	dup := newSection()
	for _, k := range s.keys {
		dup.Set(k, s.values[k])
	}
	return dup
}

// Decode parses section-keyed config text. It is forgiving by
// construction: malformed lines are skipped, never fatal, because the
// daemon's config file is hand-editable.
func Decode(text string) *Config {
	cfg := New()
	cfg.Ensure(RootSection)
	current := RootSection

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") && len(line) > 2 {
			current = line[1 : len(line)-1]
			cfg.Ensure(current)
			continue
		}
		if idx := strings.Index(line, "="); idx >= 0 {
			key := strings.TrimSpace(line[:idx])
			value := strings.TrimSpace(line[idx+1:])
			cfg.Ensure(current).Set(key, value)
			continue
		}
		// Bare key: only meaningful inside a named section.
		if current != RootSection {
			cfg.Ensure(current).Set(line, "")
		}
	}
	return cfg
}

// Encode serializes the config in the daemon's section format. Root-level
// keys are not emitted; callers needing root values go through the raw
// fetch path instead of this codec.
func Encode(cfg *Config) string {
	var b strings.Builder
	b.WriteString(encodeHeader)
	b.WriteString("\n\n")
	for _, name := range cfg.names {
		if name == RootSection {
			continue
		}
		s := cfg.sections[name]
		b.WriteString("[")
		b.WriteString(name)
		b.WriteString("]\n")
		for _, key := range s.keys {
			b.WriteString(key)
			if v := s.values[key]; v != "" {
				b.WriteString("=")
				b.WriteString(v)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
