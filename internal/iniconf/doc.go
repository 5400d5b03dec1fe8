// Package iniconf implements the VoidShell daemon's section-keyed
// configuration format.
//
// # Format
//
// The format is a relaxed INI dialect, processed line by line:
//
//   - "[Name]" opens (or re-opens) a section. Re-opening accumulates
//     entries into the existing section rather than clearing it.
//   - "key=value" assigns into the current section, splitting on the
//     first "=" only; both sides are trimmed.
//   - A non-empty line with no "=" inside a named section is a bare key
//     with an empty value, used for set-like sections (whitelists,
//     blacklists) where presence is the only signal.
//   - Blank lines and lines starting with "#" or ";" are ignored.
//
// Keys appearing before the first header belong to the implicit "root"
// section. Root keys are accepted by Decode but never emitted by Encode;
// root-only values travel over the raw fetch endpoint instead.
//
// # Round-trip guarantees
//
// Decode never fails: the file is hand-editable on the console, so the
// parser prefers robustness over strictness and silently skips anything
// it does not recognize. Comments and blank-line layout are not
// preserved, but section order and key order are, so an unmodified
// Config re-serializes byte-for-byte stably across repeated
// Encode/Decode cycles.
//
// # Purity
//
// The codec performs no I/O and holds no global state. Fetching and
// persisting the document is the confstore package's job; keeping the
// parser pure makes it independently testable.
package iniconf
