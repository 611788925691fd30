/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package aitable implements the GS1 Application Identifier definition
// table: entry lookup by exact or data-determined AI code length, the
// two-digit-prefix length index, vivification of unknown AIs, and the
// derived Digital Link key-qualifier sequence set.
package aitable

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Table is an immutable, sorted registry of AI definitions plus the indexes
// derived from it. Build one with New or Load and share it freely: lookups
// never mutate table state.
type Table struct {
	entries []*Entry

	// lengthByPrefix maps a two-digit AI prefix (00-99) to the AI code
	// length shared by every entry with that prefix; 0 means no entry has
	// the prefix.
	lengthByPrefix [100]int

	// dlSequences holds every legal Digital Link path AI sequence as a
	// space-joined string, sorted.
	dlSequences []string
}

// New builds a Table from the given entries, validating each entry and the
// table-wide invariant that all AI codes sharing a two-digit prefix have
// the same length. Violations are table-integrity errors, not data errors.
func New(entries []*Entry) (*Table, error) {
	t := &Table{entries: make([]*Entry, len(entries))}
	copy(t.entries, entries)
	sort.Slice(t.entries, func(i, j int) bool {
		return t.entries[i].AI < t.entries[j].AI
	})

	for i, e := range t.entries {
		if err := validateEntry(e); err != nil {
			return nil, err
		}
		if i > 0 && t.entries[i-1].AI == e.AI {
			return nil, errors.Errorf("duplicate AI (%s) in table", e.AI)
		}

		prefix := int(e.AI[0]-'0')*10 + int(e.AI[1]-'0')
		if known := t.lengthByPrefix[prefix]; known != 0 && known != len(e.AI) {
			return nil, errors.Errorf(
				"AI (%s) conflicts with another AI of length %d sharing prefix %s",
				e.AI, known, e.AI[:2])
		}
		t.lengthByPrefix[prefix] = len(e.AI)
	}

	t.buildDLSequences()
	return t, nil
}

func validateEntry(e *Entry) error {
	if len(e.AI) < 2 || len(e.AI) > 4 || !isDigits(e.AI) {
		return errors.Errorf("AI codes must be 2-4 digits, but have %q", e.AI)
	}
	if len(e.Components) == 0 {
		return errors.Errorf("AI (%s) has no components", e.AI)
	}
	for i, c := range e.Components {
		if c.Min < 1 || c.Max < c.Min {
			return errors.Errorf("AI (%s) component %d has illegal length "+
				"bounds [%d,%d]", e.AI, i, c.Min, c.Max)
		}
		if c.Optional && i != len(e.Components)-1 {
			return errors.Errorf("AI (%s) has a non-final optional component", e.AI)
		}
	}
	return nil
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the table's entries, sorted by AI code. Callers must not
// modify the returned entries.
func (t *Table) Entries() []*Entry {
	return t.entries
}

// searchExact returns the entry whose code is exactly ai, or nil.
func (t *Table) searchExact(ai string) *Entry {
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].AI >= ai
	})
	if i < len(t.entries) && t.entries[i].AI == ai {
		return t.entries[i]
	}
	return nil
}

// PrefixLength returns the AI code length shared by all table entries whose
// code begins with the same two digits as code, or 0 when no entry does
// (or code is too short or non-numeric).
func (t *Table) PrefixLength(code string) int {
	if len(code) < 2 || !isDigits(code[:2]) {
		return 0
	}
	return t.lengthByPrefix[int(code[0]-'0')*10+int(code[1]-'0')]
}

// Lookup resolves the AI at the start of code.
//
// In exact mode (length > 0), it returns the entry whose AI code is exactly
// code[:length]. In prefix mode (length == 0), the AI's length is determined
// from the data via the two-digit prefix index. Either way, Lookup returns
// nil when the tested window is not all digits, runs past the end of code,
// or matches no entry.
func (t *Table) Lookup(code string, length int) *Entry {
	if length == 0 {
		length = t.PrefixLength(code)
		if length == 0 {
			return nil
		}
	}
	if length > len(code) || !isDigits(code[:length]) {
		return nil
	}
	return t.searchExact(code[:length])
}

// buildDLSequences expands every entry's dlpkey attribute into the full set
// of legal path AI sequences: the primary key followed by any in-order
// subset of one qualifier alternative.
func (t *Table) buildDLSequences() {
	seen := make(map[string]struct{})
	for _, e := range t.entries {
		alts, ok := e.DLPathKeyAlternatives()
		if !ok {
			continue
		}
		for _, quals := range alts {
			// in-order subsets of quals, including the empty subset
			for bits := 0; bits < (1 << uint(len(quals))); bits++ {
				seq := []string{e.AI}
				for i, q := range quals {
					if bits&(1<<uint(i)) != 0 {
						seq = append(seq, q)
					}
				}
				seen[strings.Join(seq, " ")] = struct{}{}
			}
		}
	}
	t.dlSequences = make([]string, 0, len(seen))
	for seq := range seen {
		t.dlSequences = append(t.dlSequences, seq)
	}
	sort.Strings(t.dlSequences)
}

// IsDLPathKey reports whether ai is registered as a Digital Link primary
// key.
func (t *Table) IsDLPathKey(ai string) bool {
	i := sort.SearchStrings(t.dlSequences, ai)
	return i < len(t.dlSequences) && t.dlSequences[i] == ai
}

// HasDLSequence reports whether the given path AI sequence is a registered
// primary-key/qualifier combination.
func (t *Table) HasDLSequence(seq []string) bool {
	joined := strings.Join(seq, " ")
	i := sort.SearchStrings(t.dlSequences, joined)
	return i < len(t.dlSequences) && t.dlSequences[i] == joined
}

// DLSequencesForKey returns, in sorted order, every registered path
// sequence whose primary key is the given AI.
func (t *Table) DLSequencesForKey(ai string) []string {
	lo := sort.SearchStrings(t.dlSequences, ai)
	hi := lo
	for hi < len(t.dlSequences) {
		s := t.dlSequences[hi]
		if s != ai && !strings.HasPrefix(s, ai+" ") {
			break
		}
		hi++
	}
	return t.dlSequences[lo:hi]
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
