/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package aitable

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// fixedLength describes one two-digit prefix from the GS1 predefined
// fixed-length AI list: the AI code length for the prefix and the total
// element length (AI code plus value), neither requiring FNC1 termination.
type fixedLength struct {
	aiLen, total int
}

// fixedLengthByPrefix covers the element string prefixes the GS1 General
// Specifications define as fixed-length (figure 7.8.5-2).
var fixedLengthByPrefix = map[string]fixedLength{
	"00": {2, 20},
	"01": {2, 16},
	"02": {2, 16},
	"03": {2, 16},
	"04": {2, 18},
	"11": {2, 8},
	"12": {2, 8},
	"13": {2, 8},
	"14": {2, 8},
	"15": {2, 8},
	"16": {2, 8},
	"17": {2, 8},
	"18": {2, 8},
	"19": {2, 8},
	"20": {2, 4},
	"31": {4, 10},
	"32": {4, 10},
	"33": {4, 10},
	"34": {4, 10},
	"35": {4, 10},
	"36": {4, 10},
	"41": {3, 16},
}

// Vivify synthesizes a placeholder Entry for an AI code that is not in the
// table, for use when unknown-AI tolerance is enabled.
//
// When length > 0, the AI code is exactly code[:length]; when length == 0,
// the AI's length is determined from the two-digit prefix (via the table's
// own prefix index, then the predefined fixed-length prefix list). The
// value specification comes from the fixed-length prefix list when the
// prefix appears there (a fixed-length numeric value, no FNC1); otherwise
// the placeholder accepts 1-90 CSET 82 characters and requires FNC1
// termination.
//
// Vivify refuses to synthesize an entry that would be ambiguous with a
// known AI: when a known AI is a proper prefix of the candidate code, when
// the candidate is a proper prefix of a known AI, or when the prefix-derived
// length disagrees with a caller-supplied exact length.
func (t *Table) Vivify(code string, length int) (*Entry, error) {
	if len(code) < 2 || !isDigits(code[:2]) {
		return nil, errors.Errorf("cannot vivify unknown AI: data does not "+
			"begin with two digits: %q", head(code, 4))
	}

	expect := t.PrefixLength(code)
	if expect == 0 {
		if fixed, ok := fixedLengthByPrefix[code[:2]]; ok {
			expect = fixed.aiLen
		}
	}

	aiLen := length
	if aiLen == 0 {
		if expect == 0 {
			return nil, errors.Errorf("cannot determine the length of "+
				"unknown AI beginning %q", head(code, 4))
		}
		aiLen = expect
	} else if expect != 0 && expect != aiLen {
		return nil, errors.Errorf("unknown AI %q conflicts with the "+
			"expected AI length %d for prefix %s", head(code, aiLen), expect,
			code[:2])
	}

	if aiLen < 2 || aiLen > 4 || aiLen > len(code) || !isDigits(code[:aiLen]) {
		return nil, errors.Errorf("cannot vivify unknown AI %q",
			head(code, aiLen))
	}
	ai := code[:aiLen]

	if conflict := t.properPrefixConflict(ai); conflict != nil {
		return nil, errors.Errorf("unknown AI (%s) is ambiguous with "+
			"known AI (%s)", ai, conflict.AI)
	}

	entry := &Entry{AI: ai, Unknown: true, Title: "UNKNOWN AI"}
	if fixed, ok := fixedLengthByPrefix[ai[:2]]; ok && fixed.aiLen == aiLen {
		valueLen := fixed.total - aiLen
		entry.Components = []Component{
			{CharSet: CharSetNumeric, Min: valueLen, Max: valueLen},
		}
	} else {
		entry.FNC1 = true
		entry.Components = []Component{
			{CharSet: CharSet82, Min: 1, Max: 90},
		}
	}
	return entry, nil
}

// properPrefixConflict returns a known entry whose AI code is a proper
// prefix of ai or of which ai is a proper prefix, or nil when no such entry
// exists.
func (t *Table) properPrefixConflict(ai string) *Entry {
	// entries sorted by AI: any prefix relative of ai sorts adjacent to it
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].AI >= ai
	})
	for j := i; j < len(t.entries) && strings.HasPrefix(t.entries[j].AI, ai); j++ {
		if t.entries[j].AI != ai {
			return t.entries[j]
		}
	}
	// proper prefixes of ai share its first two digits, so they all sit
	// within the same two-digit class immediately before i
	for j := i - 1; j >= 0 && t.entries[j].AI[:2] == ai[:2]; j-- {
		if len(t.entries[j].AI) < len(ai) && strings.HasPrefix(ai, t.entries[j].AI) {
			return t.entries[j]
		}
	}
	return nil
}

func head(s string, n int) string {
	if n < 2 {
		n = 2
	}
	if len(s) < n {
		return s
	}
	return s[:n]
}
