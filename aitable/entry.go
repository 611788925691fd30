/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package aitable

import (
	"strings"
)

// Entry is one Application Identifier definition.
type Entry struct {
	// AI is the 2-4 digit numeric AI code.
	AI string

	// FNC1 is true when the AI's value is variable-length and must be
	// terminated by an FNC1 separator; it is false for the AIs in the
	// GS1 predefined fixed-length list.
	FNC1 bool

	Components []Component

	// Attrs holds space-separated attribute tokens, each either a bare
	// flag ("dlpkey") or a key=value association ("ex=8018",
	// "dlpkey=22,10,21|235").
	Attrs string

	Title string

	// Unknown marks a placeholder entry vivified for an AI that is not
	// in the table.
	Unknown bool
}

// MinLength is the minimum value length: the summed minimums of all
// non-optional components.
func (e *Entry) MinLength() int {
	n := 0
	for i := range e.Components {
		if e.Components[i].Optional {
			continue
		}
		n += e.Components[i].Min
	}
	return n
}

// MaxLength is the maximum value length: the summed maximums of all
// components.
func (e *Entry) MaxLength() int {
	n := 0
	for i := range e.Components {
		n += e.Components[i].Max
	}
	return n
}

// attrValues returns the value of every key=value attribute token with the
// given key, in token order, and whether the key appears at all (bare flags
// contribute an empty value).
func (e *Entry) attrValues(key string) ([]string, bool) {
	var vals []string
	found := false
	for _, tok := range strings.Fields(e.Attrs) {
		if tok == key {
			found = true
			vals = append(vals, "")
			continue
		}
		if strings.HasPrefix(tok, key) && len(tok) > len(key) && tok[len(key)] == '=' {
			found = true
			vals = append(vals, tok[len(key)+1:])
		}
	}
	return vals, found
}

// ExcludedAIs returns the AI templates this entry is mutually exclusive
// with, from its "ex=" attributes. Templates may end in wildcard characters
// ("310n" matches every four-digit AI beginning "310").
func (e *Entry) ExcludedAIs() []string {
	vals, ok := e.attrValues("ex")
	if !ok {
		return nil
	}
	var templates []string
	for _, val := range vals {
		if val == "" {
			continue
		}
		templates = append(templates, strings.Split(val, ",")...)
	}
	return templates
}

// Requisites returns one requirement per "req=" attribute token. Each
// requirement lists comma-separated alternative groups, each group a
// "+"-joined set of AI templates that must all be present; a requirement is
// satisfied when any one of its groups is fully present.
func (e *Entry) Requisites() [][]string {
	vals, ok := e.attrValues("req")
	if !ok {
		return nil
	}
	var reqs [][]string
	for _, val := range vals {
		if val == "" {
			continue
		}
		reqs = append(reqs, strings.Split(val, ","))
	}
	return reqs
}

// DLPathKeyAlternatives reports whether this AI is a Digital Link primary
// key and, if so, returns its qualifier alternatives: one ordered qualifier
// AI list per "|"-separated alternative. A bare "dlpkey" flag yields a
// single empty alternative.
func (e *Entry) DLPathKeyAlternatives() ([][]string, bool) {
	vals, ok := e.attrValues("dlpkey")
	if !ok {
		return nil, false
	}
	val := vals[0]
	if val == "" {
		return [][]string{nil}, true
	}
	var alts [][]string
	for _, alt := range strings.Split(val, "|") {
		if alt == "" {
			alts = append(alts, nil)
			continue
		}
		alts = append(alts, strings.Split(alt, ","))
	}
	return alts, true
}
