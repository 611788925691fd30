/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package aitable

import (
	"github.com/intel/rsp-sw-toolkit-im-suite-gs1syntax/lint"
)

// CharSet identifies the character set an AI component value is drawn from.
type CharSet int

const (
	CharSetNone CharSet = iota
	CharSetNumeric
	CharSet82
	CharSet39
	CharSet64
)

func (cs CharSet) String() string {
	switch cs {
	case CharSetNumeric:
		return "N"
	case CharSet82:
		return "X"
	case CharSet39:
		return "Y"
	case CharSet64:
		return "Z"
	}
	return "?"
}

// Check validates a value against the character set. CharSetNone accepts
// anything.
func (cs CharSet) Check(value string) *lint.Error {
	switch cs {
	case CharSetNumeric:
		return lint.Numeric(value)
	case CharSet82:
		return lint.CSet82(value)
	case CharSet39:
		return lint.CSet39(value)
	case CharSet64:
		return lint.CSet64(value)
	}
	return nil
}

// Component is one positional field within an AI value. Components are
// ordered; only the final component of an entry may be Optional.
type Component struct {
	CharSet  CharSet
	Min, Max int
	Optional bool
	Linters  []lint.Func
}
