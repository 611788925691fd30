/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"strings"

	"github.com/intel/rsp-sw-toolkit-im-suite-gs1syntax/aitable"
)

// checkAIValue is the fast pre-validation applied to a whole AI value
// before component-level validation: the value must fit within the entry's
// summed component length bounds and must not contain a literal separator
// character, which would be ambiguous with the canonical FNC1 marker.
func (p *Processor) checkAIValue(entry *aitable.Entry, value string) *Error {
	if i := strings.IndexByte(value, Separator); i >= 0 {
		return valueErrf(entry.AI, "AI (%s) value contains an illegal %q character",
			entry.AI, Separator)
	}
	if len(value) < entry.MinLength() {
		return valueErrf(entry.AI, "AI (%s) value is shorter than the minimum %d characters",
			entry.AI, entry.MinLength())
	}
	if len(value) > entry.MaxLength() {
		return valueErrf(entry.AI, "AI (%s) value is longer than the maximum %d characters",
			entry.AI, entry.MaxLength())
	}
	return nil
}

// lintAIValue splits value into the entry's components and validates each:
// the character set check first, then the component's linters in order. The
// first failure aborts and is reported with its span translated to the
// whole value. On success it returns the number of bytes consumed, which
// may be less than len(value) when the value window extends beyond the AI
// (as in canonical data, where a fixed-length AI may be abutted by the
// next AI with no separator).
func (p *Processor) lintAIValue(entry *aitable.Entry, value string) (int, *Error) {
	if len(value) == 0 {
		return 0, valueErrf(entry.AI, "AI (%s) value is empty", entry.AI)
	}

	pos := 0
	for i := range entry.Components {
		comp := &entry.Components[i]
		take := comp.Max
		if remaining := len(value) - pos; take > remaining {
			take = remaining
		}
		if take == 0 {
			if comp.Optional {
				break
			}
			return 0, valueErrf(entry.AI, "AI (%s) value is too short", entry.AI)
		}
		if take < comp.Min {
			return 0, valueErrf(entry.AI, "AI (%s) value is too short", entry.AI)
		}

		part := value[pos : pos+take]
		if le := comp.CharSet.Check(part); le != nil {
			return 0, lintErrf(entry.AI, value, pos, le)
		}
		for _, fn := range comp.Linters {
			if le := fn(part); le != nil {
				return 0, lintErrf(entry.AI, value, pos, le)
			}
		}
		pos += take
	}
	return pos, nil
}

// validateExtracted runs the full component validation over every
// extracted AI value. It is the second half of the two complementary
// checks on assembled input: the per-AI length/content pre-check fails
// fast during parsing, and this pass then applies every component and
// linter check to the final values.
func (p *Processor) validateExtracted() *Error {
	for i := range p.aiData {
		x := &p.aiData[i]
		if x.Kind != KindAI {
			continue
		}
		value := p.spanStr(x.Value)
		consumed, err := p.lintAIValue(x.Entry, value)
		if err != nil {
			return err
		}
		if consumed != len(value) {
			return valueErrf(x.Entry.AI, "AI (%s) value is too long", x.Entry.AI)
		}
	}
	return nil
}
