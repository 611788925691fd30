/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"strings"

	"github.com/pkg/errors"
)

// Validation identifies one of the cross-AI validation passes that run
// after any input is fully extracted.
type Validation int

const (
	// ValidateMutexAIs rejects data pairing an AI with one of the AIs
	// its table entry declares mutually exclusive.
	ValidateMutexAIs Validation = iota

	// ValidateRequisiteAIs rejects data containing an AI without the
	// other AIs its table entry requires alongside it. This is the only
	// pass that may be disabled.
	ValidateRequisiteAIs

	// ValidateRepeatedAIs rejects data in which the same AI appears more
	// than once with differing values.
	ValidateRepeatedAIs

	// ValidateDigSigSerialisedKey rejects data pairing a digital
	// signature (8030) with a GS1 key AI whose value omits its optional
	// serial component.
	ValidateDigSigSerialisedKey

	numValidations
)

type validation struct {
	enabled bool
	locked  bool
	check   func(p *Processor) *Error
}

func defaultValidations() [numValidations]validation {
	return [numValidations]validation{
		ValidateMutexAIs:            {enabled: true, locked: true, check: (*Processor).checkMutex},
		ValidateRequisiteAIs:        {enabled: true, check: (*Processor).checkRequisites},
		ValidateRepeatedAIs:         {enabled: true, locked: true, check: (*Processor).checkRepeated},
		ValidateDigSigSerialisedKey: {enabled: true, locked: true, check: (*Processor).checkDigSig},
	}
}

// SetValidationEnabled enables or disables a validation pass. Only
// ValidateRequisiteAIs may be toggled; the other passes are locked on.
func (p *Processor) SetValidationEnabled(v Validation, enabled bool) error {
	if v < 0 || v >= numValidations {
		return errors.Errorf("no such validation %d", v)
	}
	if p.validations[v].locked {
		return errors.Errorf("validation %d is locked and cannot be toggled", v)
	}
	p.validations[v].enabled = enabled
	return nil
}

// ValidationEnabled reports whether a validation pass is enabled.
func (p *Processor) ValidationEnabled(v Validation) bool {
	return v >= 0 && v < numValidations && p.validations[v].enabled
}

// crossValidate runs the enabled validation passes over the extracted AI
// data, stopping at the first failure.
func (p *Processor) crossValidate() *Error {
	for i := range p.validations {
		v := &p.validations[i]
		if !v.enabled {
			continue
		}
		if perr := v.check(p); perr != nil {
			return perr
		}
	}
	return nil
}

func (p *Processor) checkMutex() *Error {
	for i := range p.aiData {
		x := &p.aiData[i]
		if x.Kind != KindAI {
			continue
		}
		ai := p.spanStr(x.AI)
		for _, tmpl := range x.Entry.ExcludedAIs() {
			if p.existsInData(tmpl, ai) {
				return crossErrf(ai, "it is invalid to pair AI (%s) with AI (%s)",
					ai, tmpl)
			}
		}
	}
	return nil
}

// checkRequisites verifies every "req=" requirement of every extracted AI:
// each requirement is met when at least one of its comma-separated
// alternatives is present, where a "+"-joined alternative requires every
// member.
func (p *Processor) checkRequisites() *Error {
	for i := range p.aiData {
		x := &p.aiData[i]
		if x.Kind != KindAI {
			continue
		}
		ai := p.spanStr(x.AI)
		for _, req := range x.Entry.Requisites() {
			if !p.anyAlternative(req, ai) {
				return crossErrf(ai, "AI (%s) requires AI (%s) to also be present",
					ai, strings.Join(req, ") or ("))
			}
		}
	}
	return nil
}

func (p *Processor) anyAlternative(alts []string, excludeAI string) bool {
	for _, alt := range alts {
		met := true
		for _, tmpl := range strings.Split(alt, "+") {
			if !p.existsInData(tmpl, excludeAI) {
				met = false
				break
			}
		}
		if met {
			return true
		}
	}
	return false
}

func (p *Processor) checkRepeated() *Error {
	idx := p.sortedIndex()
	for i := 1; i < len(idx); i++ {
		prev, cur := &p.aiData[idx[i-1]], &p.aiData[idx[i]]
		if p.spanStr(prev.AI) == p.spanStr(cur.AI) &&
			p.spanStr(prev.Value) != p.spanStr(cur.Value) {
			ai := p.spanStr(cur.AI)
			return crossErrf(ai, "AI (%s) appears more than once with differing values", ai)
		}
	}
	return nil
}

// serialisedKeyAIs are the GS1 key AIs whose final optional component is a
// serial number, which becomes mandatory alongside a digital signature.
var serialisedKeyAIs = []string{"253", "255", "8003"}

func (p *Processor) checkDigSig() *Error {
	if p.firstAI("8030") == nil {
		return nil
	}
	for _, ai := range serialisedKeyAIs {
		x := p.firstAI(ai)
		if x == nil {
			continue
		}
		if x.Value.Len <= x.Entry.MinLength() {
			return crossErrf(ai, "AI (%s) must carry its serial component "+
				"when a digital signature (8030) is present", ai)
		}
	}
	return nil
}
