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

// SetElementString processes a bracketed element string, "(AI)value..."
// with an optional "|"-delimited composite component, into canonical form,
// extracting and validating every AI along the way. A literal '(' within a
// value must be escaped as "\(".
func (p *Processor) SetElementString(value string) error {
	p.clear()
	if len(value) > MaxDataLength {
		return syntaxErrf("data exceeds the maximum length of %d", MaxDataLength)
	}

	out := make([]byte, 0, len(value)+1)
	out = append(out, Separator)

	i := 0
	prevFNC1 := false
	first := true
	for i < len(value) {
		if value[i] == CompositeDelim {
			if first {
				p.clear()
				return errOrNil(syntaxErrf("data must not begin with the composite delimiter"))
			}
			if err := p.addAI(ExtractedAI{
				Kind:  KindComposite,
				AI:    Span{Start: len(out), Len: 0},
				Value: Span{Start: len(out), Len: 0},
				DLSeq: dlAttribute,
			}); err != nil {
				p.clear()
				return err
			}
			out = append(out, CompositeDelim)
			i++
			if i == len(value) {
				p.clear()
				return errOrNil(syntaxErrf("composite component is empty"))
			}
			continue
		}

		if value[i] != '(' {
			p.clear()
			return errOrNil(syntaxErrf("expected '(' at position %d", i))
		}
		end := strings.IndexByte(value[i+1:], ')')
		if end < 0 {
			p.clear()
			return errOrNil(syntaxErrf("AI at position %d is missing its closing ')'", i))
		}
		ai := value[i+1 : i+1+end]
		entry, perr := p.resolveExact(ai)
		if perr != nil {
			p.clear()
			return perr
		}
		i += end + 2

		val, n, perr := scanBracketedValue(value[i:], ai)
		if perr != nil {
			p.clear()
			return perr
		}
		i += n

		if perr := p.checkAIValue(entry, val); perr != nil {
			p.clear()
			return perr
		}

		if !first && prevFNC1 {
			out = append(out, Separator)
		}
		x := ExtractedAI{
			Entry: entry,
			AI:    Span{Start: len(out), Len: len(ai)},
			Kind:  KindAI,
			DLSeq: dlAttribute,
		}
		out = append(out, ai...)
		x.Value = Span{Start: len(out), Len: len(val)}
		out = append(out, val...)
		if err := p.addAI(x); err != nil {
			p.clear()
			return err
		}

		prevFNC1 = entry.FNC1
		first = false
	}
	if first {
		p.clear()
		return errOrNil(syntaxErrf("no AI data found"))
	}

	p.data = string(out)
	if perr := p.validateExtracted(); perr != nil {
		p.clear()
		return perr
	}
	if perr := p.crossValidate(); perr != nil {
		p.clear()
		return perr
	}
	return nil
}

// resolveExact looks up an AI whose exact code length is known from
// delimited input, vivifying a placeholder when unknown AIs are permitted.
func (p *Processor) resolveExact(ai string) (*aitable.Entry, *Error) {
	if len(ai) < 2 || len(ai) > 4 {
		return nil, syntaxErrf("AI codes must be 2-4 characters, but have (%s)", ai)
	}
	for j := 0; j < len(ai); j++ {
		if ai[j] < '0' || ai[j] > '9' {
			return nil, syntaxErrf("AI (%s) contains a non-digit character", ai)
		}
	}
	if entry := p.Table.Lookup(ai, len(ai)); entry != nil {
		return entry, nil
	}
	if p.PermitUnknownAIs {
		entry, err := p.Table.Vivify(ai, len(ai))
		if err != nil {
			return nil, syntaxErrf("%s", err.Error())
		}
		return entry, nil
	}
	return nil, syntaxErrf("unrecognised AI (%s)", ai)
}

// scanBracketedValue consumes a bracketed-form value up to the next AI or
// composite delimiter, unescaping "\(" sequences. Only "\(" is an escape;
// a backslash before anything else is literal.
func scanBracketedValue(data, ai string) (string, int, *Error) {
	var val []byte
	i := 0
	for i < len(data) {
		c := data[i]
		if c == '\\' && i+1 < len(data) && data[i+1] == '(' {
			val = append(val, '(')
			i += 2
			continue
		}
		if c == '(' || c == CompositeDelim {
			break
		}
		val = append(val, c)
		i++
	}
	if len(val) == 0 {
		return "", 0, valueErrf(ai, "AI (%s) value is empty", ai)
	}
	return string(val), i, nil
}

// SetDataString processes a canonical (unbracketed) element string, which
// must begin with the separator character standing for FNC1.
//
// Canonical data carries no AI delimiters, so AI code lengths come from the
// table's prefix index; unknown AIs of undeterminable length cannot be
// extracted here, only from bracketed or Digital Link input.
func (p *Processor) SetDataString(value string) error {
	p.clear()
	if len(value) > MaxDataLength {
		return syntaxErrf("data exceeds the maximum length of %d", MaxDataLength)
	}
	if len(value) == 0 || value[0] != Separator {
		return syntaxErrf("data does not begin with the FNC1 separator %q", Separator)
	}

	p.data = value
	if perr := p.processCanonical(value, true); perr != nil {
		p.clear()
		return perr
	}
	if perr := p.crossValidate(); perr != nil {
		p.clear()
		return perr
	}
	return nil
}

// processCanonical walks canonical data from just past the leading
// separator, resolving each AI by prefix, validating its value to learn
// the consumed length, and (when extract is set) populating the extracted
// AI list with spans into the data.
func (p *Processor) processCanonical(data string, extract bool) *Error {
	i := 1
	sawAI := false
	for i < len(data) {
		switch data[i] {
		case Separator:
			// superfluous separators are tolerated
			i++
			continue
		case CompositeDelim:
			if !sawAI {
				return syntaxErrf("data must not begin with the composite delimiter")
			}
			if extract {
				if err := p.addAI(ExtractedAI{
					Kind:  KindComposite,
					AI:    Span{Start: i, Len: 0},
					Value: Span{Start: i, Len: 0},
					DLSeq: dlAttribute,
				}); err != nil {
					return err
				}
			}
			i++
			if i == len(data) {
				return syntaxErrf("composite component is empty")
			}
			continue
		}

		entry := p.Table.Lookup(data[i:], 0)
		if entry == nil && p.PermitUnknownAIs {
			if vivified, err := p.Table.Vivify(data[i:], 0); err == nil {
				entry = vivified
			}
		}
		if entry == nil {
			return syntaxErrf("unrecognised AI at position %d", i)
		}

		valStart := i + len(entry.AI)
		winEnd := valStart
		for winEnd < len(data) &&
			data[winEnd] != Separator && data[winEnd] != CompositeDelim {
			winEnd++
		}

		consumed, perr := p.lintAIValue(entry, data[valStart:winEnd])
		if perr != nil {
			return perr
		}
		valEnd := valStart + consumed
		if entry.FNC1 && valEnd != winEnd {
			return valueErrf(entry.AI, "AI (%s) value is too long", entry.AI)
		}

		if extract {
			if err := p.addAI(ExtractedAI{
				Entry: entry,
				AI:    Span{Start: i, Len: len(entry.AI)},
				Value: Span{Start: valStart, Len: consumed},
				Kind:  KindAI,
				DLSeq: dlAttribute,
			}); err != nil {
				return err
			}
		}
		sawAI = true
		i = valEnd
	}
	if !sawAI {
		return syntaxErrf("no AI data found")
	}
	return nil
}

// ElementString regenerates the bracketed element string from the
// extracted AI data, escaping literal '(' characters within values.
func (p *Processor) ElementString() (string, error) {
	if err := p.requireAIData(); err != nil {
		return "", err
	}
	var b strings.Builder
	for i := range p.aiData {
		x := &p.aiData[i]
		switch x.Kind {
		case KindComposite:
			b.WriteByte(CompositeDelim)
		case KindAI:
			b.WriteByte('(')
			b.WriteString(p.spanStr(x.AI))
			b.WriteByte(')')
			b.WriteString(strings.Replace(p.spanStr(x.Value), "(", "\\(", -1))
		}
	}
	return b.String(), nil
}
