/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"fmt"
	"strings"
)

// DefaultStem is the URI stem used when generating a Digital Link without a
// caller-supplied stem.
const DefaultStem = "https://id.gs1.org"

// uriCharTable holds the RFC 3986 characters permitted anywhere in a
// Digital Link URI: unreserved, gen-delims, sub-delims, and '%'.
var uriCharTable = [127]uint8{}

func init() {
	const extra = "-._~:/?#[]@!$&'()*+,;=%"
	for c := byte('0'); c <= '9'; c++ {
		uriCharTable[c] = 1
	}
	for c := byte('A'); c <= 'Z'; c++ {
		uriCharTable[c] = 1
		uriCharTable[c+'a'-'A'] = 1
	}
	for i := 0; i < len(extra); i++ {
		uriCharTable[extra[i]] = 1
	}
}

func isUnreserved(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '_' || c == '.' || c == '~'
}

func hasURIScheme(s string) bool {
	head := s
	if len(head) > 8 {
		head = head[:8]
	}
	head = strings.ToLower(head)
	return strings.HasPrefix(head, "https://") || strings.HasPrefix(head, "http://")
}

// SetDigitalLink processes a GS1 Digital Link URI: path segments become
// primary-key and key-qualifier AIs, query parameters become attribute AIs,
// and non-AI query parameters are preserved as ignored. The URI stem is
// discarded; it cannot be recovered on regeneration.
func (p *Processor) SetDigitalLink(uri string) error {
	p.clear()
	if perr := p.parseDigitalLink(uri); perr != nil {
		p.clear()
		return perr
	}
	return nil
}

func (p *Processor) parseDigitalLink(uri string) *Error {
	if len(uri) > MaxDataLength {
		return syntaxErrf("data exceeds the maximum length of %d", MaxDataLength)
	}
	for i := 0; i < len(uri); i++ {
		if uri[i] > 127 || uriCharTable[uri[i]&0x7F] != 1 {
			return dlErrf("URI contains an illegal character at position %d", i)
		}
	}
	if !hasURIScheme(uri) {
		return dlErrf("Digital Link URIs must begin with http:// or https://")
	}
	rest := uri[strings.Index(uri, "://")+3:]

	slash := strings.IndexByte(rest, '/')
	if slash == 0 {
		return dlErrf("URI has no domain")
	}
	if slash < 0 {
		return dlErrf("URI has no path info")
	}
	pathinfo := rest[slash:]

	// the fragment is ignored; the query is processed after the path
	if h := strings.IndexByte(pathinfo, '#'); h >= 0 {
		pathinfo = pathinfo[:h]
	}
	query := ""
	if q := strings.IndexByte(pathinfo, '?'); q >= 0 {
		query = pathinfo[q+1:]
		pathinfo = pathinfo[:q]
	}

	// Walk the path pairwise from the right: the rightmost-scanning pair
	// whose left segment is a known Digital Link primary key marks the
	// start of the DL path info. Everything left of it is the stem.
	segs := strings.Split(pathinfo[1:], "/")
	start := -1
	for k := len(segs) - 2; k >= 0; k -= 2 {
		ai := segs[k]
		if p.Table.Lookup(ai, len(ai)) != nil && p.Table.IsDLPathKey(ai) {
			start = k
			break
		}
	}
	if start < 0 {
		return dlErrf("no primary key AI found in the URI path")
	}

	out := make([]byte, 0, len(uri))
	out = append(out, Separator)
	prevFNC1 := false
	first := true
	var pathAIs []string
	for k := start; k+1 < len(segs); k += 2 {
		ai := segs[k]
		entry, perr := p.resolveExact(ai)
		if perr != nil {
			return perr
		}
		val, perr := pctDecode(segs[k+1], false)
		if perr != nil {
			return perr
		}
		if ai == "01" {
			val = padGTIN(val)
		}
		if perr := p.checkAIValue(entry, val); perr != nil {
			return perr
		}

		if !first && prevFNC1 {
			out = append(out, Separator)
		}
		x := ExtractedAI{
			Entry: entry,
			AI:    Span{Start: len(out), Len: len(ai)},
			Kind:  KindAI,
			DLSeq: len(pathAIs),
		}
		out = append(out, ai...)
		x.Value = Span{Start: len(out), Len: len(val)}
		out = append(out, val...)
		if err := p.addAI(x); err != nil {
			return err
		}

		pathAIs = append(pathAIs, ai)
		prevFNC1 = entry.FNC1
		first = false
	}

	for _, tok := range strings.Split(query, "&") {
		if tok == "" {
			continue
		}
		eq := strings.IndexByte(tok, '=')
		if eq < 0 || !allDigits(tok[:eq]) {
			// non-AI query parameters are preserved, not errors
			p.ignored = append(p.ignored, tok)
			continue
		}
		name := tok[:eq]
		entry := p.Table.Lookup(name, len(name))
		if entry == nil {
			return dlErrf("unknown AI (%s) cannot be a Digital Link query parameter", name)
		}
		val, perr := pctDecode(tok[eq+1:], true)
		if perr != nil {
			return perr
		}
		if name == "01" {
			val = padGTIN(val)
		}
		if perr := p.checkAIValue(entry, val); perr != nil {
			return perr
		}

		if prevFNC1 {
			out = append(out, Separator)
		}
		x := ExtractedAI{
			Entry: entry,
			AI:    Span{Start: len(out), Len: len(name)},
			Kind:  KindAI,
			DLSeq: dlAttribute,
		}
		out = append(out, name...)
		x.Value = Span{Start: len(out), Len: len(val)}
		out = append(out, val...)
		if err := p.addAI(x); err != nil {
			return err
		}
		prevFNC1 = entry.FNC1
	}

	p.data = string(out)
	if perr := p.validateExtracted(); perr != nil {
		return perr
	}

	// only reported once the URI is otherwise fully valid
	if !p.Table.HasDLSequence(pathAIs) {
		return dlErrf("the URI path AI sequence %q is not a registered "+
			"key-qualifier association", strings.Join(pathAIs, " "))
	}

	return p.crossValidate()
}

// padGTIN zero-pads GTIN-8/12/13 values to the 14 digits AI (01) carries.
func padGTIN(val string) string {
	switch len(val) {
	case 8, 12, 13:
		return strings.Repeat("0", 14-len(val)) + val
	}
	return val
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func pctDecode(s string, query bool) (string, *Error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '%':
			if i+2 >= len(s) {
				return "", dlErrf("truncated percent escape %q", s[i:])
			}
			hi, lo := unhex(s[i+1]), unhex(s[i+2])
			if hi < 0 || lo < 0 {
				return "", dlErrf("invalid percent escape %q", s[i:i+3])
			}
			out = append(out, byte(hi<<4|lo))
			i += 3
		case query && c == '+':
			out = append(out, ' ')
			i++
		default:
			out = append(out, c)
			i++
		}
	}
	return string(out), nil
}

func unhex(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	}
	return -1
}

func pctEncode(s string, query bool) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isUnreserved(c):
			b.WriteByte(c)
		case c == ' ' && query:
			b.WriteByte('+')
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// DigitalLink generates a Digital Link URI from the extracted AI data,
// placing the primary key and its best-matching qualifier sequence in the
// path and every other AI in the query component. The stem defaults to
// DefaultStem when empty; the stem of a previously parsed URI is not
// recoverable.
func (p *Processor) DigitalLink(stem string) (string, error) {
	if err := p.requireAIData(); err != nil {
		return "", err
	}
	if stem == "" {
		stem = DefaultStem
	}
	stem = strings.TrimRight(stem, "/")

	var key *ExtractedAI
	for i := range p.aiData {
		if p.aiData[i].Kind == KindAI && p.Table.IsDLPathKey(p.spanStr(p.aiData[i].AI)) {
			key = &p.aiData[i]
			break
		}
	}
	if key == nil {
		return "", errOrNil(dlErrf("no extracted AI is a Digital Link primary key"))
	}
	keyAI := p.spanStr(key.AI)

	// The best qualifier sequence is the registered sequence for this key
	// with the most qualifiers all present in the data; ties keep the
	// first such sequence in sorted order.
	var best []string
	bestCount := -1
	for _, seq := range p.Table.DLSequencesForKey(keyAI) {
		quals := strings.Fields(seq)[1:]
		present := true
		for _, q := range quals {
			if p.firstAI(q) == nil {
				present = false
				break
			}
		}
		if present && len(quals) > bestCount {
			bestCount = len(quals)
			best = quals
		}
	}

	for i := range p.aiData {
		p.aiData[i].DLSeq = dlAttribute
	}
	key.DLSeq = 0
	path := []*ExtractedAI{key}
	for _, q := range best {
		x := p.firstAI(q)
		x.DLSeq = len(path)
		path = append(path, x)
	}

	var b strings.Builder
	b.WriteString(stem)
	for _, x := range path {
		b.WriteByte('/')
		b.WriteString(p.spanStr(x.AI))
		b.WriteByte('/')
		b.WriteString(pctEncode(p.spanStr(x.Value), false))
	}

	// attribute AIs: the fixed-length ones first, then the
	// FNC1-terminated ones
	sep := byte('?')
	for pass := 0; pass < 2; pass++ {
		wantFNC1 := pass == 1
		for i := range p.aiData {
			x := &p.aiData[i]
			if x.Kind != KindAI || x.DLSeq != dlAttribute || x.Entry.FNC1 != wantFNC1 {
				continue
			}
			b.WriteByte(sep)
			sep = '&'
			b.WriteString(p.spanStr(x.AI))
			b.WriteByte('=')
			b.WriteString(pctEncode(p.spanStr(x.Value), true))
		}
	}
	return b.String(), nil
}
