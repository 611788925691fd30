/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"sort"
	"strings"

	"github.com/intel/rsp-sw-toolkit-im-suite-gs1syntax/aitable"
	"github.com/pkg/errors"
)

const (
	// Separator stands in for FNC1 in the canonical element string form.
	Separator = '^'

	// CompositeDelim separates the linear and composite components of a
	// composite symbol within canonical or plain data.
	CompositeDelim = '|'

	// MaxDataLength bounds the total input size of any single operation.
	MaxDataLength = 8192

	// MaxAIs bounds the number of extracted AIs per operation.
	MaxAIs = 64

	// gsChar is the GS control character carried in raw scan data in
	// place of FNC1.
	gsChar = '\x1d'
)

// Span locates a byte range within the processor's canonical data string.
// Spans are invalidated whenever a new input is processed; callers must
// re-derive them rather than cache them across operations.
type Span struct {
	Start, Len int
}

// Kind distinguishes the entries of the extracted AI list.
type Kind int

const (
	// KindAI is a real (AI, value) pair.
	KindAI Kind = iota

	// KindComposite marks the boundary between the linear and composite
	// components; it carries no AI or value.
	KindComposite
)

// dlAttribute is the DLSeq marker for AIs that belong in the query
// component of a Digital Link URI rather than the path.
const dlAttribute = -1

// ExtractedAI is one entry of the extracted AI list: a matched (AI, value)
// pair, or a composite boundary marker.
type ExtractedAI struct {
	Entry *aitable.Entry
	AI    Span
	Value Span
	Kind  Kind

	// DLSeq orders Digital Link path AIs (0 is the primary key);
	// dlAttribute marks AIs placed in the query component.
	DLSeq int
}

// AIValue is one extracted (AI, value) pair in resolved string form.
type AIValue struct {
	AI, Value string
}

// Processor converts GS1 AI data between bracketed element strings, the
// canonical unbracketed form, Digital Link URIs, and barcode scan data,
// validating every extracted value along the way.
//
// A Processor owns all of its buffers and derived state; it is cheap to
// create and must not be shared between goroutines. Every Set* entry point
// fully replaces the previous input's state, and failed operations leave
// the processor cleared.
type Processor struct {
	// Table is the AI definition table; it must not be nil.
	Table *aitable.Table

	// PermitUnknownAIs allows inputs carrying AIs absent from the table,
	// where their length is determinable, by vivifying placeholder
	// entries for them.
	PermitUnknownAIs bool

	// IncludeDataTitlesInHRI prefixes HRI lines with each AI's title.
	IncludeDataTitlesInHRI bool

	validations [numValidations]validation

	data    string // canonical element string ("" until an AI input is set)
	plain   string // plain (non-AI) data, for scan data processing
	plainCC bool   // plain data carries a composite AI component in data
	aiData  []ExtractedAI
	sorted  []int // KindAI indexes ordered by (AI, value); nil when stale
	ignored []string
}

// NewProcessor returns a Processor over the given AI table with every
// validation pass enabled.
func NewProcessor(table *aitable.Table) *Processor {
	p := &Processor{Table: table}
	p.validations = defaultValidations()
	return p
}

func (p *Processor) clear() {
	p.data = ""
	p.plain = ""
	p.plainCC = false
	p.aiData = p.aiData[:0]
	p.sorted = nil
	p.ignored = nil
}

// DataString returns the canonical element string of the current AI data,
// or the plain data when the current input is not AI data (followed by its
// "|"-delimited composite AI component, when one is present). Plain data
// beginning with the separator character is escaped with a leading
// backslash so the two forms cannot be confused.
func (p *Processor) DataString() string {
	if p.plain == "" {
		return p.data
	}
	plain := p.plain
	if plain[0] == Separator {
		plain = "\\" + plain
	}
	if p.plainCC {
		return plain + string(CompositeDelim) + p.data
	}
	return plain
}

// AIPairs returns the extracted (AI, value) pairs in input encounter order.
func (p *Processor) AIPairs() []AIValue {
	var pairs []AIValue
	for i := range p.aiData {
		if p.aiData[i].Kind != KindAI {
			continue
		}
		pairs = append(pairs, AIValue{
			AI:    p.spanStr(p.aiData[i].AI),
			Value: p.spanStr(p.aiData[i].Value),
		})
	}
	return pairs
}

// AIDataCount returns the number of extracted AI fields.
func (p *Processor) AIDataCount() int {
	count := 0
	for i := range p.aiData {
		if p.aiData[i].Kind == KindAI {
			count++
		}
	}
	return count
}

// AIData returns the i-th extracted (AI, value) pair in input encounter
// order, or false when i is out of range.
func (p *Processor) AIData(i int) (AIValue, bool) {
	if i < 0 {
		return AIValue{}, false
	}
	for j := range p.aiData {
		if p.aiData[j].Kind != KindAI {
			continue
		}
		if i == 0 {
			return AIValue{
				AI:    p.spanStr(p.aiData[j].AI),
				Value: p.spanStr(p.aiData[j].Value),
			}, true
		}
		i--
	}
	return AIValue{}, false
}

// HRI returns the Human-Readable Interpretation of the extracted AI data,
// one line per AI in encounter order, optionally prefixed with data titles.
func (p *Processor) HRI() []string {
	var hri []string
	for i := range p.aiData {
		x := &p.aiData[i]
		if x.Kind != KindAI {
			continue
		}
		line := "(" + p.spanStr(x.AI) + ") " + p.spanStr(x.Value)
		if p.IncludeDataTitlesInHRI && x.Entry.Title != "" {
			line = x.Entry.Title + " " + line
		}
		hri = append(hri, line)
	}
	return hri
}

// IgnoredQueryParams returns the Digital Link query parameters that were
// preserved verbatim rather than extracted as AI data, in encounter order.
func (p *Processor) IgnoredQueryParams() []string {
	return p.ignored
}

func (p *Processor) spanStr(s Span) string {
	return p.data[s.Start : s.Start+s.Len]
}

func (p *Processor) addAI(x ExtractedAI) *Error {
	count := 0
	for i := range p.aiData {
		if p.aiData[i].Kind == KindAI {
			count++
		}
	}
	if x.Kind == KindAI && count >= MaxAIs {
		return syntaxErrf("too many AIs: at most %d are supported", MaxAIs)
	}
	p.aiData = append(p.aiData, x)
	p.sorted = nil
	return nil
}

// sortedIndex returns the indexes of the KindAI entries ordered
// lexicographically by AI code then value, rebuilding it if stale.
func (p *Processor) sortedIndex() []int {
	if p.sorted != nil {
		return p.sorted
	}
	idx := make([]int, 0, len(p.aiData))
	for i := range p.aiData {
		if p.aiData[i].Kind == KindAI {
			idx = append(idx, i)
		}
	}
	sort.Slice(idx, func(a, b int) bool {
		ai, aj := p.aiData[idx[a]], p.aiData[idx[b]]
		if c := strings.Compare(p.spanStr(ai.AI), p.spanStr(aj.AI)); c != 0 {
			return c < 0
		}
		return p.spanStr(ai.Value) < p.spanStr(aj.Value)
	})
	p.sorted = idx
	return idx
}

// existsInData reports whether an extracted AI matches the template: a
// numeric prefix optionally followed by wildcard characters, where the
// template's total length is the required AI code length ("310n" matches
// any four-digit AI beginning "310"). An AI equal to excludeAI is never a
// match, so entries can test templates drawn from their own attributes
// without matching themselves.
func (p *Processor) existsInData(template, excludeAI string) bool {
	prefixLen := 0
	for prefixLen < len(template) &&
		template[prefixLen] >= '0' && template[prefixLen] <= '9' {
		prefixLen++
	}
	prefix := template[:prefixLen]

	idx := p.sortedIndex()
	lo := sort.Search(len(idx), func(i int) bool {
		return p.spanStr(p.aiData[idx[i]].AI) >= prefix
	})
	for i := lo; i < len(idx); i++ {
		ai := p.spanStr(p.aiData[idx[i]].AI)
		if !strings.HasPrefix(ai, prefix) {
			break
		}
		if len(ai) == len(template) && ai != excludeAI {
			return true
		}
	}
	return false
}

// firstAI returns the first extracted KindAI entry with the given AI code,
// or nil.
func (p *Processor) firstAI(ai string) *ExtractedAI {
	for i := range p.aiData {
		if p.aiData[i].Kind == KindAI && p.spanStr(p.aiData[i].AI) == ai {
			return &p.aiData[i]
		}
	}
	return nil
}

// errOrNil converts a typed error to the error interface without wrapping
// a nil pointer in a non-nil interface.
func errOrNil(e *Error) error {
	if e == nil {
		return nil
	}
	return e
}

// requireAIData returns an error unless the processor holds extracted AI
// data from a previous successful operation.
func (p *Processor) requireAIData() error {
	for i := range p.aiData {
		if p.aiData[i].Kind == KindAI {
			return nil
		}
	}
	return errors.New("no AI data has been processed")
}
