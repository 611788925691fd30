/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"fmt"
	"strings"

	"github.com/intel/rsp-sw-toolkit-im-suite-gs1syntax/lint"
)

// Symbology selects the carrier symbology for scan data generation.
type Symbology int

const (
	GS1128 Symbology = iota
	DataBarOmni
	DataBarLimited
	DataBarExpanded
	EAN13
	EAN8
	UPCA
	UPCE
	QR
	DataMatrix
	DotCode
)

var symbologyNames = map[Symbology]string{
	GS1128:          "GS1-128",
	DataBarOmni:     "GS1 DataBar Omnidirectional",
	DataBarLimited:  "GS1 DataBar Limited",
	DataBarExpanded: "GS1 DataBar Expanded",
	EAN13:           "EAN-13",
	EAN8:            "EAN-8",
	UPCA:            "UPC-A",
	UPCE:            "UPC-E",
	QR:              "QR Code",
	DataMatrix:      "Data Matrix",
	DotCode:         "DotCode",
}

func (s Symbology) String() string {
	if name, ok := symbologyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("symbology(%d)", int(s))
}

type symMode int

const (
	modePlain symMode = iota
	modeAI
	modeEANUPC
)

// symIDModes maps the 2-character AIM symbology identifier following ']'
// in reader transmissions to a payload interpretation.
var symIDModes = map[string]symMode{
	"C1": modeAI,     // GS1-128
	"d1": modePlain,  // Data Matrix, non-GS1
	"d2": modeAI,     // Data Matrix, GS1
	"e0": modeAI,     // GS1 DataBar family, GS1 Composite
	"E0": modeEANUPC, // EAN-13, UPC-A, UPC-E
	"E4": modeEANUPC, // EAN-8
	"J0": modePlain,  // DotCode, non-GS1
	"J1": modeAI,     // DotCode, GS1
	"Q1": modePlain,  // QR Code, non-GS1
	"Q3": modeAI,     // QR Code, GS1
}

// SetScanData processes a raw reader transmission: a ']' plus a
// 2-character AIM symbology identifier, then the payload. AI-mode payloads
// carry GS (0x1D) control bytes where the canonical form carries the
// separator character; "|]e0" introduces the composite component tail of
// an EAN/UPC-family symbol.
func (p *Processor) SetScanData(value string) error {
	p.clear()
	if len(value) > MaxDataLength {
		return errOrNil(syntaxErrf("data exceeds the maximum length of %d", MaxDataLength))
	}
	if len(value) < 4 || value[0] != ']' {
		return errOrNil(syntaxErrf("scan data must begin with an AIM symbology identifier"))
	}
	id, payload := value[1:3], value[3:]
	mode, ok := symIDModes[id]
	if !ok {
		return errOrNil(syntaxErrf("unsupported symbology identifier ]%s", id))
	}

	var perr *Error
	switch mode {
	case modeAI:
		perr = p.setScanAI(payload)
	case modeEANUPC:
		perr = p.setScanEANUPC(id, payload)
	default:
		perr = p.setScanPlain(payload)
	}
	if perr != nil {
		p.clear()
		return perr
	}
	return nil
}

func (p *Processor) setScanAI(payload string) *Error {
	out := make([]byte, 0, len(payload)+1)
	out = append(out, Separator)
	for i := 0; i < len(payload); {
		switch payload[i] {
		case Separator:
			return syntaxErrf("scan data may not contain %q; GS (0x1D) stands for it",
				Separator)
		case gsChar:
			out = append(out, Separator)
			i++
		case CompositeDelim:
			if !strings.HasPrefix(payload[i+1:], "]e0") {
				return syntaxErrf("a composite component must be introduced by %q",
					string(CompositeDelim)+"]e0")
			}
			out = append(out, CompositeDelim)
			i += 4
		default:
			out = append(out, payload[i])
			i++
		}
	}
	p.data = string(out)
	if perr := p.processCanonical(p.data, true); perr != nil {
		return perr
	}
	return p.crossValidate()
}

func (p *Processor) setScanEANUPC(id, payload string) *Error {
	primary := payload
	comp := ""
	hasCC := false
	if d := strings.IndexByte(payload, CompositeDelim); d >= 0 {
		if !strings.HasPrefix(payload[d+1:], "]e0") {
			return syntaxErrf("a composite component must be introduced by %q",
				string(CompositeDelim)+"]e0")
		}
		primary, comp, hasCC = payload[:d], payload[d+4:], true
	}

	if !allDigits(primary) {
		return syntaxErrf("EAN/UPC primary data must be numeric")
	}
	switch id {
	case "E4":
		if len(primary) != 8 {
			return syntaxErrf("]E4 carries an 8 digit EAN-8, not %d digits", len(primary))
		}
	default: // E0
		switch len(primary) {
		case 13, 12:
		case 8:
			// UPC-E, the most constrained member of the family
			if primary[0] != '0' {
				return syntaxErrf("an 8 digit ]E0 primary is a UPC-E and must begin with 0")
			}
		default:
			return syntaxErrf("]E0 carries 13, 12, or 8 digits, not %d", len(primary))
		}
	}
	if le := lint.CheckDigit(primary); le != nil {
		return syntaxErrf("EAN/UPC primary has incorrect parity: %s", le.Msg)
	}
	p.plain = primary

	if hasCC {
		out := make([]byte, 0, len(comp)+1)
		out = append(out, Separator)
		for i := 0; i < len(comp); i++ {
			switch comp[i] {
			case Separator:
				return syntaxErrf("scan data may not contain %q; GS (0x1D) stands for it",
					Separator)
			case gsChar:
				out = append(out, Separator)
			default:
				out = append(out, comp[i])
			}
		}
		p.data = string(out)
		p.plainCC = true
		if perr := p.processCanonical(p.data, true); perr != nil {
			return perr
		}
		return p.crossValidate()
	}
	return nil
}

func (p *Processor) setScanPlain(payload string) *Error {
	if strings.HasPrefix(payload, "\\"+string(Separator)) {
		payload = payload[1:]
	} else if payload != "" && payload[0] == Separator {
		return syntaxErrf("plain data beginning with %q must be escaped with a backslash",
			Separator)
	}
	if payload == "" {
		return syntaxErrf("scan data payload is empty")
	}
	p.plain = payload

	// plain data that looks like a Digital Link is parsed as one so its
	// AI data is available downstream; a bad URI is fatal
	if hasURIScheme(payload) {
		return p.parseDigitalLink(payload)
	}
	return nil
}

// SetPlainData accepts non-AI data. A leading "\^" escape stands for a
// literal leading separator character. Data with an http(s) scheme must
// parse as a Digital Link URI. A "|" followed by canonical AI data marks
// the composite component of an EAN/UPC-family primary.
func (p *Processor) SetPlainData(value string) error {
	p.clear()
	if len(value) > MaxDataLength {
		return errOrNil(syntaxErrf("data exceeds the maximum length of %d", MaxDataLength))
	}

	if d := strings.IndexByte(value, CompositeDelim); d >= 0 {
		primary, comp := value[:d], value[d+1:]
		if primary == "" {
			p.clear()
			return errOrNil(syntaxErrf("composite data has no primary component"))
		}
		if comp == "" || comp[0] != Separator {
			p.clear()
			return errOrNil(syntaxErrf("a composite component must begin with the separator %q",
				Separator))
		}
		p.plain = primary
		p.plainCC = true
		p.data = comp
		if perr := p.processCanonical(comp, true); perr != nil {
			p.clear()
			return perr
		}
		if perr := p.crossValidate(); perr != nil {
			p.clear()
			return perr
		}
		return nil
	}

	if perr := p.setScanPlain(value); perr != nil {
		p.clear()
		return perr
	}
	return nil
}

// ScanData generates the reader transmission that a scan of the given
// symbology carrying the current data would produce.
func (p *Processor) ScanData(sym Symbology) (string, error) {
	switch sym {
	case EAN13:
		return p.eanUPCScanData("]E0", 13, false)
	case UPCA:
		return p.eanUPCScanData("]E0", 12, false)
	case UPCE:
		return p.eanUPCScanData("]E0", 8, true)
	case EAN8:
		return p.eanUPCScanData("]E4", 8, false)
	case GS1128:
		return p.aiScanData("]C1")
	case DataBarOmni, DataBarLimited, DataBarExpanded:
		return p.aiScanData("]e0")
	case DataMatrix:
		return p.autoScanData("]d2", "]d1")
	case QR:
		return p.autoScanData("]Q3", "]Q1")
	case DotCode:
		return p.autoScanData("]J1", "]J0")
	}
	return "", errOrNil(syntaxErrf("unsupported symbology %d", int(sym)))
}

func (p *Processor) eanUPCScanData(id string, digits int, zeroLead bool) (string, error) {
	if p.plain == "" {
		return "", errOrNil(syntaxErrf("%s symbols carry plain numeric primary data", id))
	}
	if !allDigits(p.plain) || len(p.plain) != digits {
		return "", errOrNil(syntaxErrf("%s requires a %d digit numeric primary", id, digits))
	}
	if zeroLead && p.plain[0] != '0' {
		return "", errOrNil(syntaxErrf("a UPC-E primary must begin with 0"))
	}
	if le := lint.CheckDigit(p.plain); le != nil {
		return "", errOrNil(syntaxErrf("EAN/UPC primary has incorrect parity: %s", le.Msg))
	}

	s := id + p.plain
	if p.plainCC {
		var b strings.Builder
		b.WriteString(s)
		b.WriteString(string(CompositeDelim) + "]e0")
		for i := 1; i < len(p.data); i++ {
			if p.data[i] == Separator {
				b.WriteByte(gsChar)
			} else {
				b.WriteByte(p.data[i])
			}
		}
		return b.String(), nil
	}
	return s, nil
}

func (p *Processor) aiScanData(id string) (string, error) {
	if p.plain != "" {
		return "", errOrNil(syntaxErrf("%s symbols carry AI data, not plain data", id))
	}
	if err := p.requireAIData(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(id)
	for i := 1; i < len(p.data); i++ {
		switch p.data[i] {
		case Separator:
			b.WriteByte(gsChar)
		case CompositeDelim:
			b.WriteString(string(CompositeDelim) + "]e0")
			// reader transmissions always carry a GS ahead of the
			// composite component
			if i+1 < len(p.data) && p.data[i+1] != Separator {
				b.WriteByte(gsChar)
			}
		default:
			b.WriteByte(p.data[i])
		}
	}
	return b.String(), nil
}

func (p *Processor) autoScanData(aiID, plainID string) (string, error) {
	if p.plain != "" {
		if p.plainCC {
			return "", errOrNil(syntaxErrf("a composite component requires an EAN/UPC symbology"))
		}
		payload := p.plain
		if payload[0] == Separator {
			payload = "\\" + payload
		}
		return plainID + payload, nil
	}
	return p.aiScanData(aiID)
}
