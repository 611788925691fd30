/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"fmt"
	"testing"

	"github.com/intel/rsp-sw-toolkit-im-suite-expect"
)

func TestSetScanData(t *testing.T) {
	type scanTest struct {
		name, input string
		pairs       []AIValue
		plain       string
		bad         bool
	}

	pass := func(n, in, plain string, pairs ...AIValue) scanTest {
		return scanTest{name: n, input: in, plain: plain, pairs: pairs}
	}

	fail := func(n, in string) scanTest {
		return scanTest{name: n, input: in, bad: true}
	}

	for i, tt := range []scanTest{
		pass("GS1-128", "]C1011231231231233310LOT1", "",
			AIValue{AI: "01", Value: "12312312312333"},
			AIValue{AI: "10", Value: "LOT1"}),
		pass("GS1-128 with GS", "]C1011231231231233310LOT1\x1d99XYZ", "",
			AIValue{AI: "01", Value: "12312312312333"},
			AIValue{AI: "10", Value: "LOT1"},
			AIValue{AI: "99", Value: "XYZ"}),
		pass("DataBar", "]e00112312312312333", "",
			AIValue{AI: "01", Value: "12312312312333"}),
		pass("GS1 Data Matrix", "]d20112312312312333", "",
			AIValue{AI: "01", Value: "12312312312333"}),
		pass("GS1 QR", "]Q30112312312312333", "",
			AIValue{AI: "01", Value: "12312312312333"}),
		pass("EAN-13", "]E02112345678900", "2112345678900"),
		pass("UPC-A", "]E0614141007349", "614141007349"),
		pass("UPC-E", "]E001234565", "01234565"),
		pass("EAN-8", "]E402345673", "02345673"),
		pass("EAN-13 with composite", "]E02112345678900|]e099XYZ", "2112345678900",
			AIValue{AI: "99", Value: "XYZ"}),
		pass("non-GS1 QR", "]Q1HELLO", "HELLO"),
		pass("non-GS1 Data Matrix", "]d1HELLO", "HELLO"),

		fail("no identifier", "0112312312312333"),
		fail("unsupported identifier", "]zz123"),
		fail("identifier only", "]C1"),
		fail("raw separator in AI data", "]C101^"),
		fail("EAN-13 bad parity", "]E02112345678901"),
		fail("EAN-13 wrong digit count", "]E021123456789"),
		fail("EAN-8 wrong digit count", "]E4023456731"),
		fail("UPC-E without leading zero", "]E011234565"),
		fail("EAN primary not numeric", "]E0211234567890X"),
		fail("bad composite introducer", "]E02112345678900|99XYZ"),
		fail("unescaped separator in plain data", "]Q1^HELLO"),
		fail("plain Digital Link that does not parse", "]Q1https://a/10/LOT1"),
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)
			p := newTestProcessor(t)

			err := p.SetScanData(tt.input)
			if tt.bad {
				w.Logf("%+v", err)
				w.As(tt.input).ShouldFail(err)
				return
			}
			w.As(tt.input).ShouldSucceed(err)
			w.ShouldBeEqual(p.AIPairs(), tt.pairs)
			if tt.plain != "" {
				w.As("plain primary").ShouldBeEqual(p.DataString()[:len(tt.plain)], tt.plain)
			}
		})
	}
}

func TestScanDataRoundTrip(t *testing.T) {
	type rtTest struct {
		name, element string
		sym           Symbology
		scan          string
	}

	for i, tt := range []rtTest{
		{"GS1-128", "(01)12312312312333(10)LOT1", GS1128,
			"]C1011231231231233310LOT1"},
		{"GS1-128 two variable AIs", "(01)12312312312333(10)LOT1(99)XYZ", GS1128,
			"]C1011231231231233310LOT1\x1d99XYZ"},
		{"DataBar Expanded", "(01)12312312312333(99)XYZ", DataBarExpanded,
			"]e0011231231231233399XYZ"},
		{"Data Matrix", "(01)12312312312333", DataMatrix,
			"]d20112312312312333"},
		{"QR", "(01)12312312312333", QR,
			"]Q30112312312312333"},
		{"DotCode", "(01)12312312312333", DotCode,
			"]J10112312312312333"},
		{"composite after fixed AI", "(01)12312312312333|(99)XYZ", GS1128,
			"]C10112312312312333|]e0\x1d99XYZ"},
		{"composite after variable AI", "(01)12312312312333(10)LOT1|(99)XYZ", GS1128,
			"]C1011231231231233310LOT1|]e0\x1d99XYZ"},
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)
			p := newTestProcessor(t)

			w.ShouldSucceed(p.SetElementString(tt.element))
			scan := w.ShouldHaveResult(p.ScanData(tt.sym)).(string)
			w.As("generated").ShouldBeEqual(scan, tt.scan)

			pairs := p.AIPairs()
			w.As("reparse").ShouldSucceed(p.SetScanData(scan))
			w.ShouldBeEqual(p.AIPairs(), pairs)

			regen := w.ShouldHaveResult(p.ElementString()).(string)
			w.As("element string survives").ShouldBeEqual(regen, tt.element)
		})
	}
}

func TestEANUPCScanData(t *testing.T) {
	w := expect.WrapT(t)
	p := newTestProcessor(t)

	w.ShouldSucceed(p.SetPlainData("2112345678900"))
	w.ShouldBeEqual(w.ShouldHaveResult(p.ScanData(EAN13)).(string),
		"]E02112345678900")

	_, err := p.ScanData(UPCA)
	w.As("wrong digit count for UPC-A").ShouldFail(err)
	_, err = p.ScanData(GS1128)
	w.As("plain data cannot ride GS1-128").ShouldFail(err)

	w.ShouldSucceed(p.SetPlainData("02345673"))
	w.ShouldBeEqual(w.ShouldHaveResult(p.ScanData(EAN8)).(string), "]E402345673")
	w.ShouldBeEqual(w.ShouldHaveResult(p.ScanData(UPCE)).(string), "]E002345673")

	// composite component rides behind the EAN/UPC primary
	w.ShouldSucceed(p.SetPlainData("2112345678900|^99XYZ"))
	w.ShouldBeEqual(p.AIPairs(), []AIValue{{AI: "99", Value: "XYZ"}})
	w.ShouldBeEqual(w.ShouldHaveResult(p.ScanData(EAN13)).(string),
		"]E02112345678900|]e099XYZ")
	w.ShouldBeEqual(p.DataString(), "2112345678900|^99XYZ")
}

func TestPlainDataDigitalLink(t *testing.T) {
	w := expect.WrapT(t)
	p := newTestProcessor(t)

	const uri = "https://a/01/12312312312333"
	w.ShouldSucceed(p.SetScanData("]Q1" + uri))
	w.As("URI is the data string").ShouldBeEqual(p.DataString(), uri)
	w.As("AI data is extracted").ShouldBeEqual(p.AIPairs(), []AIValue{
		{AI: "01", Value: "12312312312333"},
	})
	w.ShouldBeEqual(w.ShouldHaveResult(p.ScanData(QR)).(string), "]Q1"+uri)

	// non-URI plain data carries no AI data
	w.ShouldSucceed(p.SetPlainData("HELLO"))
	w.ShouldHaveLength(p.AIPairs(), 0)
	w.ShouldBeEqual(p.DataString(), "HELLO")
	w.ShouldBeEqual(w.ShouldHaveResult(p.ScanData(DataMatrix)).(string), "]d1HELLO")

	w.As("URI scheme must parse").ShouldFail(p.SetPlainData("https://a/nokey"))
}
