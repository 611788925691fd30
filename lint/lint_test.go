/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package lint

import (
	"fmt"
	"testing"

	"github.com/intel/rsp-sw-toolkit-im-suite-expect"
)

func TestCheckDigit(t *testing.T) {
	type csumTest struct {
		name, value string
		bad         bool
	}

	pass := func(n, v string) csumTest {
		return csumTest{name: n, value: v}
	}

	fail := func(n, v string) csumTest {
		return csumTest{name: n, value: v, bad: true}
	}

	for i, tt := range []csumTest{
		pass("GTIN-14", "12345678901231"),
		pass("GTIN-14", "12312312312333"),
		pass("GTIN-13", "2112345678900"),
		pass("GTIN-8", "02345673"),
		pass("zero-padded GTIN-8", "00000002345673"),
		pass("SSCC", "106141412345678908"),
		pass("all zeros", "00"),

		fail("corrupted final digit", "12345678901230"),
		fail("corrupted inner digit", "12345678901131"),
		fail("too short", "1"),
		fail("empty", ""),
		fail("non-digit", "1234567890123X"),
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)
			err := CheckDigit(tt.value)
			if tt.bad {
				w.As(tt.value).ShouldBeTrue(err != nil)
			} else {
				w.As(tt.value).ShouldBeTrue(err == nil)
			}
		})
	}
}

func TestCheckDigit_recompute(t *testing.T) {
	w := expect.WrapT(t)

	// exactly one digit completes any prefix
	const prefix = "211234567890"
	valid := 0
	for d := byte('0'); d <= '9'; d++ {
		if CheckDigit(prefix+string(d)) == nil {
			valid++
			w.As("recomputed digit").ShouldBeEqual(d, byte('0'))
		}
	}
	w.ShouldBeEqual(valid, 1)
}

func TestDates(t *testing.T) {
	type dateTest struct {
		name, value string
		day00, bad  bool
	}

	pass := func(n, v string) dateTest {
		return dateTest{name: n, value: v}
	}

	day00 := func(n, v string) dateTest {
		return dateTest{name: n, value: v, day00: true}
	}

	fail := func(n, v string) dateTest {
		return dateTest{name: n, value: v, bad: true}
	}

	for i, tt := range []dateTest{
		pass("christmas", "991225"),
		pass("leap day 2000", "000229"),
		pass("leap day 2024", "240229"),
		pass("last of january", "250131"),
		day00("unspecified day", "991200"),
		day00("unspecified day in february", "990200"),

		fail("day zero", "991200"),
		fail("1999 is not a leap year", "990229"),
		fail("month 13", "991301"),
		fail("month zero", "990025"),
		fail("32nd of january", "250132"),
		fail("31st of april", "250431"),
		fail("five digits", "99122"),
		fail("non-digit", "99122X"),
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)
			var err *Error
			if tt.day00 {
				err = YYMMD0(tt.value)
			} else {
				err = YYMMDD(tt.value)
			}
			if tt.bad {
				w.As(tt.value).ShouldBeTrue(err != nil)
			} else {
				w.As(tt.value).ShouldBeTrue(err == nil)
			}
		})
	}
}

func TestCharSets(t *testing.T) {
	w := expect.WrapT(t)

	w.As("cset82 typical").ShouldBeTrue(CSet82("ABCdef/123-?:") == nil)
	w.As("cset82 space").ShouldBeTrue(CSet82("AB C") != nil)
	w.As("cset82 non-ASCII").ShouldBeTrue(CSet82("caf\xc3\xa9") != nil)

	w.As("cset39 typical").ShouldBeTrue(CSet39("AB-1#2/3") == nil)
	w.As("cset39 lowercase").ShouldBeTrue(CSet39("abc") != nil)

	w.As("cset64 typical").ShouldBeTrue(CSet64("Qk_fD0-xA==") == nil)
	w.As("cset64 plus").ShouldBeTrue(CSet64("Qk+f") != nil)

	w.As("numeric").ShouldBeTrue(Numeric("0123456789") == nil)
	w.As("numeric letter").ShouldBeTrue(Numeric("12A4") != nil)

	// the reported span points at the offending byte
	err := CSet82("AB\x07CD")
	w.StopOnMismatch().ShouldBeTrue(err != nil)
	w.ShouldBeEqual(err.Offset, 2)
	w.ShouldBeEqual(err.Length, 1)
}

func TestISOCodes(t *testing.T) {
	w := expect.WrapT(t)

	w.As("US country").ShouldBeTrue(ISO3166("840") == nil)
	w.As("bogus country").ShouldBeTrue(ISO3166("999") != nil)
	w.As("short country").ShouldBeTrue(ISO3166("84") != nil)

	w.As("euro").ShouldBeTrue(ISO4217("978") == nil)
	w.As("bogus currency").ShouldBeTrue(ISO4217("001") != nil)
}

func TestFieldLinters(t *testing.T) {
	w := expect.WrapT(t)

	w.As("midnight").ShouldBeTrue(HHMM("0000") == nil)
	w.As("last minute").ShouldBeTrue(HHMM("2359") == nil)
	w.As("hour 24").ShouldBeTrue(HHMM("2400") != nil)
	w.As("minute 60").ShouldBeTrue(HHMM("1060") != nil)

	w.As("no leading zero").ShouldBeTrue(NoZeroPrefix("123") == nil)
	w.As("bare zero").ShouldBeTrue(NoZeroPrefix("0") == nil)
	w.As("leading zero").ShouldBeTrue(NoZeroPrefix("01") != nil)

	w.As("piece 1 of 2").ShouldBeTrue(PieceOfTotal("0102") == nil)
	w.As("piece 2 of 2").ShouldBeTrue(PieceOfTotal("0202") == nil)
	w.As("piece 3 of 2").ShouldBeTrue(PieceOfTotal("0302") != nil)
	w.As("piece zero").ShouldBeTrue(PieceOfTotal("0002") != nil)
	w.As("total zero").ShouldBeTrue(PieceOfTotal("0100") != nil)
	w.As("odd digits").ShouldBeTrue(PieceOfTotal("010") != nil)

	w.As("key").ShouldBeTrue(GS1Key("1234A") == nil)
	w.As("short key").ShouldBeTrue(GS1Key("123") != nil)
	w.As("non-digit prefix").ShouldBeTrue(GS1Key("12X4A") != nil)
}

func TestRegistry(t *testing.T) {
	w := expect.WrapT(t)

	for _, name := range Names() {
		fn, ok := Lookup(name)
		w.As(name).ShouldBeTrue(ok)
		w.As(name).ShouldBeTrue(fn != nil)
	}
	_, ok := Lookup("nosuchlinter")
	w.ShouldBeFalse(ok)
}
