/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package gs1 processes GS1 Application Identifier data between the forms
// it travels in: bracketed element strings, canonical (unbracketed) element
// strings, GS1 Digital Link URIs, and raw barcode reader transmissions.
//
// The following are links to the GS1 General Specifications, the GS1
// Digital Link standard, and the GS1 Barcode Syntax Resource; this code is
// based on these guides and does its best to both follow their guidelines
// and properly implement their definitions.
// - https://www.gs1.org/sites/default/files/docs/barcodes/GS1_General_Specifications.pdf
// - https://www.gs1.org/standards/gs1-digital-link
// - https://www.gs1.org/standards/barcodes/syntax
//
// Application Identifier data is confusing because the same data appears in
// several shapes that all mean the same thing. A human reads "(01)09521234
// 543213(10)ABC123" beneath a barcode, but no barcode carries those
// brackets: the symbol carries the digits and an FNC1 mechanism marking
// where variable-length fields end, a reader transmits that with GS control
// bytes and an AIM symbology identifier bolted on front, and a Digital Link
// spreads the very same fields across the path and query of an https URI.
// None of these forms is the data; they are renderings of one underlying
// list of (AI, value) pairs.
//
// This package therefore gravitates towards a single canonical rendering:
// the unbracketed element string, in which '^' stands for FNC1. Every
// input form -- bracketed, canonical, Digital Link, scan data -- is parsed
// into that canonical string plus an extracted list of AI spans into it,
// and every output form is regenerated from the same. Converting between
// any two forms is parse-then-regenerate, so a conversion cannot drift
// from what validation saw. The one documented loss is the Digital Link
// stem: a URI parsed from "https://example.com/01/..." regenerates under
// whatever stem the caller asks for, because the original stem carries no
// AI data.
//
// Validation happens in three layers. Each AI value is split into its
// table-defined components, each component checked against its character
// set and its linters (package lint). Then the record as a whole passes
// the cross-AI checks: mutual exclusion, requisite associations, repeat
// consistency, and the digital-signature serialization requirement. The
// layering matters because barcode data is routinely concatenated from
// several symbols on one label; an AI that is valid alone may still be
// invalid next to its neighbours.
//
// A Processor owns all of its buffers and derived state, so one instance
// per goroutine needs no locking; instances share nothing but the
// (immutable once built) AI table.
package gs1
