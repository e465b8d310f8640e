// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DescriptionBudget is the maximum rune length of a public description.
const DescriptionBudget = 200

// Ellipsis terminates truncated descriptions.
const Ellipsis = "…"

// Truncate shortens s to at most budget runes. Longer text is cut to
// budget-1 runes, trailing whitespace and ellipses at the cut are trimmed,
// and a single Ellipsis is appended, so the result can be shorter than
// budget.
func Truncate(s string, budget int) string {
	if budget <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= budget {
		return s
	}
	r := []rune(s)
	cut := strings.TrimRightFunc(string(r[:budget-1]), func(c rune) bool {
		return unicode.IsSpace(c) || c == '…'
	})
	return cut + Ellipsis
}

// Slugify derives a slug from a display name. Letters, marks and digits of
// any script are kept, lowercased where the script has case. Word boundaries
// are inserted at camel-case transitions, accents on Latin letters are
// stripped, and runs of other characters collapse into a single hyphen.
func Slugify(name string) string {
	in := []rune(foldLatinAccents(name))
	var b strings.Builder
	pendingSep := false
	for i, c := range in {
		if !isSlugRune(c) {
			pendingSep = b.Len() > 0
			continue
		}
		if i > 0 && b.Len() > 0 && isWordBoundary(in, i) {
			pendingSep = true
		}
		if pendingSep {
			b.WriteByte('-')
			pendingSep = false
		}
		b.WriteRune(unicode.ToLower(c))
	}
	return b.String()
}

// foldLatinAccents drops combining marks that follow a Latin base letter.
// Marks on other scripts are part of the letter ("й", "हि") and are kept.
func foldLatinAccents(name string) string {
	var b strings.Builder
	var base rune
	for _, c := range norm.NFD.String(name) {
		if unicode.Is(unicode.Mn, c) {
			if unicode.Is(unicode.Latin, base) {
				continue
			}
		} else {
			base = c
		}
		b.WriteRune(c)
	}
	return norm.NFC.String(b.String())
}

func isSlugRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || unicode.IsMark(c)
}

// isWordBoundary reports a camel-case transition before in[i]:
// "dataScience" and "HTMLParser" split before "S" and "P".
func isWordBoundary(in []rune, i int) bool {
	prev, cur := in[i-1], in[i]
	if !unicode.IsUpper(cur) || !isSlugRune(prev) {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	return unicode.IsUpper(prev) && i+1 < len(in) && unicode.IsLower(in[i+1])
}
