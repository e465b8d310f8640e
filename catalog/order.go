// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// nameOrder compares display names case-insensitively using the root
// locale collation, then case-sensitively, then by identity so the order is
// total. Collators are not safe for concurrent use; create one per sort.
type nameOrder struct {
	folded *collate.Collator
	exact  *collate.Collator
}

func newNameOrder() *nameOrder {
	return &nameOrder{
		folded: collate.New(language.Und, collate.IgnoreCase),
		exact:  collate.New(language.Und),
	}
}

func (o *nameOrder) compare(aName, aID, bName, bID string) int {
	if c := o.folded.CompareString(aName, bName); c != 0 {
		return c
	}
	if c := o.exact.CompareString(aName, bName); c != 0 {
		return c
	}
	return strings.Compare(aID, bID)
}

// sortByName sorts items in place by the (name, id) pair key returns.
func sortByName[T any](o *nameOrder, items []T, key func(T) (name, id string)) {
	slices.SortStableFunc(items, func(a, b T) int {
		an, aid := key(a)
		bn, bid := key(b)
		return o.compare(an, aid, bn, bid)
	})
}
