package restree

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var pathCollator = collate.New(language.Und, collate.IgnoreCase)

// SortResourceNodes orders resource nodes for display: folders before
// files, then by case-insensitive path collation. The sort is stable so
// equal-ranking nodes keep their insertion order.
func SortResourceNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.Kind != b.Kind && (a.Kind == KindFolder || b.Kind == KindFolder) {
			return a.Kind == KindFolder
		}
		return pathCollator.CompareString(a.Path, b.Path) < 0
	})
}
