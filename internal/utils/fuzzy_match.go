package utils

import (
	"sort"
	"strings"
)

// amenityAliases maps each amenity feature column to the spellings listing
// sites and users commonly use for it
var amenityAliases = map[string][]string{
	"dishwasher":       {"dishwasher", "dish washer"},
	"washer":           {"washer", "washing machine", "washer/dryer"},
	"gym":              {"gym", "gymnasium", "fitness", "fitness center", "exercise equipment"},
	"hair_dryer":       {"hair dryer", "hairdryer", "blow dryer"},
	"indoor_fireplace": {"indoor fireplace", "fireplace", "wood burning"},
	"air_conditioning": {"air conditioning", "air conditioner", "aircon", "a/c", "ac", "central air"},
	"microwave":        {"microwave"},
	"pool":             {"pool", "swimming pool"},
	"hot_water":        {"hot water", "water heater"},
	"refrigerator":     {"refrigerator", "fridge", "mini fridge"},
	"coffee_maker":     {"coffee maker", "coffee machine", "espresso machine", "nespresso", "keurig"},
}

// aliasExclusions are words that stop a column from matching a label that
// otherwise contains one of its aliases
var aliasExclusions = map[string][]string{
	"hot_water": {"kettle"},
}

// aliasOrder lists every alias longest first so the most specific alias
// decides a label like "central air conditioning".
var aliasOrder = buildAliasOrder()

type aliasEntry struct {
	alias  string
	column string
}

func buildAliasOrder() []aliasEntry {
	var entries []aliasEntry
	for column, aliases := range amenityAliases {
		for _, a := range aliases {
			entries = append(entries, aliasEntry{alias: a, column: column})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].alias) != len(entries[j].alias) {
			return len(entries[i].alias) > len(entries[j].alias)
		}
		return entries[i].alias < entries[j].alias
	})
	return entries
}

// NormalizeAmenity maps a free-form amenity label onto its feature column.
// Matching is case-insensitive: exact aliases first, then aliases contained in
// the label as whole words. Labels naming something else that merely mentions
// an amenity ("hot water kettle") do not match.
func NormalizeAmenity(label string) (string, bool) {
	l := normalizeLabel(label)
	if l == "" {
		return "", false
	}

	if _, ok := amenityAliases[strings.ReplaceAll(l, " ", "_")]; ok {
		return strings.ReplaceAll(l, " ", "_"), true
	}
	for _, e := range aliasOrder {
		if l == e.alias {
			return e.column, true
		}
	}
	for _, e := range aliasOrder {
		if containsWord(l, e.alias) && !excluded(l, e.column) {
			return e.column, true
		}
	}
	return "", false
}

func excluded(label, column string) bool {
	for _, w := range aliasExclusions[column] {
		if containsWord(label, w) {
			return true
		}
	}
	return false
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}

// containsWord reports whether phrase occurs in s on word boundaries
func containsWord(s, phrase string) bool {
	for start := 0; start <= len(s)-len(phrase); {
		i := strings.Index(s[start:], phrase)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(phrase)
		if (i == 0 || s[i-1] == ' ') && (end == len(s) || s[end] == ' ') {
			return true
		}
		start = i + 1
	}
	return false
}
