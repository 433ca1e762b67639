package relational

import "strings"

var identReplacer = strings.NewReplacer("-", "_", ".", "_", " ", "_", ":", "_")

// Normalizer cleans schema identifiers for SQL use. When disabled it only
// trims leading whitespace, leaving names as-is.
type Normalizer struct {
	enabled bool
}

func NewNormalizer(enabled bool) *Normalizer {
	return &Normalizer{enabled: enabled}
}

func (n *Normalizer) Clean(name string) string {
	name = strings.TrimLeft(name, " \t\r\n")
	if !n.enabled || name == "" {
		return name
	}
	return identReplacer.Replace(name)
}

// JoinSuffix concatenates an identifier with a suffix, inserting a separator
// when the base ends in a digit. Without the separator, "Table1"+"Id" and
// "Table"+"1Id" would collide.
func JoinSuffix(base, suffix string) string {
	if base == "" {
		return suffix
	}
	if last := base[len(base)-1]; last >= '0' && last <= '9' {
		return base + "_" + suffix
	}
	return base + suffix
}
