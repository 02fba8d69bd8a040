package sanitize

import (
	"regexp"
	"sort"
	"strings"
)

// invalidKeyChars matches every character BigQuery rejects in a column name.
var invalidKeyChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// Key replaces every invalid character in key with an underscore.
// Deterministic and idempotent: already-valid keys (including the empty key)
// are returned unchanged, and Key(Key(k)) == Key(k) for all k.
func Key(key string) string {
	return invalidKeyChars.ReplaceAllString(key, "_")
}

// Valid reports whether key contains only characters BigQuery accepts.
func Valid(key string) bool {
	return !invalidKeyChars.MatchString(key)
}

// Policy is the immutable field-filtering rule set for a run: which
// dot-joined field paths to keep and which to drop. Character replacement
// itself is fixed (see Key); the policy only controls field retention.
//
// The zero-value policy retains everything.
type Policy struct {
	selects  map[string]struct{}
	excludes map[string]struct{}
}

// NewPolicy builds a Policy from field specs. A spec is a dot-joined field
// path ("metric.tenant") to select; a leading "-" drops the field instead.
// When any select specs are present, only selected fields are retained.
func NewPolicy(fields []string) *Policy {
	p := &Policy{
		selects:  make(map[string]struct{}),
		excludes: make(map[string]struct{}),
	}
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.HasPrefix(f, "-") {
			p.excludes[strings.TrimLeft(f, "-")] = struct{}{}
		} else {
			p.selects[f] = struct{}{}
		}
	}
	return p
}

// Retain reports whether the field at fullKey (dot-joined, pre-sanitization)
// survives filtering. Excludes are checked after selects, so a field that is
// both selected and excluded is dropped.
func (p *Policy) Retain(fullKey string) bool {
	if p == nil {
		return true
	}
	if len(p.selects) > 0 {
		if _, ok := p.selects[fullKey]; !ok {
			return false
		}
	}
	if _, ok := p.excludes[fullKey]; ok {
		return false
	}
	return true
}

// SelectFields returns the selected field paths, sorted.
func (p *Policy) SelectFields() []string { return sortedKeys(p.selects) }

// ExcludeFields returns the excluded field paths, sorted.
func (p *Policy) ExcludeFields() []string { return sortedKeys(p.excludes) }

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
