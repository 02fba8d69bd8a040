package transform

import (
	"github.com/confluentinc/data-tools/internal/record"
	"github.com/confluentinc/data-tools/internal/sanitize"
)

// CleanKeys returns a copy of rec with every key sanitized and filtered
// fields removed. Values are never modified; nested objects are cleaned
// recursively with dot-joined parent paths ("metric.pod-name") used for
// policy matching.
//
// Two keys in the same record may sanitize to the same name ("user.id" and
// "user-id" both become "user_id"). The last occurrence wins, keeping the
// position of the first.
func CleanKeys(rec *record.Record, policy *sanitize.Policy) *record.Record {
	return cleanKeys(rec, policy, "")
}

func cleanKeys(rec *record.Record, policy *sanitize.Policy, parentKey string) *record.Record {
	clean := record.New()

	for _, f := range rec.Fields() {
		fullKey := f.Key
		if parentKey != "" {
			fullKey = parentKey + "." + f.Key
		}

		if !policy.Retain(fullKey) {
			continue
		}

		value := f.Value
		if nested, ok := value.(*record.Record); ok {
			value = cleanKeys(nested, policy, fullKey)
		}

		clean.Set(sanitize.Key(f.Key), value)
	}

	return clean
}
