package content

import (
	"encoding/json"
	"sort"
	"strings"
)

// DefaultTier is the baseline difficulty used when no tier is specified
// and as the generic fallback key for tiered content.
const DefaultTier = "tier_3"

// TierText is a sentence field that is either a plain string or an object
// keyed by difficulty tier ("tier_1".."tier_3"). Content records predating
// tiered exercises use the plain form.
type TierText struct {
	plain  string
	tiered map[string]string
}

// UnmarshalJSON accepts a JSON string, a tier-keyed object, or null.
func (t *TierText) UnmarshalJSON(data []byte) error {
	t.plain = ""
	t.tiered = nil

	if string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &t.plain)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	t.tiered = make(map[string]string, len(m))
	for k, v := range m {
		var s string
		// Non-string tier values are skipped rather than failing the record.
		if err := json.Unmarshal(v, &s); err == nil {
			t.tiered[k] = s
		}
	}
	return nil
}

// MarshalJSON round-trips the original shape.
func (t TierText) MarshalJSON() ([]byte, error) {
	if t.tiered != nil {
		return json.Marshal(t.tiered)
	}
	return json.Marshal(t.plain)
}

// IsZero reports whether no text is present in any form.
func (t TierText) IsZero() bool {
	return t.plain == "" && len(t.tiered) == 0
}

// Select resolves the text for a tier. The fallback order is fixed: the
// normalized tier key, the raw tier key, the generic "tier_3"/"tier3" keys,
// then the first non-empty value in key order. A plain string always wins.
func (t TierText) Select(tier string) string {
	if t.plain != "" || t.tiered == nil {
		return t.plain
	}

	norm := tier
	if norm == "" {
		norm = DefaultTier
	}
	if !strings.HasPrefix(norm, "tier_") {
		norm = "tier_" + norm
	}

	for _, key := range []string{norm, tier, DefaultTier, "tier3"} {
		if key == "" {
			continue
		}
		if v, ok := t.tiered[key]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}

	keys := make([]string, 0, len(t.tiered))
	for k := range t.tiered {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.TrimSpace(t.tiered[k]) != "" {
			return t.tiered[k]
		}
	}
	return ""
}
