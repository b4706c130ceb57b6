package content

import (
	"encoding/json"
	"testing"
)

func TestTierText_UnmarshalPlainString(t *testing.T) {
	var tt TierText
	if err := json.Unmarshal([]byte(`"The apple is red."`), &tt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := tt.Select("tier_1"); got != "The apple is red." {
		t.Errorf("got %q, want plain string regardless of tier", got)
	}
}

func TestTierText_UnmarshalTiered(t *testing.T) {
	var tt TierText
	data := `{"tier_1": "Short.", "tier_2": "Medium sentence.", "tier_3": "A longer sentence here."}`
	if err := json.Unmarshal([]byte(data), &tt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := tt.Select("tier_2"); got != "Medium sentence." {
		t.Errorf("got %q, want tier_2 value", got)
	}
}

func TestTierText_SelectNormalizesBareTier(t *testing.T) {
	var tt TierText
	if err := json.Unmarshal([]byte(`{"tier_1": "one"}`), &tt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := tt.Select("1"); got != "one" {
		t.Errorf("got %q, want %q for bare tier name", got, "one")
	}
}

func TestTierText_SelectFallsBackToDefault(t *testing.T) {
	var tt TierText
	if err := json.Unmarshal([]byte(`{"tier_3": "default text"}`), &tt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := tt.Select("tier_1"); got != "default text" {
		t.Errorf("got %q, want default tier fallback", got)
	}
}

func TestTierText_SelectFallsBackToFirstNonEmpty(t *testing.T) {
	var tt TierText
	if err := json.Unmarshal([]byte(`{"b_key": "value b", "a_key": ""}`), &tt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := tt.Select("tier_1"); got != "value b" {
		t.Errorf("got %q, want first non-empty value in key order", got)
	}
}

func TestTierText_UnmarshalNull(t *testing.T) {
	var tt TierText
	if err := json.Unmarshal([]byte(`null`), &tt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !tt.IsZero() {
		t.Error("null should produce a zero TierText")
	}
	if got := tt.Select("tier_3"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestTierText_MarshalRoundTrip(t *testing.T) {
	for _, src := range []string{`"plain"`, `{"tier_1":"a","tier_2":"b"}`} {
		var tt TierText
		if err := json.Unmarshal([]byte(src), &tt); err != nil {
			t.Fatalf("unmarshal %s: %v", src, err)
		}
		out, err := json.Marshal(tt)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back TierText
		if err := json.Unmarshal(out, &back); err != nil {
			t.Fatalf("re-unmarshal: %v", err)
		}
		if back.Select("tier_1") != tt.Select("tier_1") {
			t.Errorf("round trip changed tier_1 value for %s", src)
		}
	}
}
