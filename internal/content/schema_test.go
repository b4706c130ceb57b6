package content

import (
	"encoding/json"
	"testing"
)

const validRecord = `{
	"word": "apple",
	"word_root": "apple",
	"definition": {"en": "a round fruit", "cn": "苹果"},
	"sample_sentences": [{"sentence": "I ate an apple.", "translation": "我吃了一个苹果。"}],
	"exercises": [
		{"type": "infer_meaning", "sentence": "The apple fell from the tree."},
		{"type": "sentence_reordering", "sentence_answer": {"tier_3": "I ate an apple."}}
	]
}`

func TestValidateRecord_Valid(t *testing.T) {
	if err := ValidateRecord(json.RawMessage(validRecord)); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}
}

func TestValidateRecord_MissingWord(t *testing.T) {
	rec := `{"word_root": "x", "definition": {"cn": "x"}}`
	if err := ValidateRecord(json.RawMessage(rec)); err == nil {
		t.Error("record without word should be rejected")
	}
}

func TestValidateRecord_EmptyDefinition(t *testing.T) {
	rec := `{"word": "apple", "word_root": "apple", "definition": {"cn": ""}}`
	if err := ValidateRecord(json.RawMessage(rec)); err == nil {
		t.Error("record with empty cn definition should be rejected")
	}
}

func TestValidateRecord_InvalidJSON(t *testing.T) {
	if err := ValidateRecord(json.RawMessage(`{not json`)); err == nil {
		t.Error("malformed JSON should be rejected")
	}
}

func TestValidateRecord_ThenDecode(t *testing.T) {
	if err := ValidateRecord(json.RawMessage(validRecord)); err != nil {
		t.Fatalf("validate: %v", err)
	}
	var item WordItem
	if err := json.Unmarshal([]byte(validRecord), &item); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if item.Word != "apple" || item.Definition.CN != "苹果" {
		t.Errorf("decoded item %+v lost fields", item)
	}
	ex, ok := item.Exercise(ExerciseSentenceReordering)
	if !ok {
		t.Fatal("reordering exercise missing")
	}
	if got := ex.SentenceAnswer.Select("tier_3"); got != "I ate an apple." {
		t.Errorf("got %q, want tiered answer", got)
	}
}
