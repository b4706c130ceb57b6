package content

// Exercise types attached to a word's content record.
const (
	ExerciseInferMeaning       = "infer_meaning"
	ExerciseSentenceReordering = "sentence_reordering"
	ExerciseSynonymReplacement = "synonym_replacement"
)

// Definition is a bilingual gloss for a word.
type Definition struct {
	EN string `json:"en"`
	CN string `json:"cn"`
}

// SampleSentence is an example usage with its translation.
type SampleSentence struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// Exercise is one practice exercise attached to a word. Sentence-bearing
// fields may be tiered by difficulty, hence TierText.
type Exercise struct {
	Type             string   `json:"type"`
	Sentence         string   `json:"sentence,omitempty"`
	SentenceAnswer   TierText `json:"sentence_answer,omitempty"`
	SentenceAnswerCN TierText `json:"sentence_answer_cn,omitempty"`
}

// WordItem is the immutable content record for one vocabulary word,
// produced by the content service. The practice engine never mutates it.
type WordItem struct {
	Word            string           `json:"word"`
	WordRoot        string           `json:"word_root"`
	Definition      Definition       `json:"definition"`
	SampleSentences []SampleSentence `json:"sample_sentences,omitempty"`
	Exercises       []Exercise       `json:"exercises,omitempty"`
}

// Exercise returns the first exercise of the given type.
func (w WordItem) Exercise(typ string) (Exercise, bool) {
	for _, ex := range w.Exercises {
		if ex.Type == typ {
			return ex, true
		}
	}
	return Exercise{}, false
}

// ByWord indexes items by their surface word. Later duplicates win,
// matching how the engine merges full and session item sets.
func ByWord(items []WordItem) map[string]WordItem {
	m := make(map[string]WordItem, len(items))
	for _, it := range items {
		m[it.Word] = it
	}
	return m
}
