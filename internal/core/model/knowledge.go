package model

// KnowledgeEntry is one curated answer together with the paraphrased
// questions it answers. The JSON/YAML shape matches the knowledge source file.
type KnowledgeEntry struct {
	Questions []string `json:"questions" yaml:"questions"`
	Answer    string   `json:"answer" yaml:"answer"`
	Source    string   `json:"source" yaml:"source"`
}

type KnowledgeMatch struct {
	Entry  KnowledgeEntry `json:"entry"`
	Key    string         `json:"key"`
	Score  int            `json:"score"`
	Scorer string         `json:"scorer"` // "partial_ratio" or "token_sort_ratio"
}

// KeyCollision records a paraphrase that normalized onto a key already owned
// by an earlier entry.
type KeyCollision struct {
	Key          string `json:"key"`
	Question     string `json:"question"`
	WinnerIndex  int    `json:"winner_index"`
	DroppedIndex int    `json:"dropped_index"`
}
