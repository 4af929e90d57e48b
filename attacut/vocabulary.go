package attacut

import (
	"encoding/json"
	"fmt"
	"os"
)

// Reserved vocabulary entries.
const (
	PadToken = "<PAD>"
	UnkToken = "<UNK>"
)

// Vocabulary maps characters or syllables to model ids.
type Vocabulary map[string]int64

// ID returns the id of token, or the id of UnkToken for unknown tokens.
func (v Vocabulary) ID(token string) int64 {
	if id, ok := v[token]; ok {
		return id
	}
	if id, ok := v[UnkToken]; ok {
		return id
	}
	return 1
}

// LoadVocabulary reads a vocabulary from a JSON object of token → id.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var vocab Vocabulary
	if err = json.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("vocabulary %s: %w", path, err)
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("vocabulary %s: empty", path)
	}
	if _, ok := vocab[UnkToken]; !ok {
		vocab[UnkToken] = 1
	}
	if _, ok := vocab[PadToken]; !ok {
		vocab[PadToken] = 0
	}
	return vocab, nil
}
