package dedupe

import (
	"github.com/agenthands/zomra/internal/core/model"
)

// Key is one normalized paraphrase that survived de-duplication.
type Key struct {
	Normalized string
	Question   string
	EntryIndex int
}

// KeyDeduplicator guarantees that each normalized paraphrase maps to exactly
// one knowledge entry. The first entry (in source order) to claim a key keeps
// it; later claims are reported as collisions and dropped.
type KeyDeduplicator struct {
	Normalize func(string) string
}

func NewKeyDeduplicator(normalize func(string) string) *KeyDeduplicator {
	return &KeyDeduplicator{Normalize: normalize}
}

func (d *KeyDeduplicator) ResolveKeys(entries []model.KnowledgeEntry) ([]Key, []model.KeyCollision) {
	owners := make(map[string]int)
	var keys []Key
	var collisions []model.KeyCollision

	for i, e := range entries {
		for _, q := range e.Questions {
			nk := d.Normalize(q)
			if nk == "" {
				continue
			}
			if owner, ok := owners[nk]; ok {
				// Same entry listing a paraphrase twice is not a conflict.
				if owner != i {
					collisions = append(collisions, model.KeyCollision{
						Key:          nk,
						Question:     q,
						WinnerIndex:  owner,
						DroppedIndex: i,
					})
				}
				continue
			}
			owners[nk] = i
			keys = append(keys, Key{Normalized: nk, Question: q, EntryIndex: i})
		}
	}
	return keys, collisions
}
