package ml

import "math/rand"

// #region embedding-table
// EmbeddingTable holds fixed-length learned vectors keyed by entity id
// (user name, exercise name). Entries are lazily initialized to small random
// values on first lookup.
type EmbeddingTable struct {
	Dim   int                  `json:"dim"`
	Table map[string][]float64 `json:"table"`

	rng *rand.Rand
}

// NewEmbeddingTable creates an empty table with the given vector length.
func NewEmbeddingTable(dim int) *EmbeddingTable {
	return &EmbeddingTable{Dim: dim, Table: make(map[string][]float64)}
}

// Seed makes subsequent lazy initializations deterministic.
func (t *EmbeddingTable) Seed(seed int64) {
	t.rng = rand.New(rand.NewSource(seed))
}

// Get returns the vector for key, creating it on first use.
func (t *EmbeddingTable) Get(key string) []float64 {
	if t.Table == nil {
		t.Table = make(map[string][]float64)
	}
	if v, ok := t.Table[key]; ok {
		return v
	}
	v := make([]float64, t.Dim)
	for i := range v {
		v[i] = (t.random() - 0.5) * 0.1
	}
	t.Table[key] = v
	return v
}

func (t *EmbeddingTable) random() float64 {
	if t.rng == nil {
		return rand.Float64()
	}
	return t.rng.Float64()
}

// #endregion embedding-table
