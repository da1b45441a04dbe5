package vectorindex

import "sort"

// Chunk is one embedded piece of text. Vectors are expected to be
// unit-length so the dot product equals cosine similarity.
type Chunk struct {
	Text   string
	Vector []float32
}

// Result is a retrieved chunk with its similarity score.
type Result struct {
	Text  string
	Score float64
}

// Index is an immutable in-memory vector index. Rebuilds construct a
// fresh Index and swap it in whole.
type Index struct {
	chunks []Chunk
}

func New(chunks []Chunk) *Index {
	return &Index{chunks: chunks}
}

func (idx *Index) Len() int {
	return len(idx.chunks)
}

func (idx *Index) Chunks() []Chunk {
	return idx.chunks
}

// Search returns the top k chunks by cosine similarity, best first.
func (idx *Index) Search(query []float32, k int) []Result {
	if k <= 0 || len(idx.chunks) == 0 {
		return nil
	}

	results := make([]Result, 0, len(idx.chunks))
	for _, c := range idx.chunks {
		results = append(results, Result{
			Text:  c.Text,
			Score: dot(query, c.Vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
