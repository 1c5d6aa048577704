package repository

import (
	"strings"
	"testing"
)

func TestVectorLiteral(t *testing.T) {
	got := vectorLiteral([]float32{0.5, -1, 0})
	if got != "[0.5,-1,0]" {
		t.Errorf("unexpected literal %q", got)
	}
}

func TestVectorLiteralEmpty(t *testing.T) {
	if got := vectorLiteral(nil); got != "[]" {
		t.Errorf("empty vector should render as [], got %q", got)
	}
}

func TestVectorLiteralDimensions(t *testing.T) {
	v := make([]float32, 384)
	got := vectorLiteral(v)
	if n := strings.Count(got, ","); n != 383 {
		t.Errorf("expected 383 separators, got %d", n)
	}
}

func TestSimilarityFromDistance(t *testing.T) {
	cases := []struct {
		distance float64
		want     float64
	}{
		{0, 1},
		{0.25, 0.75},
		{1, 0},
		{1.5, 0},  // cosine distance can exceed 1 for opposed vectors
		{-0.1, 1}, // float noise below zero clamps to 1
	}
	for _, c := range cases {
		if got := similarityFromDistance(c.distance); got != c.want {
			t.Errorf("similarityFromDistance(%v) = %v, want %v", c.distance, got, c.want)
		}
	}
}
