package embedding_test

import (
	"strings"
	"testing"

	"github.com/CaraTortu/SentimentAnalyser/internal/embedding"
)

func TestReadGlove_AssignsOneBasedIDs(t *testing.T) {
	vocab, err := embedding.ReadGlove(strings.NewReader("cat 0.1 0.2\ndog 0.3 0.4\n"))
	if err != nil {
		t.Fatalf("ReadGlove failed: %v", err)
	}

	if vocab.Size() != 2 {
		t.Errorf("Expected size 2, got %d", vocab.Size())
	}
	if vocab.Dim() != 2 {
		t.Errorf("Expected dim 2, got %d", vocab.Dim())
	}

	id, ok := vocab.ID("cat")
	if !ok || id != 1 {
		t.Errorf("Expected cat to have id 1, got %d (ok=%v)", id, ok)
	}
	id, ok = vocab.ID("dog")
	if !ok || id != 2 {
		t.Errorf("Expected dog to have id 2, got %d (ok=%v)", id, ok)
	}
	if _, ok := vocab.ID("bird"); ok {
		t.Error("Expected bird to be unknown")
	}
}

func TestReadGlove_PaddingVectorIsZero(t *testing.T) {
	vocab, err := embedding.ReadGlove(strings.NewReader("cat 0.1 0.2\n"))
	if err != nil {
		t.Fatalf("ReadGlove failed: %v", err)
	}

	pad := vocab.Vector(embedding.PadSentinel)
	if len(pad) != 2 {
		t.Fatalf("Expected padding vector of length 2, got %d", len(pad))
	}
	for i, v := range pad {
		if v != 0 {
			t.Errorf("Padding vector component %d is %f, want 0", i, v)
		}
	}

	vec := vocab.Vector(1)
	if vec[0] != 0.1 || vec[1] != 0.2 {
		t.Errorf("Unexpected vector for cat: %v", vec)
	}
}

func TestReadGlove_SkipsHeader(t *testing.T) {
	vocab, err := embedding.ReadGlove(strings.NewReader("2 2\ncat 0.1 0.2\ndog 0.3 0.4\n"))
	if err != nil {
		t.Fatalf("ReadGlove failed: %v", err)
	}
	if vocab.Size() != 2 {
		t.Errorf("Expected size 2 with header skipped, got %d", vocab.Size())
	}
}

func TestReadGlove_RejectsMixedDimensions(t *testing.T) {
	_, err := embedding.ReadGlove(strings.NewReader("cat 0.1 0.2\ndog 0.3\n"))
	if err == nil {
		t.Error("Expected error for mixed vector dimensions")
	}
}

func TestReadGlove_IgnoresDuplicateWords(t *testing.T) {
	vocab, err := embedding.ReadGlove(strings.NewReader("cat 0.1 0.2\ncat 0.9 0.9\n"))
	if err != nil {
		t.Fatalf("ReadGlove failed: %v", err)
	}
	if vocab.Size() != 1 {
		t.Errorf("Expected size 1, got %d", vocab.Size())
	}
	if vec := vocab.Vector(1); vec[0] != 0.1 {
		t.Errorf("Expected first occurrence to win, got %v", vec)
	}
}

func TestReadGlove_EmptyInput(t *testing.T) {
	if _, err := embedding.ReadGlove(strings.NewReader("")); err == nil {
		t.Error("Expected error for empty embedding model")
	}
}

func TestEmbedder_DropsUnknownWords(t *testing.T) {
	vocab, err := embedding.ReadGlove(strings.NewReader("happy 0.1 0.2\ntest 0.3 0.4\n"))
	if err != nil {
		t.Fatalf("ReadGlove failed: %v", err)
	}

	embedder := embedding.NewEmbedder(vocab)

	seq := embedder.Embed("happy unknown test")
	want := []int{1, 2}
	if len(seq) != len(want) {
		t.Fatalf("Expected %v, got %v", want, seq)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, seq)
			break
		}
	}
}

func TestEmbedder_EmptyText(t *testing.T) {
	vocab, err := embedding.ReadGlove(strings.NewReader("happy 0.1 0.2\n"))
	if err != nil {
		t.Fatalf("ReadGlove failed: %v", err)
	}

	if seq := embedding.NewEmbedder(vocab).Embed(""); len(seq) != 0 {
		t.Errorf("Expected empty sequence, got %v", seq)
	}
}
