package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "s3cret!" {
		t.Fatal("hash must not equal the plain password")
	}

	if !h.Matches(hash, "s3cret!") {
		t.Error("expected password to match its hash")
	}
	if h.Matches(hash, "wrong") {
		t.Error("expected wrong password to be rejected")
	}
	if h.Matches("", "s3cret!") {
		t.Error("expected empty hash to never match")
	}
}

func TestNewHasher_ClampsCost(t *testing.T) {
	if got := NewHasher(99).cost; got != bcrypt.DefaultCost {
		t.Errorf("expected default cost, got %d", got)
	}
	if got := NewHasher(bcrypt.MinCost).cost; got != bcrypt.MinCost {
		t.Errorf("expected min cost, got %d", got)
	}
}
