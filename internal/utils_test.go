package internal

import "testing"

func TestHashText(t *testing.T) {
	h := HashText("The company's net revenue grew by 12%.")
	if len(h) != 32 {
		t.Errorf("Expected 32 hex chars, got %d: %s", len(h), h)
	}

	if HashText("a") == HashText("b") {
		t.Error("Different texts must not collide on the obvious case")
	}
	if HashText("a") != HashText("a") {
		t.Error("Hash must be stable")
	}
}
