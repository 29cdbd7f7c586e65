package db

import (
	"errors"
	"testing"
)

func TestOpen_MissingDSN(t *testing.T) {
	if _, err := Open(""); !errors.Is(err, ErrMissingDSN) {
		t.Fatalf("expected ErrMissingDSN, got %v", err)
	}
}

func TestEnsureSchema_RejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "Risk", "risk; DROP TABLE x", `ri"sk`, "1risk"} {
		if err := EnsureSchema(nil, name); err == nil {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}

func TestClose_Nil(t *testing.T) {
	if err := Close(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
