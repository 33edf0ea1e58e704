package codes

import (
	"testing"

	"baby-care-log/internal/ports/auth"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver("editor-secret", "viewer-secret")

	cases := []struct {
		code     string
		wantRole auth.Role
		wantOK   bool
	}{
		{"editor-secret", auth.RoleEditor, true},
		{"viewer-secret", auth.RoleViewer, true},
		{"  editor-secret  ", auth.RoleEditor, true}, // espacios alrededor se ignoran
		{"wrong", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		role, ok := r.Resolve(tc.code)
		if ok != tc.wantOK || role != tc.wantRole {
			t.Fatalf("Resolve(%q) = (%q, %v), want (%q, %v)", tc.code, role, ok, tc.wantRole, tc.wantOK)
		}
	}
}

func TestResolver_EmptyConfiguredCodeNeverMatches(t *testing.T) {
	// Config sin viewer code: un bearer vacío no puede colarse como viewer.
	r := NewResolver("editor-secret", "")

	if _, ok := r.Resolve(""); ok {
		t.Fatalf("empty code must not resolve")
	}
}
