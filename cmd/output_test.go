package cmd

import (
	"testing"

	"github.com/kennyg/kit/internal/scope"
)

func TestResolveScopeFlags(t *testing.T) {
	t.Setenv("KIT_HOME", t.TempDir())

	if _, err := resolveScopeFlags(true, true); err == nil {
		t.Fatal("both --user and --project should be rejected")
	}

	p, err := resolveScopeFlags(true, false)
	if err != nil {
		t.Fatal(err)
	}
	if p.Scope != scope.User {
		t.Errorf("scope = %q, want %q", p.Scope, scope.User)
	}

	// neither flag defaults to the user scope
	p, err = resolveScopeFlags(false, false)
	if err != nil {
		t.Fatal(err)
	}
	if p.Scope != scope.User {
		t.Errorf("scope = %q, want %q", p.Scope, scope.User)
	}
}
