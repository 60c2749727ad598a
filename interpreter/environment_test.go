package interpreter

import (
	"testing"

	"github.com/loxlang/golox/token"
)

func identTok(name string) token.Token {
	return token.Token{Type: token.Identifier, Lexeme: name}
}

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := newEnvironment()
	env.Define("a", Number(1))
	if got := env.Get(identTok("a")); got != Value(Number(1)) {
		t.Errorf("Get(a) = %v, want 1", got)
	}
}

func TestEnvironmentRedeclareOverwrites(t *testing.T) {
	env := newEnvironment()
	env.Define("a", Number(1))
	env.Define("a", Number(2))
	if got := env.Get(identTok("a")); got != Value(Number(2)) {
		t.Errorf("Get(a) = %v, want 2", got)
	}
}

func TestEnvironmentGetUndefinedPanics(t *testing.T) {
	env := newEnvironment()
	defer func() {
		if recover() == nil {
			t.Fatal("Get(undefined) did not panic")
		}
	}()
	env.Get(identTok("missing"))
}

func TestEnvironmentAssignUndefinedPanics(t *testing.T) {
	env := newEnvironment()
	defer func() {
		if recover() == nil {
			t.Fatal("Assign(undefined) did not panic")
		}
	}()
	env.Assign(identTok("missing"), Number(1))
}

func TestEnvironmentChildSeesParentBindings(t *testing.T) {
	parent := newEnvironment()
	parent.Define("a", Number(1))
	child := parent.child()
	if got := child.Get(identTok("a")); got != Value(Number(1)) {
		t.Errorf("child.Get(a) = %v, want 1", got)
	}
}

func TestEnvironmentChildShadowsParent(t *testing.T) {
	parent := newEnvironment()
	parent.Define("a", Number(1))
	child := parent.child()
	child.Define("a", Number(2))
	if got := child.Get(identTok("a")); got != Value(Number(2)) {
		t.Errorf("child.Get(a) = %v, want 2", got)
	}
	if got := parent.Get(identTok("a")); got != Value(Number(1)) {
		t.Errorf("parent.Get(a) = %v, want 1 (unaffected by child)", got)
	}
}

func TestEnvironmentAssignWritesThroughToDefiningScope(t *testing.T) {
	parent := newEnvironment()
	parent.Define("a", Number(1))
	child := parent.child()
	child.Assign(identTok("a"), Number(2))
	if got := parent.Get(identTok("a")); got != Value(Number(2)) {
		t.Errorf("parent.Get(a) = %v, want 2 (assignment resolves to the defining scope)", got)
	}
}
