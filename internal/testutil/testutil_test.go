package testutil

import (
	"testing"

	"github.com/wharflab/javalint/internal/rules"
)

func TestParseJava(t *testing.T) {
	t.Parallel()
	tree := ParseJava(t, "A.java", "class A {}\n")
	if tree.Root() == nil || tree.HasErrors() {
		t.Fatal("expected a clean tree")
	}
}

func TestMakeLintInput(t *testing.T) {
	t.Parallel()
	content := "class A {\n    int x;\n}\n"
	input := MakeLintInputWithConfig(t, "src/A.java", content, 42)

	if input.File != "src/A.java" {
		t.Errorf("File = %q", input.File)
	}
	if input.Tree == nil {
		t.Error("Tree is nil")
	}
	if string(input.Source) != content {
		t.Errorf("Source = %q", input.Source)
	}
	if input.Config != 42 {
		t.Errorf("Config = %v", input.Config)
	}
}

func TestAssertHelpers(t *testing.T) {
	t.Parallel()
	AssertNoViolations(t, nil)
	AssertViolationCount(t, []rules.Violation{
		rules.NewViolation(rules.NewLineLocation("A.java", 1), "X", "m", rules.SeverityInfo),
	}, 1)
}
