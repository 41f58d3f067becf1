package prompt

import (
	"strings"
	"testing"

	"github.com/doeshing/clicra-go/internal/domain"
)

func TestGenerationMinimal(t *testing.T) {
	got := Generation("", "", false, nil)
	want := "Please provide a command line to accomplish the following task."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGenerationWithTask(t *testing.T) {
	got := Generation("list files", "", false, nil)
	want := "Please provide a command line to accomplish the following task.\n## TASK\nlist files\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGenerationScriptWording(t *testing.T) {
	got := Generation("backup home", "", true, nil)
	if !strings.Contains(got, "Please provide a script to accomplish") {
		t.Fatalf("script request must change the wording: %q", got)
	}
	if strings.Contains(got, "command line") {
		t.Fatalf("script request must not mention a command line: %q", got)
	}
}

func TestGenerationWithContext(t *testing.T) {
	got := Generation("fix it", "```\n$ ls\nfoo\n```", false, nil)
	if !strings.Contains(got, "\n## CONTEXT\n```\n$ ls\nfoo\n```\n") {
		t.Fatalf("context section missing or malformed: %q", got)
	}
	if !strings.Contains(got, "## TASK\nfix it\n") {
		t.Fatalf("task section missing: %q", got)
	}
	if strings.Index(got, "## TASK") > strings.Index(got, "## CONTEXT") {
		t.Fatalf("task must precede context: %q", got)
	}
}

func TestGenerationStrategyPreamble(t *testing.T) {
	strategy, ok := domain.StrategyByName(domain.StrategyStepByStep)
	if !ok {
		t.Fatal("sbs strategy missing")
	}
	got := Generation("list files", "", false, &strategy)
	if !strings.HasPrefix(got, strategy.Preamble) {
		t.Fatalf("preamble must lead the prompt: %q", got)
	}
	if !strings.Contains(got, "Please provide a command line") {
		t.Fatalf("base request missing: %q", got)
	}
}

func TestGenerationDeterministic(t *testing.T) {
	a := Generation("t", "c", true, nil)
	b := Generation("t", "c", true, nil)
	if a != b {
		t.Fatalf("identical inputs must render identically:\n%q\n%q", a, b)
	}
}

func TestAnalysisCommandAlwaysFenced(t *testing.T) {
	got := Analysis("ls -la", "", "", "", "")
	want := "Analyze the result of the command.\n\n## COMMAND\n```\nls -la\n```\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAnalysisFull(t *testing.T) {
	got := Analysis("ls missing", "list it", "", "partial\n", "No such file\n")
	want := "Analyze the result of the command.\n" +
		"\n## TASK\nlist it\n" +
		"\n## COMMAND\n```\nls missing\n```\n" +
		"\n## STDOUT\npartial\n" +
		"\n## STDERR\nNo such file\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAnalysisOmitsEmptyStreams(t *testing.T) {
	got := Analysis("false", "t", "", "", "")
	if strings.Contains(got, "## STDOUT") || strings.Contains(got, "## STDERR") {
		t.Fatalf("empty streams must be omitted: %q", got)
	}
}
