package prompt

import (
	"strings"
	"testing"
)

func TestLoadPromptSet(t *testing.T) {
	t.Parallel()

	prompts := LoadPromptSet()
	if prompts.System == "" || prompts.Composer == "" {
		t.Fatal("embedded prompts must not be empty")
	}
	if !strings.Contains(prompts.System, "RetailAnalyst") {
		t.Fatalf("system prompt missing assistant identity: %q", prompts.System[:80])
	}
}

func TestFollowUpCycles(t *testing.T) {
	t.Parallel()

	total := len(FollowUpQuestions)
	if FollowUp(0) != FollowUpQuestions[0] {
		t.Fatalf("FollowUp(0) = %q", FollowUp(0))
	}
	if FollowUp(total) != FollowUpQuestions[0] {
		t.Fatalf("FollowUp(%d) must wrap to the first question", total)
	}
	if FollowUp(-1) == "" {
		t.Fatal("negative turns must still yield a question")
	}
}
