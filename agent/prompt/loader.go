// Package prompt embeds the prompt templates and canned responses used by
// the analyst.
package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/system.txt
	systemRaw string

	//go:embed template/composer.txt
	composerRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	System   string
	Composer string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// Safe to call concurrently; the embed is compile-time, and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		System:   strings.TrimSpace(systemRaw),
		Composer: strings.TrimSpace(composerRaw),
	}
}
