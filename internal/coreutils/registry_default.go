// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"embed"
	"strings"

	"github.com/invowk/textkit/internal/config"
)

//go:embed manuals/*.md
var manuals embed.FS

// NewDefaultRegistry returns a Registry holding every textkit utility, with
// configurable defaults taken from cfg. A nil cfg uses config.DefaultConfig.
func NewDefaultRegistry(cfg *config.Config) *Registry {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	r := NewRegistry()
	r.Register(newCatCommand())
	r.Register(newEchoCommand())
	r.Register(newFindCommand(cfg.Find.Types))
	r.Register(newHeadCommand(cfg.Head.Lines))
	r.Register(newUniqCommand())
	r.Register(newWcCommand())
	return r
}

// Manual returns the Markdown manual page for a utility or for "sh".
func Manual(name string) (string, bool) {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return "", false
	}
	data, err := manuals.ReadFile("manuals/" + name + ".md")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ManualNames lists the names that have a manual page, sorted.
func ManualNames() []string {
	entries, err := manuals.ReadDir("manuals")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	return names
}
