// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/invowk/textkit/internal/textio"
	"github.com/invowk/textkit/pkg/types"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/pflag"
)

type (
	// findCommand implements the find utility.
	findCommand struct {
		name         string
		defaultTypes []types.EntryType
	}

	// treeEntry is one entry produced by walkTree.
	treeEntry struct {
		// path is the display path: the root as given joined with the
		// entry's path relative to it.
		path string
		// rel is the slash-separated path relative to the root ("." for the root).
		rel string
		// name is the entry's base name.
		name string
		// mode holds the entry's type bits. Symbolic links are not followed.
		mode fs.FileMode
	}

	// treeFilter selects the entries find prints.
	treeFilter struct {
		types []types.EntryType
		names []*regexp.Regexp
		globs []string
	}
)

// newFindCommand creates a new find command. An empty defaultTypes selects
// every entry type.
func newFindCommand(defaultTypes []types.EntryType) *findCommand {
	if len(defaultTypes) == 0 {
		defaultTypes = types.AllEntryTypes()
	}
	return &findCommand{name: "find", defaultTypes: defaultTypes}
}

// Name returns the command name.
func (c *findCommand) Name() string {
	return c.name
}

// Synopsis returns the one-line description.
func (c *findCommand) Synopsis() string {
	return "Walk directory trees and print matching entries"
}

// Bind registers find's flags.
func (c *findCommand) Bind(flags *pflag.FlagSet) Invocation {
	defaults := make([]string, len(c.defaultTypes))
	for i, t := range c.defaultTypes {
		defaults[i] = t.String()
	}
	typeFlags := flags.StringSliceP("type", "t", defaults, "entry types to print: d (directory), f (file), l (symlink)")
	nameFlags := flags.StringArrayP("name", "n", nil, "print entries whose name matches this regular expression")
	globFlags := flags.StringArrayP("glob", "g", nil, "print entries whose name or relative path matches this glob")

	return func(ctx context.Context, operands []string) error {
		filter, err := newTreeFilter(*typeFlags, *nameFlags, *globFlags)
		if err != nil {
			return &UsageError{Command: c.name, Err: err}
		}

		roots := operands
		if len(roots) == 0 {
			roots = []string{"."}
		}

		hc := GetHandlerContext(ctx)
		w := bufio.NewWriterSize(hc.output(), outputBufferSize)
		for _, root := range roots {
			for entry, walkErr := range walkTree(ctx, root, hc.Dir) {
				if walkErr != nil {
					// Keep stdout and stderr in order.
					if err := w.Flush(); err != nil {
						return wrapError(c.name, err)
					}
					report(hc.Stderr, c.name, walkErr)
					continue
				}
				if !filter.match(entry) {
					continue
				}
				if _, err := w.WriteString(entry.path + "\n"); err != nil {
					return wrapError(c.name, err)
				}
			}
			if err := w.Flush(); err != nil {
				return wrapError(c.name, err)
			}
		}
		return wrapError(c.name, ctx.Err())
	}
}

// newTreeFilter validates the raw flag values.
func newTreeFilter(typeArgs, nameArgs, globArgs []string) (*treeFilter, error) {
	f := &treeFilter{globs: globArgs}
	for _, raw := range typeArgs {
		t := types.EntryType(raw)
		if err := t.Validate(); err != nil {
			return nil, err
		}
		f.types = append(f.types, t)
	}
	for _, raw := range nameArgs {
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, err
		}
		f.names = append(f.names, re)
	}
	for _, g := range globArgs {
		if !doublestar.ValidatePattern(g) {
			return nil, fmt.Errorf("%w: %q", doublestar.ErrBadPattern, g)
		}
	}
	return f, nil
}

// match reports whether the entry's type is selected and, when any pattern
// was given, whether at least one of them matches.
func (f *treeFilter) match(e treeEntry) bool {
	if !f.typeMatches(e.mode) {
		return false
	}
	if len(f.names) == 0 && len(f.globs) == 0 {
		return true
	}
	for _, re := range f.names {
		if re.MatchString(e.name) {
			return true
		}
	}
	for _, g := range f.globs {
		// A pattern without a slash is matched against the base name only.
		subject := e.name
		if strings.Contains(g, "/") {
			subject = e.rel
		}
		if ok, _ := doublestar.Match(g, subject); ok {
			return true
		}
	}
	return false
}

func (f *treeFilter) typeMatches(mode fs.FileMode) bool {
	for _, t := range f.types {
		if t.Matches(mode) {
			return true
		}
	}
	return false
}

// walkTree walks the tree rooted at root in lexical order without following
// symbolic links below the root. A relative root is resolved against workDir
// but displayed as given. Errors are yielded alongside entries and never stop
// the walk of sibling entries.
func walkTree(ctx context.Context, root, workDir string) iter.Seq2[treeEntry, error] {
	return func(yield func(treeEntry, error) bool) {
		abs := root
		if !filepath.IsAbs(abs) && workDir != "" {
			abs = filepath.Join(workDir, root)
		}

		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			// Not a directory to descend into: report the root alone.
			linfo, lerr := os.Lstat(abs)
			if lerr != nil {
				yield(treeEntry{}, &textio.OpenError{Path: root, Err: lerr})
				return
			}
			yield(treeEntry{path: root, rel: ".", name: filepath.Base(root), mode: linfo.Mode().Type()}, nil)
			return
		}

		fn := func(rel string, d fs.DirEntry, err error) error {
			if ctx.Err() != nil {
				return fs.SkipAll
			}
			display := joinDisplay(root, rel)
			if err != nil {
				if !yield(treeEntry{}, &textio.OpenError{Path: display, Err: err}) {
					return fs.SkipAll
				}
				return nil
			}

			entry := treeEntry{path: display, rel: rel, name: d.Name(), mode: d.Type()}
			if rel == "." {
				entry.name = filepath.Base(root)
			}
			if !yield(entry, nil) {
				return fs.SkipAll
			}
			return nil
		}
		_ = fs.WalkDir(os.DirFS(abs), ".", fn)
	}
}

// joinDisplay joins rel onto root without cleaning root, so "./src" stays
// "./src/a.txt" rather than becoming "src/a.txt".
func joinDisplay(root, rel string) string {
	if rel == "." {
		return root
	}
	rel = filepath.FromSlash(rel)
	if strings.HasSuffix(root, string(filepath.Separator)) {
		return root + rel
	}
	return root + string(filepath.Separator) + rel
}
