// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	InputNotFoundId Id = iota + 1
	PermissionDeniedId
	CommandNotFoundId
	UsageErrorId
	ConfigLoadFailedId
	ScriptParseFailedId
	OutputNotWritableId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // textkit documentation about the issue
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown. stylePath is any glamour
// style name ("auto", "dark", "light") or a path to a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(sb.String(), stylePath)
}

var (
	render = glamour.Render

	inputNotFoundIssue = &Issue{
		id: InputNotFoundId,
		mdMsg: `
# Input not found!

One of the named inputs could not be opened. The remaining inputs were still
processed, but the command exits with status 1.

## Things you can try:
- Check the spelling of the path and that it is relative to the current directory
- Read from standard input by passing **-** or no operands at all:
~~~
$ printf 'a\nb\n' | textkit wc -l
~~~
- List what is actually there:
~~~
$ textkit find --type f .
~~~`,
		docLinks: []HttpLink{"https://github.com/invowk/textkit#inputs"},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

textkit was not allowed to read an input or write the output file.

## Things you can try:
- Check the permissions:
~~~
$ ls -l path/to/file
~~~
- Pipe the content through standard input instead of naming the file`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found!

The script called a command that textkit does not provide. Scripts run by
**textkit sh** can only call the bundled utilities unless host fallback is on.

## Things you can try:
- List the bundled utilities:
~~~
$ textkit --help
~~~
- Allow the script to run host commands:
~~~
$ export TEXTKIT_SHELL_HOST_FALLBACK=true
~~~`,
	}

	usageErrorIssue = &Issue{
		id: UsageErrorId,
		mdMsg: `
# Invalid usage!

The command line could not be accepted: an unknown flag, a missing flag value,
a bad count, or two options that cannot be combined.

## Things you can try:
- Read the manual page of the utility:
~~~
$ textkit manual head
~~~
- Short flags can be combined, so **-ns** is the same as **-n -s**`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file or a **TEXTKIT_** environment variable holds a value
that does not satisfy the configuration schema.

## Things you can try:
- Show where textkit looks for the file:
~~~
$ textkit config path
~~~
- Write a fresh default configuration:
~~~
$ textkit config init
~~~
- Example configuration:
~~~cue
head: lines: 20
find: types: ["f"]
log: level: "info"
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	scriptParseFailedIssue = &Issue{
		id: ScriptParseFailedId,
		mdMsg: `
# Failed to parse script!

The script is not valid POSIX shell. Nothing was executed.

## Things you can try:
- Check the script without running it:
~~~
$ textkit sh -n script.sh
~~~
- Look for unbalanced quotes or a missing **fi**, **done** or **esac**`,
		extLinks: []HttpLink{"https://pkg.go.dev/mvdan.cc/sh/v3/syntax"},
	}

	outputNotWritableIssue = &Issue{
		id: OutputNotWritableId,
		mdMsg: `
# Output not writable!

**uniq** appends to an existing output file and never creates it.

## Things you can try:
- Create the file first:
~~~
$ touch out.txt
$ textkit uniq in.txt out.txt
~~~
- Or write to standard output with **-**`,
	}

	issues = map[Id]*Issue{
		inputNotFoundIssue.Id():     inputNotFoundIssue,
		permissionDeniedIssue.Id():  permissionDeniedIssue,
		commandNotFoundIssue.Id():   commandNotFoundIssue,
		usageErrorIssue.Id():        usageErrorIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		scriptParseFailedIssue.Id(): scriptParseFailedIssue,
		outputNotWritableIssue.Id(): outputNotWritableIssue,
	}
)

// Values returns every known issue ordered by id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
