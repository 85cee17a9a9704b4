package pipeline

import (
	"fmt"
	"sort"
	"strings"
)

// Argv synthesizes the argument vector for one tool invocation.
//
// Rule, applied per parameter in submission order:
//   - boolean true appends a bare flag --<key>; false appends nothing
//   - null or empty string appends nothing
//   - any other value appends --<key> <value>
//
// The command string itself may carry a subcommand ("basecall run") and is
// split on whitespace. The result is executed as a vector, never through a
// shell, so values cannot be interpreted as shell syntax.
func Argv(command string, args Args) []string {
	argv := strings.Fields(command)
	for _, p := range args {
		switch v := p.Value.(type) {
		case bool:
			if v {
				argv = append(argv, "--"+p.Key)
			}
		case nil:
			// contributes nothing
		case string:
			if v != "" {
				argv = append(argv, "--"+p.Key, v)
			}
		default:
			// json.Number and anything else with a textual form
			s := fmt.Sprint(v)
			if s != "" {
				argv = append(argv, "--"+p.Key, s)
			}
		}
	}
	return argv
}

// CommandLine renders the flat command string for audit records and
// responses. This is the historical wire format of the dispatcher; it is
// never handed to a shell.
func CommandLine(command string, args Args) string {
	return strings.Join(Argv(command, args), " ")
}

// Allowlist is the set of tool names the dispatcher may execute.
type Allowlist map[string]struct{}

// NewAllowlist builds an Allowlist from configured command names.
func NewAllowlist(commands []string) Allowlist {
	al := make(Allowlist, len(commands))
	for _, c := range commands {
		al[c] = struct{}{}
	}
	return al
}

// Allows reports whether the command's executable (its first token) is
// allow-listed.
func (al Allowlist) Allows(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return false
	}
	_, ok := al[fields[0]]
	return ok
}

// Names returns the allow-listed tool names in sorted order.
func (al Allowlist) Names() []string {
	out := make([]string, 0, len(al))
	for c := range al {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
