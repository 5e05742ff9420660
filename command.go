package agentsense

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Wrapper prefixes skipped when naming a command.
var wrapperPrefixes = []string{
	"sudo",
	"doas",
	"env",
	"command",
	"nice",
	"nohup",
	"time",
}

var envAssignPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*=`)

// CommandName reduces an ancestor command line to a short display name:
// the basename of the first real token after leading wrappers and
// environment assignments. Signature matching never uses this; it exists
// for debug output and the watch dashboard.
func CommandName(cmdline string) string {
	cmdline = strings.TrimSpace(cmdline)
	if cmdline == "" {
		return ""
	}

	parser := shellwords.NewParser()
	tokens, err := parser.Parse(cmdline)
	if err != nil || len(tokens) == 0 {
		// Fallback to whitespace fields so a malformed line still names
		// something.
		tokens = strings.Fields(cmdline)
	}

	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		if tok == "env" {
			i++
			for i < len(tokens) && envAssignPattern.MatchString(tokens[i]) {
				i++
			}
			continue
		}
		if isWrapper(tok) || envAssignPattern.MatchString(tok) {
			i++
			continue
		}
		break
	}
	if i >= len(tokens) {
		return ""
	}
	return filepath.Base(tokens[i])
}

func isWrapper(tok string) bool {
	for _, w := range wrapperPrefixes {
		if tok == w {
			return true
		}
	}
	return false
}
