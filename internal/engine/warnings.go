package engine

import (
	"sort"

	"github.com/agentflare-ai/go-cmdletdoc/cmdlet"
	"github.com/agentflare-ai/go-cmdletdoc/internal/comments"
)

// Warning is a documentation problem with one member.
type Warning struct {
	Member comments.Member
	Text   string
}

// MemberWarnings are the distinct warning texts of one member.
type MemberWarnings struct {
	Member string
	Texts  []string
}

// warningLog keeps the warnings about members declared in the module's own
// packages, each distinct text once per member.
type warningLog struct {
	module   *cmdlet.Module
	seen     map[Warning]bool
	warnings []Warning
}

func newWarningLog(module *cmdlet.Module) *warningLog {
	return &warningLog{module: module, seen: make(map[Warning]bool)}
}

func (l *warningLog) add(member comments.Member, text string) {
	if !l.module.Owns(member.Owner) {
		return
	}
	w := Warning{Member: member, Text: text}
	if l.seen[w] {
		return
	}
	l.seen[w] = true
	l.warnings = append(l.warnings, w)
}

// Grouped groups the warnings by fully qualified member name, sorted by
// name. Texts keep their reporting order.
func (r *Result) Grouped() []MemberWarnings {
	byMember := make(map[string][]string)
	for _, w := range r.Warnings {
		name := w.Member.String()
		byMember[name] = append(byMember[name], w.Text)
	}
	names := make([]string, 0, len(byMember))
	for name := range byMember {
		names = append(names, name)
	}
	sort.Strings(names)
	groups := make([]MemberWarnings, len(names))
	for i, name := range names {
		groups[i] = MemberWarnings{Member: name, Texts: byMember[name]}
	}
	return groups
}
