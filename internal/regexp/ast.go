// Package regexp implements a small Perl-flavored backtracking regular
// expression engine used by the RegExp object kind: parsing, compiling to
// an AST, and matching with capture groups and backreferences.
package regexp

import "fmt"

// NodeKind tags the shape of a regex AST node.
type NodeKind int

const (
	NEmpty NodeKind = iota
	NLiteral
	NDot
	NClass
	NConcat
	NAlt
	NRepeat
	NGroup
	NAnchorStart
	NAnchorEnd
	NBackref
	NWordBoundary
	NNonWordBoundary
)

// ClassRange is an inclusive code-point range inside a character class.
type ClassRange struct {
	Lo, Hi rune
}

// Node is one AST node. Its meaning depends on Kind:
//   - NLiteral: Lit
//   - NClass: Negate, Ranges
//   - NConcat: Children, matched in sequence
//   - NAlt: Children, first successful alternative wins
//   - NRepeat: Child, Min, Max (Max == -1 means unbounded), Greedy
//   - NGroup: Child, CaptureIndex (0 means non-capturing)
//   - NBackref: BackrefIndex
type Node struct {
	Kind         NodeKind
	Lit          rune
	Negate       bool
	Ranges       []ClassRange
	Children     []*Node
	Child        *Node
	Min, Max     int
	Greedy       bool
	CaptureIndex int
	BackrefIndex int
}

// Program is a compiled regex: its AST root, the number of capture groups,
// and the parsed flag set.
type Program struct {
	Root       *Node
	NumGroups  int
	Source     string
	Global     bool
	IgnoreCase bool
	Multiline  bool
}

// Compile parses pattern with the given flag letters ("g", "i", "m" in any
// combination) into a Program.
func Compile(pattern, flags string) (*Program, error) {
	p := &parser{input: []rune(pattern)}
	root, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("regexp: unexpected %q at position %d", string(p.input[p.pos]), p.pos)
	}
	prog := &Program{Root: root, NumGroups: p.numGroups, Source: pattern}
	for _, f := range flags {
		switch f {
		case 'g':
			prog.Global = true
		case 'i':
			prog.IgnoreCase = true
		case 'm':
			prog.Multiline = true
		default:
			return nil, fmt.Errorf("regexp: unsupported flag %q", f)
		}
	}
	return prog, nil
}
