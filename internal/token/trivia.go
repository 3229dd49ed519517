package token

import (
	"strconv"
	"strings"

	"rill/internal/source"
)

// TriviaKind classifies non-semantic source fragments.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaLineComment:
		return "line-comment"
	case TriviaBlockComment:
		return "block-comment"
	case TriviaDocLine:
		return "doc-line"
	default:
		return "trivia(" + strconv.Itoa(int(k)) + ")"
	}
}

// Annotation is a parsed /// @src source:start:end debug annotation. Source
// names a registered source unit in a multi-source program; Start and End are
// byte offsets into that unit.
type Annotation struct {
	Source uint32
	Start  uint32
	End    uint32
}

// Trivia is one fragment of the out-of-band channel preceding a token.
// Src is non-nil only for doc lines carrying a well-formed @src annotation.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
	Src  *Annotation
}

// ParseSrcComment inspects the body of a doc-line comment. isSrc reports that
// the comment is an @src annotation at all; ok that it parsed cleanly. A true
// isSrc with a false ok marks a malformed annotation the caller should warn
// about.
func ParseSrcComment(text string) (ann Annotation, ok bool, isSrc bool) {
	body := strings.TrimPrefix(text, "///")
	fields := strings.Fields(body)
	if len(fields) == 0 || fields[0] != "@src" {
		return Annotation{}, false, false
	}
	if len(fields) != 2 {
		return Annotation{}, false, true
	}

	parts := strings.Split(fields[1], ":")
	if len(parts) != 3 {
		return Annotation{}, false, true
	}
	nums := make([]uint32, 3)
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return Annotation{}, false, true
		}
		nums[i] = uint32(v)
	}
	return Annotation{Source: nums[0], Start: nums[1], End: nums[2]}, true, true
}
