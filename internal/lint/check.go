package lint

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CheckID identifies one of the built-in checks.
type CheckID string

const (
	SubjectCap    CheckID = "subject_cap"
	SubjectWords  CheckID = "subject_words"
	SubjectLength CheckID = "subject_length"
	SubjectPeriod CheckID = "subject_period"
	EmptyLine     CheckID = "empty_line"
)

// MaxSubjectLength is the longest subject, in characters, that passes subject_length.
const MaxSubjectLength = 50

// registry is the canonical check order. Report entries follow it.
var registry = [...]CheckID{
	SubjectCap,
	SubjectWords,
	SubjectLength,
	SubjectPeriod,
	EmptyLine,
}

// aliases maps alternative spellings accepted in configuration.
var aliases = map[string]CheckID{
	"subject_word": SubjectWords,
}

// mergeSubject matches subjects generated by the hosting service for merges.
var mergeSubject = regexp.MustCompile(`^Merge (?:pull request #\d+ from |branch '.+' into )`)

// Checks returns all check IDs in registry order.
func Checks() []CheckID {
	out := make([]CheckID, len(registry))
	copy(out, registry[:])
	return out
}

// ParseCheckID resolves a configured name to a check. Matching is
// case-insensitive and accepts dashes for underscores.
func ParseCheckID(name string) (CheckID, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if id, ok := aliases[key]; ok {
		return id, true
	}
	id := CheckID(key)
	return id, id.Valid()
}

// Valid reports whether id names a built-in check.
func (id CheckID) Valid() bool {
	for _, c := range registry {
		if c == id {
			return true
		}
	}
	return false
}

// Message returns the feedback text reported for commits failing the check.
func (id CheckID) Message() string {
	switch id {
	case SubjectCap:
		return "Please start commit message subject with capital letter."
	case SubjectWords:
		return "Please use more than one word."
	case SubjectLength:
		return "Please limit commit subject line to 50 characters."
	case SubjectPeriod:
		return "Please remove period from end of commit subject line."
	case EmptyLine:
		return "Please separate subject from body with newline."
	default:
		return ""
	}
}

// Fails reports whether rec violates the check. Unknown IDs never fail.
func (id CheckID) Fails(rec Record) bool {
	switch id {
	case SubjectCap:
		return !startsCapitalized(rec.Subject)
	case SubjectWords:
		return len(strings.Fields(rec.Subject)) < 2
	case SubjectLength:
		return utf8.RuneCountInString(rec.Subject) > MaxSubjectLength && !IsMergeSubject(rec.Subject)
	case SubjectPeriod:
		return strings.HasSuffix(rec.Subject, ".")
	case EmptyLine:
		return rec.SeparatorMissing
	default:
		return false
	}
}

// IsMergeSubject reports whether subject looks like a host-generated merge commit.
func IsMergeSubject(subject string) bool {
	return mergeSubject.MatchString(subject)
}

// startsCapitalized compares the first character with its full uppercase
// mapping. Characters without case, and the empty subject, pass.
func startsCapitalized(subject string) bool {
	r, size := utf8.DecodeRuneInString(subject)
	if size == 0 || r == utf8.RuneError {
		return true
	}
	first := subject[:size]
	// Casers are stateful; one per call.
	return cases.Upper(language.Und).String(first) == first
}
