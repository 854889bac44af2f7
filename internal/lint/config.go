package lint

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// AllKeyword selects every check in disable, warn and fail options.
const AllKeyword = "all"

// Selection is a set of checks, or the sentinel selecting all of them.
// The zero value selects nothing.
type Selection struct {
	all bool
	ids map[CheckID]bool
}

// All returns the selection matching every check.
func All() Selection {
	return Selection{all: true}
}

// Only returns a selection of the given checks. Unknown IDs are dropped.
func Only(ids ...CheckID) Selection {
	s := Selection{}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

// ParseSelection builds a selection from configured names. Each value may
// hold several comma-separated names; "all" anywhere selects every check.
// Unknown names are ignored.
func ParseSelection(values ...string) Selection {
	s := Selection{}
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if strings.EqualFold(name, AllKeyword) {
				return All()
			}
			if id, ok := ParseCheckID(name); ok {
				s.add(id)
			}
		}
	}
	return s
}

func (s *Selection) add(id CheckID) {
	if !id.Valid() {
		return
	}
	if s.ids == nil {
		s.ids = make(map[CheckID]bool)
	}
	s.ids[id] = true
}

// IsAll reports whether the selection is the all sentinel.
func (s Selection) IsAll() bool { return s.all }

// IsZero reports whether nothing is selected.
func (s Selection) IsZero() bool { return !s.all && len(s.ids) == 0 }

// Has reports whether id is selected.
func (s Selection) Has(id CheckID) bool {
	return s.all || s.ids[id]
}

// IDs returns the selected checks in registry order.
func (s Selection) IDs() []CheckID {
	var out []CheckID
	for _, id := range registry {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// String renders the selection the way it is written in configuration.
func (s Selection) String() string {
	if s.all {
		return AllKeyword
	}
	ids := s.IDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return strings.Join(names, ",")
}

// MarshalYAML writes "all" or a sequence of check names.
func (s Selection) MarshalYAML() (any, error) {
	if s.all {
		return AllKeyword, nil
	}
	names := []string{}
	for _, id := range s.IDs() {
		names = append(names, string(id))
	}
	return names, nil
}

// UnmarshalYAML accepts a scalar ("all" or comma-separated names) or a sequence.
func (s *Selection) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = ParseSelection(node.Value)
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		*s = ParseSelection(names...)
		return nil
	default:
		return fmt.Errorf("line %d: check selection must be %q or a list of check names", node.Line, AllKeyword)
	}
}

// Severity decides which report bucket a check's failures land in.
type Severity string

const (
	SeverityWarn Severity = "warn"
	SeverityFail Severity = "fail"
)

// Configuration holds the user-facing lint options.
type Configuration struct {
	Disable Selection `yaml:"disable,omitempty"`
	Warn    Selection `yaml:"warn,omitempty"`
	Fail    Selection `yaml:"fail,omitempty"`
	// Limit restricts linting to the most recent commits. Zero means no limit.
	Limit int `yaml:"limit,omitempty"`
}

// Resolve decides whether id runs and at which severity. Disable wins over
// everything; fail wins over warn; enabled checks default to fail.
func (c Configuration) Resolve(id CheckID) (Severity, bool) {
	if !id.Valid() || c.Disable.Has(id) {
		return "", false
	}
	switch {
	case c.Fail.Has(id):
		return SeverityFail, true
	case c.Warn.Has(id):
		return SeverityWarn, true
	default:
		return SeverityFail, true
	}
}

// Rule is an enabled check together with its resolved severity.
type Rule struct {
	Check    CheckID  `json:"check"`
	Severity Severity `json:"severity"`
}

// Plan is the resolved configuration for one run.
type Plan struct {
	Rules []Rule
	Limit int
}

// NewPlan resolves cfg against the registry, keeping registry order.
func NewPlan(cfg Configuration) Plan {
	p := Plan{Limit: cfg.Limit}
	for _, id := range registry {
		if sev, ok := cfg.Resolve(id); ok {
			p.Rules = append(p.Rules, Rule{Check: id, Severity: sev})
		}
	}
	return p
}

// Noop reports whether every check is disabled.
func (p Plan) Noop() bool {
	return len(p.Rules) == 0
}

// Window returns the commits the plan evaluates.
func (p Plan) Window(commits []Commit) []Commit {
	return Window(commits, p.Limit)
}

// Window keeps the last limit commits in their original order. A limit of
// zero or less, or one covering the whole list, keeps everything.
func Window(commits []Commit, limit int) []Commit {
	if limit <= 0 || limit >= len(commits) {
		return commits
	}
	return commits[len(commits)-limit:]
}
