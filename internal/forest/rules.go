package forest

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/perfkit/eventforest/internal/trace"
)

// ConnectRule declares that any node of ParentKind should be linked as
// parent of any node of ChildKind when, for every paired attribute kind in
// ParentKeys/ChildKeys, the two nodes' attribute values are equal.
type ConnectRule struct {
	ParentKind trace.EventKind  `yaml:"parent_kind" json:"parent_kind"`
	ChildKind  trace.EventKind  `yaml:"child_kind" json:"child_kind"`
	ParentKeys []trace.AttrKind `yaml:"parent_keys" json:"parent_keys"`
	ChildKeys  []trace.AttrKind `yaml:"child_keys" json:"child_keys"`
}

// Validate checks that the paired key lists line up.
func (r ConnectRule) Validate() error {
	if len(r.ParentKeys) != len(r.ChildKeys) {
		return fmt.Errorf("rule %d->%d: %d parent keys paired with %d child keys",
			r.ParentKind, r.ChildKind, len(r.ParentKeys), len(r.ChildKeys))
	}
	return nil
}

// RuleSet is the full caller-supplied configuration surface: connect rules,
// explicit root kinds, and the semantics binding.
type RuleSet struct {
	Rules     []ConnectRule     `yaml:"rules" json:"rules"`
	RootKinds []trace.EventKind `yaml:"root_kinds" json:"root_kinds"`
	Semantics Semantics         `yaml:"semantics" json:"semantics"`
}

// ParseRuleSet decodes a YAML rule set.
func ParseRuleSet(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse rule set: %w", err)
	}
	for _, r := range rs.Rules {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid rule set: %w", err)
		}
	}
	return &rs, nil
}

// LoadRuleSet reads a YAML rule set from disk.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set: %w", err)
	}
	rs, err := ParseRuleSet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}
