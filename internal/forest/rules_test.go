package forest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfkit/eventforest/internal/trace"
)

const sampleRuleYAML = `
rules:
  - parent_kind: 7
    child_kind: 8
    parent_keys: [1]
    child_keys: [1]
root_kinds: [1, 4]
semantics:
  group_id_attr: 100
  group_name_attr: 101
  related_groups_attr: 102
  is_eager_attr: 103
  name_attr: 2
  loop_iteration_kind: 3
  iter_num_attr: 3
`

func TestParseRuleSet(t *testing.T) {
	rs, err := ParseRuleSet([]byte(sampleRuleYAML))
	require.NoError(t, err)

	require.Len(t, rs.Rules, 1)
	assert.Equal(t, trace.EventKind(7), rs.Rules[0].ParentKind)
	assert.Equal(t, trace.EventKind(8), rs.Rules[0].ChildKind)
	assert.Equal(t, []trace.AttrKind{1}, rs.Rules[0].ParentKeys)
	assert.Equal(t, []trace.EventKind{1, 4}, rs.RootKinds)
	assert.Equal(t, trace.AttrKind(100), rs.Semantics.GroupIDAttr)
	assert.Equal(t, trace.EventKind(3), rs.Semantics.LoopIterationKind)
}

func TestParseRuleSetRejectsMismatchedKeys(t *testing.T) {
	bad := `
rules:
  - parent_kind: 7
    child_kind: 8
    parent_keys: [1, 2]
    child_keys: [1]
`
	_, err := ParseRuleSet([]byte(bad))
	require.Error(t, err)
}

func TestLoadRuleSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRuleYAML), 0o644))

	rs, err := LoadRuleSet(path)
	require.NoError(t, err)
	assert.Len(t, rs.Rules, 1)

	_, err = LoadRuleSet(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConnectRuleValidate(t *testing.T) {
	ok := ConnectRule{ParentKeys: []trace.AttrKind{1, 2}, ChildKeys: []trace.AttrKind{3, 4}}
	assert.NoError(t, ok.Validate())

	bad := ConnectRule{ParentKeys: []trace.AttrKind{1}, ChildKeys: nil}
	assert.Error(t, bad.Validate())
}
