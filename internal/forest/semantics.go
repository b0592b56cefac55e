package forest

import "github.com/perfkit/eventforest/internal/trace"

// Semantics binds the engine's distinguished roles to the caller's attribute
// and event vocabulary. The engine itself defines no kind ids; a zero value
// means the role is unbound and the corresponding pass is skipped.
type Semantics struct {
	// Context tags marking asynchronous producer/consumer relationships.
	ProducerTypeAttr trace.AttrKind `yaml:"producer_type_attr" json:"producer_type_attr"`
	ProducerIDAttr   trace.AttrKind `yaml:"producer_id_attr" json:"producer_id_attr"`
	ConsumerTypeAttr trace.AttrKind `yaml:"consumer_type_attr" json:"consumer_type_attr"`
	ConsumerIDAttr   trace.AttrKind `yaml:"consumer_id_attr" json:"consumer_id_attr"`

	// Output attributes written back to grouped events.
	GroupIDAttr       trace.AttrKind `yaml:"group_id_attr" json:"group_id_attr"`
	GroupNameAttr     trace.AttrKind `yaml:"group_name_attr" json:"group_name_attr"`
	RelatedGroupsAttr trace.AttrKind `yaml:"related_groups_attr" json:"related_groups_attr"`
	IsEagerAttr       trace.AttrKind `yaml:"is_eager_attr" json:"is_eager_attr"`

	// NameAttr is the root event's identifying attribute used for group
	// naming (e.g., a step or request name).
	NameAttr trace.AttrKind `yaml:"name_attr" json:"name_attr"`

	// ModelIDAttr carries a model identifier on inference workloads.
	ModelIDAttr trace.AttrKind `yaml:"model_id_attr" json:"model_id_attr"`

	// Loop structure: marker events of LoopIterationKind carry IterNumAttr;
	// the earliest qualifying descendant (of a LoopRootKinds kind, or the
	// marker itself when the list is empty) of each iteration seeds a group.
	IterNumAttr       trace.AttrKind    `yaml:"iter_num_attr" json:"iter_num_attr"`
	LoopIterationKind trace.EventKind   `yaml:"loop_iteration_kind" json:"loop_iteration_kind"`
	LoopRootKinds     []trace.EventKind `yaml:"loop_root_kinds" json:"loop_root_kinds"`

	// Worker merging: async dispatch roots following a function invocation
	// root on the same line are folded into the invocation's group.
	FunctionRunKind    trace.EventKind   `yaml:"function_run_kind" json:"function_run_kind"`
	AsyncDispatchKinds []trace.EventKind `yaml:"async_dispatch_kinds" json:"async_dispatch_kinds"`

	// Eager marking: an EagerKinds node with no ScheduledKinds ancestor ran
	// outside a scheduled execution context.
	EagerKinds     []trace.EventKind `yaml:"eager_kinds" json:"eager_kinds"`
	ScheduledKinds []trace.EventKind `yaml:"scheduled_kinds" json:"scheduled_kinds"`
}

func kindIn(kind trace.EventKind, kinds []trace.EventKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
