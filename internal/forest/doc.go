/*
Package forest reconstructs causal structure over a materialized trace and
partitions it into logical execution groups.

# Overview

Given a flat collection of per-thread event traces (planes, lines, events with
typed attributes), the engine runs a fixed sequence of passes:

 1. Intra-thread linking: a nesting forest per line, derived from each
    event's [start, end) interval with an interval stack.
 2. Inter-thread linking: cross-thread parent/child edges from declarative
    ConnectRules (attribute-equality joins) and from producer/consumer
    context tags collected during the first pass.
 3. Root classification: explicit root kinds, iterative-loop detection,
    worker-thread merging, and eager-execution marking.
 4. Grouping: sequential group ids assigned by walking child edges from each
    root, first assignment wins, with cross-group dependencies recorded when
    a walk reaches a node owned by another group.

Nodes live in a single arena addressed by integer handles; parent/child
adjacency is index-based, so the structure is a DAG without ownership cycles.

Data anomalies (missing attributes, cycles, unreachable nodes) never abort a
run; they are logged and counted so a partially grouped trace is still
usable.

# Usage

	f, err := forest.New(tr, forest.Options{
		Rules:     ruleSet.Rules,
		RootKinds: ruleSet.RootKinds,
		Semantics: ruleSet.Semantics,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	f.Grow()
	report := f.BuildReport()
*/
package forest
