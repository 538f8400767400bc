// Package sched builds a time-indexed model of reservoir simulator
// controls from a pre-tokenized schedule deck.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - deck.go: the keyword/record/item input model (DeckKeyword and friends)
//   - state.go: ScheduleState, one copy-on-write snapshot per report step
//   - schedule.go: the timeline, keyword dispatch, and step finalization
//
// # Architecture
//
// A Schedule consumes an ordered sequence of DeckKeyword values per
// report step. Each keyword name resolves through one of six handler
// registries (group, multi-segment well, network, UDQ, well,
// miscellaneous control); the
// matched handler receives a HandlerContext bound to the mutable
// current-step snapshot and applies the keyword as a transactional
// mutation. Snapshots for earlier steps are immutable lookback state.
//
// Sub-objects of a snapshot (well collection, group collection, network
// topology, guide-rate config, tuning, UDQ config, well lists, ...) use
// copy-on-write sharing: an update installs a new value only when the
// content actually changed, so unchanged sub-objects are shared between
// adjacent snapshots.
//
// # Key Types
//
//   - DeckKeyword / DeckRecord / DeckItem: immutable parsed input
//   - Schedule: the append-only snapshot timeline and keyword driver
//   - ScheduleState: one report step's snapshot
//   - HandlerContext: the per-keyword capability bundle handed to handlers
//   - ParseContext / ErrorGuard: configurable input-error policy
//   - SimulatorUpdate: side channel populated when keywords are replayed
//     inside a conditional-action context
package sched
