package sched

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Error-kind keys recognized by ParseContext. Each names a recoverable
// input condition whose severity is deck-configurable.
const (
	ParseWGNameSpace          = "PARSE_WGNAME_SPACE"
	ScheduleInvalidName       = "SCHEDULE_INVALID_NAME"
	ScheduleWellInFieldGroup  = "SCHEDULE_WELL_IN_FIELD_GROUP"
	ScheduleIgnoredGuideRate  = "SCHEDULE_IGNORED_GUIDE_RATE"
	UnsupportedTerminateIfBHP = "UNSUPPORTED_TERMINATE_IF_BHP"
)

// InputAction is the configured response to a recognized error kind.
type InputAction int

const (
	ActionThrow InputAction = iota
	ActionWarn
	ActionIgnore
)

// ParseContext decides, per recognized error kind, whether a condition
// is ignored, warned about, or fatal. Keyword-specific correctness
// violations bypass it and are unconditionally thrown by handlers.
type ParseContext struct {
	actions map[string]InputAction
}

// NewParseContext returns a context with every recognized kind set to
// its default action (throw, except the advisory kinds below).
func NewParseContext() *ParseContext {
	return &ParseContext{actions: map[string]InputAction{
		ParseWGNameSpace:          ActionThrow,
		ScheduleInvalidName:       ActionThrow,
		ScheduleWellInFieldGroup:  ActionWarn,
		ScheduleIgnoredGuideRate:  ActionWarn,
		UnsupportedTerminateIfBHP: ActionThrow,
	}}
}

// Update sets the action for an error kind.
func (pc *ParseContext) Update(kind string, action InputAction) {
	pc.actions[kind] = action
}

// Action returns the configured action for kind; unknown kinds throw.
func (pc *ParseContext) Action(kind string) InputAction {
	if a, ok := pc.actions[kind]; ok {
		return a
	}
	return ActionThrow
}

// HandleError applies the configured policy for kind: ActionIgnore does
// nothing, ActionWarn logs and records a warning on the guard, and
// ActionThrow records and returns a structured input error. The message
// may contain the placeholders {keyword}, {file} and {line}, expanded
// from the location.
func (pc *ParseContext) HandleError(kind, message string, location KeywordLocation, guard *ErrorGuard) error {
	msg := expandLocation(message, location)
	switch pc.Action(kind) {
	case ActionIgnore:
		return nil
	case ActionWarn:
		guard.AddWarning(kind, msg)
		logrus.Warn(msg)
		return nil
	default:
		guard.AddError(kind, msg)
		return &InputError{Message: msg, Location: location}
	}
}

func expandLocation(message string, location KeywordLocation) string {
	r := strings.NewReplacer(
		"{keyword}", location.Keyword,
		"{file}", location.Filename,
		"{line}", strconv.Itoa(location.Lineno))
	return r.Replace(message)
}

// guardEntry is one recorded diagnostic.
type guardEntry struct {
	Kind    string
	Message string
}

// ErrorGuard accumulates the warnings and policy errors seen while
// processing a deck, for reporting after the run.
type ErrorGuard struct {
	warnings []guardEntry
	errors   []guardEntry
}

// NewErrorGuard returns an empty guard.
func NewErrorGuard() *ErrorGuard { return &ErrorGuard{} }

// AddWarning records a non-fatal diagnostic.
func (g *ErrorGuard) AddWarning(kind, message string) {
	g.warnings = append(g.warnings, guardEntry{Kind: kind, Message: message})
}

// AddError records a fatal diagnostic.
func (g *ErrorGuard) AddError(kind, message string) {
	g.errors = append(g.errors, guardEntry{Kind: kind, Message: message})
}

// WarningCount returns the number of recorded warnings.
func (g *ErrorGuard) WarningCount() int { return len(g.warnings) }

// ErrorCount returns the number of recorded errors.
func (g *ErrorGuard) ErrorCount() int { return len(g.errors) }

// HasWarning reports whether a warning of the given kind was recorded.
func (g *ErrorGuard) HasWarning(kind string) bool {
	for _, w := range g.warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}
