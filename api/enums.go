package api

import "slices"

// The enums below are open: every known wire value has a named constant, and
// any other string decodes into the same type unchanged so values introduced
// by the API later survive a decode/encode round trip.

type ReasoningEffort string

const (
	ReasoningEffortLow    ReasoningEffort = "low"
	ReasoningEffortMedium ReasoningEffort = "medium"
	ReasoningEffortHigh   ReasoningEffort = "high"
)

func (e ReasoningEffort) Known() bool {
	return isKnown(e, ReasoningEffortLow, ReasoningEffortMedium, ReasoningEffortHigh)
}

func (e ReasoningEffort) String() string { return string(e) }

type Verbosity string

const (
	VerbosityLow    Verbosity = "low"
	VerbosityMedium Verbosity = "medium"
	VerbosityHigh   Verbosity = "high"
)

func (v Verbosity) Known() bool {
	return isKnown(v, VerbosityLow, VerbosityMedium, VerbosityHigh)
}

func (v Verbosity) String() string { return string(v) }

// OutputType discriminates the items of Response.Output.
type OutputType string

const (
	OutputTypeMessage      OutputType = "message"
	OutputTypeFunctionCall OutputType = "function_call"
)

func (t OutputType) Known() bool {
	return isKnown(t, OutputTypeMessage, OutputTypeFunctionCall)
}

func (t OutputType) String() string { return string(t) }

// ContentType discriminates the segments of a message output item.
type ContentType string

const (
	ContentTypeOutputText ContentType = "output_text"
)

func (t ContentType) Known() bool {
	return isKnown(t, ContentTypeOutputText)
}

func (t ContentType) String() string { return string(t) }

type Status string

const (
	StatusInProgress     Status = "in_progress"
	StatusCompleted      Status = "completed"
	StatusRequiresAction Status = "requires_action"
	StatusFailed         Status = "failed"
)

func (s Status) Known() bool {
	return isKnown(s, StatusInProgress, StatusCompleted, StatusRequiresAction, StatusFailed)
}

func (s Status) String() string { return string(s) }

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
	RoleSystem    Role = "system"
)

func (r Role) Known() bool {
	return isKnown(r, RoleUser, RoleAssistant, RoleTool, RoleSystem)
}

func (r Role) String() string { return string(r) }

// FormatType is the text.format.type echoed back on a response.
type FormatType string

const (
	FormatTypeMarkdown  FormatType = "markdown"
	FormatTypePlainText FormatType = "plain_text"
)

func (f FormatType) Known() bool {
	return isKnown(f, FormatTypeMarkdown, FormatTypePlainText)
}

func (f FormatType) String() string { return string(f) }

func isKnown[T ~string](value T, known ...T) bool {
	return slices.Contains(known, value)
}
