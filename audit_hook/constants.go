package audithook

// Wire tags for group lifecycle events. These are the short symbolic topics
// carried by each emitted event, kept identical to the on-chain originals so
// downstream consumers match on stable strings.
const (
	TagCreated  = "created"
	TagJoined   = "joined"
	TagContrib  = "contrib"
	TagPayout   = "payout"
	TagCycle    = "cycle"
	TagComplete = "complete"
)

// Action constants for audit events.
const (
	ActionGroupCreated         = "group.created"
	ActionMemberJoined         = "member.joined"
	ActionContributionRecorded = "contribution.recorded"
	ActionPayoutExecuted       = "payout.executed"
	ActionCycleAdvanced        = "cycle.advanced"
	ActionGroupCompleted       = "group.completed"
	ActionGroupCancelled       = "group.cancelled"
)

// Resource constants for audit events.
const (
	ResourceGroup        = "group"
	ResourceContribution = "contribution"
	ResourcePayout       = "payout"
)

// Category constants for audit events.
const (
	CategoryLifecycle = "lifecycle"
	CategoryLedger    = "ledger"
)

// Severity levels for audit events.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
