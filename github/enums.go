package github

import "github.com/mbrinkhoff/pontos/schema"

var (
	_ schema.Enum = TeamPrivacy("")
	_ schema.Enum = Permission("")
	_ schema.Enum = TeamRole("")
	_ schema.Enum = WorkflowState("")
	_ schema.Enum = RunStatus("")
	_ schema.Enum = Conclusion("")
)

// TeamPrivacy is the visibility of a team.
type TeamPrivacy string

const (
	TeamPrivacySecret TeamPrivacy = "secret"
	TeamPrivacyClosed TeamPrivacy = "closed"
)

func (TeamPrivacy) Values() []string { return []string{"secret", "closed"} }

func (p *TeamPrivacy) UnmarshalText(b []byte) error { return schema.UnmarshalEnum(p, b) }

// Permission is the default repository permission of a team.
type Permission string

const (
	PermissionPull     Permission = "pull"
	PermissionPush     Permission = "push"
	PermissionTriage   Permission = "triage"
	PermissionMaintain Permission = "maintain"
	PermissionAdmin    Permission = "admin"
)

func (Permission) Values() []string {
	return []string{"pull", "push", "triage", "maintain", "admin"}
}

func (p *Permission) UnmarshalText(b []byte) error { return schema.UnmarshalEnum(p, b) }

// TeamRole is a member's role within a team.
type TeamRole string

const (
	TeamRoleMember     TeamRole = "member"
	TeamRoleMaintainer TeamRole = "maintainer"
)

func (TeamRole) Values() []string { return []string{"member", "maintainer"} }

func (r *TeamRole) UnmarshalText(b []byte) error { return schema.UnmarshalEnum(r, b) }

// WorkflowState is the state of a workflow definition.
type WorkflowState string

const (
	WorkflowStateActive             WorkflowState = "active"
	WorkflowStateDeleted            WorkflowState = "deleted"
	WorkflowStateDisabledFork       WorkflowState = "disabled_fork"
	WorkflowStateDisabledInactivity WorkflowState = "disabled_inactivity"
	WorkflowStateDisabledManually   WorkflowState = "disabled_manually"
)

func (WorkflowState) Values() []string {
	return []string{"active", "deleted", "disabled_fork", "disabled_inactivity", "disabled_manually"}
}

func (s *WorkflowState) UnmarshalText(b []byte) error { return schema.UnmarshalEnum(s, b) }

// RunStatus is the status of a workflow run. The conclusion values are
// accepted too because GitHub allows them as status filters.
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusWaiting        RunStatus = "waiting"
	RunStatusRequested      RunStatus = "requested"
	RunStatusPending        RunStatus = "pending"
	RunStatusSuccess        RunStatus = "success"
	RunStatusFailure        RunStatus = "failure"
	RunStatusNeutral        RunStatus = "neutral"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusSkipped        RunStatus = "skipped"
	RunStatusTimedOut       RunStatus = "timed_out"
	RunStatusActionRequired RunStatus = "action_required"
	RunStatusStale          RunStatus = "stale"
)

func (RunStatus) Values() []string {
	return []string{
		"queued", "in_progress", "completed", "waiting", "requested", "pending",
		"success", "failure", "neutral", "cancelled", "skipped", "timed_out",
		"action_required", "stale",
	}
}

func (s *RunStatus) UnmarshalText(b []byte) error { return schema.UnmarshalEnum(s, b) }

// Conclusion is the outcome of a completed workflow run.
type Conclusion string

const (
	ConclusionSuccess        Conclusion = "success"
	ConclusionFailure        Conclusion = "failure"
	ConclusionNeutral        Conclusion = "neutral"
	ConclusionCancelled      Conclusion = "cancelled"
	ConclusionSkipped        Conclusion = "skipped"
	ConclusionTimedOut       Conclusion = "timed_out"
	ConclusionActionRequired Conclusion = "action_required"
	ConclusionStale          Conclusion = "stale"
)

func (Conclusion) Values() []string {
	return []string{
		"success", "failure", "neutral", "cancelled", "skipped", "timed_out",
		"action_required", "stale",
	}
}

func (c *Conclusion) UnmarshalText(b []byte) error { return schema.UnmarshalEnum(c, b) }
