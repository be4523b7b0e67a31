package github

import "time"

// Fields without omitempty are required when decoding; omitempty marks
// fields GitHub may omit or send as null.

// User is a GitHub account.
type User struct {
	Login             string `json:"login"`
	ID                int64  `json:"id"`
	NodeID            string `json:"node_id"`
	AvatarURL         string `json:"avatar_url"`
	GravatarID        string `json:"gravatar_id,omitempty"`
	URL               string `json:"url"`
	HTMLURL           string `json:"html_url"`
	FollowersURL      string `json:"followers_url,omitempty"`
	FollowingURL      string `json:"following_url,omitempty"`
	GistsURL          string `json:"gists_url,omitempty"`
	StarredURL        string `json:"starred_url,omitempty"`
	SubscriptionsURL  string `json:"subscriptions_url,omitempty"`
	OrganizationsURL  string `json:"organizations_url,omitempty"`
	ReposURL          string `json:"repos_url,omitempty"`
	EventsURL         string `json:"events_url,omitempty"`
	ReceivedEventsURL string `json:"received_events_url,omitempty"`
	Type              string `json:"type"`
	SiteAdmin         bool   `json:"site_admin"`
}

// TeamRef is a reduced reference to another team.
type TeamRef struct {
	ID     int64  `json:"id"`
	NodeID string `json:"node_id,omitempty"`
	Name   string `json:"name,omitempty"`
	Slug   string `json:"slug"`
}

// Team is an organization team. The parent is a non-owning reference;
// resolve it through a TeamIndex.
type Team struct {
	ID              int64       `json:"id"`
	NodeID          string      `json:"node_id"`
	URL             string      `json:"url"`
	HTMLURL         string      `json:"html_url"`
	Name            string      `json:"name"`
	Slug            string      `json:"slug"`
	Description     string      `json:"description,omitempty"`
	Privacy         TeamPrivacy `json:"privacy"`
	Permission      Permission  `json:"permission"`
	MembersURL      string      `json:"members_url"`
	RepositoriesURL string      `json:"repositories_url"`
	Parent          *TeamRef    `json:"parent,omitempty"`
}

// ParentID returns the id of the parent team, if any.
func (t Team) ParentID() (int64, bool) {
	if t.Parent == nil {
		return 0, false
	}
	return t.Parent.ID, true
}

// Membership is a user's membership in a team.
type Membership struct {
	URL   string   `json:"url"`
	Role  TeamRole `json:"role"`
	State string   `json:"state"`
}

// App is a GitHub App.
type App struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug,omitempty"`
	NodeID      string    `json:"node_id"`
	Owner       User      `json:"owner"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ExternalURL string    `json:"external_url"`
	HTMLURL     string    `json:"html_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Events      []string  `json:"events"`
}

// Workflow is a GitHub Actions workflow definition.
type Workflow struct {
	ID        int64         `json:"id"`
	NodeID    string        `json:"node_id"`
	Name      string        `json:"name"`
	Path      string        `json:"path"`
	State     WorkflowState `json:"state"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	URL       string        `json:"url"`
	HTMLURL   string        `json:"html_url"`
	BadgeURL  string        `json:"badge_url"`
}

// RepositoryRef is a reduced repository reference embedded in runs.
type RepositoryRef struct {
	ID       int64  `json:"id"`
	NodeID   string `json:"node_id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	URL      string `json:"url"`
}

// CommitUser is the author or committer of a commit.
type CommitUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Commit is the head commit of a workflow run.
type Commit struct {
	ID        string      `json:"id"`
	TreeID    string      `json:"tree_id"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Author    *CommitUser `json:"author,omitempty"`
	Committer *CommitUser `json:"committer,omitempty"`
}

// WorkflowRun is one execution of a workflow.
type WorkflowRun struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name,omitempty"`
	NodeID           string         `json:"node_id"`
	CheckSuiteID     int64          `json:"check_suite_id,omitempty"`
	CheckSuiteNodeID string         `json:"check_suite_node_id,omitempty"`
	HeadBranch       string         `json:"head_branch,omitempty"`
	HeadSHA          string         `json:"head_sha"`
	Path             string         `json:"path,omitempty"`
	RunNumber        int64          `json:"run_number"`
	RunAttempt       int64          `json:"run_attempt,omitempty"`
	Event            string         `json:"event"`
	DisplayTitle     string         `json:"display_title,omitempty"`
	Status           RunStatus      `json:"status,omitempty"`
	Conclusion       *Conclusion    `json:"conclusion,omitempty"`
	WorkflowID       int64          `json:"workflow_id"`
	URL              string         `json:"url"`
	HTMLURL          string         `json:"html_url"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	RunStartedAt     *time.Time     `json:"run_started_at,omitempty"`
	Actor            *User          `json:"actor,omitempty"`
	TriggeringActor  *User          `json:"triggering_actor,omitempty"`
	JobsURL          string         `json:"jobs_url"`
	LogsURL          string         `json:"logs_url"`
	CheckSuiteURL    string         `json:"check_suite_url"`
	ArtifactsURL     string         `json:"artifacts_url"`
	CancelURL        string         `json:"cancel_url"`
	RerunURL         string         `json:"rerun_url"`
	WorkflowURL      string         `json:"workflow_url"`
	HeadCommit       *Commit        `json:"head_commit,omitempty"`
	Repository       RepositoryRef  `json:"repository"`
	HeadRepository   *RepositoryRef `json:"head_repository,omitempty"`
}

// ArtifactWorkflowRun references the run that produced an artifact.
type ArtifactWorkflowRun struct {
	ID               int64  `json:"id"`
	RepositoryID     int64  `json:"repository_id"`
	HeadRepositoryID int64  `json:"head_repository_id"`
	HeadBranch       string `json:"head_branch"`
	HeadSHA          string `json:"head_sha"`
}

// Artifact is a file archive uploaded by a workflow run.
type Artifact struct {
	ID                 int64                `json:"id"`
	NodeID             string               `json:"node_id"`
	Name               string               `json:"name"`
	SizeInBytes        int64                `json:"size_in_bytes"`
	URL                string               `json:"url"`
	ArchiveDownloadURL string               `json:"archive_download_url"`
	Expired            bool                 `json:"expired"`
	CreatedAt          *time.Time           `json:"created_at,omitempty"`
	ExpiresAt          *time.Time           `json:"expires_at,omitempty"`
	UpdatedAt          *time.Time           `json:"updated_at,omitempty"`
	WorkflowRun        *ArtifactWorkflowRun `json:"workflow_run,omitempty"`
}

// Repository is a GitHub repository.
type Repository struct {
	ID            int64      `json:"id"`
	NodeID        string     `json:"node_id"`
	Name          string     `json:"name"`
	FullName      string     `json:"full_name"`
	Owner         User       `json:"owner"`
	Private       bool       `json:"private"`
	HTMLURL       string     `json:"html_url"`
	Description   string     `json:"description,omitempty"`
	Fork          bool       `json:"fork"`
	URL           string     `json:"url"`
	DefaultBranch string     `json:"default_branch,omitempty"`
	Archived      bool       `json:"archived,omitempty"`
	Topics        []string   `json:"topics,omitempty"`
	PushedAt      *time.Time `json:"pushed_at,omitempty"`
}

// RepositoryUpdate is a partial repository update. Nil fields are left
// unchanged.
type RepositoryUpdate struct {
	Name                *string `json:"name,omitempty"`
	Description         *string `json:"description,omitempty"`
	Homepage            *string `json:"homepage,omitempty"`
	Private             *bool   `json:"private,omitempty"`
	HasIssues           *bool   `json:"has_issues,omitempty"`
	HasProjects         *bool   `json:"has_projects,omitempty"`
	HasWiki             *bool   `json:"has_wiki,omitempty"`
	DefaultBranch       *string `json:"default_branch,omitempty"`
	AllowSquashMerge    *bool   `json:"allow_squash_merge,omitempty"`
	AllowMergeCommit    *bool   `json:"allow_merge_commit,omitempty"`
	AllowRebaseMerge    *bool   `json:"allow_rebase_merge,omitempty"`
	DeleteBranchOnMerge *bool   `json:"delete_branch_on_merge,omitempty"`
	Archived            *bool   `json:"archived,omitempty"`
}

// isEmpty reports whether the update changes nothing.
func (u RepositoryUpdate) isEmpty() bool {
	return u == RepositoryUpdate{}
}
