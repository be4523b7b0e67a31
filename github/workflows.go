package github

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mbrinkhoff/pontos/validation"
)

// WorkflowsService handles GitHub Actions workflows and workflow runs.
type WorkflowsService struct {
	client *Client
}

// RunFilter narrows a workflow run listing. Zero fields are not sent.
type RunFilter struct {
	// Workflow scopes the listing to one workflow (numeric id or file name).
	Workflow string
	Actor    string
	Branch   string
	Event    string
	Status   RunStatus
	// Created is a date filter expression such as ">=2022-09-01".
	Created             string
	ExcludePullRequests bool
}

// Validate checks the filter values.
func (f RunFilter) Validate() error {
	v := validation.New()
	if f.Workflow != "" {
		workflowRule(v, f.Workflow)
	}
	if f.Status != "" {
		v.OneOf("status", string(f.Status), f.Status.Values())
	}
	v.Pattern("created", f.Created, `^(\*\.\.)?[<>=]*\d{4}-\d{2}-\d{2}\S*$`)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (f RunFilter) query() map[string]string {
	q := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			q[key] = value
		}
	}
	set("actor", f.Actor)
	set("branch", f.Branch)
	set("event", f.Event)
	set("status", string(f.Status))
	set("created", f.Created)
	if f.ExcludePullRequests {
		q["exclude_pull_requests"] = "true"
	}
	return q
}

// Get returns a workflow by numeric id or file name.
func (s *WorkflowsService) Get(ctx context.Context, repo Repo, workflow string) (Workflow, error) {
	if err := validateWorkflow(repo, workflow); err != nil {
		return Workflow{}, err
	}
	return get[Workflow](ctx, s.client, repo.path("actions", "workflows", workflow), nil)
}

// List lists the workflows of a repository.
func (s *WorkflowsService) List(repo Repo) *Pager[Workflow] {
	if err := repo.Validate(); err != nil {
		return failedPager[Workflow](err)
	}
	return newPager[Workflow](s.client, repo.path("actions", "workflows"), "workflows", nil)
}

type dispatchRequest struct {
	Ref    string            `json:"ref"`
	Inputs map[string]string `json:"inputs,omitempty"`
}

// Dispatch triggers a workflow_dispatch event for a workflow on ref.
func (s *WorkflowsService) Dispatch(ctx context.Context, repo Repo, workflow, ref string, inputs map[string]string) error {
	if err := validateWorkflow(repo, workflow); err != nil {
		return err
	}
	if err := validation.Required("ref", ref); err != nil {
		return err
	}
	path := repo.path("actions", "workflows", workflow, "dispatches")
	return s.client.exec(ctx, http.MethodPost, path, dispatchRequest{Ref: ref, Inputs: inputs})
}

// ListRuns lists workflow runs of the repository, or of one workflow when
// filter.Workflow is set.
func (s *WorkflowsService) ListRuns(repo Repo, filter RunFilter) *Pager[WorkflowRun] {
	if err := repo.Validate(); err != nil {
		return failedPager[WorkflowRun](err)
	}
	if err := filter.Validate(); err != nil {
		return failedPager[WorkflowRun](err)
	}
	path := repo.path("actions", "runs")
	if filter.Workflow != "" {
		path = repo.path("actions", "workflows", filter.Workflow, "runs")
	}
	return newPager[WorkflowRun](s.client, path, "workflow_runs", filter.query())
}

// GetRun returns a single workflow run.
func (s *WorkflowsService) GetRun(ctx context.Context, repo Repo, runID int64) (WorkflowRun, error) {
	if err := validateIDs(repo, "run_id", runID); err != nil {
		return WorkflowRun{}, err
	}
	return get[WorkflowRun](ctx, s.client, repo.path("actions", "runs", strconv.FormatInt(runID, 10)), nil)
}

func validateWorkflow(repo Repo, workflow string) error {
	if err := repo.Validate(); err != nil {
		return err
	}
	v := validation.New().Required("workflow", workflow)
	workflowRule(v, workflow)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// workflowRule rejects dot segments, which would resolve to another path
// once escaped into the URL.
func workflowRule(v *validation.Validator, workflow string) {
	v.Custom(workflow != "." && workflow != "..", "workflow", "must be a workflow id or file name")
}
