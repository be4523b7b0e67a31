package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbrinkhoff/pontos/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithLogger(logger.Nop())}, opts...)
	c, err := New(Config{APIURL: srv.URL, Token: "secret"}, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { _ = c.Stop(context.Background()) })
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func userFixture(login string, id int64) map[string]any {
	return map[string]any{
		"login":      login,
		"id":         id,
		"node_id":    "U_" + login,
		"avatar_url": "https://avatars.githubusercontent.com/u/1",
		"url":        "https://api.github.com/users/" + login,
		"html_url":   "https://github.com/" + login,
		"type":       "User",
		"site_admin": false,
	}
}

func artifactFixture(id int64) map[string]any {
	return map[string]any{
		"id":                   id,
		"node_id":              "MDg6QXJ0aWZhY3Qx",
		"name":                 "build",
		"size_in_bytes":        556,
		"url":                  "https://api.github.com/repos/foo/bar/actions/artifacts/1",
		"archive_download_url": "https://api.github.com/repos/foo/bar/actions/artifacts/1/zip",
		"expired":              false,
		"created_at":           "2022-09-26T10:00:00Z",
		"expires_at":           "2022-12-25T10:00:00Z",
		"updated_at":           "2022-09-26T10:00:00Z",
		"workflow_run": map[string]any{
			"id":                 2332938,
			"repository_id":      1296269,
			"head_repository_id": 1296269,
			"head_branch":        "main",
			"head_sha":           "328faa0536e6fef19753d9d91dc96a9931694ce3",
		},
	}
}

func artifactPage(from, n int) map[string]any {
	items := make([]any, 0, n)
	for i := from; i < from+n; i++ {
		items = append(items, artifactFixture(int64(i)))
	}
	return map[string]any{"total_count": 120, "artifacts": items}
}

func workflowFixture(id int64) map[string]any {
	return map[string]any{
		"id":         id,
		"node_id":    "W_kwDOA",
		"name":       "CI",
		"path":       ".github/workflows/ci.yml",
		"state":      "active",
		"created_at": "2020-01-08T23:48:37.000-08:00",
		"updated_at": "2020-01-08T23:50:21.000-08:00",
		"url":        "https://api.github.com/repos/foo/bar/actions/workflows/161335",
		"html_url":   "https://github.com/foo/bar/blob/main/.github/workflows/ci.yml",
		"badge_url":  "https://github.com/foo/bar/workflows/CI/badge.svg",
	}
}

func runFixture(id int64) map[string]any {
	return map[string]any{
		"id":              id,
		"name":            "CI",
		"node_id":         "WFR_kwLOA",
		"check_suite_id":  42,
		"head_branch":     "main",
		"head_sha":        "acb5820ced9479c074f688cc328bf03f341a511d",
		"run_number":      562,
		"event":           "push",
		"status":          "in_progress",
		"conclusion":      nil,
		"workflow_id":     159038,
		"url":             "https://api.github.com/repos/foo/bar/actions/runs/1",
		"html_url":        "https://github.com/foo/bar/actions/runs/1",
		"created_at":      "2022-09-26T10:00:00Z",
		"updated_at":      "2022-09-26T10:05:00Z",
		"actor":           userFixture("octocat", 1),
		"jobs_url":        "https://api.github.com/repos/foo/bar/actions/runs/1/jobs",
		"logs_url":        "https://api.github.com/repos/foo/bar/actions/runs/1/logs",
		"check_suite_url": "https://api.github.com/repos/foo/bar/check-suites/42",
		"artifacts_url":   "https://api.github.com/repos/foo/bar/actions/runs/1/artifacts",
		"cancel_url":      "https://api.github.com/repos/foo/bar/actions/runs/1/cancel",
		"rerun_url":       "https://api.github.com/repos/foo/bar/actions/runs/1/rerun",
		"workflow_url":    "https://api.github.com/repos/foo/bar/actions/workflows/159038",
		"head_commit": map[string]any{
			"id":        "acb5820ced9479c074f688cc328bf03f341a511d",
			"tree_id":   "d23f6eedb1e1b9610bbc754ddb5197bfe7271223",
			"message":   "Create main.yml",
			"timestamp": "2022-09-26T09:59:00Z",
			"author":    map[string]any{"name": "Octo Cat", "email": "octocat@github.com"},
			"committer": map[string]any{"name": "GitHub", "email": "noreply@github.com"},
		},
		"repository": map[string]any{
			"id":        1296269,
			"node_id":   "MDEwOlJlcG9zaXRvcnkxMjk2MjY5",
			"name":      "bar",
			"full_name": "foo/bar",
			"url":       "https://api.github.com/repos/foo/bar",
		},
	}
}

func teamFixture(id int64, slug string, parent map[string]any) map[string]any {
	team := map[string]any{
		"id":               id,
		"node_id":          "T_" + slug,
		"url":              "https://api.github.com/teams/" + slug,
		"html_url":         "https://github.com/orgs/foo/teams/" + slug,
		"name":             slug,
		"slug":             slug,
		"description":      nil,
		"privacy":          "closed",
		"permission":       "pull",
		"members_url":      "https://api.github.com/teams/1/members{/member}",
		"repositories_url": "https://api.github.com/teams/1/repos",
		"parent":           parent,
	}
	return team
}
