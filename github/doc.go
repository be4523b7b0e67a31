// Package github is a typed client for the GitHub REST API.
//
// A Client is bound to one API base URL and one credential. Resource
// operations are grouped in services (Artifacts, Workflows, Teams, Users,
// Apps, Repositories). Single-record operations return decoded records;
// collection operations return a Pager that fetches pages lazily:
//
//	err := github.Open(ctx, cfg, func(ctx context.Context, c *github.Client) error {
//	    runs, err := c.Workflows.ListRuns(repo, github.RunFilter{Branch: "main"}).All(ctx)
//	    ...
//	})
//
// Every response is decoded with the schema package. Non-2xx responses
// surface as *httpclient.Error, malformed listings as *PaginationError and
// records that do not match their type as *schema.Error. Nothing is retried.
package github
