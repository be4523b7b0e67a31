package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/mbrinkhoff/pontos/github"
	"github.com/mbrinkhoff/pontos/logger"
	"github.com/mbrinkhoff/pontos/version"
)

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}

func parseArgs(fs *pflag.FlagSet, args []string, want int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, usageError("%v", err)
	}
	if fs.NArg() != want {
		return nil, usageError("%s takes %d argument(s), got %d", fs.Name(), want, fs.NArg())
	}
	return fs.Args(), nil
}

func parseRepo(s string) (github.Repo, error) {
	repo, err := github.ParseRepo(s)
	if err != nil {
		return github.Repo{}, usageError("%v", err)
	}
	return repo, nil
}

func runRuns(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("runs")
	var filter github.RunFilter
	var status string
	fs.StringVar(&filter.Workflow, "workflow", "", "workflow id or file name")
	fs.StringVar(&filter.Actor, "actor", "", "user who triggered the run")
	fs.StringVar(&filter.Branch, "branch", "", "head branch")
	fs.StringVar(&filter.Event, "event", "", "triggering event")
	fs.StringVar(&status, "status", "", "run status or conclusion")
	fs.StringVar(&filter.Created, "created", "", "creation date filter, e.g. >=2024-01-01")
	fs.BoolVar(&filter.ExcludePullRequests, "exclude-pull-requests", false, "omit pull request data")
	limit := fs.Int("limit", 0, "stop after this many runs (0 lists all)")

	rest, err := parseArgs(fs, args, 1)
	if err != nil {
		return err
	}
	repo, err := parseRepo(rest[0])
	if err != nil {
		return err
	}
	filter.Status = github.RunStatus(status)

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tRUN\tBRANCH\tEVENT\tSTATUS\tCONCLUSION\tCREATED")
	count := 0
	for r, err := range e.client.Workflows.ListRuns(repo, filter).Seq(ctx) {
		if err != nil {
			_ = tw.Flush()
			return err
		}
		conclusion := "-"
		if r.Conclusion != nil {
			conclusion = string(*r.Conclusion)
		}
		_, _ = fmt.Fprintf(tw, "%d\t#%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.RunNumber, r.HeadBranch, r.Event, r.Status, conclusion,
			r.CreatedAt.UTC().Format(time.RFC3339))
		count++
		if *limit > 0 && count >= *limit {
			break
		}
	}
	e.log.Debug("runs listed", logger.Fields(logger.FieldItems, count, "repo", repo.String()))
	return tw.Flush()
}

func runArtifacts(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("artifacts")
	runID := fs.Int64("run", 0, "only list artifacts of this workflow run")

	rest, err := parseArgs(fs, args, 1)
	if err != nil {
		return err
	}
	repo, err := parseRepo(rest[0])
	if err != nil {
		return err
	}

	pager := e.client.Artifacts.List(repo)
	if *runID != 0 {
		pager = e.client.Artifacts.ListForRun(repo, *runID)
	}
	artifacts, err := pager.All(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tSIZE\tEXPIRED")
	for _, a := range artifacts {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%t\n", a.ID, a.Name, a.SizeInBytes, a.Expired)
	}
	return tw.Flush()
}

func runDownload(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("download")
	rest, err := parseArgs(fs, args, 3)
	if err != nil {
		return err
	}
	repo, err := parseRepo(rest[0])
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(rest[1], 10, 64)
	if err != nil {
		return usageError("invalid artifact id %q", rest[1])
	}

	n, err := e.client.Artifacts.DownloadToFile(ctx, repo, id, rest[2])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(e.stdout, "downloaded artifact %d to %s (%d bytes)\n", id, rest[2], n)
	return nil
}

func runDispatch(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("dispatch")
	ref := fs.String("ref", "", "branch or tag to run the workflow on")
	inputs := fs.StringToString("input", nil, "workflow input as key=value (repeatable)")

	rest, err := parseArgs(fs, args, 2)
	if err != nil {
		return err
	}
	repo, err := parseRepo(rest[0])
	if err != nil {
		return err
	}

	if err := e.client.Workflows.Dispatch(ctx, repo, rest[1], *ref, *inputs); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(e.stdout, "dispatched %s on %s\n", rest[1], *ref)
	return nil
}

func runVersion(_ context.Context, e *env, args []string) error {
	fs := newFlagSet("version")
	dir := fs.String("project", "", "project directory (default: current directory)")
	develop := fs.Bool("develop", false, "update to a development version")
	force := fs.Bool("force", false, "rewrite the version files even if unchanged")

	rest, err := parseArgs(fs, args, 2)
	if err != nil {
		return err
	}

	var project version.Project = version.PythonProject{Dir: *dir}
	switch rest[0] {
	case "verify":
		if err := project.Verify(rest[1]); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(e.stdout, "OK")
	case "update":
		updated, err := project.Update(rest[1], version.UpdateOptions{Develop: *develop, Force: *force})
		if err != nil {
			return err
		}
		if !updated.Changed() && !*force {
			_, _ = fmt.Fprintf(e.stdout, "version is already %s\n", updated.New)
			return nil
		}
		_, _ = fmt.Fprintf(e.stdout, "updated version from %s to %s\n", updated.Previous, updated.New)
	default:
		return usageError("unknown version subcommand %q", rest[0])
	}
	return nil
}
