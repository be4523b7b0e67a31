// Package process runs subprocesses with captured output, process-group
// cancellation and a SIGTERM grace period before SIGKILL. A non-zero exit
// is reported as an *ExitError carrying the trimmed stderr.
//
//	res, err := process.Run(ctx, process.Command{Binary: "git", Args: []string{"--version"}})
package process
