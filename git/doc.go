// Package git runs git commands for release automation.
//
// Every operation builds an argument list and hands it to a process.Runner,
// so tests can record commands instead of executing them. A non-zero exit
// status is reported as an *errors.AppError with code GIT_ERROR carrying
// the command's stderr.
package git
