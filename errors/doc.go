// Package errors provides the application error type shared by the pontos
// packages. Input validation, version file handling and git invocations report
// failures as *AppError carrying a machine-readable code.
//
// Transport failures (*httpclient.Error) and decoding failures (*schema.Error)
// keep their own types; AppError is for everything the caller supplied or the
// local system produced.
package errors
