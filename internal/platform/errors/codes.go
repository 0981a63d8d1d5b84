// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Binding errors
	CodeModuleNameInvalid Code = "MODULE_NAME_INVALID"
	CodeModuleNotFound    Code = "MODULE_NOT_FOUND"
	CodeFunctionNotFound  Code = "FUNCTION_NOT_FOUND"

	// Marshaling errors
	CodeArgumentInvalid Code = "ARGUMENT_INVALID"

	// Script errors
	CodeScriptFailed Code = "SCRIPT_FAILED"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeModuleNameInvalid,
		CodeArgumentInvalid:
		return codes.InvalidArgument

	// NotFound - the named surface does not exist
	case CodeModuleNotFound:
		return codes.NotFound

	// Unimplemented - mirrors gRPC's own answer for unknown methods
	case CodeFunctionNotFound:
		return codes.Unimplemented

	// FailedPrecondition - the caller-supplied script could not run
	case CodeScriptFailed:
		return codes.FailedPrecondition

	default:
		return codes.Internal
	}
}
