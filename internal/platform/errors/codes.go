// Package errors tags domain failures with stable codes and turns them into
// gRPC statuses carrying ErrorInfo and an en-US message.
package errors

import "google.golang.org/grpc/codes"

// Code is the ErrorInfo reason sent to clients.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	CodeDiceInvalidSyntax  Code = "DICE_INVALID_SYNTAX"
	CodeDiceDivisionByZero Code = "DICE_DIVISION_BY_ZERO"
	CodeDiceOverflow       Code = "DICE_OVERFLOW"
	CodeDiceTooMany        Code = "DICE_TOO_MANY"
	CodeSeedOutOfRange     Code = "SEED_OUT_OF_RANGE"

	CodeClockInvalid       Code = "CLOCK_INVALID"
	CodeClockAlreadyExists Code = "CLOCK_ALREADY_EXISTS"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFilterInvalid      Code = "FILTER_INVALID"
)

var grpcCodes = map[Code]codes.Code{
	CodeDiceInvalidSyntax:  codes.InvalidArgument,
	CodeDiceDivisionByZero: codes.InvalidArgument,
	CodeDiceOverflow:       codes.InvalidArgument,
	CodeSeedOutOfRange:     codes.InvalidArgument,
	CodeClockInvalid:       codes.InvalidArgument,
	CodeFilterInvalid:      codes.InvalidArgument,
	CodeDiceTooMany:        codes.ResourceExhausted,
	CodeNotFound:           codes.NotFound,
	CodeClockAlreadyExists: codes.AlreadyExists,
}

// GRPCCode returns the status code for c. Unmapped codes are Internal.
func (c Code) GRPCCode() codes.Code {
	if code, ok := grpcCodes[c]; ok {
		return code
	}
	return codes.Internal
}
