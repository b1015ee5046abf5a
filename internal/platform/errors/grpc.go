package errors

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Status converts err into a gRPC status error. Existing statuses pass
// through, context errors keep their codes, an *Error carries ErrorInfo and
// a LocalizedMessage, and anything else is hidden behind Internal.
func Status(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		return status.Error(codes.Internal, "an unexpected error occurred")
	}
	st := status.New(appErr.Code.GRPCCode(), appErr.Error())
	detailed, detailErr := st.WithDetails(
		&errdetails.ErrorInfo{
			Reason:   string(appErr.Code),
			Domain:   Domain,
			Metadata: appErr.Metadata,
		},
		&errdetails.LocalizedMessage{
			Locale:  Locale,
			Message: UserMessage(appErr.Code, appErr.Metadata),
		},
	)
	if detailErr != nil {
		return st.Err()
	}
	return detailed.Err()
}
