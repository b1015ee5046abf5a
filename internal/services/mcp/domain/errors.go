package domain

import (
	"errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// callError turns a gRPC failure into a tool error. The localized message from
// the server is preferred because it is written for players.
func callError(action string, err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%s: %w", action, err)
	}
	for _, detail := range st.Details() {
		if localized, ok := detail.(*errdetails.LocalizedMessage); ok && localized.GetMessage() != "" {
			return errors.New(localized.GetMessage())
		}
	}
	return fmt.Errorf("%s: %s", action, st.Message())
}
