package errors

import (
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Keys of the structpb detail attached to converted statuses
const (
	detailCode    = "code"
	detailMessage = "message"
	detailMeta    = "meta"
)

// ToGRPCError converts an error to a gRPC status error. The status message
// joins the cause chain and metadata travels as a structpb.Struct detail.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if !As(err, &customErr) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(customErr.Code.GRPCCode(), statusMessage(customErr))
	if details, detailErr := errorDetails(customErr); detailErr == nil {
		if withDetails, attachErr := st.WithDetails(details); attachErr == nil {
			st = withDetails
		}
	}
	return st.Err()
}

// statusMessage joins the messages along the cause chain without the code
// prefixes that Error() adds.
func statusMessage(e *Error) string {
	msg := e.Message
	for cause := e.Cause; cause != nil; {
		var next *Error
		if !As(cause, &next) {
			return msg + ": " + cause.Error()
		}
		if next.Message != "" && next.Message != msg {
			msg += ": " + next.Message
		}
		cause = next.Cause
	}
	return msg
}

// errorDetails normalizes meta through JSON so typed values such as
// map[string][]string become structpb compatible.
func errorDetails(e *Error) (*structpb.Struct, error) {
	fields := map[string]any{
		detailCode:    string(e.Code),
		detailMessage: e.Message,
	}
	if len(e.Meta) > 0 {
		data, err := json.Marshal(e.Meta)
		if err != nil {
			return nil, err
		}
		var meta map[string]any
		if err := json.Unmarshal(data, &meta); err != nil {
			return nil, err
		}
		fields[detailMeta] = meta
	}
	return structpb.NewStruct(fields)
}

// FromGRPCError converts a gRPC status error back into an *Error, restoring
// metadata attached by ToGRPCError. Non-status errors are returned unchanged.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	customErr := &Error{
		Code:    codeFromGRPC(st.Code()),
		Message: st.Message(),
	}
	for _, detail := range st.Details() {
		details, ok := detail.(*structpb.Struct)
		if !ok {
			continue
		}
		if meta := details.GetFields()[detailMeta].GetStructValue(); meta != nil {
			customErr.Meta = meta.AsMap()
		}
		break
	}
	return customErr
}

// GRPCStatus returns the gRPC status for any error
func GRPCStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	st, _ := status.FromError(ToGRPCError(err))
	return st
}
