package errors

import "google.golang.org/grpc/codes"

// Code classifies an error. Values mirror the gRPC status codes the battle
// service returns so handlers can convert without guessing.
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodePermissionDenied   Code = "PERMISSION_DENIED"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
)

var grpcCodes = map[Code]codes.Code{
	CodeOK:                 codes.OK,
	CodeCanceled:           codes.Canceled,
	CodeInvalidArgument:    codes.InvalidArgument,
	CodeDeadlineExceeded:   codes.DeadlineExceeded,
	CodeNotFound:           codes.NotFound,
	CodeAlreadyExists:      codes.AlreadyExists,
	CodePermissionDenied:   codes.PermissionDenied,
	CodeFailedPrecondition: codes.FailedPrecondition,
	CodeUnimplemented:      codes.Unimplemented,
	CodeInternal:           codes.Internal,
	CodeUnavailable:        codes.Unavailable,
	CodeUnauthenticated:    codes.Unauthenticated,
}

var fromGRPCCodes = func() map[codes.Code]Code {
	m := make(map[codes.Code]Code, len(grpcCodes))
	for code, grpcCode := range grpcCodes {
		m[grpcCode] = code
	}
	return m
}()

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// GRPCCode returns the corresponding gRPC code, or Unknown for codes outside the table
func (c Code) GRPCCode() codes.Code {
	if grpcCode, ok := grpcCodes[c]; ok {
		return grpcCode
	}
	return codes.Unknown
}

// Retryable reports whether the same request may succeed later, e.g. when
// the history store or the SRD API was briefly unreachable.
func (c Code) Retryable() bool {
	return c == CodeUnavailable || c == CodeDeadlineExceeded
}

func codeFromGRPC(grpcCode codes.Code) Code {
	if code, ok := fromGRPCCodes[grpcCode]; ok {
		return code
	}
	return CodeInternal
}
