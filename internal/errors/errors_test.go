package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "battle not found",
			expected: "NOT_FOUND: battle not found",
		},
		{
			name:     "failed precondition error",
			code:     errors.CodeFailedPrecondition,
			message:  "cannot pause while battle is idle",
			expected: "FAILED_PRECONDITION: cannot pause while battle is idle",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("battle not found").
		WithMeta("battle_id", "battle_1").
		WithMeta("participant_id", "player2")

	s.Assert().Equal("battle_1", err.Meta["battle_id"])
	s.Assert().Equal("player2", err.Meta["participant_id"])

	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"AlreadyExists", func() *errors.Error { return errors.AlreadyExists("test") }, errors.CodeAlreadyExists},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.CodeFailedPrecondition},
		{"PermissionDenied", func() *errors.Error { return errors.PermissionDenied("test") }, errors.CodePermissionDenied},
		{"Unauthenticated", func() *errors.Error { return errors.Unauthenticated("test") }, errors.CodeUnauthenticated},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
		{"Unavailable", func() *errors.Error { return errors.Unavailable("test") }, errors.CodeUnavailable},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestFormattedConstructors() {
	err := errors.NotFoundf("battle %s not found", "battle_1")
	s.Assert().Equal(errors.CodeNotFound, err.Code)
	s.Assert().Equal("battle battle_1 not found", err.Message)

	err2 := errors.InvalidArgumentf("unknown action %q", "Fireball")
	s.Assert().Equal(errors.CodeInvalidArgument, err2.Code)
	s.Assert().Equal(`unknown action "Fireball"`, err2.Message)
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("test")
	err2 := errors.NotFound("other")
	err3 := errors.InvalidArgument("test")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
	s.Assert().True(errors.Is(errors.Wrap(err1, "wrapped"), err2))
}

func (s *ErrorsTestSuite) TestWrapWithCodeCopiesMeta() {
	original := errors.NotFound("weapon not found").WithMeta("weapon", "longsword")
	wrapped := errors.WrapWithCode(original, errors.CodeUnavailable, "srd lookup failed").
		WithMeta("attempt", 2)

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().Equal("longsword", wrapped.Meta["weapon"])
	s.Assert().NotContains(original.Meta, "attempt")
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	notFoundErr := errors.NotFound("test")
	invalidErr := errors.InvalidArgument("test")
	wrappedErr := errors.Wrap(notFoundErr, "wrapped")

	s.Assert().True(errors.IsNotFound(notFoundErr))
	s.Assert().True(errors.IsNotFound(wrappedErr))
	s.Assert().False(errors.IsNotFound(invalidErr))

	s.Assert().True(errors.IsInvalidArgument(invalidErr))
	s.Assert().False(errors.IsInvalidArgument(notFoundErr))

	s.Assert().True(errors.IsInternal(fmt.Errorf("standard error")))
	s.Assert().True(errors.IsFailedPrecondition(errors.FailedPreconditionf("cannot %s", "resume")))
}

func (s *ErrorsTestSuite) TestRetryable() {
	s.Assert().True(errors.IsRetryable(errors.Wrap(errors.Unavailable("redis down"), "failed to archive")))
	s.Assert().True(errors.CodeDeadlineExceeded.Retryable())
	s.Assert().False(errors.IsRetryable(errors.NotFound("battle not found")))
	s.Assert().False(errors.IsRetryable(nil))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMeta() {
	err := errors.NotFound("test").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal("value", errors.GetMeta(err)["key"])
	s.Assert().Equal("value", errors.GetMeta(wrapped)["key"])
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("standard error")))
	s.Assert().Nil(errors.GetMeta(nil))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Assert().Equal("user friendly message", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(stdErr))
	s.Assert().Empty(errors.GetMessage(nil))
}

func (s *ErrorsTestSuite) TestGRPCConversion() {
	err := errors.NotFound("battle not found").
		WithMeta("battle_id", "battle_1")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Assert().Equal(codes.NotFound, st.Code())
	s.Assert().Equal("battle not found", st.Message())

	s.Require().Len(st.Details(), 1)
	details, ok := st.Details()[0].(*structpb.Struct)
	s.Require().True(ok)
	s.Assert().Equal("NOT_FOUND", details.Fields["code"].GetStringValue())

	back := errors.FromGRPCError(grpcErr)
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(back))
	s.Assert().Equal("battle not found", errors.GetMessage(back))
	s.Assert().Equal("battle_1", errors.GetMeta(back)["battle_id"])

	plain := errors.FromGRPCError(status.Error(codes.InvalidArgument, "invalid input"))
	s.Assert().Equal(errors.CodeInvalidArgument, errors.GetCode(plain))
	s.Assert().Equal("invalid input", errors.GetMessage(plain))

	s.Assert().Nil(errors.ToGRPCError(nil))
	s.Assert().Equal(grpcErr, errors.ToGRPCError(grpcErr))
}

func (s *ErrorsTestSuite) TestValidationErrorsSurviveGRPC() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("battle_id").Field("amount", "must be positive")

	back := errors.FromGRPCError(errors.ToGRPCError(vb.Build()))

	s.Assert().True(errors.IsInvalidArgument(back))
	s.Assert().Equal(map[string][]string{
		"battle_id": {"is required"},
		"amount":    {"must be positive"},
	}, errors.ValidationErrors(back))
}

func (s *ErrorsTestSuite) TestGRPCMessageKeepsCauseChain() {
	err := errors.Wrapf(
		errors.FailedPrecondition("cannot resolve an action in state paused").
			WithMeta("battle_error_kind", "invalid_state_transition"),
		"battle %s", "battle-1",
	)

	st, ok := status.FromError(errors.ToGRPCError(err))
	s.Require().True(ok)
	s.Assert().Equal(codes.FailedPrecondition, st.Code())
	s.Assert().Equal("battle battle-1: cannot resolve an action in state paused", st.Message())

	plain := errors.Wrap(fmt.Errorf("connection refused"), "failed to save record")
	st, ok = status.FromError(errors.ToGRPCError(plain))
	s.Require().True(ok)
	s.Assert().Equal(codes.Internal, st.Code())
	s.Assert().Equal("failed to save record: connection refused", st.Message())
}

func (s *ErrorsTestSuite) TestGRPCStatus() {
	s.Assert().Equal(codes.OK, errors.GRPCStatus(nil).Code())
	s.Assert().Equal(codes.Unavailable, errors.GRPCStatus(errors.Unavailable("redis down")).Code())
	s.Assert().Equal(codes.Internal, errors.GRPCStatus(fmt.Errorf("boom")).Code())
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeAlreadyExists, codes.AlreadyExists},
		{errors.CodeFailedPrecondition, codes.FailedPrecondition},
		{errors.CodePermissionDenied, codes.PermissionDenied},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeUnavailable, codes.Unavailable},
		{errors.CodeUnauthenticated, codes.Unauthenticated},
		{errors.Code("SOMETHING_ELSE"), codes.Unknown},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}
