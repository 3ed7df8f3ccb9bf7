package errors_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/configurator-api/internal/errors"
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
			message:  "product not found",
			expected: "NOT_FOUND: product not found",
		},
		{
			name:     "unavailable error",
			code:     errors.CodeUnavailable,
			message:  "rules unavailable",
			expected: "UNAVAILABLE: rules unavailable",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to load rules")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to load rules", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	baseErr := errors.NotFound("record not found").WithMeta("product_id", "p1")
	wrapped := errors.Wrap(baseErr, "product not found")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("p1", wrapped.Meta["product_id"])
	s.True(errors.IsNotFound(wrapped))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("timeout")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "rules unavailable")

	s.Equal(errors.CodeUnavailable, wrapped.Code)
	s.True(errors.IsUnavailable(wrapped))
	s.ErrorIs(wrapped, baseErr)
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestIsMatchesByCode() {
	sentinel := errors.Unavailable("rules unavailable")
	err := errors.Wrap(errors.Unavailable("upstream down"), "fetch failed")

	s.True(errors.Is(err, sentinel))
	s.False(errors.Is(err, errors.NotFound("x")))
}

func (s *ErrorsTestSuite) TestIsNarrowedByReason() {
	superseded := errors.Canceled("load superseded").WithMeta(errors.MetaReason, "load_superseded")

	s.True(errors.Is(superseded, superseded))
	s.True(errors.Is(errors.Wrap(superseded, "load failed"), superseded))
	s.False(errors.Is(errors.Canceled("context canceled"), superseded))
	s.False(errors.Is(errors.Canceled("other").WithMeta(errors.MetaReason, "other"), superseded))

	// a sentinel without a reason still matches by code alone
	s.True(errors.Is(superseded, errors.Canceled("any cancellation")))
}

func (s *ErrorsTestSuite) TestWrapDoesNotShareMeta() {
	base := errors.NotFound("record not found").WithMeta("product_id", "p1")
	errors.Wrap(base, "lookup failed").WithMeta("attempt", 2)

	s.NotContains(base.Meta, "attempt")
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Equal(errors.CodeCanceled, errors.GetCode(fmt.Errorf("wrapped: %w", context.Canceled)))
	s.Equal(errors.CodeDeadlineExceeded, errors.GetCode(context.DeadlineExceeded))
	s.Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	s.NoError(vb.Build())

	errors.ValidateRequired("Client", " ", vb)
	errors.ValidateNonNegative("TTL", -1, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal("INVALID_ARGUMENT: validation failed: Client: is required; TTL: must not be negative, got -1", err.Error())
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	err := errors.FailedPrecondition("configuration is not valid").WithMeta("session_id", "sess_1")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.FailedPrecondition, st.Code())
	s.Equal("configuration is not valid", st.Message())

	s.Require().Len(st.Details(), 1)
	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	s.Require().True(ok)
	s.Equal("FAILED_PRECONDITION", info.GetReason())
	s.Equal("sess_1", info.GetMetadata()["session_id"])

	back := errors.FromGRPCError(grpcErr)
	s.True(errors.IsFailedPrecondition(back))
	s.Equal("sess_1", errors.GetMeta(back)["session_id"])
}

func (s *ErrorsTestSuite) TestToGRPCErrorPlain() {
	s.Nil(errors.ToGRPCError(nil))

	st, _ := status.FromError(errors.ToGRPCError(fmt.Errorf("boom")))
	s.Equal(codes.Internal, st.Code())
}

func (s *ErrorsTestSuite) TestAbortedMapsToGRPC() {
	err := errors.Abortedf("session %s changed", "sess_1")

	st, _ := status.FromError(errors.ToGRPCError(err))
	s.Equal(codes.Aborted, st.Code())
	s.True(errors.IsAborted(errors.FromGRPCError(errors.ToGRPCError(err))))
}
