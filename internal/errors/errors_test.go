package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
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
			message:  "roll history not found",
			expected: "NOT_FOUND: roll history not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "invalid formula",
			expected: "INVALID_ARGUMENT: invalid formula",
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

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("redis connection refused")
	wrapped := errors.Wrap(baseErr, "failed to append roll")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to append roll", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	baseErr := errors.NotFound("history not found").WithMeta("character", "Vex")
	wrapped := errors.Wrapf(baseErr, "failed to load history for %s", "Vex")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("failed to load history for Vex", wrapped.Message)
	s.Assert().Equal("Vex", errors.GetMeta(wrapped)["character"])
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("dial timeout")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "rules service unavailable")

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().True(errors.IsUnavailable(wrapped))
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("a")
	err2 := errors.NotFound("b")
	err3 := errors.InvalidArgument("a")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
	s.Assert().True(errors.Is(errors.Wrap(err1, "wrapped"), err2))
}

func (s *ErrorsTestSuite) TestGetCodeAndMessage() {
	err := errors.InvalidArgumentf("invalid dice formula: %q", "bogus")
	wrapped := errors.Wrap(err, "custom roll rejected")

	s.Assert().Equal(errors.CodeInvalidArgument, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal("custom roll rejected", errors.GetMessage(wrapped))
	s.Assert().Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 200},
		{errors.CodeNotFound, 404},
		{errors.CodeInvalidArgument, 400},
		{errors.CodeInternal, 500},
		{errors.CodeUnavailable, 503},
		{errors.CodeUnimplemented, 501},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.HTTPStatus())
		})
	}

	s.Assert().Equal(400, errors.HTTPStatus(errors.InvalidArgument("missing id")))
	s.Assert().Equal(500, errors.HTTPStatus(fmt.Errorf("boom")))
}

func (s *ErrorsTestSuite) TestGRPCConversion() {
	grpcErr := errors.ToGRPCError(errors.NotFound("roll history not found"))
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Assert().Equal(codes.NotFound, st.Code())
	s.Assert().Equal("roll history not found", st.Message())

	err2 := errors.FromGRPCError(status.Error(codes.InvalidArgument, "invalid input"))
	s.Assert().Equal(errors.CodeInvalidArgument, errors.GetCode(err2))
	s.Assert().Equal("invalid input", errors.GetMessage(err2))

	plain := errors.ToGRPCError(fmt.Errorf("boom"))
	st, ok = status.FromError(plain)
	s.Require().True(ok)
	s.Assert().Equal(codes.Internal, st.Code())
}
