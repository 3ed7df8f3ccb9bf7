package errors

import (
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain identifies this service in errdetails.ErrorInfo
const ErrorDomain = "configurator.api"

// ToGRPCError converts an error to a gRPC status error. Metadata travels as an
// errdetails.ErrorInfo with the code as the reason.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if !As(err, &customErr) {
		return status.Error(GetCode(err).GRPCCode(), err.Error())
	}

	st := status.New(customErr.Code.GRPCCode(), customErr.Message)
	if len(customErr.Meta) > 0 {
		info := &errdetails.ErrorInfo{
			Reason:   customErr.Code.String(),
			Domain:   ErrorDomain,
			Metadata: make(map[string]string, len(customErr.Meta)),
		}
		for k, v := range customErr.Meta {
			info.Metadata[k] = fmt.Sprint(v)
		}
		if withDetails, detailErr := st.WithDetails(info); detailErr == nil {
			st = withDetails
		}
	}

	return st.Err()
}

// FromGRPCError converts a gRPC error back into an *Error
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	if st.Code() == codes.OK {
		return nil
	}

	customErr := &Error{
		Code:    fromGRPCCode(st.Code()),
		Message: st.Message(),
	}

	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			for k, v := range info.GetMetadata() {
				customErr.WithMeta(k, v)
			}
			break
		}
	}

	return customErr
}
