package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// statusClientClosedRequest is the nginx convention for a client that went away.
const statusClientClosedRequest = 499

var grpcToHTTP = map[codes.Code]int{
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.FailedPrecondition: http.StatusBadRequest,
	codes.Unauthenticated:    http.StatusUnauthorized,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.Unavailable:        http.StatusServiceUnavailable,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
}

// ErrorHandler renders every error as a ResponseError. Errors carrying a gRPC
// status are mapped to the matching HTTP status; anything unrecognised is a
// 500 whose cause is logged but not echoed to the client.
func ErrorHandler(log Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		resp := toResponseError(err, c)
		if resp.Status == http.StatusNotFound && isNotFoundHandler(c.Handler()) {
			resp.ErrorMessage = "no route matched"
		}
		if resp.Status >= http.StatusInternalServerError {
			log.Errorw("request failed", "status", resp.Status, "error", err, "request_id", GetRequestID(c))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(resp.Status)
		} else {
			err = c.JSON(resp.Status, resp)
		}
		if err != nil {
			log.Errorw("could not respond", "code", resp.Status, "response_body", resp)
		}
	}
}

func toResponseError(err error, c echo.Context) *ResponseError {
	var (
		he *echo.HTTPError
		re *ResponseError
	)
	switch {
	case errors.As(err, &re):
		return re
	case errors.As(err, &he):
		return &ResponseError{
			Status:       he.Code,
			Err:          err,
			ErrorMessage: fmt.Sprint(he.Message),
		}
	case errors.Is(err, context.Canceled) && errors.Is(c.Request().Context().Err(), context.Canceled):
		return &ResponseError{
			Status:       statusClientClosedRequest,
			Err:          err,
			ErrorMessage: "request canceled",
		}
	}

	if st, ok := status.FromError(err); ok {
		if code, mapped := grpcToHTTP[st.Code()]; mapped {
			return &ResponseError{
				Status:       code,
				Err:          err,
				ErrorCode:    st.Code().String(),
				ErrorMessage: st.Message(),
			}
		}
	}
	return &ResponseError{
		Status:       http.StatusInternalServerError,
		Err:          err,
		ErrorMessage: http.StatusText(http.StatusInternalServerError),
	}
}
