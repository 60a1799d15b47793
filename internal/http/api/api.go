package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/darshan/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// HandlerFuncWithSession receives the id of the caller's session.
type HandlerFuncWithSession func(ctx *gin.Context, sessionID string) (any, *APIError)
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

func ResolveEndpointWithSession(h HandlerFuncWithSession) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sessionID, ok := middleware.GetSessionID(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
			return
		}

		result, apiErr := h(ctx, sessionID)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

// TaskWait bounds how long a request waits for a delayed operation before
// answering with the operation still pending.
const TaskWait = 10 * time.Second

// Await waits for task on behalf of the request. A timeout is reported as
// context.DeadlineExceeded; the task keeps running.
func Await(ctx *gin.Context, task *session.Task) error {
	wctx, cancel := context.WithTimeout(ctx.Request.Context(), TaskWait)
	defer cancel()
	return task.Wait(wctx)
}

// FromError maps a session error to its HTTP status.
func FromError(err error) *APIError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrTempleNotFound):
		return &APIError{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, session.ErrValidation):
		return &APIError{Code: http.StatusUnprocessableEntity, Message: err.Error()}
	case errors.Is(err, session.ErrInvalidCredentials):
		return &APIError{Code: http.StatusUnauthorized, Message: "invalid username or password"}
	case errors.Is(err, session.ErrWrongView),
		errors.Is(err, session.ErrBusy),
		errors.Is(err, session.ErrStale):
		return &APIError{Code: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, session.ErrClosed):
		return &APIError{Code: http.StatusServiceUnavailable, Message: "server is shutting down"}
	default:
		log.Error().Err(err).Msg("request failed")
		return &APIError{Code: http.StatusInternalServerError, Message: "something went wrong, please try again"}
	}
}
