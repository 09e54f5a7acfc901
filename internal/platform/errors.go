package platform

import (
	"errors"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrRateLimited = errors.New("rate limited")
)

// RateLimitedError carries how long Discord asked us to wait.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return "rate limited, retry after " + e.RetryAfter.String()
}

func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}

func restCode(err error) (status, code int, ok bool) {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return 0, 0, false
	}
	if restErr.Response != nil {
		status = restErr.Response.StatusCode
	}
	if restErr.Message != nil {
		code = restErr.Message.Code
	}
	return status, code, true
}

// IsNotFound reports whether err means the role, member or channel no longer exists.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	status, code, ok := restCode(err)
	if !ok {
		return false
	}
	switch code {
	case discordgo.ErrCodeUnknownRole, discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownUser, discordgo.ErrCodeUnknownChannel:
		return true
	}
	return status == http.StatusNotFound
}

// IsForbidden reports whether the bot lacks permission for this specific action.
func IsForbidden(err error) bool {
	if errors.Is(err, ErrForbidden) {
		return true
	}
	status, code, ok := restCode(err)
	if !ok {
		return false
	}
	return code == discordgo.ErrCodeMissingPermissions || status == http.StatusForbidden
}

// IsRateLimited reports whether err is a rate limit and how long to wait if known.
func IsRateLimited(err error) (time.Duration, bool) {
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl.RetryAfter, true
	}
	if errors.Is(err, ErrRateLimited) {
		return 0, true
	}

	var dgErr *discordgo.RateLimitError
	if errors.As(err, &dgErr) {
		if dgErr.RateLimit != nil && dgErr.TooManyRequests != nil {
			return dgErr.RetryAfter, true
		}
		return 0, true
	}

	status, _, ok := restCode(err)
	if ok && status == http.StatusTooManyRequests {
		return 0, true
	}
	return 0, false
}
