package platform

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	qt "github.com/frankban/quicktest"
)

func restError(status, code int) error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: status},
		Message:  &discordgo.APIErrorMessage{Code: code},
	}
}

func TestClassification(t *testing.T) {
	c := qt.New(t)

	c.Assert(IsNotFound(restError(http.StatusNotFound, discordgo.ErrCodeUnknownRole)), qt.IsTrue)
	c.Assert(IsNotFound(restError(http.StatusBadRequest, discordgo.ErrCodeUnknownMember)), qt.IsTrue)
	c.Assert(IsNotFound(fmt.Errorf("wrapped: %w", ErrNotFound)), qt.IsTrue)
	c.Assert(IsNotFound(restError(http.StatusForbidden, discordgo.ErrCodeMissingPermissions)), qt.IsFalse)

	c.Assert(IsForbidden(restError(http.StatusForbidden, discordgo.ErrCodeMissingPermissions)), qt.IsTrue)
	c.Assert(IsForbidden(ErrForbidden), qt.IsTrue)
	c.Assert(IsForbidden(ErrNotFound), qt.IsFalse)

	_, limited := IsRateLimited(restError(http.StatusTooManyRequests, 0))
	c.Assert(limited, qt.IsTrue)

	wait, limited := IsRateLimited(fmt.Errorf("bulk: %w", &RateLimitedError{RetryAfter: 2 * time.Second}))
	c.Assert(limited, qt.IsTrue)
	c.Assert(wait, qt.Equals, 2*time.Second)

	wait, limited = IsRateLimited(&discordgo.RateLimitError{RateLimit: &discordgo.RateLimit{
		TooManyRequests: &discordgo.TooManyRequests{RetryAfter: time.Second},
	}})
	c.Assert(limited, qt.IsTrue)
	c.Assert(wait, qt.Equals, time.Second)

	_, limited = IsRateLimited(ErrForbidden)
	c.Assert(limited, qt.IsFalse)
}
