package session

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Client delivers flushes to the accrual endpoint over HTTP. It
// implements Flusher. The caller's identity travels in the bearer token,
// not in the request body.
type Client struct {
	BaseURL string
	Token   string
}

type flushRequest struct {
	MinutesSpent int `json:"minutes_spent"`
}

type flushEnvelope struct {
	Success bool        `json:"success"`
	Data    FlushResult `json:"data"`
	Error   string      `json:"error"`
	Message string      `json:"message"`
}

func (c *Client) Flush(ctx context.Context, userID uint, minutes int) (FlushResult, error) {
	_ = userID // identified by the token

	agent := fiber.Post(c.BaseURL + "/api/activity/flush")
	agent.Set("Authorization", c.Token)
	agent.JSON(flushRequest{MinutesSpent: minutes})
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	}

	var out flushEnvelope
	code, _, errs := agent.Struct(&out)
	if len(errs) > 0 {
		return FlushResult{}, errs[0]
	}
	if code != fiber.StatusOK {
		return FlushResult{}, fmt.Errorf("flush rejected: status %d: %s", code, out.Message)
	}

	return out.Data, nil
}
