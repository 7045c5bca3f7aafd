package remote

import (
	"context"
	"fmt"

	"github.com/avast/retry-go/v4"

	"journeyplanner/internal/utils"
)

// Strategy is one endpoint an operation may be served by.
type Strategy struct {
	Name   string
	Method string
	URL    string
}

// firstSuccess tries strategies in order, once each, and returns the body of
// the first that succeeds. Every failed strategy is logged; when all fail the
// last error is returned.
func (c *Client) firstSuccess(ctx context.Context, op string, strategies []Strategy, payload any) ([]byte, error) {
	if len(strategies) == 0 {
		return nil, fmt.Errorf("%s: no endpoints configured", op)
	}

	var (
		out     []byte
		attempt int
	)
	err := retry.Do(
		func() error {
			s := strategies[attempt]
			attempt++
			b, err := c.do(ctx, op, s.Method, s.URL, payload)
			if err != nil {
				utils.LogError(ctx, "remote", op+"/"+s.Name, err)
				return err
			}
			out = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(len(strategies))),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}
