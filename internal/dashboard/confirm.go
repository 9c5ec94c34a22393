package dashboard

import (
	"context"

	"github.com/google/uuid"
)

// sessionConfirmer asks the browser for a yes/no answer through a
// confirm_request message and waits for the matching confirm command.
type sessionConfirmer struct {
	s *Session
}

func (c *sessionConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	token := uuid.NewString()
	answer := make(chan bool, 1)

	c.s.post(func() {
		c.s.pending[token] = answer
		c.s.send(TypeConfirmRequest, ConfirmRequest{Token: token, Prompt: prompt})
	})

	select {
	case ok := <-answer:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	case <-c.s.done:
		return false, errSessionClosed
	}
}

// loopDetacher removes overlays on the session goroutine.
type loopDetacher struct {
	s *Session
}

func (d *loopDetacher) Detach(deviceID string) {
	d.s.post(func() { d.s.reconciler.Detach(deviceID) })
}
