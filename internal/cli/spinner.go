package cli

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// spinnerFrames are cycled while a render is in flight.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows terminal progress for a running render. SVG output is
// near-instant, but PDF conversion shells out to rsvg-convert and PNG
// rasterization scales with sheet size, so long renders get a visible
// heartbeat. Stop is idempotent and the spinner line is erased before
// any result message is printed.
type Spinner struct {
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stop    sync.Once
}

// newSpinnerWithContext creates a spinner tied to ctx. When ctx is
// cancelled the animation stops on its own and Cancelled reports true.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				icon := styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)])
				fmt.Fprintf(os.Stderr, "\r\x1b[2K%s %s", icon, StyleDim.Render(s.message))
				frame++
			}
		}
	}()
}

// Stop halts the animation and erases the spinner line.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		s.cancel()
		<-s.done
		fmt.Fprint(os.Stderr, "\r\x1b[2K")
	})
}

// StopWithError stops the spinner and prints an error message in its place.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context was cancelled, which
// covers both an explicit Stop and interruption from the parent context.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
