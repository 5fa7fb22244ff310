package catalog

import (
	"time"

	"github.com/derickschaefer/reel/internal/model"
)

// Options configures a Controller.
type Options struct {
	Language string
	Clock    Clock
	Debounce time.Duration
	// Notify is called from the timer's goroutine when a debounce period
	// ends. The owner must route seq back to DebounceFired on its own
	// execution context.
	Notify func(seq uint64)
}

// Controller owns the search state and wires intake, request building,
// fetching and pagination together. Every method that may need a network
// call returns a Ticket and true; the caller runs it and hands the
// Response to Complete.
type Controller struct {
	state  SearchState
	intake *QueryIntake
	fetch  *FetchController
}

// NewController creates a controller in the initial browse state.
func NewController(opts Options) *Controller {
	return &Controller{
		state:  NewSearchState(),
		intake: NewQueryIntake(opts.Clock, opts.Debounce, opts.Notify),
		fetch:  NewFetchController(RequestBuilder{Language: opts.Language}),
	}
}

// Start issues the initial load.
func (c *Controller) Start() Ticket {
	return c.fetch.Begin(c.state)
}

// Keystroke records new raw input and restarts the debounce.
func (c *Controller) Keystroke(raw string) {
	c.intake.Keystroke(raw)
}

// DebounceFired handles an expired debounce timer.
func (c *Controller) DebounceFired(seq uint64) (Ticket, bool) {
	commit, ok := c.intake.Fire(seq)
	if !ok {
		return Ticket{}, false
	}
	return c.Apply(commit)
}

// Submit commits raw immediately, cancelling any pending debounce.
func (c *Controller) Submit(raw string) (Ticket, bool) {
	return c.Apply(c.intake.CommitNow(raw))
}

// Apply reduces t into the state and issues a request if any request
// input changed.
func (c *Controller) Apply(t Trigger) (Ticket, bool) {
	before := c.state.key()
	c.state = Reduce(c.state, t)
	if c.state.key() == before {
		return Ticket{}, false
	}
	return c.fetch.Begin(c.state), true
}

// Complete applies a response. If the newly reported total leaves the
// current page out of range, the page is clamped and a follow-up ticket is
// returned.
func (c *Controller) Complete(r Response) (Ticket, bool) {
	if !c.fetch.Complete(&c.state, r) {
		return Ticket{}, false
	}
	if r.Err != nil {
		return Ticket{}, false
	}
	if clamped := Clamp(c.state.Page, c.state.TotalPages); clamped != c.state.Page {
		c.state.Page = clamped
		return c.fetch.Begin(c.state), true
	}
	return Ticket{}, false
}

// State returns a copy of the current search state.
func (c *Controller) State() SearchState { return c.state }

// Pending reports whether a debounced commit is waiting.
func (c *Controller) Pending() bool { return c.intake.Pending() }

// Loading reports whether the latest request is outstanding.
func (c *Controller) Loading() bool { return c.fetch.Loading() }

// Results returns the displayed list.
func (c *Controller) Results() []model.Movie { return c.fetch.Results() }

// Err returns the current error message, or "".
func (c *Controller) Err() string { return c.fetch.Err() }

// Outcome summarises the latest request.
func (c *Controller) Outcome() model.FetchOutcome {
	return c.fetch.Outcome(c.state.TotalPages)
}

// RequestCap is the highest page that may be requested right now.
func (c *Controller) RequestCap() int { return RequestCap(c.state.TotalPages) }

// CanPrev reports whether Prev is enabled.
func (c *Controller) CanPrev() bool { return CanPrev(c.state.Page) }

// CanNext reports whether Next is enabled.
func (c *Controller) CanNext() bool { return CanNext(c.state.Page, c.state.TotalPages) }

// Empty reports whether the "no results" notice should show.
func (c *Controller) Empty() bool { return c.Outcome().Empty() }
