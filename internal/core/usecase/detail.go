package usecase

import (
	"github.com/mkuznetsov/finsight/internal/core/domain"
)

// FetchTicket tags one issued document fetch so a late arrival can be
// matched against the fence, the observed id, and the observation it
// was issued under. Gen distinguishes successive observations of the
// same document: each controller has its own fence, so without it a
// fetch left in flight at teardown could outrank the sequence numbers
// of a later re-observation.
type FetchTicket struct {
	ID  string
	Gen uint64
	Seq uint64
}

// ApplyOutcome is the decision taken for one arrived fetch result.
type ApplyOutcome struct {
	// Applied is false when the result was discarded (stale sequence
	// or observation already torn down).
	Applied bool
	// ScheduleNext asks the caller to start the poll timer. At most
	// one timer is outstanding per controller.
	ScheduleNext bool
}

// DetailController owns the view-local snapshot of a single observed
// document: the entity cache, the fence, and the poll lifecycle. It
// is mutated only from the owning page's event loop. A controller is
// built per observation; after Teardown a fresh navigation constructs
// a new one.
type DetailController struct {
	id     string
	gen    uint64
	fence  fence
	poller *Poller

	torn         bool
	timerPending bool

	Snapshot *domain.DocumentDetail
	Err      error
}

// detailGen numbers observations. Controllers are constructed only
// from the owning event loop, so a plain counter suffices.
var detailGen uint64

func NewDetailController(id string, poller *Poller) *DetailController {
	detailGen++
	return &DetailController{id: id, gen: detailGen, poller: poller}
}

func (c *DetailController) ID() string {
	return c.id
}

// Observe issues the initial fetch for the observed document.
func (c *DetailController) Observe() FetchTicket {
	return FetchTicket{ID: c.id, Gen: c.gen, Seq: c.fence.issue()}
}

// Tick consumes the outstanding timer; if the poller is still armed it
// issues the next poll fetch.
func (c *DetailController) Tick() (FetchTicket, bool) {
	c.timerPending = false
	if c.torn || c.poller.State(c.id) != PollArmed {
		return FetchTicket{}, false
	}
	return FetchTicket{ID: c.id, Gen: c.gen, Seq: c.fence.issue()}, true
}

// Refresh issues a superseding fetch after a successful mutation, so
// the refresh result wins over any concurrently in-flight poll.
func (c *DetailController) Refresh() FetchTicket {
	return FetchTicket{ID: c.id, Gen: c.gen, Seq: c.fence.issue()}
}

// Apply reconciles one arrived fetch result. Stale results, results
// arriving after teardown, and tickets issued by a previous
// observation of the same document are discarded without mutating any
// state. A fetch error surfaces and disarms the poller; further
// polling requires a fresh observation.
func (c *DetailController) Apply(t FetchTicket, detail *domain.DocumentDetail, err error) ApplyOutcome {
	if c.torn || t.ID != c.id || t.Gen != c.gen || !c.fence.admit(t.Seq) {
		return ApplyOutcome{}
	}
	if err != nil {
		c.Err = err
		c.poller.Disarm(c.id)
		return ApplyOutcome{Applied: true}
	}
	c.Err = nil
	c.Snapshot = detail
	c.poller.Evaluate(c.id, detail.Status)

	schedule := c.poller.State(c.id) == PollArmed && !c.timerPending
	if schedule {
		c.timerPending = true
	}
	return ApplyOutcome{Applied: true, ScheduleNext: schedule}
}

// Teardown ends observation: the timer is disarmed immediately and
// any in-flight fetch is ignored on arrival.
func (c *DetailController) Teardown() {
	c.torn = true
	c.poller.Disarm(c.id)
}

func (c *DetailController) TornDown() bool {
	return c.torn
}
