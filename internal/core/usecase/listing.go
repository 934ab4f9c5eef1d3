package usecase

// ListTicket tags one issued listing fetch.
type ListTicket struct {
	Seq  uint64
	Page int
}

// ListPage is one fetched page of a collection view.
type ListPage[T any] struct {
	Items []T
	Total int
}

// ListOutcome is the decision taken for one arrived listing result.
type ListOutcome struct {
	Applied bool
	// Refetch is set when the applied total shrank below the current
	// page: the page was clamped and a corrective fetch must be
	// issued so the snapshot matches the page indicator.
	Refetch *ListTicket
}

// ListController maintains filter and page state for one collection
// view and keeps the displayed snapshot consistent with it. Any
// change to filter or page invalidates fetches issued before the
// change; only the result of the newest fetch is ever applied.
type ListController[T any, F comparable] struct {
	fence    fence
	filter   F
	page     int
	pageSize int
	total    int
	items    []T
	err      error

	// optimistic removal state, kept until the consistency re-fetch
	// either confirms or rolls it back
	saved      []T
	savedTotal int
	optimistic bool
}

func NewListController[T any, F comparable](pageSize int, filter F) *ListController[T, F] {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &ListController[T, F]{
		filter:   filter,
		page:     1,
		pageSize: pageSize,
	}
}

func (c *ListController[T, F]) Items() []T    { return c.items }
func (c *ListController[T, F]) Filter() F     { return c.filter }
func (c *ListController[T, F]) Page() int     { return c.page }
func (c *ListController[T, F]) PageSize() int { return c.pageSize }
func (c *ListController[T, F]) Total() int    { return c.total }
func (c *ListController[T, F]) Err() error    { return c.err }

// MaxPage is ceil(total/pageSize), never below 1.
func (c *ListController[T, F]) MaxPage() int {
	if c.total <= 0 {
		return 1
	}
	return (c.total + c.pageSize - 1) / c.pageSize
}

// SetFilter replaces the filter, resets to page 1 and issues a fetch.
// A no-op when the filter is unchanged.
func (c *ListController[T, F]) SetFilter(f F) (ListTicket, bool) {
	if f == c.filter {
		return ListTicket{}, false
	}
	c.filter = f
	c.page = 1
	return c.issue(), true
}

// SetPage moves to the requested page, clamped to [1, MaxPage], and
// issues a fetch. A no-op when the clamped page equals the current one.
func (c *ListController[T, F]) SetPage(p int) (ListTicket, bool) {
	p = c.clamp(p)
	if p == c.page {
		return ListTicket{}, false
	}
	c.page = p
	return c.issue(), true
}

func (c *ListController[T, F]) NextPage() (ListTicket, bool) {
	return c.SetPage(c.page + 1)
}

func (c *ListController[T, F]) PrevPage() (ListTicket, bool) {
	return c.SetPage(c.page - 1)
}

// Refresh issues a fetch for the current filter and page, superseding
// anything still in flight.
func (c *ListController[T, F]) Refresh() ListTicket {
	return c.issue()
}

// Apply reconciles one arrived listing result under the fence
// discipline. When the new total leaves the current page out of
// range, the page is clamped down and a corrective fetch returned.
func (c *ListController[T, F]) Apply(t ListTicket, page ListPage[T], err error) ListOutcome {
	if !c.fence.admit(t.Seq) {
		return ListOutcome{}
	}
	if err != nil {
		c.err = err
		c.rollback()
		return ListOutcome{Applied: true}
	}
	c.err = nil
	c.optimistic = false
	c.saved = nil
	c.total = page.Total
	c.items = page.Items

	if c.page > c.MaxPage() {
		c.page = c.MaxPage()
		refetch := c.issue()
		return ListOutcome{Applied: true, Refetch: &refetch}
	}
	return ListOutcome{Applied: true}
}

// RemoveWhere drops the first matching item from the local snapshot
// before the server confirms, keeping the prior snapshot for
// rollback. The caller follows up with either Refresh (action
// succeeded) or Rollback (action failed).
func (c *ListController[T, F]) RemoveWhere(match func(T) bool) bool {
	for i, item := range c.items {
		if !match(item) {
			continue
		}
		if !c.optimistic {
			c.saved = make([]T, len(c.items))
			copy(c.saved, c.items)
			c.savedTotal = c.total
			c.optimistic = true
		}
		c.items = append(c.items[:i:i], c.items[i+1:]...)
		if c.total > 0 {
			c.total--
		}
		return true
	}
	return false
}

// Rollback restores the snapshot taken before an optimistic removal.
func (c *ListController[T, F]) Rollback() {
	c.rollback()
}

func (c *ListController[T, F]) rollback() {
	if !c.optimistic {
		return
	}
	c.items = c.saved
	c.total = c.savedTotal
	c.saved = nil
	c.optimistic = false
}

func (c *ListController[T, F]) clamp(p int) int {
	if p < 1 {
		return 1
	}
	if max := c.MaxPage(); p > max {
		return max
	}
	return p
}

func (c *ListController[T, F]) issue() ListTicket {
	c.fence.invalidate()
	return ListTicket{Seq: c.fence.issue(), Page: c.page}
}
