package usecase

import (
	"errors"
	"testing"

	"github.com/mkuznetsov/finsight/internal/core/domain"
)

func alertPage(total int, ids ...string) ListPage[domain.Alert] {
	items := make([]domain.Alert, 0, len(ids))
	for _, id := range ids {
		items = append(items, domain.Alert{ID: id})
	}
	return ListPage[domain.Alert]{Items: items, Total: total}
}

func TestListControllerAppliesNewestFetchOnly(t *testing.T) {
	c := NewListController[domain.Alert](2, domain.AlertFilter{})

	stale := c.Refresh()
	fresh, ok := c.SetFilter(domain.AlertFilter{Level: domain.RiskHigh})
	if !ok {
		t.Fatalf("filter change should issue a fetch")
	}

	out := c.Apply(fresh, alertPage(1, "a-1"), nil)
	if !out.Applied {
		t.Fatalf("fetch issued after the state change must apply")
	}
	out = c.Apply(stale, alertPage(2, "a-old", "a-older"), nil)
	if out.Applied {
		t.Fatalf("fetch issued before the filter change must be discarded")
	}
	if len(c.Items()) != 1 || c.Items()[0].ID != "a-1" {
		t.Fatalf("snapshot should hold the filtered result, got %+v", c.Items())
	}
}

func TestListControllerStaleResultArrivingFirstIsSuperseded(t *testing.T) {
	c := NewListController[domain.Alert](2, domain.AlertFilter{})

	// Issuing B invalidates in-flight A outright, so even if A's
	// result arrives first it is never applied.
	c.Refresh()
	fetchB := c.Refresh()

	out := c.Apply(fetchB, alertPage(1, "b"), nil)
	if !out.Applied {
		t.Fatalf("newest fetch should apply")
	}
	if c.Items()[0].ID != "b" {
		t.Fatalf("expected result of fetch B")
	}
}

func TestListControllerFilterResetsToFirstPage(t *testing.T) {
	c := NewListController[domain.Alert](2, domain.AlertFilter{})
	c.Apply(c.Refresh(), alertPage(10, "a", "b"), nil)
	ticket3, ok3 := c.SetPage(3)
	c.Apply(mustTicket(t, ticket3, ok3), alertPage(10, "e", "f"), nil)

	ticket, ok := c.SetFilter(domain.AlertFilter{Level: domain.RiskCritical})
	if !ok {
		t.Fatalf("filter change should issue a fetch")
	}
	if ticket.Page != 1 {
		t.Fatalf("filter change should reset to page 1, got %d", ticket.Page)
	}
	if _, ok := c.SetFilter(domain.AlertFilter{Level: domain.RiskCritical}); ok {
		t.Fatalf("unchanged filter must be a no-op")
	}
}

func TestListControllerClampsAfterShrink(t *testing.T) {
	c := NewListController[domain.Alert](2, domain.AlertFilter{})
	c.Apply(c.Refresh(), alertPage(6, "a", "b"), nil)
	ticket3, ok3 := c.SetPage(3)
	c.Apply(mustTicket(t, ticket3, ok3), alertPage(6, "e", "f"), nil)

	// Total shrank under the viewer: page 3 no longer exists.
	out := c.Apply(c.Refresh(), alertPage(3), nil)
	if !out.Applied {
		t.Fatalf("shrunk result should apply")
	}
	if out.Refetch == nil {
		t.Fatalf("out-of-range page must trigger a corrective re-fetch")
	}
	if c.Page() != 2 {
		t.Fatalf("page should clamp to last valid page 2, got %d", c.Page())
	}
	if out.Refetch.Page != 2 {
		t.Fatalf("corrective fetch should target the clamped page, got %d", out.Refetch.Page)
	}

	out = c.Apply(*out.Refetch, alertPage(3, "c"), nil)
	if !out.Applied || out.Refetch != nil {
		t.Fatalf("corrective fetch result should settle, got %+v", out)
	}
}

func TestListControllerSetPageClamps(t *testing.T) {
	c := NewListController[domain.Alert](2, domain.AlertFilter{})
	c.Apply(c.Refresh(), alertPage(4, "a", "b"), nil)

	if _, ok := c.SetPage(0); ok {
		t.Fatalf("page below 1 clamps back to the current page")
	}
	ticket, ok := c.SetPage(99)
	if !ok {
		t.Fatalf("page beyond the range should clamp to the last page")
	}
	if ticket.Page != 2 {
		t.Fatalf("expected clamp to page 2, got %d", ticket.Page)
	}
}

func TestListControllerOptimisticRemovalConfirmed(t *testing.T) {
	c := NewListController[domain.Alert](20, domain.AlertFilter{})
	c.Apply(c.Refresh(), alertPage(2, "a-1", "a-2"), nil)

	if !c.RemoveWhere(func(a domain.Alert) bool { return a.ID == "a-1" }) {
		t.Fatalf("visible item should be removable")
	}
	if len(c.Items()) != 1 || c.Items()[0].ID != "a-2" {
		t.Fatalf("only the matched item is removed, got %+v", c.Items())
	}
	if c.Total() != 1 {
		t.Fatalf("total should drop optimistically, got %d", c.Total())
	}

	// Consistency re-fetch agrees with the removal.
	out := c.Apply(c.Refresh(), alertPage(1, "a-2"), nil)
	if !out.Applied {
		t.Fatalf("consistency re-fetch should apply")
	}
	if len(c.Items()) != 1 || c.Items()[0].ID != "a-2" {
		t.Fatalf("confirmed snapshot should keep the remaining alert")
	}
}

func TestListControllerOptimisticRemovalRolledBack(t *testing.T) {
	c := NewListController[domain.Alert](20, domain.AlertFilter{})
	c.Apply(c.Refresh(), alertPage(2, "a-1", "a-2"), nil)

	c.RemoveWhere(func(a domain.Alert) bool { return a.ID == "a-1" })
	c.Rollback()

	if len(c.Items()) != 2 || c.Total() != 2 {
		t.Fatalf("rollback should restore the snapshot, got items=%d total=%d", len(c.Items()), c.Total())
	}
}

func TestListControllerFetchErrorRollsBackAndSurfaces(t *testing.T) {
	c := NewListController[domain.Alert](20, domain.AlertFilter{})
	c.Apply(c.Refresh(), alertPage(2, "a-1", "a-2"), nil)

	c.RemoveWhere(func(a domain.Alert) bool { return a.ID == "a-1" })
	out := c.Apply(c.Refresh(), ListPage[domain.Alert]{}, errors.New("boom"))
	if !out.Applied {
		t.Fatalf("fetch error should be recorded")
	}
	if c.Err() == nil {
		t.Fatalf("fetch error should surface")
	}
	if len(c.Items()) != 2 {
		t.Fatalf("unconfirmed removal should roll back on error")
	}
}

func mustTicket(t *testing.T, ticket ListTicket, ok bool) ListTicket {
	t.Helper()
	if !ok {
		t.Fatalf("expected a fetch to be issued")
	}
	return ticket
}
