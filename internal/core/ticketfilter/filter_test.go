package ticketfilter

import (
	"net/url"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func ticket(id, owner string, p domain.Priority, offset int) domain.Ticket {
	return domain.Ticket{
		ID:          id,
		Subject:     "Subject " + id,
		Description: "Description for " + id,
		Category:    "general",
		Priority:    p,
		Status:      domain.StatusOpen,
		UserID:      owner,
		UserEmail:   owner + "@example.com",
		CreatedAt:   base.Add(time.Duration(offset) * time.Minute),
		UpdatedAt:   base.Add(time.Duration(offset) * time.Minute),
	}
}

func sampleSet() []domain.Ticket {
	t1 := ticket("t1", "alice", domain.PriorityHigh, 1)
	t1.Subject = "Printer is on FIRE"
	t2 := ticket("t2", "bob", domain.PriorityLow, 2)
	t2.AssigneeEmail = "agent@example.com"
	t2.Status = domain.StatusInProgress
	t3 := ticket("t3", "alice", domain.PriorityMedium, 3)
	t3.Category = "billing"
	t4 := ticket("t4", "carol", domain.PriorityHigh, 4)
	t4.AssigneeID = "agent-1"
	t5 := ticket("t5", "bob", domain.PriorityLow, 5)
	t5.Description = "VPN drops every hour"
	return []domain.Ticket{t1, t2, t3, t4, t5}
}

var staff = Viewer{UserID: "agent-1", Email: "agent@example.com", Role: domain.RoleSupportAgent}

func ids(ts []domain.Ticket) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func TestApply_AllCriteriaIsIdentity(t *testing.T) {
	in := sampleSet()
	c := Default()
	c.SortOrder = OrderAsc

	got := Apply(in, c, staff)

	if !slices.Equal(ids(got), ids(in)) {
		t.Fatalf("expected identity, got %v", ids(got))
	}
}

func TestApply_EmptyCriteriaKeepsEverything(t *testing.T) {
	in := sampleSet()

	got := Apply(in, Criteria{}, staff)

	if len(got) != len(in) {
		t.Fatalf("expected %d tickets, got %d", len(in), len(got))
	}
	// default order is createdAt desc
	if got[0].ID != "t5" || got[4].ID != "t1" {
		t.Errorf("expected newest first, got %v", ids(got))
	}
}

func TestApply_OutputIsSubsetAndInputUntouched(t *testing.T) {
	in := sampleSet()
	before := ids(in)

	cases := []Criteria{
		{Status: "open"},
		{Priority: "high", SortBy: SortPriority},
		{Category: "billing"},
		{Search: "vpn"},
		{Assignee: Unassigned, SortBy: SortUpdatedAt, SortOrder: OrderAsc},
	}
	for _, c := range cases {
		got := Apply(in, c, staff)
		for _, g := range got {
			if !slices.Contains(before, g.ID) {
				t.Fatalf("criteria %+v produced unknown ticket %s", c, g.ID)
			}
		}
		if !slices.Equal(ids(in), before) {
			t.Fatalf("criteria %+v mutated input", c)
		}
	}
}

func TestApply_SearchIsCaseInsensitive(t *testing.T) {
	in := sampleSet()

	for _, q := range []string{"fire", "FIRE", "Fire", "  fIrE  "} {
		got := Apply(in, Criteria{Search: q}, staff)
		if !slices.Equal(ids(got), []string{"t1"}) {
			t.Errorf("search %q: expected [t1], got %v", q, ids(got))
		}
	}

	upper := Apply(in, Criteria{Search: "VPN DROPS"}, staff)
	lower := Apply(in, Criteria{Search: strings.ToLower("VPN DROPS")}, staff)
	if !slices.Equal(ids(upper), ids(lower)) {
		t.Errorf("lowercasing query changed results: %v vs %v", ids(upper), ids(lower))
	}
}

func TestApply_SearchMatchesID(t *testing.T) {
	got := Apply(sampleSet(), Criteria{Search: "T4"}, staff)
	if !slices.Equal(ids(got), []string{"t4"}) {
		t.Fatalf("expected [t4], got %v", ids(got))
	}
}

func TestApply_PriorityDescIsNonIncreasing(t *testing.T) {
	got := Apply(sampleSet(), Criteria{SortBy: SortPriority, SortOrder: OrderDesc}, staff)
	for i := 1; i < len(got); i++ {
		if got[i-1].Priority.Rank() < got[i].Priority.Rank() {
			t.Fatalf("rank increases at %d: %v", i, ids(got))
		}
	}
}

func TestApply_PrioritySortIsStable(t *testing.T) {
	in := []domain.Ticket{
		ticket("a", "u", domain.PriorityHigh, 0),
		ticket("b", "u", domain.PriorityLow, 0),
		ticket("c", "u", domain.PriorityMedium, 0),
		ticket("d", "u", domain.PriorityHigh, 0),
		ticket("e", "u", domain.PriorityLow, 0),
	}

	desc := Apply(in, Criteria{SortBy: SortPriority, SortOrder: OrderDesc}, staff)
	if !slices.Equal(ids(desc), []string{"a", "d", "c", "b", "e"}) {
		t.Fatalf("desc: got %v", ids(desc))
	}

	asc := Apply(in, Criteria{SortBy: SortPriority, SortOrder: OrderAsc}, staff)
	if !slices.Equal(ids(asc), []string{"b", "e", "c", "a", "d"}) {
		t.Fatalf("asc: got %v", ids(asc))
	}
}

func TestApply_UnassignedSelectsTicketsWithoutAssignee(t *testing.T) {
	got := Apply(sampleSet(), Criteria{Assignee: Unassigned, SortOrder: OrderAsc}, staff)
	if !slices.Equal(ids(got), []string{"t1", "t3", "t5"}) {
		t.Fatalf("expected [t1 t3 t5], got %v", ids(got))
	}
}

func TestApply_AssigneeMatchesEmailOrID(t *testing.T) {
	in := sampleSet()

	byEmail := Apply(in, Criteria{Assignee: "agent@example.com"}, staff)
	if !slices.Equal(ids(byEmail), []string{"t2"}) {
		t.Errorf("by email: got %v", ids(byEmail))
	}
	byID := Apply(in, Criteria{Assignee: "agent-1"}, staff)
	if !slices.Equal(ids(byID), []string{"t4"}) {
		t.Errorf("by id: got %v", ids(byID))
	}
}

func TestApply_EndUserSeesOnlyOwnTickets(t *testing.T) {
	alice := Viewer{UserID: "alice", Email: "alice@example.com", Role: domain.RoleEndUser}

	cases := []Criteria{
		Default(),
		{Status: "open", Priority: "high"},
		{Search: "t"},
		{Assignee: Unassigned},
	}
	for _, c := range cases {
		for _, got := range Apply(sampleSet(), c, alice) {
			if got.UserID != "alice" {
				t.Fatalf("criteria %+v leaked ticket %s owned by %s", c, got.ID, got.UserID)
			}
		}
	}

	all := Apply(sampleSet(), Default(), alice)
	if len(all) != 2 {
		t.Fatalf("expected 2 own tickets, got %v", ids(all))
	}
}

func TestApply_EndUserMatchesByEmailWhenTicketHasNoUserID(t *testing.T) {
	legacy := ticket("old", "", domain.PriorityLow, 0)
	legacy.UserEmail = "Alice@Example.com"
	other := ticket("other", "", domain.PriorityLow, 0)
	other.UserEmail = "bob@example.com"

	alice := Viewer{UserID: "alice", Email: "alice@example.com", Role: domain.RoleEndUser}
	got := Apply([]domain.Ticket{legacy, other}, Criteria{}, alice)

	if !slices.Equal(ids(got), []string{"old"}) {
		t.Fatalf("expected [old], got %v", ids(got))
	}
}

func TestApply_UnknownRoleIsRestricted(t *testing.T) {
	v := Viewer{UserID: "bob", Email: "bob@example.com", Role: domain.Role("superuser")}
	for _, got := range Apply(sampleSet(), Criteria{}, v) {
		if got.UserID != "bob" {
			t.Fatalf("unexpected ticket %s", got.ID)
		}
	}
}

func TestNormalize_Defaults(t *testing.T) {
	got := Normalize(Criteria{
		Search:    "  hi ",
		Status:    "pending",
		Priority:  "urgent",
		SortBy:    "subject",
		SortOrder: "sideways",
	})
	want := Criteria{
		Search:    "hi",
		Status:    All,
		Priority:  All,
		Category:  All,
		Assignee:  All,
		SortBy:    SortCreatedAt,
		SortOrder: OrderDesc,
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestApply_CategoryMatchesExactly(t *testing.T) {
	set := sampleSet()

	billing := Apply(set, Criteria{Category: "billing"}, staff)
	if !slices.Equal(ids(billing), []string{"t3"}) {
		t.Fatalf("expected [t3], got %v", ids(billing))
	}

	// A category nobody filed under is still a valid filter, not a malformed one.
	if got := Normalize(Criteria{Category: "hardware"}).Category; got != "hardware" {
		t.Fatalf("expected category kept, got %q", got)
	}
	if got := Apply(set, Criteria{Category: "hardware"}, staff); len(got) != 0 {
		t.Fatalf("expected no tickets, got %v", ids(got))
	}
	if got := Apply(set, Criteria{Category: "  "}, staff); len(got) != len(set) {
		t.Fatalf("blank category should not restrict, got %d of %d", len(got), len(set))
	}
}

func TestParseQuery(t *testing.T) {
	q := url.Values{}
	q.Set("q", "printer")
	q.Set("status", "resolved")
	q.Set("sort", "priority")
	q.Set("order", "ASC")
	q.Set("assignee", "unassigned")

	got := ParseQuery(q)

	if got.Search != "printer" || got.Status != "resolved" || got.SortBy != SortPriority ||
		got.SortOrder != OrderAsc || got.Assignee != Unassigned || got.Priority != All {
		t.Fatalf("unexpected criteria %+v", got)
	}

	q.Set("search", "vpn")
	if ParseQuery(q).Search != "vpn" {
		t.Errorf("search should take precedence over q")
	}
}
