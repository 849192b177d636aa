package item

import (
	"strings"
	"testing"
	"time"

	"github.com/mkossowski/agendum/internal/domain"
)

func TestBuildSearchQuery_Defaults(t *testing.T) {
	t.Parallel()

	f := domain.ItemFilter{}
	f.Normalize()
	sql, args, err := buildSearchQuery(f)
	if err != nil {
		t.Fatalf("buildSearchQuery: %v", err)
	}
	if !strings.Contains(sql, "FROM items") {
		t.Errorf("missing FROM clause: %s", sql)
	}
	if strings.Contains(sql, "WHERE") {
		t.Errorf("empty filter produced WHERE clause: %s", sql)
	}
	if !strings.Contains(sql, "ORDER BY updated_at DESC") {
		t.Errorf("default ordering missing: %s", sql)
	}
	if !strings.Contains(sql, "LIMIT 50") {
		t.Errorf("default limit missing: %s", sql)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildSearchQuery_Clauses(t *testing.T) {
	t.Parallel()

	q := "login"
	ws := "W1"
	minPrio := 1
	due := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	f := domain.ItemFilter{
		Query:       &q,
		Types:       []domain.ItemType{domain.ItemTypeTask, domain.ItemTypeQuestion},
		Statuses:    []domain.ItemStatus{domain.StatusOpen},
		Assignees:   []string{"U1", "U2"},
		WorkspaceID: &ws,
		DueBefore:   &due,
		MinPriority: &minPrio,
		OrderBy:     domain.OrderDueDateAsc,
		Limit:       10,
	}
	f.Normalize()
	sql, args, err := buildSearchQuery(f)
	if err != nil {
		t.Fatalf("buildSearchQuery: %v", err)
	}

	for _, want := range []string{
		"title ILIKE",
		"description ILIKE",
		"raw_snippet ILIKE",
		"type IN",
		"status IN",
		"assigned_to_user_id IN",
		"workspace_id =",
		"due_date <",
		"priority >=",
		"ORDER BY due_date ASC NULLS LAST",
		"LIMIT 10",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("missing %q in: %s", want, sql)
		}
	}
	// pattern arg carries the wildcards
	found := false
	for _, a := range args {
		if s, ok := a.(string); ok && s == "%login%" {
			found = true
		}
	}
	if !found {
		t.Errorf("ILIKE pattern arg missing from %v", args)
	}
}

func TestBuildSearchQuery_RelevantToUser(t *testing.T) {
	t.Parallel()

	user := "U42"
	f := domain.ItemFilter{RelevantToUser: &user}
	f.Normalize()
	sql, args, err := buildSearchQuery(f)
	if err != nil {
		t.Fatalf("buildSearchQuery: %v", err)
	}
	for _, want := range []string{"assigned_to_user_id =", "requestor_user_id =", "created_by_user_id =", " OR "} {
		if !strings.Contains(sql, want) {
			t.Errorf("missing %q in: %s", want, sql)
		}
	}
	if len(args) != 3 {
		t.Errorf("expected 3 args, got %v", args)
	}
}

func TestOrderClause(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   domain.OrderBy
		want string
	}{
		{domain.OrderCreatedAtDesc, "created_at DESC"},
		{domain.OrderUpdatedAtDesc, "updated_at DESC"},
		{domain.OrderDueDateAsc, "due_date ASC NULLS LAST"},
		{domain.OrderDueDateDesc, "due_date DESC NULLS LAST"},
		{domain.OrderPriorityDesc, "priority DESC, updated_at DESC"},
	}
	for _, tt := range tests {
		if got := orderClause(tt.in); got != tt.want {
			t.Errorf("orderClause(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildSearchQuery_NullFieldClauses(t *testing.T) {
	t.Parallel()

	f := domain.ItemFilter{NoAssignee: true, NoDueDate: true}
	f.Normalize()
	sql, _, err := buildSearchQuery(f)
	if err != nil {
		t.Fatalf("buildSearchQuery: %v", err)
	}
	for _, want := range []string{"assigned_to_user_id IS NULL", "due_date IS NULL"} {
		if !strings.Contains(sql, want) {
			t.Errorf("missing %q in: %s", want, sql)
		}
	}
}
