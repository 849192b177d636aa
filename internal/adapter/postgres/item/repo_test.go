package item

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/mkossowski/agendum/internal/domain"
	"github.com/mkossowski/agendum/pkg/ctxutil"
)

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return New(mock), mock
}

func buildItem(id uuid.UUID) *domain.Item {
	now := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	return &domain.Item{
		ID:        id,
		Type:      domain.ItemTypeTask,
		Status:    domain.StatusOpen,
		Title:     "fix the login bug",
		Priority:  domain.PriorityNormal,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func itemRows(items ...*domain.Item) *pgxmock.Rows {
	rows := pgxmock.NewRows(itemColumns)
	for _, i := range items {
		rows.AddRow(itemValues(i)...)
	}
	return rows
}

func TestRepo_Get(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .* FROM items WHERE id =`).
					WithArgs(id.String()).
					WillReturnRows(itemRows(buildItem(id)))
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .* FROM items WHERE id =`).
					WithArgs(id.String()).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			got, err := repo.Get(context.Background(), id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Get error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.ID != id {
				t.Errorf("ID = %v, want %v", got.ID, id)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestRepo_Get_InvalidStoredEnum(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	bad := buildItem(id)
	bad.Type = "sticky_note"

	mock.ExpectQuery(`SELECT .* FROM items`).
		WithArgs(id.String()).
		WillReturnRows(itemRows(bad))

	_, err := repo.Get(context.Background(), id)
	if !errors.Is(err, domain.ErrInvalidEnum) {
		t.Fatalf("Get with corrupt enum = %v, want ErrInvalidEnum", err)
	}
}

func TestRepo_Upsert_Insert(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	input := buildItem(id)

	mock.ExpectQuery(`SELECT .* FROM items WHERE id =`).
		WithArgs(id.String()).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec(`INSERT INTO items`).
		WithArgs(anyArgs(len(itemColumns))...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	got, history, err := repo.Upsert(context.Background(), input)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if got.ID != id {
		t.Errorf("ID = %v, want %v", got.ID, id)
	}
	if history != nil {
		t.Errorf("insert should write no history, got %v", history)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepo_Upsert_UpdateWritesHistory(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	existing := buildItem(id)
	updated := *existing
	updated.Status = domain.StatusInProgress
	updated.Priority = domain.PriorityHigh

	mock.ExpectQuery(`SELECT .* FROM items WHERE id =`).
		WithArgs(id.String()).
		WillReturnRows(itemRows(existing))
	// 24 SET values plus the id in the WHERE clause
	mock.ExpectExec(`UPDATE items SET`).
		WithArgs(anyArgs(25)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO item_history`).
		WithArgs(anyArgs(12)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	ctx := ctxutil.WithActorID(context.Background(), "U99")
	_, history, err := repo.Upsert(ctx, &updated)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if len(history) != 2 {
		t.Fatalf("history rows = %d, want 2", len(history))
	}
	byField := map[string]domain.ItemHistory{}
	for _, h := range history {
		byField[h.FieldChanged] = h
	}
	status, ok := byField["status"]
	if !ok {
		t.Fatal("no status history row")
	}
	if status.OldValue == nil || *status.OldValue != "open" {
		t.Errorf("status old value = %v, want open", status.OldValue)
	}
	if status.NewValue == nil || *status.NewValue != "in_progress" {
		t.Errorf("status new value = %v, want in_progress", status.NewValue)
	}
	if status.ChangedBy == nil || *status.ChangedBy != "U99" {
		t.Errorf("changed_by = %v, want U99", status.ChangedBy)
	}
	if _, ok := byField["priority"]; !ok {
		t.Error("no priority history row")
	}
}

func TestRepo_Upsert_NoChangesNoWrites(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	existing := buildItem(id)

	mock.ExpectQuery(`SELECT .* FROM items WHERE id =`).
		WithArgs(id.String()).
		WillReturnRows(itemRows(existing))
	// no UPDATE, no history insert expected

	same := *existing
	_, history, err := repo.Upsert(context.Background(), &same)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if history != nil {
		t.Errorf("no-op upsert wrote history: %v", history)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected writes: %v", err)
	}
}

func TestRepo_Upsert_RejectsInvalidItem(t *testing.T) {
	repo, _ := newMockRepo(t)
	bad := buildItem(uuid.New())
	bad.Title = ""

	_, _, err := repo.Upsert(context.Background(), bad)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Upsert(invalid) = %v, want ErrValidation", err)
	}
}

func TestRepo_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM items`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := repo.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestRepo_Delete_Missing(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM items`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete(missing) = %v, want ErrNotFound", err)
	}
}

func TestRepo_MarkStale(t *testing.T) {
	repo, mock := newMockRepo(t)
	cutoff := time.Now().AddDate(0, 0, -30)

	mock.ExpectExec(`UPDATE items`).
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	n, err := repo.MarkStale(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("MarkStale: %v", err)
	}
	if n != 3 {
		t.Errorf("MarkStale = %d, want 3", n)
	}
}

func TestDiffTracked(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	at := time.Now()
	oldItem := buildItem(id)
	newItem := *oldItem
	newItem.Title = "fix the login bug for SSO users"
	assignee := "U7"
	newItem.AssignedToUserID = &assignee
	due := time.Date(2024, 6, 14, 17, 0, 0, 0, time.UTC)
	newItem.DueDate = &due

	changes := diffTracked(oldItem, &newItem, at, nil)
	if len(changes) != 3 {
		t.Fatalf("changes = %d, want 3", len(changes))
	}
	fields := map[string]bool{}
	for _, c := range changes {
		fields[c.FieldChanged] = true
		if c.ItemID != id {
			t.Errorf("history item id = %v, want %v", c.ItemID, id)
		}
	}
	for _, want := range []string{"title", "assigned_to_user_id", "due_date"} {
		if !fields[want] {
			t.Errorf("missing history for %s", want)
		}
	}
}

func TestDiffTracked_Identical(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	a := buildItem(id)
	b := *a
	if changes := diffTracked(a, &b, time.Now(), nil); len(changes) != 0 {
		t.Fatalf("identical items produced changes: %v", changes)
	}
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}
