// Package item implements the work-item store using PostgreSQL. Writes
// that change an existing row also append one history record per changed
// tracked field; callers that need the write and its history to be atomic
// run the operation inside postgres.TxManager.RunInTx.
package item

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/mkossowski/agendum/internal/adapter/postgres"
	"github.com/mkossowski/agendum/internal/domain"
	"github.com/mkossowski/agendum/pkg/ctxutil"
)

// itemColumns is the canonical select list; keep in sync with itemRow.
var itemColumns = []string{
	"id", "type", "status", "title", "description", "raw_snippet",
	"workspace_id", "source_channel_id", "source_channel_name",
	"source_thread_ts", "source_message_ts", "source_url",
	"assigned_to_user_id", "assigned_to_user_name",
	"requestor_user_id", "requestor_user_name", "created_by_user_id",
	"project", "topic", "labels", "tags",
	"due_date", "priority", "created_at", "updated_at", "completed_at",
}

// itemRow mirrors the items table for scany.
type itemRow struct {
	ID                 uuid.UUID  `db:"id"`
	Type               string     `db:"type"`
	Status             string     `db:"status"`
	Title              string     `db:"title"`
	Description        *string    `db:"description"`
	RawSnippet         *string    `db:"raw_snippet"`
	WorkspaceID        *string    `db:"workspace_id"`
	SourceChannelID    *string    `db:"source_channel_id"`
	SourceChannelName  *string    `db:"source_channel_name"`
	SourceThreadTS     *string    `db:"source_thread_ts"`
	SourceMessageTS    *string    `db:"source_message_ts"`
	SourceURL          *string    `db:"source_url"`
	AssignedToUserID   *string    `db:"assigned_to_user_id"`
	AssignedToUserName *string    `db:"assigned_to_user_name"`
	RequestorUserID    *string    `db:"requestor_user_id"`
	RequestorUserName  *string    `db:"requestor_user_name"`
	CreatedByUserID    *string    `db:"created_by_user_id"`
	Project            *string    `db:"project"`
	Topic              *string    `db:"topic"`
	Labels             *string    `db:"labels"`
	Tags               *string    `db:"tags"`
	DueDate            *time.Time `db:"due_date"`
	Priority           int        `db:"priority"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	CompletedAt        *time.Time `db:"completed_at"`
}

func (r itemRow) toDomain() (*domain.Item, error) {
	itemType, err := domain.ParseItemType(r.Type)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseItemStatus(r.Status)
	if err != nil {
		return nil, err
	}
	return &domain.Item{
		ID:                 r.ID,
		Type:               itemType,
		Status:             status,
		Title:              r.Title,
		Description:        r.Description,
		RawSnippet:         r.RawSnippet,
		WorkspaceID:        r.WorkspaceID,
		SourceChannelID:    r.SourceChannelID,
		SourceChannelName:  r.SourceChannelName,
		SourceThreadTS:     r.SourceThreadTS,
		SourceMessageTS:    r.SourceMessageTS,
		SourceURL:          r.SourceURL,
		AssignedToUserID:   r.AssignedToUserID,
		AssignedToUserName: r.AssignedToUserName,
		RequestorUserID:    r.RequestorUserID,
		RequestorUserName:  r.RequestorUserName,
		CreatedByUserID:    r.CreatedByUserID,
		Project:            r.Project,
		Topic:              r.Topic,
		Labels:             r.Labels,
		Tags:               r.Tags,
		DueDate:            r.DueDate,
		Priority:           r.Priority,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
		CompletedAt:        r.CompletedAt,
	}, nil
}

func itemValues(i *domain.Item) []any {
	return []any{
		i.ID, string(i.Type), string(i.Status), i.Title, i.Description, i.RawSnippet,
		i.WorkspaceID, i.SourceChannelID, i.SourceChannelName,
		i.SourceThreadTS, i.SourceMessageTS, i.SourceURL,
		i.AssignedToUserID, i.AssignedToUserName,
		i.RequestorUserID, i.RequestorUserName, i.CreatedByUserID,
		i.Project, i.Topic, i.Labels, i.Tags,
		i.DueDate, i.Priority, i.CreatedAt, i.UpdatedAt, i.CompletedAt,
	}
}

// Repo provides item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new item repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Tracked-field diffing
// ---------------------------------------------------------------------------

// trackedField renders one audited column of an item as a nullable string.
type trackedField struct {
	name   string
	render func(*domain.Item) *string
}

// trackedFields is the explicit list of columns audited by Upsert. A
// column not listed here never produces history rows.
var trackedFields = []trackedField{
	{"type", func(i *domain.Item) *string { return strPtr(string(i.Type)) }},
	{"status", func(i *domain.Item) *string { return strPtr(string(i.Status)) }},
	{"title", func(i *domain.Item) *string { return strPtr(i.Title) }},
	{"description", func(i *domain.Item) *string { return i.Description }},
	{"assigned_to_user_id", func(i *domain.Item) *string { return i.AssignedToUserID }},
	{"requestor_user_id", func(i *domain.Item) *string { return i.RequestorUserID }},
	{"project", func(i *domain.Item) *string { return i.Project }},
	{"topic", func(i *domain.Item) *string { return i.Topic }},
	{"labels", func(i *domain.Item) *string { return i.Labels }},
	{"tags", func(i *domain.Item) *string { return i.Tags }},
	{"due_date", func(i *domain.Item) *string { return timeStr(i.DueDate) }},
	{"priority", func(i *domain.Item) *string { return strPtr(strconv.Itoa(i.Priority)) }},
	{"completed_at", func(i *domain.Item) *string { return timeStr(i.CompletedAt) }},
}

// diffTracked returns one history record per tracked field whose rendered
// value differs between old and new.
func diffTracked(oldItem, newItem *domain.Item, at time.Time, changedBy *string) []domain.ItemHistory {
	var changes []domain.ItemHistory
	for _, f := range trackedFields {
		oldVal := f.render(oldItem)
		newVal := f.render(newItem)
		if strPtrEqual(oldVal, newVal) {
			continue
		}
		changes = append(changes, domain.ItemHistory{
			ItemID:       newItem.ID,
			FieldChanged: f.name,
			OldValue:     oldVal,
			NewValue:     newVal,
			ChangedAt:    at,
			ChangedBy:    changedBy,
		})
	}
	return changes
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert inserts the item, or updates the existing row with the same ID.
// On update, one history record is appended per changed tracked field.
// The most recent write wins field-by-field; there is no version check.
// It returns the persisted item and the history it wrote (nil on insert).
func (r *Repo) Upsert(ctx context.Context, item *domain.Item) (*domain.Item, []domain.ItemHistory, error) {
	if err := item.Validate(); err != nil {
		return nil, nil, err
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	existing, err := r.get(ctx, q, item.ID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if err := r.insert(ctx, q, item); err != nil {
			return nil, nil, err
		}
		return item, nil, nil
	case err != nil:
		return nil, nil, err
	}

	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now().UTC()

	changedBy := actorPtr(ctx)
	history := diffTracked(existing, item, item.UpdatedAt, changedBy)
	if len(history) == 0 {
		return existing, nil, nil
	}

	if err := r.update(ctx, q, item); err != nil {
		return nil, nil, err
	}
	if err := r.appendHistory(ctx, q, history); err != nil {
		return nil, nil, err
	}
	return item, history, nil
}

func (r *Repo) insert(ctx context.Context, q postgres.Querier, item *domain.Item) error {
	sql, args, err := squirrel.Insert("items").
		Columns(itemColumns...).
		Values(itemValues(item)...).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "item", item.ID.String())
	}
	_, err = q.Exec(ctx, sql, args...)
	return postgres.MapError(err, "item", item.ID.String())
}

func (r *Repo) update(ctx context.Context, q postgres.Querier, item *domain.Item) error {
	ub := squirrel.Update("items").
		Where(squirrel.Eq{"id": item.ID}).
		PlaceholderFormat(squirrel.Dollar)
	vals := itemValues(item)
	for i, col := range itemColumns {
		if col == "id" || col == "created_at" {
			continue
		}
		ub = ub.Set(col, vals[i])
	}
	sql, args, err := ub.ToSql()
	if err != nil {
		return postgres.MapError(err, "item", item.ID.String())
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "item", item.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "item", item.ID.String())
	}
	return nil
}

func (r *Repo) appendHistory(ctx context.Context, q postgres.Querier, records []domain.ItemHistory) error {
	ib := squirrel.Insert("item_history").
		Columns("item_id", "field_changed", "old_value", "new_value", "changed_at", "changed_by").
		PlaceholderFormat(squirrel.Dollar)
	for _, h := range records {
		ib = ib.Values(h.ItemID, h.FieldChanged, h.OldValue, h.NewValue, h.ChangedAt, h.ChangedBy)
	}
	sql, args, err := ib.ToSql()
	if err != nil {
		return postgres.MapError(err, "item_history", records[0].ItemID.String())
	}
	_, err = q.Exec(ctx, sql, args...)
	return postgres.MapError(err, "item_history", records[0].ItemID.String())
}

// MarkCompleted sets the item to completed with the given timestamp and
// appends the status/completed_at history records.
func (r *Repo) MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time) (*domain.Item, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == domain.StatusCompleted {
		return existing, nil
	}
	updated := *existing
	updated.Status = domain.StatusCompleted
	updated.CompletedAt = &completedAt
	item, _, err := r.Upsert(ctx, &updated)
	return item, err
}

// Delete removes the item; its history rows go with it via cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "item", id.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "item", id.String())
	}
	return nil
}

const markStaleSQL = `
UPDATE items
SET status = 'stale', updated_at = now()
WHERE type = 'task' AND status IN ('open', 'in_progress') AND updated_at < $1`

// MarkStale bulk-transitions active tasks untouched since the cutoff and
// returns how many rows changed. No history is written for bulk sweeps.
func (r *Repo) MarkStale(ctx context.Context, cutoff time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	tag, err := q.Exec(ctx, markStaleSQL, cutoff)
	if err != nil {
		return 0, postgres.MapError(err, "item", "stale-sweep")
	}
	return tag.RowsAffected(), nil
}

const closeThreadTasksSQL = `
UPDATE items
SET status = 'completed', completed_at = $3, updated_at = now()
WHERE source_channel_id = $1 AND source_thread_ts = $2
  AND type = 'task' AND status IN ('open', 'in_progress')`

// CloseThreadTasks completes every active task extracted from the given
// thread, returning the number of tasks closed.
func (r *Repo) CloseThreadTasks(ctx context.Context, channelID, threadTS string, completedAt time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	tag, err := q.Exec(ctx, closeThreadTasksSQL, channelID, threadTS, completedAt)
	if err != nil {
		return 0, postgres.MapError(err, "item", "thread "+threadTS)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the item by primary key.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	return r.get(ctx, q, id)
}

func (r *Repo) get(ctx context.Context, q postgres.Querier, id uuid.UUID) (*domain.Item, error) {
	sql, args, err := squirrel.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "item", id.String())
	}
	var row itemRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "item", id.String())
	}
	return row.toDomain()
}

// Search runs the filter evaluator. The filter is normalized and
// validated here so every caller gets identical semantics.
func (r *Repo) Search(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	filter.Normalize()
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	sql, args, err := buildSearchQuery(filter)
	if err != nil {
		return nil, postgres.MapError(err, "item", "search")
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	var rows []itemRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "item", "search")
	}

	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		it, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, nil
}

const listHistorySQL = `
SELECT id, item_id, field_changed, old_value, new_value, changed_at, changed_by
FROM item_history
WHERE item_id = $1
ORDER BY changed_at DESC, id DESC
LIMIT $2`

// ListHistory returns the item's change records, newest first.
func (r *Repo) ListHistory(ctx context.Context, itemID uuid.UUID, limit int) ([]domain.ItemHistory, error) {
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	q := postgres.QuerierFromCtx(ctx, r.db)
	var records []domain.ItemHistory
	if err := pgxscan.Select(ctx, q, &records, listHistorySQL, itemID, limit); err != nil {
		return nil, postgres.MapError(err, "item_history", itemID.String())
	}
	return records, nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func strPtr(s string) *string { return &s }

func timeStr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func actorPtr(ctx context.Context) *string {
	if actor, ok := ctxutil.ActorIDFromCtx(ctx); ok {
		return &actor
	}
	return nil
}
