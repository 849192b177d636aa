package item

import (
	"github.com/Masterminds/squirrel"

	"github.com/mkossowski/agendum/internal/domain"
)

// buildSearchQuery translates a normalized domain.ItemFilter into SQL.
// All clauses AND together; list-valued clauses become IN. The filter
// must already be normalized and validated.
func buildSearchQuery(f domain.ItemFilter) (string, []any, error) {
	sb := squirrel.Select(itemColumns...).
		From("items").
		PlaceholderFormat(squirrel.Dollar)

	if f.Query != nil && *f.Query != "" {
		pat := "%" + *f.Query + "%"
		sb = sb.Where(squirrel.Or{
			squirrel.ILike{"title": pat},
			squirrel.ILike{"description": pat},
			squirrel.ILike{"raw_snippet": pat},
		})
	}
	if len(f.Types) > 0 {
		sb = sb.Where(squirrel.Eq{"type": enumStrings(f.Types)})
	}
	if len(f.Statuses) > 0 {
		sb = sb.Where(squirrel.Eq{"status": enumStrings(f.Statuses)})
	}
	if len(f.Assignees) > 0 {
		sb = sb.Where(squirrel.Eq{"assigned_to_user_id": f.Assignees})
	}
	if f.Requestor != nil {
		sb = sb.Where(squirrel.Eq{"requestor_user_id": *f.Requestor})
	}
	if f.CreatedBy != nil {
		sb = sb.Where(squirrel.Eq{"created_by_user_id": *f.CreatedBy})
	}
	if f.Project != nil {
		sb = sb.Where(squirrel.Eq{"project": *f.Project})
	}
	if f.Topic != nil {
		sb = sb.Where(squirrel.Eq{"topic": *f.Topic})
	}
	if f.ChannelID != nil {
		sb = sb.Where(squirrel.Eq{"source_channel_id": *f.ChannelID})
	}
	if len(f.ChannelIDs) > 0 {
		sb = sb.Where(squirrel.Eq{"source_channel_id": f.ChannelIDs})
	}
	if f.WorkspaceID != nil {
		sb = sb.Where(squirrel.Eq{"workspace_id": *f.WorkspaceID})
	}
	if f.DateFrom != nil {
		sb = sb.Where(squirrel.GtOrEq{"created_at": *f.DateFrom})
	}
	if f.DateTo != nil {
		sb = sb.Where(squirrel.LtOrEq{"created_at": *f.DateTo})
	}
	if f.DueBefore != nil {
		sb = sb.Where(squirrel.Lt{"due_date": *f.DueBefore})
	}
	if f.DueFrom != nil {
		sb = sb.Where(squirrel.GtOrEq{"due_date": *f.DueFrom})
	}
	if f.DueTo != nil {
		sb = sb.Where(squirrel.LtOrEq{"due_date": *f.DueTo})
	}
	if f.MinPriority != nil {
		sb = sb.Where(squirrel.GtOrEq{"priority": *f.MinPriority})
	}
	if f.CompletedSince != nil {
		sb = sb.Where(squirrel.GtOrEq{"completed_at": *f.CompletedSince})
	}
	if f.NoAssignee {
		sb = sb.Where(squirrel.Eq{"assigned_to_user_id": nil})
	}
	if f.NoDueDate {
		sb = sb.Where(squirrel.Eq{"due_date": nil})
	}
	if f.RelevantToUser != nil {
		sb = sb.Where(squirrel.Or{
			squirrel.Eq{"assigned_to_user_id": *f.RelevantToUser},
			squirrel.Eq{"requestor_user_id": *f.RelevantToUser},
			squirrel.Eq{"created_by_user_id": *f.RelevantToUser},
		})
	}

	sb = sb.OrderBy(orderClause(f.OrderBy)).Limit(uint64(f.Limit))

	return sb.ToSql()
}

func orderClause(o domain.OrderBy) string {
	switch o {
	case domain.OrderCreatedAtDesc:
		return "created_at DESC"
	case domain.OrderDueDateAsc:
		return "due_date ASC NULLS LAST"
	case domain.OrderDueDateDesc:
		return "due_date DESC NULLS LAST"
	case domain.OrderPriorityDesc:
		return "priority DESC, updated_at DESC"
	default:
		return "updated_at DESC"
	}
}

func enumStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
