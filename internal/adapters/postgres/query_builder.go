package postgres

import (
	"fmt"
	"strings"

	"listing-service/internal/core/domain"
)

const listingSelectColumns = "id::text, posted_by, data"

// goalExpression учитывает оба исторических ключа цели объявления
const goalExpression = "LOWER(COALESCE(data->>'listing_goal', data->>'listingGoal'))"

// listQuery - запрос страницы и запрос общего количества с общими аргументами фильтра
type listQuery struct {
	pageSQL   string
	pageArgs  []any
	countSQL  string
	countArgs []any
}

func buildListQuery(filter domain.ListingFilter, limit, offset int) listQuery {
	var conditions []string
	var args []any

	if goal := strings.TrimSpace(filter.ListingGoal); goal != "" {
		args = append(args, strings.ToLower(goal))
		conditions = append(conditions, fmt.Sprintf("%s = $%d", goalExpression, len(args)))
	}
	if postedBy := strings.TrimSpace(filter.PostedBy); postedBy != "" {
		args = append(args, postedBy)
		conditions = append(conditions, fmt.Sprintf("posted_by = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countArgs := append([]any(nil), args...)
	pageArgs := append(args, limit, offset)

	return listQuery{
		pageSQL: fmt.Sprintf(
			"SELECT %s FROM listings%s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d",
			listingSelectColumns, where, len(pageArgs)-1, len(pageArgs),
		),
		pageArgs:  pageArgs,
		countSQL:  "SELECT COUNT(*) FROM listings" + where,
		countArgs: countArgs,
	}
}
