package database

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/xavierca1/quotedesk/internal/entity"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// maxPage keeps (page-1)*maxPageSize inside a Postgres int4 OFFSET.
	maxPage = 1 << 20
)

type scanner interface {
	Scan(dest ...any) error
}

func paginate(page, pageSize int) (limit, offset int) {
	switch {
	case page <= 0:
		page = 1
	case page > maxPage:
		page = maxPage
	}
	switch {
	case pageSize <= 0:
		pageSize = defaultPageSize
	case pageSize > maxPageSize:
		pageSize = maxPageSize
	}
	return pageSize, (page - 1) * pageSize
}

func sortOrder(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}

// likePattern builds a contains pattern with LIKE wildcards in the input escaped.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// mapError turns constraint violations into entity errors. missing is
// returned when a referenced row does not exist or an id is not a valid uuid.
func mapError(err error, missing error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && missing != nil {
		switch pqErr.Code {
		case "23503", "22P02":
			return missing
		}
	}
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return entity.ErrDuplicate
	}
	return err
}

// noRow reports whether a lookup found nothing, including malformed ids.
func noRow(err error) bool {
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "22P02"
}
