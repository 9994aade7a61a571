package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
)

// Prefix search expressions per listing. Numeric columns are compared as text.
const (
	searchByUserID = "CAST(user_id AS TEXT) LIKE ?"
	searchBySender = "CAST(transfer_from AS TEXT) LIKE ?"
	searchByNumber = "topup_no LIKE ?"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// prefixPattern turns a search term into a LIKE prefix pattern
func prefixPattern(search string) string {
	return likeEscaper.Replace(search) + "%"
}

// findPage counts and loads one page of M ordered by id. An empty search matches everything.
func findPage[M any](db *gorm.DB, query entity.PageQuery, searchExpr string) ([]M, int64, error) {
	query = query.Normalize()

	search := strings.TrimSpace(query.Search)
	filtered := func() *gorm.DB {
		scope := db.Model(new(M))
		if search != "" {
			scope = scope.Where(searchExpr, prefixPattern(search))
		}
		return scope
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []M
	err := filtered().Order("id ASC").Offset(query.Offset()).Limit(query.PageSize).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// convertAll maps rows to domain entities
func convertAll[M any, E any](rows []M, convert func(*M) E) []E {
	out := make([]E, 0, len(rows))
	for i := range rows {
		out = append(out, convert(&rows[i]))
	}
	return out
}

// base carries what every repository needs
type base struct {
	db     *gorm.DB
	logger coreport.Logger
	entity database.EntityType
}

// conn joins the unit of work in ctx when there is one
func (b base) conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, b.db)
}

// fail maps err into the domain taxonomy and logs storage failures. Not-found results are not logged.
func (b base) fail(operation string, err error, fields map[string]any) error {
	mapped := database.MapError(err, operation, b.entity)
	if errs.IsStorageError(mapped) {
		if fields == nil {
			fields = map[string]any{}
		}
		fields["operation"] = operation
		fields["entity"] = string(b.entity)
		fields["error"] = err.Error()
		b.logger.Error("Database operation failed", fields)
	}
	return mapped
}

// affected returns the entity's not-found error when a write touched no row
func (b base) affected(result *gorm.DB, operation string, fields map[string]any) error {
	if result.Error != nil {
		return b.fail(operation, result.Error, fields)
	}
	if result.RowsAffected == 0 {
		return b.fail(operation, gorm.ErrRecordNotFound, fields)
	}
	return nil
}
