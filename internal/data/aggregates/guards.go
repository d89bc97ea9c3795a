package aggregates

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
)

// RowGuard checks write row counts inside an aggregate transaction.
type RowGuard struct {
	db *gorm.DB
}

func NewRowGuard(db *gorm.DB) RowGuard {
	return RowGuard{db: db}
}

func (g RowGuard) baseDB(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return g.db.WithContext(dbc.Ctx)
}

// CountInDocument counts rows of table with id in ids that belong to docID.
func (g RowGuard) CountInDocument(dbc dbctx.Context, table string, docID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	err := g.baseDB(dbc).Table(strings.TrimSpace(table)).
		Where("document_id = ? AND id IN ?", docID, ids).
		Count(&n).Error
	return n, err
}

// RequireAffected turns a short write into a conflict so the transaction rolls back.
func RequireAffected(what string, got, want int64) error {
	if got == want {
		return nil
	}
	return ConflictError(fmt.Sprintf("%s: expected %d rows, affected %d", strings.TrimSpace(what), want, got))
}
