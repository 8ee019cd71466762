package sequence

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lingora/internal/sequence/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	node *snowflake.Node
}

func NewRepository(node *snowflake.Node) domain.Repository {
	return &repository{node: node}
}

func (r *repository) Increment(ctx context.Context, tx *gorm.DB, kind, scope string) (int64, error) {
	res := tx.WithContext(ctx).Model(&domain.Counter{}).
		Where("kind = ? AND scope = ?", kind, scope).
		Update("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrCounterMissing
	}
	var counter domain.Counter
	err := tx.WithContext(ctx).
		Where("kind = ? AND scope = ?", kind, scope).
		First(&counter).Error
	if err != nil {
		return 0, err
	}
	return counter.Value, nil
}

func (r *repository) Seed(ctx context.Context, tx *gorm.DB, kind, scope string, value int64) error {
	counter := domain.Counter{
		ID:    r.node.Generate(),
		Kind:  kind,
		Scope: scope,
		Value: value,
	}
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "scope"}},
		DoNothing: true,
	}).Create(&counter).Error
}

// MaxExisting scans by table name rather than model type; importing the order
// and subcontract packages here would cycle back into sequence.
func (r *repository) MaxExisting(ctx context.Context, db *gorm.DB, kind, scope string) (int64, error) {
	var numbers []string
	switch kind {
	case domain.KindOrder:
		bookID, err := snowflake.ParseString(scope)
		if err != nil {
			return 0, err
		}
		err = db.WithContext(ctx).Table("orders").
			Where("book_id = ? AND order_number <> ''", bookID).
			Pluck("order_number", &numbers).Error
		if err != nil {
			return 0, err
		}
	case domain.KindInvoice:
		err := db.WithContext(ctx).Table("orders").
			Where("invoice_provider_source = ? AND invoice_number IS NOT NULL AND invoice_number <> ''", scope).
			Pluck("invoice_number", &numbers).Error
		if err != nil {
			return 0, err
		}
	case domain.KindSubcontract:
		err := db.WithContext(ctx).Table("subcontracts").
			Where("subcontract_number <> ''").
			Pluck("subcontract_number", &numbers).Error
		if err != nil {
			return 0, err
		}
	default:
		return 0, domain.ErrUnknownKind
	}
	return domain.MaxSequence(numbers), nil
}
