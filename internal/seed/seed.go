package seed

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	catalogdomain "github.com/smallbiznis/lingora/internal/catalog/domain"
	bookdomain "github.com/smallbiznis/lingora/internal/orderbook/domain"
	settingsdomain "github.com/smallbiznis/lingora/internal/settings/domain"
	unitdomain "github.com/smallbiznis/lingora/internal/unit/domain"
	vatdomain "github.com/smallbiznis/lingora/internal/vat/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Node *snowflake.Node
}

// Run seeds an empty database with the defaults a fresh installation needs:
// one plain order book, the common billing units, one service with the
// standard VAT grid, and the baseline settings.
func Run(p Params) error {
	ctx := context.Background()
	log := p.Log.Named("seed")

	if err := seedBooks(ctx, p.DB, p.Node, log); err != nil {
		return err
	}
	if err := seedUnits(ctx, p.DB, p.Node, log); err != nil {
		return err
	}
	if err := seedServices(ctx, p.DB, p.Node, log); err != nil {
		return err
	}
	return seedSettings(ctx, p.DB, log)
}

func seedBooks(ctx context.Context, db *gorm.DB, node *snowflake.Node, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&bookdomain.OrderBook{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	name := "Orders"
	book := bookdomain.OrderBook{
		ID:         node.Generate(),
		Name:       name,
		Code:       slug.Make(name),
		ViewType:   bookdomain.ViewPlain,
		ShareToken: uuid.NewString(),
	}
	if err := db.WithContext(ctx).Create(&book).Error; err != nil {
		return err
	}
	log.Info("seeded default order book", zap.Stringer("book_id", book.ID))
	return nil
}

func seedUnits(ctx context.Context, db *gorm.DB, node *snowflake.Node, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&unitdomain.Unit{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, name := range []string{"page", "word", "hour", "document"} {
		unit := unitdomain.Unit{ID: node.Generate(), Name: name}
		if err := db.WithContext(ctx).Create(&unit).Error; err != nil {
			return err
		}
	}
	log.Info("seeded default units")
	return nil
}

func seedServices(ctx context.Context, db *gorm.DB, node *snowflake.Node, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&catalogdomain.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	svc := catalogdomain.Service{
		ID:      node.Generate(),
		Name:    "Translation",
		VatRate: 23,
	}
	if err := db.WithContext(ctx).Create(&svc).Error; err != nil {
		return err
	}

	// The standard grid: domestic and EU consumers pay the domestic rate,
	// business customers abroad fall under reverse charge (rate 0).
	rates := map[vatdomain.Segment]float64{
		vatdomain.SegmentCompanyDomestic: 23,
		vatdomain.SegmentCompanyEU:       0,
		vatdomain.SegmentCompanyWorld:    0,
		vatdomain.SegmentPersonDomestic:  23,
		vatdomain.SegmentPersonEU:        23,
		vatdomain.SegmentPersonWorld:     0,
	}
	for _, segment := range vatdomain.Segments {
		rate := rates[segment]
		rule := vatdomain.Rule{
			ID:            node.Generate(),
			ServiceID:     svc.ID,
			ClientSegment: segment,
			ValueType:     vatdomain.ValueTypeRate,
			RateValue:     &rate,
		}
		if err := db.WithContext(ctx).Create(&rule).Error; err != nil {
			return err
		}
	}
	log.Info("seeded default service with vat grid", zap.Stringer("service_id", svc.ID))
	return nil
}

func seedSettings(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	defaults := map[string]string{
		settingsdomain.KeyTaxpayerCountry:         "PL",
		settingsdomain.KeyDefaultCurrency:         "PLN",
		settingsdomain.KeyOrderNumberFormat:       "Z/{YYYY}/{NR}",
		settingsdomain.KeyInvoiceNumberFormat:     "FV/{YYYY}/{NR}",
		settingsdomain.KeySubcontractNumberFormat: "PZ/{YYYY}/{NR}",
	}
	seeded := false
	for key, value := range defaults {
		var count int64
		if err := db.WithContext(ctx).Model(&settingsdomain.Setting{}).Where("key = ?", key).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.WithContext(ctx).Create(&settingsdomain.Setting{Key: key, Value: value}).Error; err != nil {
			return err
		}
		seeded = true
	}
	if seeded {
		log.Info("seeded default settings")
	}
	return nil
}

var Module = fx.Module("seed",
	fx.Invoke(Run),
)
