package migration

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	catalogdomain "github.com/smallbiznis/lingora/internal/catalog/domain"
	clientdomain "github.com/smallbiznis/lingora/internal/client/domain"
	contractordomain "github.com/smallbiznis/lingora/internal/contractor/domain"
	orderdomain "github.com/smallbiznis/lingora/internal/order/domain"
	bookdomain "github.com/smallbiznis/lingora/internal/orderbook/domain"
	pricingdomain "github.com/smallbiznis/lingora/internal/pricing/domain"
	seqdomain "github.com/smallbiznis/lingora/internal/sequence/domain"
	settingsdomain "github.com/smallbiznis/lingora/internal/settings/domain"
	subcontractdomain "github.com/smallbiznis/lingora/internal/subcontract/domain"
	unitdomain "github.com/smallbiznis/lingora/internal/unit/domain"
	vatdomain "github.com/smallbiznis/lingora/internal/vat/domain"
	"github.com/smallbiznis/lingora/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed postgres/*.sql
var migrations embed.FS

// Run applies the schema: versioned SQL migrations on postgres, gorm
// AutoMigrate on sqlite and mysql dev databases.
func Run(cfg db.Config, gdb *gorm.DB, log *zap.Logger) error {
	if cfg.Type == "postgres" {
		return runPostgres(gdb, log)
	}
	return autoMigrate(gdb, log)
}

func runPostgres(gdb *gorm.DB, log *zap.Logger) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return err
	}
	source, err := iofs.New(migrations, "postgres")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	log.Info("postgres migrations applied")
	return nil
}

func autoMigrate(gdb *gorm.DB, log *zap.Logger) error {
	err := gdb.AutoMigrate(
		&clientdomain.Client{},
		&contractordomain.Contractor{},
		&contractordomain.ContractorUnitRate{},
		&unitdomain.Unit{},
		&catalogdomain.Service{},
		&vatdomain.Rule{},
		&bookdomain.OrderBook{},
		&orderdomain.Order{},
		&subcontractdomain.Subcontract{},
		&pricingdomain.ClientUnitRate{},
		&pricingdomain.ClientDefaultUnitRate{},
		&pricingdomain.DefaultUnitRate{},
		&settingsdomain.Setting{},
		&seqdomain.Counter{},
	)
	if err != nil {
		return err
	}
	log.Info("schema auto-migrated")
	return nil
}

var Module = fx.Module("migration",
	fx.Invoke(Run),
)
