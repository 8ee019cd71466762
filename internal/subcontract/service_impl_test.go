package subcontract

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/lingora/internal/clock"
	"github.com/smallbiznis/lingora/internal/config"
	"github.com/smallbiznis/lingora/internal/order"
	orderdomain "github.com/smallbiznis/lingora/internal/order/domain"
	"github.com/smallbiznis/lingora/internal/sequence"
	seqdomain "github.com/smallbiznis/lingora/internal/sequence/domain"
	"github.com/smallbiznis/lingora/internal/settings"
	settingsdomain "github.com/smallbiznis/lingora/internal/settings/domain"
	"github.com/smallbiznis/lingora/internal/subcontract/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type subcontractFixture struct {
	db   *gorm.DB
	node *snowflake.Node
	svc  domain.Service
}

func setupSubcontractService(t *testing.T) *subcontractFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:subcontract_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&orderdomain.Order{},
		&domain.Subcontract{},
		&settingsdomain.Setting{},
		&seqdomain.Counter{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	pricingHolder := config.NewStaticPricingConfigHolder(config.DefaultPricingConfig())

	settingsSvc := settings.NewService(settings.Params{
		DB:      db,
		Log:     log,
		Repo:    settings.NewRepository(),
		Pricing: pricingHolder,
	})

	sequenceSvc := sequence.NewService(sequence.Params{
		DB:    db,
		Log:   log,
		Clock: clock.NewFakeClock(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)),
		Repo:  sequence.NewRepository(node),
	})

	svc := NewService(Params{
		DB:        db,
		Log:       log,
		Node:      node,
		Repo:      NewRepository(),
		OrderRepo: order.NewRepository(),
		Sequence:  sequenceSvc,
		Settings:  settingsSvc,
		Pricing:   pricingHolder,
	})
	return &subcontractFixture{db: db, node: node, svc: svc}
}

func (f *subcontractFixture) seedOrder(t *testing.T) *orderdomain.Order {
	t.Helper()
	quantity := 5.0
	rate := 40.0
	amount := 200.0
	received := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	o := orderdomain.Order{
		ID:          f.node.Generate(),
		BookID:      f.node.Generate(),
		OrderNumber: "Z/2026/1",
		Name:        "source order",
		ClientID:    f.node.Generate(),
		Quantity:    &quantity,
		RatePerUnit: &rate,
		Amount:      &amount,
		ReceivedAt:  &received,
	}
	require.NoError(t, f.db.Create(&o).Error)
	return &o
}

func TestCreateCopiesOrderValues(t *testing.T) {
	f := setupSubcontractService(t)
	ctx := context.Background()

	o := f.seedOrder(t)

	sub, err := f.svc.Create(ctx, domain.CreateRequest{OrderID: o.ID})
	require.NoError(t, err)

	require.NotNil(t, sub.Quantity)
	assert.Equal(t, *o.Quantity, *sub.Quantity)
	require.NotNil(t, sub.RatePerUnit)
	assert.Equal(t, *o.RatePerUnit, *sub.RatePerUnit)
	require.NotNil(t, sub.Amount)
	assert.Equal(t, *o.Amount, *sub.Amount)
	require.NotNil(t, sub.ReceivedAt)
	assert.True(t, o.ReceivedAt.Equal(*sub.ReceivedAt))

	assert.True(t, sub.IncludeSpecialization)
	assert.True(t, sub.IncludeLanguagePair)
	assert.False(t, sub.IncludeService)
}

func TestCreateKeepsExplicitValues(t *testing.T) {
	f := setupSubcontractService(t)
	ctx := context.Background()

	o := f.seedOrder(t)
	quantity := 2.0
	includeService := true

	sub, err := f.svc.Create(ctx, domain.CreateRequest{
		OrderID:        o.ID,
		Quantity:       &quantity,
		IncludeService: &includeService,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, *sub.Quantity)
	assert.True(t, sub.IncludeService)
	// Rate still copied from the order.
	assert.Equal(t, *o.RatePerUnit, *sub.RatePerUnit)
}

func TestCreateNumbersGlobally(t *testing.T) {
	f := setupSubcontractService(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, domain.CreateRequest{OrderID: f.seedOrder(t).ID})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, domain.CreateRequest{OrderID: f.seedOrder(t).ID})
	require.NoError(t, err)

	assert.Equal(t, "PZ/2026/1", first.SubcontractNumber)
	assert.Equal(t, "PZ/2026/2", second.SubcontractNumber)
}

func TestCreateUsesSettingsTemplate(t *testing.T) {
	f := setupSubcontractService(t)
	ctx := context.Background()

	require.NoError(t, settings.NewRepository().Set(ctx, f.db, settingsdomain.KeySubcontractNumberFormat, "SUB-{YYYY}-{nr}"))

	sub, err := f.svc.Create(ctx, domain.CreateRequest{OrderID: f.seedOrder(t).ID})
	require.NoError(t, err)
	assert.Equal(t, "SUB-2026-0001", sub.SubcontractNumber)
}

func TestGetFillsLegacyNullsFromOrder(t *testing.T) {
	f := setupSubcontractService(t)
	ctx := context.Background()

	o := f.seedOrder(t)
	legacy := domain.Subcontract{
		ID:                f.node.Generate(),
		OrderID:           o.ID,
		SubcontractNumber: "PZ/2025/1",
	}
	require.NoError(t, f.db.Create(&legacy).Error)

	sub, err := f.svc.Get(ctx, legacy.ID)
	require.NoError(t, err)
	require.NotNil(t, sub.Quantity)
	assert.Equal(t, *o.Quantity, *sub.Quantity)
	require.NotNil(t, sub.Amount)
	assert.Equal(t, *o.Amount, *sub.Amount)
}

func TestPeekNumberMatchesNextAllocation(t *testing.T) {
	f := setupSubcontractService(t)
	ctx := context.Background()

	peeked, err := f.svc.PeekNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PZ/2026/1", peeked)

	sub, err := f.svc.Create(ctx, domain.CreateRequest{OrderID: f.seedOrder(t).ID})
	require.NoError(t, err)
	assert.Equal(t, peeked, sub.SubcontractNumber)
}
