package sequence

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/lingora/internal/clock"
	orderdomain "github.com/smallbiznis/lingora/internal/order/domain"
	"github.com/smallbiznis/lingora/internal/sequence/domain"
	subcontractdomain "github.com/smallbiznis/lingora/internal/subcontract/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupSequenceService(t *testing.T) (*gorm.DB, domain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&domain.Counter{},
		&orderdomain.Order{},
		&subcontractdomain.Subcontract{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)),
		Repo:  NewRepository(node),
	})
	return db, svc, node
}

func TestNextInTxAllocatesMonotonically(t *testing.T) {
	db, svc, node := setupSequenceService(t)
	ctx := context.Background()
	scope := domain.OrderScope(node.Generate())

	var first, second string
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		first, err = svc.NextInTx(ctx, tx, domain.KindOrder, scope, "Z/{YYYY}/{NR}")
		if err != nil {
			return err
		}
		second, err = svc.NextInTx(ctx, tx, domain.KindOrder, scope, "Z/{YYYY}/{NR}")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "Z/2026/1", first)
	assert.Equal(t, "Z/2026/2", second)
}

func TestNextInTxSeedsFromLegacyNumbers(t *testing.T) {
	db, svc, node := setupSequenceService(t)
	ctx := context.Background()

	bookID := node.Generate()
	clientID := node.Generate()
	for _, number := range []string{"Z/2025/3", "Z/2025/7"} {
		order := orderdomain.Order{
			ID:          node.Generate(),
			BookID:      bookID,
			OrderNumber: number,
			Name:        "legacy",
			ClientID:    clientID,
		}
		require.NoError(t, db.Create(&order).Error)
	}

	var number string
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		number, err = svc.NextInTx(ctx, tx, domain.KindOrder, domain.OrderScope(bookID), "Z/{YYYY}/{NR}")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "Z/2026/8", number)
}

func TestScopesAllocateIndependently(t *testing.T) {
	db, svc, node := setupSequenceService(t)
	ctx := context.Background()

	scopeA := domain.OrderScope(node.Generate())
	scopeB := domain.OrderScope(node.Generate())

	var a1, b1, a2 string
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if a1, err = svc.NextInTx(ctx, tx, domain.KindOrder, scopeA, "{NR}"); err != nil {
			return err
		}
		if b1, err = svc.NextInTx(ctx, tx, domain.KindOrder, scopeB, "{NR}"); err != nil {
			return err
		}
		a2, err = svc.NextInTx(ctx, tx, domain.KindOrder, scopeA, "{NR}")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "1", a1)
	assert.Equal(t, "1", b1)
	assert.Equal(t, "2", a2)
}

func TestPeekDoesNotAllocate(t *testing.T) {
	db, svc, node := setupSequenceService(t)
	ctx := context.Background()
	scope := domain.OrderScope(node.Generate())

	first, err := svc.Peek(ctx, domain.KindOrder, scope, "Z/{YYYY}/{NR}")
	require.NoError(t, err)
	second, err := svc.Peek(ctx, domain.KindOrder, scope, "Z/{YYYY}/{NR}")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "Z/2026/1", first)

	var allocated string
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		allocated, err = svc.NextInTx(ctx, tx, domain.KindOrder, scope, "Z/{YYYY}/{NR}")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, first, allocated)
}

func TestInvoiceScopesSplitByProviderSource(t *testing.T) {
	db, svc, node := setupSequenceService(t)
	ctx := context.Background()

	source := "internal"
	number := "FV/2025/4"
	order := orderdomain.Order{
		ID:                    node.Generate(),
		BookID:                node.Generate(),
		OrderNumber:           "Z/2025/1",
		Name:                  "invoiced",
		ClientID:              node.Generate(),
		InvoiceNumber:         &number,
		InvoiceProviderSource: &source,
	}
	require.NoError(t, db.Create(&order).Error)

	var internal, external string
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if internal, err = svc.NextInTx(ctx, tx, domain.KindInvoice, domain.InvoiceScope("internal"), "FV/{YYYY}/{NR}"); err != nil {
			return err
		}
		external, err = svc.NextInTx(ctx, tx, domain.KindInvoice, domain.InvoiceScope("external"), "FV/{YYYY}/{NR}")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "FV/2026/5", internal)
	assert.Equal(t, "FV/2026/1", external)
}

func TestPeekUnknownKind(t *testing.T) {
	_, svc, _ := setupSequenceService(t)

	_, err := svc.Peek(context.Background(), "receipt", "global", "{NR}")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}
