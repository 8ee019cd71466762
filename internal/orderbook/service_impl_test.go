package orderbook

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/lingora/internal/orderbook/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupBookService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.OrderBook{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Node: node,
		Repo: NewRepository(),
	})
}

func TestCreateSlugsTheCode(t *testing.T) {
	svc := setupBookService(t)

	book, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Rejestr Tłumaczeń 2026"})
	require.NoError(t, err)
	assert.Equal(t, "rejestr-tlumaczen-2026", book.Code)
	assert.Equal(t, domain.ViewPlain, book.ViewType)
	assert.NotEmpty(t, book.ShareToken)
}

func TestCreateRejectsUnknownViewType(t *testing.T) {
	svc := setupBookService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Bad", ViewType: "kanban"})
	assert.ErrorIs(t, err, domain.ErrInvalidViewType)
}

func TestRotateShareTokenInvalidatesOldLink(t *testing.T) {
	svc := setupBookService(t)
	ctx := context.Background()

	book, err := svc.Create(ctx, domain.CreateRequest{Name: "Repertorium", ViewType: domain.ViewRepertorium})
	require.NoError(t, err)
	oldToken := book.ShareToken

	found, err := svc.GetByShareToken(ctx, oldToken)
	require.NoError(t, err)
	assert.Equal(t, book.ID, found.ID)

	rotated, err := svc.RotateShareToken(ctx, book.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldToken, rotated.ShareToken)

	_, err = svc.GetByShareToken(ctx, oldToken)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByShareToken(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePatchesSelectively(t *testing.T) {
	svc := setupBookService(t)
	ctx := context.Background()

	book, err := svc.Create(ctx, domain.CreateRequest{Name: "Orders"})
	require.NoError(t, err)

	format := "Z/{YY}/{NR}"
	updated, err := svc.Update(ctx, book.ID, domain.UpdateRequest{OrderNumberFormat: &format})
	require.NoError(t, err)
	require.NotNil(t, updated.OrderNumberFormat)
	assert.Equal(t, format, *updated.OrderNumberFormat)
	assert.Equal(t, "orders", updated.Code)

	badView := "kanban"
	_, err = svc.Update(ctx, book.ID, domain.UpdateRequest{ViewType: &badView})
	assert.ErrorIs(t, err, domain.ErrInvalidViewType)
}
