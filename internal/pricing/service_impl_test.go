package pricing

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/lingora/internal/contractor"
	contractordomain "github.com/smallbiznis/lingora/internal/contractor/domain"
	"github.com/smallbiznis/lingora/internal/pricing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupPricingService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&domain.ClientDefaultUnitRate{},
		&domain.DefaultUnitRate{},
		&domain.ClientUnitRate{},
		&contractordomain.ContractorUnitRate{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:             db,
		Log:            zap.NewNop(),
		Node:           node,
		Repo:           NewRepository(),
		ContractorRepo: contractor.NewRepository(),
	})
	return svc, node
}

func TestResolveClientLayerShadowsGlobal(t *testing.T) {
	svc, node := setupPricingService(t)
	ctx := context.Background()

	clientID := node.Generate()
	unitID := node.Generate()

	_, err := svc.CreateGlobalRate(ctx, domain.GlobalRateInput{
		UnitID: unitID, Rate: 40, Currency: "PLN",
	})
	require.NoError(t, err)

	_, err = svc.CreateClientRate(ctx, domain.ClientRateInput{
		ClientID: clientID, UnitID: unitID, Rate: 55, Currency: "PLN",
	})
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, domain.ResolveRequest{
		ClientID: &clientID, UnitID: unitID, Currency: "PLN",
	})
	require.NoError(t, err)
	assert.Equal(t, 55.0, resolved.Rate)
}

func TestResolveFallsThroughToGlobalLayer(t *testing.T) {
	svc, node := setupPricingService(t)
	ctx := context.Background()

	clientID := node.Generate()
	unitID := node.Generate()

	_, err := svc.CreateGlobalRate(ctx, domain.GlobalRateInput{
		UnitID: unitID, Rate: 40, Currency: "PLN",
	})
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, domain.ResolveRequest{
		ClientID: &clientID, UnitID: unitID, Currency: "PLN",
	})
	require.NoError(t, err)
	assert.Equal(t, 40.0, resolved.Rate)
}

func TestResolveSpecificClientRateBeatsGenericOne(t *testing.T) {
	svc, node := setupPricingService(t)
	ctx := context.Background()

	clientID := node.Generate()
	unitID := node.Generate()

	_, err := svc.CreateClientRate(ctx, domain.ClientRateInput{
		ClientID: clientID, UnitID: unitID, Rate: 50, Currency: "PLN",
	})
	require.NoError(t, err)

	_, err = svc.CreateClientRate(ctx, domain.ClientRateInput{
		ClientID: clientID, UnitID: unitID, Rate: 75, Currency: "PLN",
		Slots: []domain.Slot{{Key: "language_pair", Value: "EN-PL"}},
	})
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, domain.ResolveRequest{
		ClientID: &clientID,
		UnitID:   unitID,
		Currency: "PLN",
		Candidates: []domain.Candidate{
			{Key: domain.KeyLanguagePair, Value: "EN-PL"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 75.0, resolved.Rate)
}

func TestResolveReAddedRateSupersedesStaleRow(t *testing.T) {
	svc, node := setupPricingService(t)
	ctx := context.Background()

	clientID := node.Generate()
	unitID := node.Generate()

	for _, rate := range []float64{50, 65} {
		_, err := svc.CreateClientRate(ctx, domain.ClientRateInput{
			ClientID: clientID, UnitID: unitID, Rate: rate, Currency: "PLN",
			Slots: []domain.Slot{{Key: "language_pair", Value: "EN-PL"}},
		})
		require.NoError(t, err)
	}

	resolved, err := svc.Resolve(ctx, domain.ResolveRequest{
		ClientID: &clientID,
		UnitID:   unitID,
		Currency: "PLN",
		Candidates: []domain.Candidate{
			{Key: domain.KeyLanguagePair, Value: "EN-PL"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 65.0, resolved.Rate)
}

func TestResolveNoRate(t *testing.T) {
	svc, node := setupPricingService(t)

	_, err := svc.Resolve(context.Background(), domain.ResolveRequest{
		UnitID: node.Generate(), Currency: "PLN",
	})
	assert.ErrorIs(t, err, domain.ErrNoRate)
}

func TestResolveNeverConvertsCurrencies(t *testing.T) {
	svc, node := setupPricingService(t)
	ctx := context.Background()

	unitID := node.Generate()
	_, err := svc.CreateGlobalRate(ctx, domain.GlobalRateInput{
		UnitID: unitID, Rate: 40, Currency: "PLN",
	})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, domain.ResolveRequest{UnitID: unitID, Currency: "EUR"})
	assert.ErrorIs(t, err, domain.ErrNoRate)
}

func TestSetSimpleRateOverwritesExistingRow(t *testing.T) {
	svc, node := setupPricingService(t)
	ctx := context.Background()

	clientID := node.Generate()
	unitID := node.Generate()

	_, err := svc.SetSimpleRate(ctx, domain.SimpleRateInput{
		ClientID: clientID, UnitID: unitID, Rate: 45, Currency: "PLN",
	})
	require.NoError(t, err)

	_, err = svc.SetSimpleRate(ctx, domain.SimpleRateInput{
		ClientID: clientID, UnitID: unitID, Rate: 50, Currency: "PLN",
	})
	require.NoError(t, err)

	rows, err := svc.ListSimpleRates(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 50.0, rows[0].Rate)
}

func TestLookupClientUnitRatePrefersExactCurrency(t *testing.T) {
	svc, node := setupPricingService(t)
	ctx := context.Background()

	clientID := node.Generate()
	unitID := node.Generate()

	_, err := svc.SetSimpleRate(ctx, domain.SimpleRateInput{
		ClientID: clientID, UnitID: unitID, Rate: 45, Currency: "PLN",
	})
	require.NoError(t, err)
	_, err = svc.SetSimpleRate(ctx, domain.SimpleRateInput{
		ClientID: clientID, UnitID: unitID, Rate: 12, Currency: "EUR",
	})
	require.NoError(t, err)

	rate, err := svc.LookupClientUnitRate(ctx, clientID, unitID, "eur")
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.Equal(t, 12.0, rate.Rate)

	rate, err = svc.LookupClientUnitRate(ctx, clientID, unitID, "USD")
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.Equal(t, "PLN", rate.Currency)
}

func TestLookupContractorRatePairFallback(t *testing.T) {
	svc, node := setupPricingService(t)
	ctx := context.Background()

	contractorID := node.Generate()
	unitID := node.Generate()
	pair := "EN-PL"

	repo := contractor.NewRepository()
	s := svc.(*service)
	require.NoError(t, repo.UpsertRate(ctx, s.db, &contractordomain.ContractorUnitRate{
		ID: node.Generate(), ContractorID: contractorID, UnitID: unitID, Rate: 30,
	}))
	require.NoError(t, repo.UpsertRate(ctx, s.db, &contractordomain.ContractorUnitRate{
		ID: node.Generate(), ContractorID: contractorID, UnitID: unitID, LanguagePair: &pair, Rate: 35,
	}))

	rate, err := svc.LookupContractorRate(ctx, contractorID, unitID, &pair)
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.Equal(t, 35.0, *rate)

	other := "DE-PL"
	rate, err = svc.LookupContractorRate(ctx, contractorID, unitID, &other)
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.Equal(t, 30.0, *rate)
}
