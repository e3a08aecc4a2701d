package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sharesorg/libshares-go/ledger"
	"github.com/sharesorg/libshares-go/market"
	"github.com/sharesorg/libshares-go/pricing"
)

func addr(b byte) market.Address {
	var a market.Address
	a[0] = b
	return a
}

var (
	platform = addr(0xA0)
	treasury = addr(0xFE)
	alice    = addr(0x02)
)

// newMarket builds a market with one registered curve, backed by the
// given payment token.
func newMarket(t *testing.T, token *ledger.MemToken) *market.Market {
	t.Helper()
	m, err := market.New(market.Options{
		Params:   market.Params{CreatorCutBPS: 3300, HolderCutBPS: 3300, MinCurveAllocBPS: 2000},
		Treasury: treasury,
		Owner:    platform,
		Payment:  token,
		Hybrid:   ledger.NewMemHybrid(),
		Clock:    clockwork.NewFakeClockAt(time.Unix(1_000_000, 0)),
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)
	curve, err := pricing.NewLinear(100, 0, 100)
	require.NoError(t, err)
	require.NoError(t, m.RegisterCurve(platform, "flat", curve))
	return m
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "market.db")

	token := ledger.NewMemToken()
	m := newMarket(t, token)
	require.NoError(t, m.SetUnrestrictedCreation(platform, true))

	id, err := m.CreateShare(alice, market.CreateParams{
		Name: "acme", CurveName: "flat", CurveAllocation: 1000,
	})
	require.NoError(t, err)

	token.Mint(alice, 100_000)
	token.Approve(alice, 100_000)
	require.NoError(t, m.Buy(alice, id, 100, 10_100))

	s, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.SaveState(m.ExportState()))
	require.NoError(t, s.Close())

	// Reopen and restore into a fresh market over the same token.
	s, err = Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	st, err := s.LoadState()
	require.NoError(t, err)

	restored := newMarket(t, token)
	require.NoError(t, restored.ImportState(st))

	assert.Equal(t, id, restored.ShareIDByName("acme"))

	share, err := restored.ShareInfo(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), share.TokenCount)
	assert.Equal(t, uint64(900), share.CurveInventory)
	assert.Equal(t, uint64(10_000), share.CurveReserve)

	pos, err := restored.Position(id, alice)
	require.NoError(t, err)
	require.NotNil(t, pos)
	assert.Equal(t, uint64(100), pos.Balance)

	t.Run("restored market keeps trading", func(t *testing.T) {
		require.NoError(t, restored.Sell(alice, id, 100, 0))
		share, err := restored.ShareInfo(id)
		require.NoError(t, err)
		assert.Zero(t, share.TokenCount)
	})

	t.Run("name index", func(t *testing.T) {
		got, err := s.ShareIDByName("acme")
		require.NoError(t, err)
		assert.Equal(t, id, got)

		got, err = s.ShareIDByName("unknown")
		require.NoError(t, err)
		assert.Equal(t, market.ShareID(0), got)
	})
}

func TestLoadStateEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "market.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.LoadState()
	assert.ErrorIs(t, err, ErrNoState)
}

func TestSaveStateNil(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "market.db"))
	require.NoError(t, err)
	defer s.Close()

	assert.ErrorIs(t, s.SaveState(nil), ErrNilParam)
}

func TestImportRequiresRegisteredCurves(t *testing.T) {
	token := ledger.NewMemToken()
	m := newMarket(t, token)
	require.NoError(t, m.SetUnrestrictedCreation(platform, true))
	_, err := m.CreateShare(alice, market.CreateParams{
		Name: "acme", CurveName: "flat", CurveAllocation: 1000,
	})
	require.NoError(t, err)

	st := m.ExportState()

	// A market without the curve registered cannot adopt the state.
	bare, err := market.New(market.Options{
		Params:   market.Params{CreatorCutBPS: 3300, HolderCutBPS: 3300},
		Treasury: treasury,
		Owner:    platform,
		Payment:  token,
		Hybrid:   ledger.NewMemHybrid(),
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)
	assert.ErrorIs(t, bare.ImportState(st), market.ErrCurveNotRegistered)
}
