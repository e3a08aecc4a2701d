package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharesorg/libshares-go/pricing"
)

func TestMultiBuy(t *testing.T) {
	f := newFixture(t)
	f.registerFlat(t, "flat", 100, 100)
	id1 := f.curveOnlyShare(t, "acme", "flat", 1000)
	id2 := f.curveOnlyShare(t, "globex", "flat", 1000)
	f.fund(alice, 100_000)

	require.NoError(t, f.m.MultiBuy(alice, []BuyOrder{
		{ShareID: id1, Amount: 100, MaxCost: 10_100},
		{ShareID: id2, Amount: 50, MaxCost: 5_050},
	}))

	pos, err := f.m.Position(id1, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), pos.Balance)
	pos, err = f.m.Position(id2, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), pos.Balance)

	// One payment for the whole batch.
	assert.Equal(t, uint64(100_000-15_150), f.token.BalanceOf(alice))
}

func TestMultiBuyAtomicity(t *testing.T) {
	f := newFixture(t)
	f.registerFlat(t, "flat", 100, 100)
	id1 := f.curveOnlyShare(t, "acme", "flat", 1000)
	id2 := f.curveOnlyShare(t, "globex", "flat", 1000)
	f.fund(alice, 100_000)

	// Second order fails its price bound: the first must not survive.
	err := f.m.MultiBuy(alice, []BuyOrder{
		{ShareID: id1, Amount: 100, MaxCost: 10_100},
		{ShareID: id2, Amount: 50, MaxCost: 1},
	})
	assert.ErrorIs(t, err, ErrPriceTooHigh)

	pos, err := f.m.Position(id1, alice)
	require.NoError(t, err)
	assert.Nil(t, pos)

	s, err := f.m.ShareInfo(id1)
	require.NoError(t, err)
	assert.Zero(t, s.TokenCount)
	assert.Equal(t, uint64(100_000), f.token.BalanceOf(alice))

	t.Run("payment failure also rolls back", func(t *testing.T) {
		f.token.Approve(alice, 0)
		err := f.m.MultiBuy(alice, []BuyOrder{
			{ShareID: id1, Amount: 10, MaxCost: 1_010},
		})
		require.Error(t, err)

		s, err := f.m.ShareInfo(id1)
		require.NoError(t, err)
		assert.Zero(t, s.TokenCount)
	})

	t.Run("empty batch", func(t *testing.T) {
		assert.ErrorIs(t, f.m.MultiBuy(alice, nil), ErrInvalidParams)
	})
}

func TestMultiBuySameShareCompounds(t *testing.T) {
	f := newFixture(t)
	// Rising curve: unit i costs 100 + i, no fee.
	c, err := pricing.NewLinear(100, 1, 0)
	require.NoError(t, err)
	require.NoError(t, f.m.RegisterCurve(platform, "ramp", c))
	id := f.curveOnlyShare(t, "acme", "ramp", 1000)
	f.fund(alice, 100_000)

	// Two orders on the same share price sequentially: the second buys
	// at the supply the first left behind.
	require.NoError(t, f.m.MultiBuy(alice, []BuyOrder{
		{ShareID: id, Amount: 10, MaxCost: 1_045}, // units 0..9: 1000 + 45
		{ShareID: id, Amount: 10, MaxCost: 1_145}, // units 10..19: 1000 + 145
	}))

	pos, err := f.m.Position(id, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), pos.Balance)
	assert.Equal(t, uint64(100_000-2_190), f.token.BalanceOf(alice))
}

func TestMultiSell(t *testing.T) {
	f := newFixture(t)
	f.registerFlat(t, "flat", 100, 100)
	id1 := f.curveOnlyShare(t, "acme", "flat", 1000)
	id2 := f.curveOnlyShare(t, "globex", "flat", 1000)
	f.fund(alice, 100_000)
	require.NoError(t, f.m.Buy(alice, id1, 100, 10_100))
	require.NoError(t, f.m.Buy(alice, id2, 100, 10_100))

	before := f.token.BalanceOf(alice)
	require.NoError(t, f.m.MultiSell(alice, []SellOrder{
		{ShareID: id1, Amount: 100, MinProceeds: 9_900},
		{ShareID: id2, Amount: 40, MinProceeds: 3_960},
	}))
	assert.Equal(t, before+9_900+3_960, f.token.BalanceOf(alice))

	t.Run("atomic on failure", func(t *testing.T) {
		err := f.m.MultiSell(alice, []SellOrder{
			{ShareID: id2, Amount: 30, MinProceeds: 0},
			{ShareID: id2, Amount: 1_000, MinProceeds: 0},
		})
		assert.ErrorIs(t, err, ErrInsufficientBalance)

		pos, err := f.m.Position(id2, alice)
		require.NoError(t, err)
		assert.Equal(t, uint64(60), pos.Balance, "first order rolled back")
	})
}

func TestMultiClaim(t *testing.T) {
	f := newFixture(t)
	f.registerFlat(t, "flat", 100, 100)
	id1 := f.curveOnlyShare(t, "acme", "flat", 1000)
	id2 := f.curveOnlyShare(t, "globex", "flat", 1000)
	f.fund(alice, 100_000)
	f.fund(bob, 100_000)

	// Alice holds both shares; bob's buys generate the fee events that
	// fund her rewards (holder cut 33 per event, all to alice).
	require.NoError(t, f.m.Buy(alice, id1, 100, 10_100))
	require.NoError(t, f.m.Buy(alice, id2, 100, 10_100))
	require.NoError(t, f.m.Buy(bob, id1, 100, 10_100))
	require.NoError(t, f.m.Buy(bob, id2, 100, 10_100))

	before := f.token.BalanceOf(alice)
	total, err := f.m.MultiClaim(alice, []ShareID{id1, id2})
	require.NoError(t, err)
	assert.Equal(t, uint64(66), total)
	assert.Equal(t, before+66, f.token.BalanceOf(alice))

	t.Run("nothing left", func(t *testing.T) {
		_, err := f.m.MultiClaim(alice, []ShareID{id1, id2})
		assert.ErrorIs(t, err, ErrNothingToClaim)
	})

	t.Run("unknown share fails whole batch", func(t *testing.T) {
		require.NoError(t, f.m.Buy(bob, id1, 10, 1_010))
		_, err := f.m.MultiClaim(alice, []ShareID{id1, 99})
		assert.ErrorIs(t, err, ErrShareNotFound)

		// The share-1 reward is still claimable afterwards.
		paid, err := f.m.Claim(alice, id1)
		require.NoError(t, err)
		assert.NotZero(t, paid)
	})
}
