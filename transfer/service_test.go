package transfer

import (
	"context"
	"testing"

	"custodyserver/auth"
	"custodyserver/common"
	"custodyserver/models"
	"custodyserver/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, ledger Ledger) (*Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	vouchers := auth.NewVoucherService(auth.NewKeys("test-secret"))
	return NewService(st, vouchers, ledger, zap.NewNop()), st
}

func createItem(t *testing.T, st *store.MemoryStore, name string, ownerID uint) *models.Item {
	t.Helper()
	item := &models.Item{Name: name, UserID: ownerID}
	require.NoError(t, st.CreateItem(context.Background(), item))
	return item
}

func TestInitiateSend_ItemNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, nil)

	_, err := svc.InitiateSend(context.Background(), 1, 999, 1)
	assert.ErrorIs(t, err, common.ErrItemNotFound)
}

func TestInitiateSend_RecipientMustBeCurrentOwner(t *testing.T) {
	t.Parallel()

	svc, st := newTestService(t, nil)
	item := createItem(t, st, "widget", 7)

	// The check compares the item's owner to the requested
	// recipient, so any other recipient is rejected even when the
	// sender is the owner.
	_, err := svc.InitiateSend(context.Background(), 7, item.ID, 8)
	assert.ErrorIs(t, err, common.ErrNotOwner)

	voucher, err := svc.InitiateSend(context.Background(), 7, item.ID, 7)
	require.NoError(t, err)
	assert.NotEmpty(t, voucher)
}

func TestRedeem_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, st := newTestService(t, nil)
	item := createItem(t, st, "widget", 7)

	voucher, err := svc.InitiateSend(ctx, 7, item.ID, 7)
	require.NoError(t, err)

	require.NoError(t, svc.Redeem(ctx, 7, voucher))

	got, err := st.FindItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
}

func TestRedeem_WrongRecipient(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, st := newTestService(t, nil)
	item := createItem(t, st, "widget", 7)

	voucher, err := svc.InitiateSend(ctx, 7, item.ID, 7)
	require.NoError(t, err)

	err = svc.Redeem(ctx, 8, voucher)
	assert.ErrorIs(t, err, common.ErrWrongRecipient)

	got, err := st.FindItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID, "owner must be unchanged")
}

func TestRedeem_InvalidVoucher(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, nil)

	err := svc.Redeem(context.Background(), 7, "not-a-voucher")
	assert.ErrorIs(t, err, common.ErrInvalidVoucher)
}

func TestRedeem_ItemDeletedBeforeRedemption(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, st := newTestService(t, nil)
	item := createItem(t, st, "widget", 7)

	voucher, err := svc.InitiateSend(ctx, 7, item.ID, 7)
	require.NoError(t, err)

	require.NoError(t, st.DeleteItem(ctx, item.ID, 7))

	err = svc.Redeem(ctx, 7, voucher)
	assert.ErrorIs(t, err, common.ErrItemNotFound)
}

func TestRedeem_ReplayWithoutLedgerIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, st := newTestService(t, nil)
	item := createItem(t, st, "widget", 7)

	voucher, err := svc.InitiateSend(ctx, 7, item.ID, 7)
	require.NoError(t, err)

	require.NoError(t, svc.Redeem(ctx, 7, voucher))
	require.NoError(t, svc.Redeem(ctx, 7, voucher), "replay re-assigns to the same recipient")

	got, err := st.FindItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
}

// flakyOwnerStore fails a configured number of owner updates after
// the item lookup already succeeded, like an item vanishing between
// the two store calls.
type flakyOwnerStore struct {
	*store.MemoryStore
	updateFailures int
}

func (s *flakyOwnerStore) UpdateItemOwner(ctx context.Context, id uint, newOwnerID uint) error {
	if s.updateFailures > 0 {
		s.updateFailures--
		return common.ErrNotFound
	}
	return s.MemoryStore.UpdateItemOwner(ctx, id, newOwnerID)
}

func TestRedeem_FailedUpdateReleasesFingerprint(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := &flakyOwnerStore{MemoryStore: store.NewMemoryStore(), updateFailures: 1}
	vouchers := auth.NewVoucherService(auth.NewKeys("test-secret"))
	ledger := NewMemoryLedger()
	svc := NewService(st, vouchers, ledger, zap.NewNop())

	item := createItem(t, st.MemoryStore, "widget", 7)
	voucher, err := svc.InitiateSend(ctx, 7, item.ID, 7)
	require.NoError(t, err)

	// The failed update must not burn the voucher.
	err = svc.Redeem(ctx, 7, voucher)
	assert.ErrorIs(t, err, common.ErrItemNotFound)

	require.NoError(t, svc.Redeem(ctx, 7, voucher))

	err = svc.Redeem(ctx, 7, voucher)
	assert.ErrorIs(t, err, common.ErrVoucherConsumed)
}

func TestRedeem_LedgerRejectsReplay(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, st := newTestService(t, NewMemoryLedger())
	item := createItem(t, st, "widget", 7)

	voucher, err := svc.InitiateSend(ctx, 7, item.ID, 7)
	require.NoError(t, err)

	require.NoError(t, svc.Redeem(ctx, 7, voucher))

	err = svc.Redeem(ctx, 7, voucher)
	assert.ErrorIs(t, err, common.ErrVoucherConsumed)

	// A fresh voucher for the same item still works: the ledger
	// keys on the voucher fingerprint, not the item.
	fresh, err := svc.InitiateSend(ctx, 7, item.ID, 7)
	require.NoError(t, err)
	require.NoError(t, svc.Redeem(ctx, 7, fresh))
}
