// Package transfer implements the ownership-transfer protocol: a
// sender obtains a signed voucher for an item, the recipient redeems
// it, and the item's owner is reassigned. The voucher itself is the
// only carrier of the pending transfer; nothing is persisted between
// the two steps.
package transfer

import (
	"context"
	"errors"

	"custodyserver/auth"
	"custodyserver/common"
	"custodyserver/store"

	"go.uber.org/zap"
)

// Service orchestrates voucher issuance and redemption against the
// store. The ledger is optional: when nil, vouchers are replayable
// and a second redemption is an idempotent re-assignment.
type Service struct {
	store    store.Store
	vouchers *auth.VoucherService
	ledger   Ledger
	logger   *zap.Logger
}

func NewService(st store.Store, vouchers *auth.VoucherService, ledger Ledger, logger *zap.Logger) *Service {
	return &Service{store: st, vouchers: vouchers, ledger: ledger, logger: logger}
}

// InitiateSend issues a transfer voucher for itemID on behalf of
// senderID.
//
// The ownership check compares the item's current owner against the
// caller-supplied recipientID, not against senderID: the caller has
// to pass the current owner's id as the recipient for the voucher to
// be issued at all. Kept as-is for compatibility with existing
// clients of the /api/send contract.
func (s *Service) InitiateSend(ctx context.Context, senderID, itemID, recipientID uint) (string, error) {
	item, err := s.store.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrItemNotFound
		}
		s.logger.Error("item lookup failed", zap.Error(err))
		return "", common.ErrInternal
	}

	if item.UserID != recipientID {
		return "", common.ErrNotOwner
	}

	voucher, err := s.vouchers.Issue(senderID, recipientID, itemID)
	if err != nil {
		s.logger.Error("voucher issuance failed", zap.Error(err))
		return "", common.ErrInternal
	}
	return voucher, nil
}

// Redeem finalizes a transfer: it verifies the voucher, requires the
// redeemer to be the named recipient, and reassigns the item. Every
// failing check happens before the single mutating store call.
func (s *Service) Redeem(ctx context.Context, redeemerID uint, voucherString string) error {
	voucher, err := s.vouchers.Verify(voucherString)
	if err != nil {
		return err
	}

	if voucher.RecipientID != redeemerID {
		return common.ErrWrongRecipient
	}

	if _, err := s.store.FindItemByID(ctx, voucher.ItemID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrItemNotFound
		}
		s.logger.Error("item lookup failed", zap.Error(err))
		return common.ErrInternal
	}

	if s.ledger != nil {
		first, err := s.ledger.MarkRedeemed(ctx, voucher.Fingerprint)
		if err != nil {
			s.logger.Error("consumption ledger unavailable", zap.Error(err))
			return common.ErrInternal
		}
		if !first {
			return common.ErrVoucherConsumed
		}
	}

	if err := s.store.UpdateItemOwner(ctx, voucher.ItemID, redeemerID); err != nil {
		// No transfer happened, so release the fingerprint again;
		// otherwise the voucher would be burned by a redemption
		// that had no effect.
		if s.ledger != nil {
			if unmarkErr := s.ledger.Unmark(ctx, voucher.Fingerprint); unmarkErr != nil {
				s.logger.Error("ledger release failed", zap.Error(unmarkErr))
			}
		}
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrItemNotFound
		}
		s.logger.Error("owner update failed", zap.Error(err))
		return common.ErrInternal
	}

	return nil
}
