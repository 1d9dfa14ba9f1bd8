package auth

import (
	"time"

	"custodyserver/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// VoucherClaims is the wire shape of a transfer voucher. The json
// names (sender_id, user_id, item_id) are the service's public
// voucher format. There is no expiry claim: a voucher stays valid
// until redeemed.
type VoucherClaims struct {
	SenderID    uint `json:"sender_id"`
	RecipientID uint `json:"user_id"`
	ItemID      uint `json:"item_id"`
	jwt.RegisteredClaims
}

// Voucher is a verified transfer voucher. Fingerprint is the jti
// claim, unique per issuance, and is the key the consumption ledger
// uses to detect replays.
type Voucher struct {
	SenderID    uint
	RecipientID uint
	ItemID      uint
	Fingerprint string
}

// VoucherService issues and verifies transfer vouchers.
type VoucherService struct {
	keys Keys
}

func NewVoucherService(keys Keys) *VoucherService {
	return &VoucherService{keys: keys}
}

// Issue signs a voucher proposing the hand-off of itemID from
// senderID to recipientID.
func (s *VoucherService) Issue(senderID, recipientID, itemID uint) (string, error) {
	claims := &VoucherClaims{
		SenderID:    senderID,
		RecipientID: recipientID,
		ItemID:      itemID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.keys.voucher)
}

// Verify validates the signature and returns the voucher contents.
// Any failure, including a token signed with the session key, is
// reported as ErrInvalidVoucher.
func (s *VoucherService) Verify(tokenString string) (*Voucher, error) {
	claims := &VoucherClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.keys.voucher, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidVoucher
	}

	if claims.ItemID == 0 || claims.RecipientID == 0 {
		return nil, common.ErrInvalidVoucher
	}

	return &Voucher{
		SenderID:    claims.SenderID,
		RecipientID: claims.RecipientID,
		ItemID:      claims.ItemID,
		Fingerprint: claims.ID,
	}, nil
}
