package models

import "time"

// VoucherRedemption is a row of voucher_redemptions. A voucher has at most
// one row; the first redemption wins.
type VoucherRedemption struct {
	Slug       string    `db:"slug" json:"slug"`
	Title      string    `db:"title" json:"title"`
	RedeemedAt time.Time `db:"redeemed_at" json:"redeemed_at"`
}
