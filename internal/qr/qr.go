// Package qr renders payment-reference image URLs in the VietQR style.
package qr

import (
	"net/url"
	"strconv"
)

// Builder assembles payment QR image URLs. The image base URL and the
// displayed account name come from configuration, never from callers.
type Builder struct {
	imageURL    string
	accountName string
}

// NewBuilder constructs a payment reference builder.
func NewBuilder(imageURL, accountName string) *Builder {
	return &Builder{imageURL: imageURL, accountName: accountName}
}

// PaymentReference returns the QR image URL for a payment of amount minor
// units toward the given user's wallet. The output is deterministic for a
// given (userID, amount, note) and every query component is escaped.
func (b *Builder) PaymentReference(userID string, amount int64, note string) string {
	info := note
	if info == "" {
		info = "wallet top-up"
	}

	v := url.Values{}
	v.Set("amount", strconv.FormatInt(amount, 10))
	v.Set("addInfo", info+" "+userID)
	v.Set("accountName", b.accountName)
	return b.imageURL + "?" + v.Encode()
}
