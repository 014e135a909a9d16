package partners

import "errors"

var (
	ErrPartnerNotFound      = errors.New("partner not found")
	ErrReferralNotFound     = errors.New("referral not found")
	ErrPayoutNotFound       = errors.New("payout not found")
	ErrTrackingCodeConflict = errors.New("tracking code already in use")
)
