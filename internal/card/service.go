package card

import (
	"context"
	"log"
	"time"
)

// VoucherState is a voucher as shown on the card.
type VoucherState struct {
	Voucher
	Redeemed   bool       `json:"redeemed"`
	RedeemedAt *time.Time `json:"redeemed_at,omitempty"`
}

// Page is the unlocked card.
type Page struct {
	Content
	Letter   string         `json:"letter"`
	Reasons  []string       `json:"reasons"`
	Vouchers []VoucherState `json:"vouchers"`
}

// Service serves card content and voucher redemptions.
type Service struct {
	content *Content
	store   Store
	now     func() time.Time
}

func NewService(content *Content, store Store) *Service {
	if content == nil {
		content = Default()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	return &Service{content: content, store: store, now: time.Now}
}

func (s *Service) Content() *Content { return s.content }

// Page assembles the unlocked card with the current voucher state.
func (s *Service) Page(ctx context.Context) (*Page, error) {
	vouchers, err := s.Vouchers(ctx)
	if err != nil {
		return nil, err
	}
	return &Page{
		Content:  *s.content,
		Letter:   s.content.Letter(),
		Reasons:  s.content.NumberedReasons(),
		Vouchers: vouchers,
	}, nil
}

func (s *Service) Vouchers(ctx context.Context) ([]VoucherState, error) {
	redeemed, err := s.store.Redeemed(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]VoucherState, len(s.content.Vouchers))
	for i, v := range s.content.Vouchers {
		out[i] = VoucherState{Voucher: v}
		if at, ok := redeemed[v.Slug]; ok {
			at := at
			out[i].Redeemed = true
			out[i].RedeemedAt = &at
		}
	}
	return out, nil
}

// Redeem marks a voucher used. Redeeming twice keeps the first time.
func (s *Service) Redeem(ctx context.Context, slug string) (VoucherState, error) {
	v, ok := s.content.Voucher(slug)
	if !ok {
		return VoucherState{}, ErrUnknownVoucher
	}
	at, err := s.store.Redeem(ctx, v, s.now())
	if err != nil {
		return VoucherState{}, err
	}
	log.Printf("[CARD] Voucher %s redeemed at %s", v.Slug, at.Format(time.RFC3339))
	return VoucherState{Voucher: v, Redeemed: true, RedeemedAt: &at}, nil
}
