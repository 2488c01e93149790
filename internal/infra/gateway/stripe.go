package gateway

import (
	"context"

	"homestay/internal/pkg/config"
	"homestay/internal/pkg/errs"
	"homestay/internal/usecase/commands"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

var (
	errChargeFailed = errs.New("stripe charge was not successful")
	errRefundFailed = errs.New("stripe refund was not successful")
)

// StripeGateway charges the tenant's card on the platform account and
// transfers the host's share to their connected account, keeping the
// application fee on the platform.
type StripeGateway struct {
	api      *client.API
	currency string
}

func NewStripeGateway(cfg config.PaymentConfig) commands.PaymentGateway {
	api := &client.API{}
	api.Init(cfg.StripeSecretKey, nil)
	return &StripeGateway{api: api, currency: cfg.Currency}
}

func (g *StripeGateway) Capture(ctx context.Context, params commands.CaptureParams) (*commands.CaptureResult, error) {
	chargeParams := &stripe.ChargeParams{
		Params: stripe.Params{
			Context:        ctx,
			IdempotencyKey: stripe.String(params.IdempotencyKey),
		},
		Amount:               stripe.Int64(params.AmountCents),
		Currency:             stripe.String(g.currency),
		ApplicationFeeAmount: stripe.Int64(params.FeeCents),
		TransferData: &stripe.ChargeTransferDataParams{
			Destination: stripe.String(params.DestinationAccount),
		},
	}
	if err := chargeParams.SetSource(params.Source); err != nil {
		return nil, errs.Wrap(err, "failed to set charge source")
	}

	ch, err := g.api.Charges.New(chargeParams)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create stripe charge")
	}
	if ch.Status == stripe.ChargeStatusFailed {
		return nil, errs.Mark(errs.Newf("charge %s has status %s", ch.ID, ch.Status), errChargeFailed)
	}

	return &commands.CaptureResult{ChargeID: ch.ID}, nil
}

func (g *StripeGateway) Refund(ctx context.Context, chargeID, idempotencyKey string) error {
	refundParams := &stripe.RefundParams{
		Params: stripe.Params{
			Context:        ctx,
			IdempotencyKey: stripe.String(idempotencyKey),
		},
		Charge:               stripe.String(chargeID),
		ReverseTransfer:      stripe.Bool(true),
		RefundApplicationFee: stripe.Bool(true),
	}

	ref, err := g.api.Refunds.New(refundParams)
	if err != nil {
		return errs.Wrap(err, "failed to create stripe refund")
	}
	if ref.Status == stripe.RefundStatusFailed {
		return errs.Mark(errs.Newf("refund %s has status %s", ref.ID, ref.Status), errRefundFailed)
	}

	return nil
}
