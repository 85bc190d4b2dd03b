package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"bakeshop/internal/logger"
)

// StripeGateway charges cards through Stripe payment intents.
type StripeGateway struct {
	api    *client.API
	logger *logger.Logger
}

// NewStripeGateway creates a gateway using the given secret key.
func NewStripeGateway(secretKey string, log *logger.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{
		api:    api,
		logger: log,
	}
}

// Charge creates and confirms a payment intent for the submitted method
// token. A card decline comes back as a failed result carrying Stripe's
// message; transport faults come back as errors.
func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	params := &stripe.PaymentIntentParams{
		Params:        stripe.Params{Context: ctx},
		Amount:        stripe.Int64(req.AmountMinor),
		Currency:      stripe.String(req.Currency),
		Description:   stripe.String(req.Description),
		PaymentMethod: stripe.String(req.MethodToken),
		Confirm:       stripe.Bool(true),
		ReceiptEmail:  stripe.String(req.ReceiptEmail),
	}
	params.AddExpand("latest_charge")

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			g.logger.Debug("payment_declined", "Stripe declined the charge", "", map[string]interface{}{
				"code": string(stripeErr.Code),
			})
			return &ChargeResult{
				Status:         "failed",
				FailureMessage: stripeErr.Msg,
			}, nil
		}
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	result := &ChargeResult{Status: string(intent.Status)}
	if intent.LatestCharge != nil &&
		intent.LatestCharge.PaymentMethodDetails != nil &&
		intent.LatestCharge.PaymentMethodDetails.Card != nil {
		result.MaskedLast4 = intent.LatestCharge.PaymentMethodDetails.Card.Last4
	}
	return result, nil
}
