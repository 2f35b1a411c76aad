package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
)

type MercadoPagoGateway struct {
	client mppayment.Client
}

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPagoGateway{
		client: mppayment.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) Charge(
	ctx context.Context,
	in ChargeInput,
) (*ChargeResult, error) {

	req := mppayment.Request{
		TransactionAmount: float64(in.AmountCents) / 100.0,
		Token:             in.Token,
		Description:       in.Description,
		Installments:      1,
		Payer: &mppayment.PayerRequest{
			Email: in.PayerEmail,
		},
	}

	res, err := g.client.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return &ChargeResult{
		Approved:    res.Status == "approved",
		ProviderRef: fmt.Sprintf("%d", res.ID),
		Detail:      res.StatusDetail,
	}, nil
}

var _ CardGateway = (*MercadoPagoGateway)(nil)
