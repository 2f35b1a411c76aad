package payments

import "context"

// Gateways são serviços opacos: entra valor + metadados, sai
// sucesso/falha + referência. Nada além disso é contrato nosso.

type ChargeInput struct {
	AmountCents int64
	Token       string
	Description string
	PayerEmail  string
}

type ChargeResult struct {
	Approved    bool
	ProviderRef string
	Detail      string
}

// CardGateway cobra um cartão já tokenizado pelo widget do provedor.
type CardGateway interface {
	Charge(ctx context.Context, in ChargeInput) (*ChargeResult, error)
}

// TerminalGateway inicia uma cobrança numa maquininha física. O resultado
// chega depois, via webhook; o cliente faz polling do status do pagamento.
type TerminalGateway interface {
	Initiate(ctx context.Context, terminalID string, amountCents int64, reference string) (string, error)
}
