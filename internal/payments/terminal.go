package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TerminalClient fala com o provedor da maquininha. A confirmação não vem
// na resposta: vem depois pelo webhook, e o app faz polling do pagamento
// até um estado final.
type TerminalClient struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

func NewTerminalClient(baseURL, apiToken string) *TerminalClient {
	return &TerminalClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: apiToken,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

type terminalInitiateRequest struct {
	TerminalID string  `json:"terminal_id"`
	Amount     float64 `json:"amount"`
	Reference  string  `json:"reference"`
}

type terminalInitiateResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

func (t *TerminalClient) Initiate(
	ctx context.Context,
	terminalID string,
	amountCents int64,
	reference string,
) (string, error) {

	body, err := json.Marshal(terminalInitiateRequest{
		TerminalID: terminalID,
		Amount:     float64(amountCents) / 100.0,
		Reference:  reference,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		t.baseURL+"/v2/payment/purchase",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiToken)

	res, err := t.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("terminal gateway returned %d", res.StatusCode)
	}

	var out terminalInitiateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	if !out.Success || out.TransactionID == "" {
		return "", fmt.Errorf("terminal gateway refused: %s", out.Message)
	}

	return out.TransactionID, nil
}

var _ TerminalGateway = (*TerminalClient)(nil)

// WebhookEvent é o payload de confirmação enviado pelo provedor.
type WebhookEvent struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"` // completed | failed | cancelled
}

// VerifyWebhookSignature valida o HMAC-SHA256 do corpo cru. O provedor
// manda o digest em base64 ou hex, às vezes com prefixo "Bearer ";
// aceitamos os dois formatos com comparação de tempo constante.
func VerifyWebhookSignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}

	signature = strings.TrimPrefix(signature, "Bearer ")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	digest := mac.Sum(nil)

	b64 := base64.StdEncoding.EncodeToString(digest)
	if hmac.Equal([]byte(b64), []byte(signature)) {
		return true
	}

	hexSig := hex.EncodeToString(digest)
	return hmac.Equal([]byte(hexSig), []byte(signature))
}
