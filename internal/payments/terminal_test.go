package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"
)

func sign(secret string, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return mac.Sum(nil)
}

func TestVerifyWebhookSignatureBase64(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"transactionId":"txn_1","status":"completed"}`)

	sig := base64.StdEncoding.EncodeToString(sign(secret, body))

	if !VerifyWebhookSignature(secret, body, sig) {
		t.Fatal("valid base64 signature rejected")
	}
}

func TestVerifyWebhookSignatureHex(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"transactionId":"txn_1","status":"failed"}`)

	sig := hex.EncodeToString(sign(secret, body))

	if !VerifyWebhookSignature(secret, body, sig) {
		t.Fatal("valid hex signature rejected")
	}
}

func TestVerifyWebhookSignatureBearerPrefix(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"transactionId":"txn_2","status":"completed"}`)

	sig := "Bearer " + base64.StdEncoding.EncodeToString(sign(secret, body))

	if !VerifyWebhookSignature(secret, body, sig) {
		t.Fatal("bearer-prefixed signature rejected")
	}
}

func TestVerifyWebhookSignatureRejects(t *testing.T) {
	body := []byte(`{"transactionId":"txn_3","status":"completed"}`)

	if VerifyWebhookSignature("whsec_test", body, "not-a-signature") {
		t.Fatal("garbage signature accepted")
	}
	if VerifyWebhookSignature("", body, "anything") {
		t.Fatal("missing secret must reject")
	}
	if VerifyWebhookSignature("whsec_test", body, "") {
		t.Fatal("missing signature must reject")
	}

	otherSecret := hex.EncodeToString(sign("other_secret", body))
	if VerifyWebhookSignature("whsec_test", body, otherSecret) {
		t.Fatal("signature from wrong secret accepted")
	}

	tampered := append([]byte{}, body...)
	tampered[len(tampered)-2] = 'X'
	sig := base64.StdEncoding.EncodeToString(sign("whsec_test", body))
	if VerifyWebhookSignature("whsec_test", tampered, sig) {
		t.Fatal("tampered body accepted")
	}
}
