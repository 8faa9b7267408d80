package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureVerifier checks the HMAC-SHA256 signatures Razorpay attaches to
// checkout confirmations and webhook deliveries.
type SignatureVerifier struct {
	keySecret     string
	webhookSecret string
}

func NewSignatureVerifier(keySecret, webhookSecret string) *SignatureVerifier {
	return &SignatureVerifier{keySecret: keySecret, webhookSecret: webhookSecret}
}

// VerifyPaymentSignature checks the checkout signature over
// gatewayOrderID|gatewayPaymentID.
func (v *SignatureVerifier) VerifyPaymentSignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	payload := gatewayOrderID + "|" + gatewayPaymentID
	return verifyHMAC([]byte(payload), signature, v.keySecret)
}

// VerifyWebhookSignature checks the webhook signature over the raw body.
func (v *SignatureVerifier) VerifyWebhookSignature(body []byte, signature string) bool {
	return verifyHMAC(body, signature, v.webhookSecret)
}

func verifyHMAC(payload []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the checkout signature. Test helper for local development;
// production signatures come from Razorpay.
func Sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
