package notification

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Webhook posts operational alerts to an external endpoint (Slack-compatible
// relay configured by ops). A nil or URL-less Webhook silently drops alerts.
type Webhook struct {
	URL    string
	Client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendDuplicateVoucherAlert warns that a voucher code was just saved on a
// second promo. Duplicate codes are legal but usually a data-entry mistake.
func (wh *Webhook) SendDuplicateVoucherAlert(voucherCode, promoID string) {
	wh.send(map[string]string{
		"message":      "Peringatan: kode voucher sudah dipakai promo lain",
		"voucher_code": voucherCode,
		"promo_id":     promoID,
	})
}

func (wh *Webhook) send(payload map[string]string) {
	if wh == nil || wh.URL == "" {
		return
	}
	body, _ := json.Marshal(payload)
	resp, err := wh.Client.Post(wh.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("gagal mengirim webhook: %v", err)
		return
	}
	defer resp.Body.Close()
}
