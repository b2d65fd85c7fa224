package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// Telegram delivers the finished report to a chat or channel.
type Telegram struct {
	BotToken string
	ChatID   string
	APIBase  string
	Client   *http.Client
}

func NewTelegram(botToken, chatID string) *Telegram {
	return &Telegram{
		BotToken: botToken,
		ChatID:   chatID,
		APIBase:  telegramAPIBase,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// SendText posts one message (up to 3 attempts). The Bot API answers 200
// with ok=false on some failures, so the body is checked as well.
func (t *Telegram) SendText(text string) error {
	if t.BotToken == "" || t.ChatID == "" {
		return fmt.Errorf("telegram bot token and chat id are required")
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.APIBase, t.BotToken)

	payload := map[string]any{
		"chat_id":                  t.ChatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	body, _ := json.Marshal(payload)

	var lastErr error
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("POST", url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := t.Client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(i+1) * time.Second)
			continue
		}
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		resp.Body.Close()
		if resp.StatusCode/100 == 2 {
			var result struct {
				OK          bool   `json:"ok"`
				Description string `json:"description"`
			}
			if err := json.Unmarshal(respBody, &result); err == nil && !result.OK {
				return fmt.Errorf("telegram api error: %s", result.Description)
			}
			return nil
		}
		lastErr = fmt.Errorf("telegram status=%d", resp.StatusCode)
		time.Sleep(time.Duration(i+1) * time.Second)
	}
	return lastErr
}
