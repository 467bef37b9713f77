package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/autobit/magpie/internal/domain"
	"github.com/autobit/magpie/internal/notification"
)

// Client는 디스코드 웹훅으로 알림을 전송합니다
type Client struct {
	tradeWebhook string
	errorWebhook string
	httpClient   *http.Client
}

var _ notification.Notifier = (*Client)(nil)

// ClientOption은 클라이언트 생성 옵션을 정의합니다
type ClientOption func(*Client)

// WithTimeout은 HTTP 클라이언트의 타임아웃을 설정합니다
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient는 새로운 디스코드 알림 클라이언트를 생성합니다
func NewClient(tradeWebhook, errorWebhook string, opts ...ClientOption) *Client {
	c := &Client{
		tradeWebhook: tradeWebhook,
		errorWebhook: errorWebhook,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}

	// 옵션 적용
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// sendToWebhook은 웹훅 URL로 메시지를 전송합니다
func (c *Client) sendToWebhook(webhookURL string, msg WebhookMessage) error {
	if webhookURL == "" {
		return nil // 웹훅이 설정되지 않은 경우 조용히 건너뛴다
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("메시지 직렬화 실패: %w", err)
	}

	resp, err := c.httpClient.Post(webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("웹훅 전송 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("웹훅 전송 실패(%d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// SendOrder는 접수된 주문 정보를 전송합니다
func (c *Client) SendOrder(order domain.OrderResult) error {
	var action string
	switch order.Side {
	case domain.Bid:
		action = "매수"
	default:
		action = "매도"
	}

	embed := newEmbed(fmt.Sprintf("주문 접수: %s %s", order.Market, action),
		notification.GetColorForSide(order.Side))
	embed.addField("주문 ID", order.UUID, false)
	embed.addField("유형", string(order.OrdType), true)
	embed.addField("상태", order.State, true)
	embed.addField("금액", order.Price.String(), true)
	embed.addField("수량", order.Volume.String(), true)
	embed.addField("수수료(예약)", order.ReservedFee.String(), true)

	return c.sendToWebhook(c.tradeWebhook, WebhookMessage{
		Embeds: []Embed{*embed},
	})
}

// SendBalances는 계좌 잔고 요약을 전송합니다
func (c *Client) SendBalances(balances []domain.BalanceInfo) error {
	embed := newEmbed("계좌 잔고", notification.ColorInfo)
	if len(balances) == 0 {
		embed.Description = "보유 자산이 없습니다"
	}
	for _, b := range balances {
		embed.addField(b.Currency,
			fmt.Sprintf("잔고: %s\n묶임: %s", b.Balance.String(), b.Locked.String()), true)
	}

	return c.sendToWebhook(c.tradeWebhook, WebhookMessage{
		Embeds: []Embed{*embed},
	})
}

// SendError는 에러 알림을 전송합니다
func (c *Client) SendError(err error) error {
	embed := newEmbed("에러 발생", notification.ColorError)
	embed.Description = fmt.Sprintf("```%v```", err)

	return c.sendToWebhook(c.errorWebhook, WebhookMessage{
		Embeds: []Embed{*embed},
	})
}

// SendInfo는 일반 정보 알림을 전송합니다
func (c *Client) SendInfo(message string) error {
	embed := newEmbed("", notification.ColorInfo)
	embed.Description = message

	return c.sendToWebhook(c.tradeWebhook, WebhookMessage{
		Embeds: []Embed{*embed},
	})
}
