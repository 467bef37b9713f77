package discord

import "time"

const footerText = "Magpie Trading Bot 🐦"

// WebhookMessage는 디스코드 웹훅 메시지를 정의합니다
type WebhookMessage struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Embed는 디스코드 메시지 임베드를 정의합니다
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

// EmbedField는 임베드 필드를 정의합니다
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// EmbedFooter는 임베드 푸터를 정의합니다
type EmbedFooter struct {
	Text string `json:"text"`
}

// newEmbed는 봇 공통 푸터와 현재 시각이 찍힌 임베드를 생성합니다
func newEmbed(title string, color int) *Embed {
	return &Embed{
		Title:     title,
		Color:     color,
		Footer:    &EmbedFooter{Text: footerText},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// addField는 임베드에 필드를 추가합니다
func (e *Embed) addField(name, value string, inline bool) {
	e.Fields = append(e.Fields, EmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	})
}
