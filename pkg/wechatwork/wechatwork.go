// wechatwork/wechatwork.go
package wechatwork

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// WebhookURL WeChat Work group robot endpoint
const WebhookURL = "https://qyapi.weixin.qq.com/cgi-bin/webhook/send"

// Message 企业微信Webhook消息结构
type Message struct {
	MsgType  string          `json:"msgtype"`
	Markdown MarkdownContent `json:"markdown"`
}

type MarkdownContent struct {
	Content string `json:"content"`
}

// NotificationSender posts to one robot, does nothing without a key
type NotificationSender struct {
	WebhookKey string
	WebhookURL string
	Enabled    bool
	Client     *http.Client
}

func NewNotificationSender(webhookKey string) *NotificationSender {
	return &NotificationSender{
		WebhookKey: webhookKey,
		WebhookURL: WebhookURL,
		Enabled:    webhookKey != "",
		Client:     http.DefaultClient,
	}
}

// SendMarkdown 发送Markdown消息
func (ns *NotificationSender) SendMarkdown(content string) error {
	if !ns.Enabled {
		return nil
	}

	return ns.send(Message{
		MsgType: "markdown",
		Markdown: MarkdownContent{
			Content: content,
		},
	})
}

func (ns *NotificationSender) send(message Message) error {
	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	resp, err := ns.Client.Post(ns.WebhookURL+"?key="+ns.WebhookKey, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("send wechatwork notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wechatwork notification status: %d", resp.StatusCode)
	}

	slog.Info("wechatwork notification sent")
	return nil
}
