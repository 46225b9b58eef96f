package models

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Websocketクライアントを定義。
// gorillaのConnは同時書き込みできないため、送信はmuで直列化する
type Client struct {
	Conn *websocket.Conn

	mu     sync.Mutex
	closed bool
}

// Send はテキストメッセージを送信する。閉じた接続への送信は黙って無視する
func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Conn == nil || c.closed {
		return nil
	}
	return c.Conn.WriteMessage(websocket.TextMessage, data)
}

// Ping は接続維持用のPingメッセージを送信する
func (c *Client) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Conn == nil || c.closed {
		return websocket.ErrCloseSent
	}
	return c.Conn.WriteMessage(websocket.PingMessage, nil)
}

// Close は接続を閉じ、以後の送信を無効化する
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.Conn != nil {
		c.Conn.Close()
	}
}
