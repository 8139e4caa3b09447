// Package client implements the terminal client: a thin presentation layer
// that renders state updates and chat, and turns user input into protocol
// messages.
package client

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"connect-four-server/internal/domain"
)

// Client wraps one server connection. All inbound messages are delivered
// on the Events channel; the UI subscribes by reading from it instead of
// registering callbacks.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	Events chan domain.ServerMessage
}

// Dial connects to the server's websocket endpoint and starts the read
// pump. The Events channel closes when the connection dies.
func Dial(serverURL string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", serverURL, err)
	}

	c := &Client{
		conn:   conn,
		Events: make(chan domain.ServerMessage, 16),
	}
	go c.readLoop()
	return c, nil
}

func (c *Client) readLoop() {
	defer close(c.Events)
	for {
		var msg domain.ServerMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.Events <- msg
	}
}

func (c *Client) send(msg domain.ClientMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(msg)
}

func (c *Client) Login(username string) error {
	return c.send(domain.ClientMessage{Type: domain.MsgLogin, Username: username})
}

func (c *Client) Move(column int) error {
	return c.send(domain.ClientMessage{Type: domain.MsgMove, Column: column})
}

func (c *Client) Chat(text string) error {
	return c.send(domain.ClientMessage{Type: domain.MsgChat, Text: text})
}

func (c *Client) PlayAgain(wantsRematch bool) error {
	return c.send(domain.ClientMessage{Type: domain.MsgPlayAgain, WantsRematch: wantsRematch})
}

func (c *Client) ReturnToLobby() error {
	return c.send(domain.ClientMessage{Type: domain.MsgReturnToLobby})
}

func (c *Client) CancelMatchmaking() error {
	return c.send(domain.ClientMessage{Type: domain.MsgCancelMatchmaking})
}

func (c *Client) Disconnect(reason string) error {
	return c.send(domain.ClientMessage{Type: domain.MsgDisconnect, Reason: reason})
}

func (c *Client) Close() {
	c.conn.Close()
}
