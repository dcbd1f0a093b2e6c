package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"learnly/internal/app/identity"
	"learnly/internal/app/message"
	"learnly/internal/pkg/errs"
	"learnly/internal/pkg/logx"
)

const (
	// timeout for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time the server waits for a Pong from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of an inbound frame.
	maxFrameSize = 8192

	// timeout applied to store calls made on behalf of one inbound frame.
	frameHandleTimeout = 10 * time.Second
)

// MessageRouter is the routing surface a client needs: sending messages and
// authorizing topic subscriptions.
type MessageRouter interface {
	Send(ctx context.Context, ident *identity.External, groupID, content string) (message.Message, error)
	Authorize(ctx context.Context, ident *identity.External, groupID string) error
}

// Client represents one active WebSocket connection. The identity bound at
// upgrade time never changes for the life of the connection; anonymous
// connections may open but every frame they send is rejected.
type Client struct {
	hub    *Hub
	router MessageRouter
	conn   *websocket.Conn

	// external identity bound at upgrade, nil for anonymous connections.
	ident *identity.External

	// buffered channel of frames waiting to be written to the connection.
	send chan []byte

	logger zerolog.Logger
}

// NewClient constructs a Client for an upgraded connection.
func NewClient(hub *Hub, router MessageRouter, conn *websocket.Conn, ident *identity.External) *Client {
	clientLogger := logx.Logger().With().
		Str("remote_addr", conn.RemoteAddr().String()).
		Logger()
	if ident != nil {
		clientLogger = clientLogger.With().Str("identity", ident.String()).Logger()
	}

	return &Client{
		hub:    hub,
		router: router,
		conn:   conn,
		ident:  ident,
		send:   make(chan []byte, 256),
		logger: clientLogger,
	}
}

// Deliver queues a broadcast frame for the connection. Full queues drop the
// frame rather than block the hub.
func (c *Client) Deliver(frame []byte) {
	select {
	case c.send <- frame:
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send channel full, dropping frame")
	}
}

// ReadPump reads frames from the connection until it closes. It owns the pong
// heartbeat and performs cleanup when the loop exits.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxFrameSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frameBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading frame (client close/going away)")
			}
			break
		}

		c.processInboundFrame(frameBytes)
	}
}

// cleanupOnDisconnect drops all topic subscriptions and closes the connection.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.hub.Drop(c)

	select {
	case <-c.send:
	default:
		close(c.send)
	}

	if err := c.conn.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Client connection close error")
	}
}

// processInboundFrame dispatches one raw inbound frame.
func (c *Client) processInboundFrame(frameBytes []byte) {
	var frame Frame
	if err := json.Unmarshal(frameBytes, &frame); err != nil {
		c.logger.Warn().Err(err).Bytes("frame_bytes", frameBytes).Msg("Client sent invalid JSON")
		c.SendError(errs.NewError(errs.ErrInvalidJSONFormat))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), frameHandleTimeout)
	defer cancel()

	switch frame.Type {
	case TypeSend:
		c.handleSend(ctx, frame)

	case TypeSubscribe:
		c.handleSubscribe(ctx, frame.Topic)

	case TypeUnsubscribe:
		c.hub.Unsubscribe(frame.Topic, c)

	default:
		c.logger.Warn().Str("frame_type", string(frame.Type)).Msg("Client sent unsupported frame type")
	}
}

// handleSend routes a message through the Router and confirms it back to the
// sender once it has been persisted and broadcast.
func (c *Client) handleSend(ctx context.Context, frame Frame) {
	var payload SendPayload
	if err := json.Unmarshal(frame.Payload, &payload); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid SEND payload")
		c.SendError(errs.NewError(errs.ErrInvalidJSONFormat))
		return
	}

	msg, err := c.router.Send(ctx, c.ident, payload.GroupID, payload.Content)
	if err != nil {
		c.SendError(err)
		return
	}

	c.sendConfirmation(frame.TempID, msg.ID, msg.SentAt)
}

// handleSubscribe authorizes a group topic subscription and acknowledges it.
func (c *Client) handleSubscribe(ctx context.Context, topic string) {
	groupID, err := GroupIDFromTopic(topic)
	if err != nil {
		c.SendError(errs.NewError(errs.ErrInvalidParams, "unknown topic"))
		return
	}

	if err := c.router.Authorize(ctx, c.ident, groupID); err != nil {
		c.SendError(err)
		return
	}

	c.hub.Subscribe(topic, c)

	ack, err := newFrame(TypeSubscribed, topic, nil)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build SUBSCRIBED frame")
		return
	}
	c.Deliver(ack)
}

// sendConfirmation acknowledges a routed message to its sender, correlating it
// with the client-side temporary id when one was supplied.
func (c *Client) sendConfirmation(tempID, messageID string, sentAt time.Time) {
	if tempID == "" {
		return
	}

	ackPayload := struct {
		TempID    string `json:"tempId"`
		MessageID string `json:"id"`
		SentAt    int64  `json:"sentAt"`
	}{
		TempID:    tempID,
		MessageID: messageID,
		SentAt:    sentAt.UnixMilli(),
	}

	ack, err := newFrame(TypeConfirm, "", ackPayload)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build CONFIRM frame")
		return
	}
	c.Deliver(ack)
}

// SendError queues a TypeError frame describing the failure.
func (c *Client) SendError(err error) {
	var code int
	var msg string

	var customErr *errs.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		msg = customErr.Message
	} else {
		code = errs.ErrUnknown
		msg = fmt.Sprintf("Internal server error: %v", err)
	}

	frame, frameErr := newFrame(TypeError, "", ErrorPayload{Code: code, Message: msg})
	if frameErr != nil {
		c.logger.Error().Err(frameErr).Msg("Failed to build ERROR frame")
		return
	}
	c.Deliver(frame)
}

// WritePump writes queued frames to the connection and keeps the ping
// heartbeat running.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !c.writeQueuedFrame(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedFrame writes one frame pulled from the send channel. Returns
// false when the WritePump loop should terminate.
func (c *Client) writeQueuedFrame(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Error().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Error().Err(err).Msg("Error writing frame")
		return false
	}

	return true
}

// writePingMessage sends the periodic heartbeat ping. Returns false when the
// WritePump loop should terminate.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
