package controller

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"mesero/internal/domain"
	"mesero/internal/result"
	"mesero/internal/watch"
)

type OrderStreams interface {
	ObserveActiveOrder(ctx context.Context) *watch.Stream[result.Result[*domain.Order]]
	GetLineItems(ctx context.Context, orderID uint) ([]domain.OrderLineItem, error)
}

// StreamController pushes live active-order snapshots over a websocket. One
// connection holds one subscription; closing the socket cancels it.
type StreamController struct {
	streams  OrderStreams
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewStreamController(streams OrderStreams, logger *zap.Logger) *StreamController {
	return &StreamController{
		streams: streams,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

type streamMessage struct {
	Event string      `json:"event"`
	State string      `json:"state"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

type activeOrderSnapshot struct {
	Order *OrderDTO     `json:"order"`
	Items []LineItemDTO `json:"items"`
}

func (c *StreamController) StreamActiveOrder(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	stream := c.streams.ObserveActiveOrder(ctx)
	defer stream.Cancel()

	// Read pump: the client never sends data; a read error means the socket
	// is gone and the subscription must be torn down.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for res := range stream.C() {
		msg, err := c.buildMessage(ctx, res)
		if err != nil {
			// ctx cancelled mid-snapshot; the loop drains on the next read.
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			c.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (c *StreamController) buildMessage(ctx context.Context, res result.Result[*domain.Order]) (streamMessage, error) {
	msg := streamMessage{
		Event: "active_order",
		State: res.State().String(),
	}

	switch {
	case res.IsError():
		msg.Error = res.Err().Error()
	case res.IsSuccess():
		order, _ := res.Value()
		if order == nil {
			msg.Data = activeOrderSnapshot{Items: []LineItemDTO{}}
			break
		}
		items, err := c.streams.GetLineItems(ctx, order.ID)
		if err != nil {
			return streamMessage{}, err
		}
		dto := toOrderDTO(*order)
		itemDTOs := make([]LineItemDTO, 0, len(items))
		for _, item := range items {
			itemDTOs = append(itemDTOs, toLineItemDTO(item))
		}
		msg.Data = activeOrderSnapshot{Order: &dto, Items: itemDTOs}
	}

	return msg, nil
}
