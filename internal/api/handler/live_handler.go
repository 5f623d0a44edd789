package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ShardulMane20/Quick-Desk/internal/api/middleware"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ticketfilter"
)

const liveWriteTimeout = 10 * time.Second

// LiveHandler streams the caller's filtered ticket list over a WebSocket.
// The client sends criteria frames; the server answers with list frames.
type LiveHandler struct {
	service  ports.LiveService
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewLiveHandler accepts upgrades from allowedOrigin, or from any origin
// when it is "*" or empty.
func NewLiveHandler(service ports.LiveService, allowedOrigin string, log zerolog.Logger) *LiveHandler {
	return &LiveHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" || allowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

// Stream handles GET /v1/tickets/live.
//
// The session is resolved once, at upgrade. The socket is closed when the
// token expires, so a role change or logout applies on the next connect.
//
// @Summary      Live ticket list
// @Description  WebSocket. Send criteria JSON frames; receive {tickets, total, visible} frames.
// @Tags         tickets
// @Security     BearerAuth
// @Param        access_token  query  string  false  "JWT when the Authorization header cannot be set"
// @Success      101
// @Failure      401  {object}  errorResponse
// @Router       /v1/tickets/live [get]
func (h *LiveHandler) Stream(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.Warn().Err(err).Str("user_id", sess.UserID).Msg("websocket upgrade failed")
		return nil
	}
	defer conn.Close()

	ctx, cancel := streamContext(c)
	defer cancel()

	criteria := make(chan ticketfilter.Criteria, 1)
	go h.readCriteria(ctx, cancel, conn, criteria)

	err = h.service.Stream(ctx, sess, criteria, func(f ports.LiveFrame) error {
		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
		return conn.WriteJSON(toTicketListResponse(f.Tickets, f.Total))
	})
	switch {
	case err != nil:
		h.log.Warn().Err(err).Str("user_id", sess.UserID).Msg("live stream ended")
		closeWith(conn, websocket.CloseInternalServerErr, "stream failed")
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		h.log.Debug().Str("user_id", sess.UserID).Msg("live stream token expired")
		closeWith(conn, websocket.ClosePolicyViolation, "token expired")
	}
	return nil
}

// streamContext ends with the request, or at the token's expiry when known.
func streamContext(c echo.Context) (context.Context, context.CancelFunc) {
	parent := c.Request().Context()
	if exp, ok := c.Get(middleware.KeyExpiresAt).(time.Time); ok && !exp.IsZero() {
		return context.WithDeadline(parent, exp)
	}
	return context.WithCancel(parent)
}

func closeWith(conn *websocket.Conn, code int, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(time.Second))
}

// readCriteria forwards client criteria frames until the socket closes.
// Malformed frames are logged and skipped.
func (h *LiveHandler) readCriteria(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out chan<- ticketfilter.Criteria) {
	defer cancel()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug().Err(err).Msg("live socket closed")
			}
			return
		}

		var c ticketfilter.Criteria
		if err := json.Unmarshal(data, &c); err != nil {
			h.log.Debug().Err(err).Msg("ignoring malformed criteria frame")
			continue
		}

		select {
		case out <- ticketfilter.Normalize(c):
		case <-ctx.Done():
			return
		}
	}
}
