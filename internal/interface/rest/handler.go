package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seatkit/webinar"
	"github.com/seatkit/webinar/internal/domain"
	"github.com/seatkit/webinar/internal/interface/rest/presenter"
	"github.com/seatkit/webinar/internal/monitoring"
	"github.com/seatkit/webinar/internal/service"
	"github.com/seatkit/webinar/internal/usecase"
)

type Handler struct {
	changeSeats *usecase.ChangeSeatsUsecase
	signal      *service.SignalService
}

func NewHandler(
	changeSeats *usecase.ChangeSeatsUsecase,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		changeSeats: changeSeats,
		signal:      signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/webinars/:id/seats", h.handleChangeSeats)
	e.GET("/realtime", h.handleRealtime)
	e.GET("/health", h.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func (h *Handler) handleHealth(c echo.Context) error {
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleChangeSeats(c echo.Context) error {
	ctx := c.Request().Context()

	requester, ok := ctx.Value(domain.RequesterIDCtxKey).(string)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}

	var req webinar.SeatsRequest
	if err := c.Bind(&req); err != nil {
		monitoring.RecordSeatChange("validation")
		return presenter.BadRequest(c, err)
	}
	if req.Seats == nil {
		monitoring.RecordSeatChange("validation")
		return presenter.BadRequestMessage(c, "seats is required")
	}

	webinarID := c.Param("id")

	err := h.changeSeats.Execute(ctx, usecase.ChangeSeatsInput{
		User:      domain.User{ID: requester},
		WebinarID: webinarID,
		Seats:     *req.Seats,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			monitoring.RecordSeatChange("validation")
			return presenter.BadRequest(c, err)
		case errors.Is(err, domain.ErrNotFound):
			monitoring.RecordSeatChange("not_found")
			return presenter.NotFound(c, "Webinar not found")
		case errors.Is(err, domain.ErrNotOrganizer):
			monitoring.RecordSeatChange("not_organizer")
			return presenter.Unauthorized(c, "User is not allowed to update this webinar")
		case errors.Is(err, domain.ErrReduceSeats):
			monitoring.RecordSeatChange("reduce")
			return presenter.BadRequest(c, err)
		case errors.Is(err, domain.ErrTooManySeats):
			monitoring.RecordSeatChange("too_many")
			return presenter.BadRequest(c, err)
		default:
			monitoring.RecordSeatChange("error")
			return presenter.InternalError(c, err)
		}
	}

	seats := int(*req.Seats)
	monitoring.RecordSeatChange("success")
	monitoring.RecordSeatCount(webinarID, seats)

	if h.signal != nil {
		event := webinar.Event{
			WebinarID: webinarID,
			Seats:     seats,
			Timestamp: time.Now().UTC(),
		}
		if err := h.signal.Publish(ctx, event); err != nil {
			slog.ErrorContext(
				ctx, "Failed to publish seat event",
				slog.String("error", err.Error()),
				slog.String("module", "rest"),
			)
		}
	}

	return presenter.OK(c, webinar.SeatsResponse{Message: "Seats updated"})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Request is one client frame on the realtime socket.
type Request struct {
	Type     string   `json:"type"`
	Webinars []string `json:"webinars"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	if h.signal == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "realtime is not enabled"})
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx := c.Request().Context()

	input := make(chan []string)
	defer close(input)
	output := make(chan webinar.Event)

	go h.signal.Realtime(ctx, input, output)

	return pumpSocket(ctx, ws, input, output)
}

// pumpSocket shuttles frames between the websocket and the signal
// channels until the client goes away or a write fails. The quit channel
// is buffered so the reader's final send cannot block after the write
// loop has already returned.
func pumpSocket(ctx context.Context, ws *websocket.Conn, input chan<- []string, output <-chan webinar.Event) error {
	quit := make(chan struct{}, 1)

	go func() {
		for {
			var req Request
			err := ws.ReadJSON(&req)
			if err != nil {

				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				quit <- struct{}{}
				break
			}

			switch req.Type {
			case "listen":
				input <- req.Webinars
				slog.DebugContext(
					ctx, fmt.Sprintf("Socket subscribe: %s", req.Webinars),
					slog.String("module", "socket"),
				)
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			err := ws.WriteJSON(event)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
