package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/util"
	"github/chapool/go-mock-wallet/internal/wallet"
	"github/chapool/go-mock-wallet/internal/wallet/events"
)

const subscriberBuffer = 64

// GetEventsRoute streams the events of both providers as server-sent events.
// Every message carries one events.Envelope as JSON data.
func GetEventsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1.GET("/events", getEventsHandler(s))
}

func getEventsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		if s.Wallet.Destroyed() {
			return api.WalletHTTPError(wallet.ErrDestroyed)
		}

		var streams []<-chan events.Envelope
		if p := s.Wallet.EVM(); p != nil {
			ch, cancel := p.Events().Subscribe(subscriberBuffer)
			defer cancel()
			streams = append(streams, ch)
		}
		if p := s.Wallet.Solana(); p != nil {
			ch, cancel := p.Events().Subscribe(subscriberBuffer)
			defer cancel()
			streams = append(streams, ch)
		}

		merged := merge(ctx, streams...)

		res := c.Response()
		res.Header().Set(echo.HeaderContentType, "text/event-stream")
		res.Header().Set(echo.HeaderCacheControl, "no-cache")
		res.Header().Set(echo.HeaderConnection, "keep-alive")
		res.WriteHeader(http.StatusOK)

		if _, err := fmt.Fprint(res, ": connected\n\n"); err != nil {
			return nil
		}
		res.Flush()

		keepAlive := s.Config.Management.EventStreamKeepAlive
		if keepAlive <= 0 {
			keepAlive = time.Hour
		}
		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		log.Debug().Int("sources", len(streams)).Msg("Event stream opened")

		for {
			select {
			case <-ctx.Done():
				log.Debug().Msg("Event stream closed by client")
				return nil
			case <-ticker.C:
				if _, err := fmt.Fprint(res, ": keepalive\n\n"); err != nil {
					return nil
				}
				res.Flush()
			case envelope, ok := <-merged:
				if !ok {
					log.Debug().Msg("Event stream closed by wallet")
					return nil
				}

				data, err := json.Marshal(envelope)
				if err != nil {
					log.Error().Err(err).Str("event", envelope.Event.String()).Msg("Failed to encode event")
					continue
				}

				if _, err := fmt.Fprintf(res, "data: %s\n\n", data); err != nil {
					return nil
				}
				res.Flush()
			}
		}
	}
}

// merge fans in all streams. The result is closed once every input is closed or
// ctx is done.
func merge(ctx context.Context, streams ...<-chan events.Envelope) <-chan events.Envelope {
	out := make(chan events.Envelope, subscriberBuffer)
	if len(streams) == 0 {
		close(out)
		return out
	}

	done := make(chan struct{}, len(streams))
	for _, stream := range streams {
		go func(stream <-chan events.Envelope) {
			defer func() { done <- struct{}{} }()

			for envelope := range stream {
				select {
				case out <- envelope:
				case <-ctx.Done():
					return
				}
			}
		}(stream)
	}

	go func() {
		for range streams {
			<-done
		}
		close(out)
	}()

	return out
}
