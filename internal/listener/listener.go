package listener

import (
	"context"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"offerwall-sdk/internal/registry"
	"offerwall-sdk/internal/storage"
)

// ListenAndRefresh rebuilds the publisher registry whenever the publishers
// table notifies on channel. It reconnects with jittered backoff until ctx
// is done.
func ListenAndRefresh(ctx context.Context, st *storage.Store, reg *registry.Registry, loader registry.Loader, channel string, baseBackoff time.Duration) {
	for {
		err := listen(ctx, st, reg, loader, channel)
		if ctx.Err() != nil {
			log.Info().Msg("listener stopped")
			return
		}
		backoff := jitter(baseBackoff)
		log.Error().Err(err).Dur("retry_in", backoff).Msg("listener disconnected")
		select {
		case <-ctx.Done():
			log.Info().Msg("listener stopped")
			return
		case <-time.After(backoff):
		}
	}
}

func listen(ctx context.Context, st *storage.Store, reg *registry.Registry, loader registry.Loader, channel string) error {
	conn, err := st.PgxPool().Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err = conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		return err
	}
	log.Info().Str("channel", channel).Msg("listening for publisher changes")

	// changes made while disconnected
	if err := reg.BuildSnapshot(ctx, loader); err != nil {
		log.Error().Err(err).Msg("refresh publishers error")
	}

	return refreshOnNotify(ctx, conn.Conn(), refreshWindow, func(ctx context.Context, ntf *pgconn.Notification) {
		log.Info().Str("channel", ntf.Channel).Str("op", ntf.Payload).Msg("publishers changed; refreshing registry")
		if err := reg.BuildSnapshot(ctx, loader); err != nil {
			log.Error().Err(err).Msg("refresh publishers error")
		}
	})
}

const refreshWindow = 200 * time.Millisecond

// notificationSource is the part of *pgx.Conn the refresh loop reads from.
type notificationSource interface {
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
}

// refreshOnNotify calls refresh at most once per window. Notifications that
// land inside the window collapse into one trailing refresh when it closes,
// carrying the latest notification.
func refreshOnNotify(ctx context.Context, src notificationSource, window time.Duration, refresh func(context.Context, *pgconn.Notification)) error {
	ctx, cancel := context.WithCancel(ctx)
	notes := make(chan *pgconn.Notification)
	errc := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			ntf, err := src.WaitForNotification(ctx)
			if err != nil {
				errc <- err
				return
			}
			select {
			case notes <- ntf:
			case <-ctx.Done():
				return
			}
		}
	}()
	// the connection must not go back to the pool while still being read
	defer func() {
		cancel()
		<-done
	}()

	var (
		last     time.Time
		pending  *pgconn.Notification
		trailing *time.Timer
		fire     <-chan time.Time
	)
	defer func() {
		if trailing != nil {
			trailing.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errc:
			return err
		case ntf := <-notes:
			if wait := window - time.Since(last); wait > 0 {
				pending = ntf
				if fire == nil {
					trailing = time.NewTimer(wait)
					fire = trailing.C
				}
				continue
			}
			last = time.Now()
			refresh(ctx, ntf)
		case <-fire:
			fire = nil
			last = time.Now()
			refresh(ctx, pending)
			pending = nil
		}
	}
}

func jitter(base time.Duration) time.Duration {
	if base <= 0 {
		base = time.Second
	}
	factor := 0.5 + rand.Float64() // 0.5x-1.5x
	return time.Duration(float64(base) * factor)
}
