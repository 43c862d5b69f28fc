package console

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fulldump/peopledb/database"
	"github.com/fulldump/peopledb/session"
)

// ServeOne accepts exactly one client on ln, runs a console over the
// connection until the client quits or disconnects, and closes both the
// connection and the listener.
//
// Cancelling ctx closes the listener and the connection, so ServeOne
// returns before the caller touches the database again. Once a client has
// been accepted, any way the session ends is a normal end.
func ServeOne(ctx context.Context, ln net.Listener, db *database.Database, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	defer ln.Close()

	var mu sync.Mutex
	var conn net.Conn

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			ln.Close()
			mu.Lock()
			if conn != nil {
				conn.Close()
			}
			mu.Unlock()
		case <-finished:
		}
	}()

	c, err := ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			log.Info("stopped before any client", zap.Error(ctx.Err()))
			return nil
		}
		return fmt.Errorf("accept: %w", err)
	}
	defer c.Close()

	mu.Lock()
	conn = c
	mu.Unlock()
	if ctx.Err() != nil {
		c.Close()
	}

	// one client per process
	ln.Close()

	log = log.With(
		zap.String("session", uuid.NewString()),
		zap.String("remote", c.RemoteAddr().String()),
	)
	log.Info("session started")

	err = New(session.New(db, c, log), c, log).Run()
	if err != nil {
		log.Warn("session ended by disconnect", zap.Error(err))
		return nil
	}

	log.Info("session ended")
	return nil
}
