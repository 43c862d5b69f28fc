package bootstrap

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fulldump/peopledb/configuration"
	"github.com/fulldump/peopledb/console"
	"github.com/fulldump/peopledb/database"
	"github.com/fulldump/peopledb/session"
)

var VERSION = "dev"

// ShutdownGrace is how long a signalled session has to return before the
// process exits without releasing the table.
var ShutdownGrace = 3 * time.Second

// NewLogger builds the process logger. Logs go to stderr so they never mix
// with the console output.
func NewLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.WarnLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}

// Bootstrap wires the database and the selected front end. start serves
// until the session ends, stop releases the table and is safe to call more
// than once.
//
// SIGINT and SIGTERM only interrupt the front end. The table is released by
// stop, which the caller runs after start has returned, so no session is
// ever in the middle of a command when the table goes away.
func Bootstrap(c *configuration.Configuration) (start func() error, stop func(), err error) {

	log, err := NewLogger(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	db := database.NewDatabase(&database.Config{
		Dir:      c.Dir,
		Cipher:   c.Cipher,
		MaxPages: c.MaxPages,
	}, log)

	ctx, cancel := context.WithCancel(context.Background())

	var ln net.Listener
	switch c.Mode {
	case configuration.ModeConsole, "":
		start = func() error {
			log.Info("console session started")
			return serveConsole(ctx, db, log)
		}

	case configuration.ModeNetwork:
		ln, err = net.Listen("tcp", c.Addr)
		if err != nil {
			cancel()
			db.Close()
			return nil, nil, fmt.Errorf("listen: %w", err)
		}
		log.Info("listening", zap.String("addr", ln.Addr().String()))
		start = func() error {
			return console.ServeOne(ctx, ln, db, log)
		}

	default:
		cancel()
		db.Close()
		return nil, nil, fmt.Errorf("unknown mode '%s'", c.Mode)
	}

	released := make(chan struct{})

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		select {
		case sig := <-signalChan:
			log.Info("signal received", zap.String("signal", sig.String()))
			cancel()
		case <-released:
			return
		}

		// a read blocked on a terminal may not notice stdin being closed
		select {
		case <-released:
		case <-time.After(ShutdownGrace):
			log.Warn("session did not stop in time, exiting")
			os.Exit(0)
		}
	}()

	once := &sync.Once{}
	stop = func() {
		once.Do(func() {
			signal.Stop(signalChan)
			cancel()
			if ln != nil {
				ln.Close()
			}
			db.Close()
			close(released)
		})
	}

	return
}

// serveConsole runs the local console on stdin and stdout. Cancelling ctx
// closes stdin, which ends the pending read and with it the session.
func serveConsole(ctx context.Context, db *database.Database, log *zap.Logger) error {
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			os.Stdin.Close()
		case <-finished:
		}
	}()

	sess := session.New(db, os.Stdout, log)
	err := console.New(sess, os.Stdin, log).Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
