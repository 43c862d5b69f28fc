package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"go.uber.org/zap"

	"github.com/fulldump/peopledb/cipher"
	"github.com/fulldump/peopledb/codec"
	"github.com/fulldump/peopledb/report"
	"github.com/fulldump/peopledb/store"
)

type Config struct {
	Dir      string
	Cipher   bool
	MaxPages int
}

// Database binds the person table to files on disk. Every file is opened by
// the operation that needs it and closed before that operation returns.
type Database struct {
	config *Config
	Store  *store.Store
	cipher cipher.Func
	log    *zap.Logger
}

func NewDatabase(config *Config, log *zap.Logger) *Database {
	if log == nil {
		log = zap.NewNop()
	}

	return &Database{
		config: config,
		Store:  store.New(config.MaxPages),
		cipher: cipher.Select(config.Cipher),
		log:    log,
	}
}

// Path resolves name against the data directory unless it is absolute.
func (db *Database) Path(name string) string {
	if filepath.IsAbs(name) || db.config.Dir == "" {
		return name
	}
	return filepath.Join(db.config.Dir, name)
}

func (db *Database) Load(name string) error {
	filename := db.Path(name)

	f, err := os.Open(filename)
	if err != nil {
		return db.failed("load", filename, db.Store.Fail(store.NotOpen, "Load failed", err))
	}
	defer f.Close()

	err = codec.Decode(f, db.Store, db.cipher)
	if err != nil {
		return db.failed("load", filename, err)
	}

	db.log.Info("loaded",
		zap.String("file", filename),
		zap.Int("pages", db.Store.Count()),
		zap.Int("capacity", db.Store.Capacity()),
	)
	return nil
}

func (db *Database) Save(name string) error {
	filename := db.Path(name)

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return db.failed("save", filename, db.Store.Fail(store.NotOpen, "Save failed", err))
	}

	err = codec.Encode(f, db.Store, db.cipher)
	closeErr := f.Close()
	if err != nil {
		return db.failed("save", filename, err)
	}
	if closeErr != nil {
		return db.failed("save", filename, db.Store.Fail(store.ShortIO, "Save failed (close)", closeErr))
	}

	db.log.Info("saved",
		zap.String("file", filename),
		zap.Int("pages", db.Store.Count()),
	)
	return nil
}

// WriteHTML renders the table as an HTML report.
func (db *Database) WriteHTML(name string) error {
	filename := db.Path(name)

	f, err := os.Create(filename)
	if err != nil {
		return db.failed("write", filename, db.Store.Fail(store.NotOpen, "Write failed", err))
	}
	defer f.Close()

	err = report.WriteHTML(f, db.Store.Scan())
	if err != nil {
		return db.failed("write", filename, db.Store.Fail(store.ShortIO, "Write failed (report)", err))
	}

	db.Store.Succeed()
	return nil
}

type export struct {
	Labels  [3]string      `json:"labels"`
	Records []store.Record `json:"records"`
}

// Export writes the labels and every non-empty record as JSON.
func (db *Database) Export(name string) error {
	filename := db.Path(name)

	f, err := os.Create(filename)
	if err != nil {
		return db.failed("export", filename, db.Store.Fail(store.NotOpen, "Export failed", err))
	}
	defer f.Close()

	e := export{
		Labels:  db.Store.Labels(),
		Records: []store.Record{},
	}
	rows := db.Store.Scan().NonEmpty()
	for rows.Next() {
		e.Records = append(e.Records, rows.Read())
	}

	// names arrive as raw bytes from the line source, invalid sequences
	// are exported as U+FFFD
	err = json.MarshalWrite(f, e, jsontext.WithIndent("    "), jsontext.AllowInvalidUTF8(true))
	if err != nil {
		return db.failed("export", filename, db.Store.Fail(store.ShortIO, "Export failed (encode)", err))
	}

	db.Store.Succeed()
	return nil
}

// New discards the table and starts over empty.
func (db *Database) New() {
	db.Store.Free()
}

// Close releases the table. It is called once when the process ends.
func (db *Database) Close() {
	db.Store.Free()
	db.log.Sync()
}

func (db *Database) failed(op, filename string, err error) error {
	db.log.Warn(op+" failed",
		zap.String("file", filename),
		zap.Stringer("code", db.Store.ErrCode()),
		zap.Error(err),
	)
	return fmt.Errorf("%s '%s': %w", op, filename, err)
}
