package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kimchoi-jjiggae/coachMe/internal/encryption"
)

//go:embed schema.sql
var schemaFS embed.FS

const fileName = "voicejournal.db"

// ErrLocked is returned when a row was sealed but no passphrase is configured.
var ErrLocked = errors.New("entry is encrypted; set a passphrase")

// Open opens (and migrates) the journal database inside dir.
func Open(dir string) (*sql.DB, error) {
	path := filepath.Join(dir, fileName)
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	b, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := db.Exec(string(b)); err != nil {
		return errors.Join(fmt.Errorf("schema apply failed"), err)
	}
	return nil
}

// Store implements journal.LocalStore and journal.DraftStore on SQLite.
// With a non-nil encryptor, titles and contents are sealed at rest.
type Store struct {
	db  *sql.DB
	enc *encryption.Encryptor
}

func NewStore(db *sql.DB, enc *encryption.Encryptor) *Store {
	return &Store{db: db, enc: enc}
}

func (s *Store) Encrypted() bool { return s.enc != nil }

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// seal returns the stored form of title and content.
func (s *Store) seal(title, content string) (string, string, bool, error) {
	if s.enc == nil {
		return title, content, false, nil
	}
	t, err := s.enc.Encrypt(title)
	if err != nil {
		return "", "", false, fmt.Errorf("encrypt title: %w", err)
	}
	c, err := s.enc.Encrypt(content)
	if err != nil {
		return "", "", false, fmt.Errorf("encrypt content: %w", err)
	}
	return t, c, true, nil
}

func (s *Store) open(title, content string, encrypted bool) (string, string, error) {
	if !encrypted {
		return title, content, nil
	}
	if s.enc == nil {
		return "", "", ErrLocked
	}
	t, err := s.enc.Decrypt(title)
	if err != nil {
		return "", "", err
	}
	c, err := s.enc.Decrypt(content)
	if err != nil {
		return "", "", err
	}
	return t, c, nil
}
