package ledheader

import (
	"bytes"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Cache stores the encoded pixels of previously converted files keyed by
// the SHA-1 of their contents and the conversion parameters.
type Cache struct {
	db   *sql.DB
	file string
}

// NewCache opens, creating if necessary, the cache database in file.
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, newError(ErrIO, file, err)
	}
	// Serialise writers from the pipeline workers
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, kind INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, colors INTEGER NOT NULL, frames INTEGER NOT NULL, pixels BLOB NOT NULL, UNIQUE(sha1, kind, width, height, colors))"); err != nil {
		db.Close()
		return nil, newError(ErrIO, file, err)
	}

	return &Cache{
		db:   db,
		file: file,
	}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

type cacheKey struct {
	sha1          string
	kind          Kind
	width, height int
	colors        int
}

// get returns the frames stored for key. A miss returns nil frames and no
// error.
func (c *Cache) get(key cacheKey) ([][]uint32, error) {
	var frames int
	var blob []byte
	switch err := c.db.QueryRow("SELECT frames, pixels FROM asset WHERE sha1 = ? AND kind = ? AND width = ? AND height = ? AND colors = ?", key.sha1, int(key.kind), key.width, key.height, key.colors).Scan(&frames, &blob); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return decodeFrames(blob, frames, key.width*key.height)
	default:
		return nil, err
	}
}

func (c *Cache) put(key cacheKey, frames [][]uint32) error {
	blob, err := encodeFrames(frames)
	if err != nil {
		return err
	}
	if _, err := c.db.Exec("INSERT OR REPLACE INTO asset (sha1, kind, width, height, colors, frames, pixels) VALUES (?, ?, ?, ?, ?, ?, ?)", key.sha1, int(key.kind), key.width, key.height, key.colors, len(frames), blob); err != nil {
		return err
	}
	return nil
}

func encodeFrames(frames [][]uint32) ([]byte, error) {
	b := new(bytes.Buffer)
	for _, pixels := range frames {
		if err := binary.Write(b, binary.LittleEndian, pixels); err != nil {
			return nil, err
		}
	}
	if b.Len() == 0 {
		// A nil slice would be stored as NULL
		return []byte{}, nil
	}
	return b.Bytes(), nil
}

func decodeFrames(blob []byte, frames, pixels int) ([][]uint32, error) {
	if len(blob) != frames*pixels*4 {
		return nil, errors.New("cache: corrupt pixel data")
	}

	r := bytes.NewReader(blob)
	// A cached animation with no frames is still a hit
	out := make([][]uint32, frames)
	for i := range out {
		out[i] = make([]uint32, pixels)
		if err := binary.Read(r, binary.LittleEndian, out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
