// Package store connects to the data store and manages paused and completed
// sessions
package store

import (
	"bytes"
	"errors"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/blinkrail/blinkrail/internal/osutil"
	"github.com/blinkrail/blinkrail/internal/session"
	"github.com/blinkrail/blinkrail/internal/timeutil"
)

const (
	sessionBucket = "sessions"
	pausedBucket  = "paused"
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// sessionKey orders archived sessions by start time. The id keeps sessions
// that started in the same instant apart.
func sessionKey(sess *session.Session) ([]byte, error) {
	startedAt, ok := sess.StartedAt()
	if !ok {
		return nil, errSessionNotStarted.Fmt(sess.ID())
	}

	return append(timeutil.ToKey(startedAt), []byte(sess.ID())...), nil
}

func (c *Client) SaveSession(sess *session.Session) error {
	key, err := sessionKey(sess)
	if err != nil {
		return err
	}

	value, err := sess.MarshalJSON()
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Put(key, value)
	})
}

func (c *Client) GetSessions(
	since, until time.Time,
	opts ...session.Option,
) ([]*session.Session, error) {
	var result []*session.Session

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()

		minKey := timeutil.ToKey(since)
		maxKey := timeutil.ToKey(until)

		for k, v := cur.Seek(minKey); k != nil; k, v = cur.Next() {
			if len(k) < len(maxKey) ||
				bytes.Compare(k[:len(maxKey)], maxKey) > 0 {
				break
			}

			sess, err := session.Decode(v, opts...)
			if err != nil {
				return errCorruptSession.Fmt(k).Wrap(err)
			}

			result = append(result, sess)
		}

		return nil
	})

	return result, err
}

func (c *Client) SavePaused(sess *session.Session) error {
	value, err := sess.MarshalJSON()
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(pausedBucket)).Put([]byte(sess.ID()), value)
	})
}

func (c *Client) PausedSessions(
	opts ...session.Option,
) ([]*session.Session, error) {
	var result []*session.Session

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(pausedBucket)).ForEach(func(k, v []byte) error {
			sess, err := session.Decode(v, opts...)
			if err != nil {
				return errCorruptSession.Fmt(k).Wrap(err)
			}

			result = append(result, sess)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, ErrNoPausedSession
	}

	slices.SortStableFunc(result, func(a, b *session.Session) int {
		ta, _ := a.StartedAt()
		tb, _ := b.StartedAt()

		return tb.Compare(ta)
	})

	return result, nil
}

func (c *Client) DeletePaused(id string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(pausedBucket)).Delete([]byte(id))
	})
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	db, err := bolt.Open(
		pathToDB,
		osutil.FilePermission,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errBlinkrailRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{sessionBucket, pausedBucket} {
			_, err := tx.CreateBucketIfNotExists([]byte(name))
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
