// Package lock implements the short-lived per-room booking lock on Redis.
// The lock serializes the availability read and the reservation insert
// for one room so that two concurrent booking attempts for overlapping
// dates cannot both pass the availability check. It is a best-effort
// hardening: when Redis is down the orchestrator proceeds unguarded.
package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only when it still carries our
// token, so a lock that expired and was re-acquired by another request
// is never released from here.
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// RoomLock acquires exclusive room locks via SET NX with a TTL. The TTL
// bounds how long a crashed request can keep a room blocked.
type RoomLock struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRoomLock returns a RoomLock using the given client and lock TTL.
func NewRoomLock(rdb *redis.Client, ttl time.Duration) *RoomLock {
	return &RoomLock{rdb: rdb, ttl: ttl}
}

// Lock tries to take the lock for a room. ok=false means another booking
// currently holds it; err means Redis itself failed. The returned release
// function is safe to call exactly once and never blocks the request
// beyond a short timeout.
func (l *RoomLock) Lock(ctx context.Context, roomID uint64) (release func(), ok bool, err error) {
	key := fmt.Sprintf("booklock:room:%d", roomID)
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, false, err
	}
	token := hex.EncodeToString(buf)

	ok, err = l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	release = func() {
		// Detached context: the lock must be released even when the
		// request context has already been cancelled.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(rctx, l.rdb, []string{key}, token).Err()
	}
	return release, true, nil
}
