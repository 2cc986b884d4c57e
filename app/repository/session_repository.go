package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionTTL: umur sesi pegawai SIPebaru.
const SessionTTL = 24 * time.Hour

// ErrSessionNotFound dikembalikan saat token tidak dikenal / kedaluwarsa.
var ErrSessionNotFound = errors.New("sesi tidak ditemukan")

// SipebaruSession adalah isi sesi pegawai yang disimpan server-side.
// Lifecycle: write saat login, hydrate tiap request, clear saat logout.
type SipebaruSession struct {
	FID       uint      `json:"fid"`
	Nama      string    `json:"nama"`
	NPK       string    `json:"npk"`
	UnitKerja string    `json:"unitKerja"`
	LoginAt   time.Time `json:"loginAt"`
}

// SessionRepository menyimpan sesi pegawai SIPebaru di Redis.
// Konsumen hanya melihat interface ini, jadi backing store bisa diganti
// tanpa menyentuh service.
type SessionRepository interface {
	Save(ctx context.Context, token string, s *SipebaruSession) error
	Find(ctx context.Context, token string) (*SipebaruSession, error)
	Delete(ctx context.Context, token string) error
}

type sessionRepository struct {
	redis *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &sessionRepository{redis: client}
}

func sessionKey(token string) string {
	return "sipebaru:session:" + token
}

func (r *sessionRepository) Save(ctx context.Context, token string, s *SipebaruSession) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.redis.Set(ctx, sessionKey(token), payload, SessionTTL).Err()
}

func (r *sessionRepository) Find(ctx context.Context, token string) (*SipebaruSession, error) {
	payload, err := r.redis.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var s SipebaruSession
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	return r.redis.Del(ctx, sessionKey(token)).Err()
}
