package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jotapp/jot/internal/jot/domain"
	"github.com/jotapp/jot/internal/jot/store"
)

type deviceChallengesRepo struct {
	q dbtx
}

func (r *deviceChallengesRepo) CreateDeviceChallenge(ctx context.Context, deviceCode string, expireDate time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO device_challenges (device_code, token, expire_date, created_at)
		 VALUES (?, NULL, ?, ?)`,
		deviceCode, expireDate.Unix(), time.Now().Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// AttachToken only matches rows that are still live: the expire_date
// predicate keeps a challenge from being fulfilled after it has logically
// expired. The single UPDATE is the only synchronization; two concurrent
// attaches for one code race at the row and the last writer wins.
func (r *deviceChallengesRepo) AttachToken(ctx context.Context, deviceCode, token string, now time.Time) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE device_challenges SET token = ? WHERE device_code = ? AND expire_date > ?`,
		token, deviceCode, now.Unix())
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *deviceChallengesRepo) GetActiveDeviceChallenge(ctx context.Context, deviceCode string, now time.Time) (domain.DeviceChallenge, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, device_code, token, expire_date, created_at
		 FROM device_challenges
		 WHERE device_code = ? AND expire_date > ?`,
		deviceCode, now.Unix())

	var (
		c          domain.DeviceChallenge
		token      sql.NullString
		expireDate int64
		createdAt  int64
	)
	if err := row.Scan(&c.ID, &c.DeviceCode, &token, &expireDate, &createdAt); err != nil {
		return domain.DeviceChallenge{}, mapNotFound(err)
	}

	if token.Valid {
		c.Token = &token.String
	}
	c.ExpireDate = time.Unix(expireDate, 0).UTC()
	c.CreatedAt = time.Unix(createdAt, 0).UTC()
	return c, nil
}

func (r *deviceChallengesRepo) DeleteDeviceChallenge(ctx context.Context, deviceCode string) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM device_challenges WHERE device_code = ?`, deviceCode)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *deviceChallengesRepo) DeleteExpiredDeviceChallenges(ctx context.Context, now time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM device_challenges WHERE expire_date <= ?`, now.Unix())
	return err
}
