package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

// Store — адаптер Postgres, реализующий service.Store
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

var selectCoupon = `SELECT c.` + colSerialNumber + `, c.` + colMerchantID + `, c.` + colUserID + `, c.` + colOfferText + `, c.` +
	colExpiresAt + `, c.` + colAuthToken + `, c.` + colUpdatedAt + `,
       m.` + colID + `, m.` + colName + `, m.` + colOffer + `, m.` + colAddress + `, m.` + colLatitude + `, m.` + colLongitude + `, m.` +
	colBrandColor + `, m.` + colContent + `, m.` + colWalletMessage + `, m.` + colWalletExpiresAt + `, m.` + colUpdatedAt + `,
       u.` + colID + `, u.` + colDisplayName + `
  FROM ` + tableCoupons + ` c
  LEFT JOIN ` + tableMerchants + ` m ON m.` + colID + ` = c.` + colMerchantID + `
  LEFT JOIN ` + tableUsers + ` u ON u.` + colID + ` = c.` + colUserID + `
 WHERE c.` + colSerialNumber + ` = $1`

// GetCoupon — купон с мерчантом и пользователем; service.ErrNotFound, если купона нет
func (s *Store) GetCoupon(ctx context.Context, serial string) (models.CouponBundle, error) {
	var (
		c                                         models.Coupon
		merchantID, userID, offerText, authToken  *string
		mID, mName, mOffer, mAddress, mColor, mMsg *string
		mLat, mLng                                *float64
		mContent                                  []byte
		mWalletExp, mUpdated                      *time.Time
		uID, uName                                *string
	)
	err := s.pool.QueryRow(ctx, selectCoupon, serial).Scan(
		&c.SerialNumber, &merchantID, &userID, &offerText, &c.ExpiresAt, &authToken, &c.UpdatedAt,
		&mID, &mName, &mOffer, &mAddress, &mLat, &mLng, &mColor, &mContent, &mMsg, &mWalletExp, &mUpdated,
		&uID, &uName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.CouponBundle{}, service.ErrNotFound
		}
		return models.CouponBundle{}, err
	}
	c.MerchantID = deref(merchantID)
	c.UserID = deref(userID)
	c.OfferText = deref(offerText)
	c.AuthToken = deref(authToken)

	b := models.CouponBundle{Coupon: c}
	if mID != nil {
		m := &models.Merchant{
			ID:              *mID,
			Name:            deref(mName),
			Offer:           deref(mOffer),
			Address:         deref(mAddress),
			Latitude:        mLat,
			Longitude:       mLng,
			BrandColor:      deref(mColor),
			WalletMessage:   deref(mMsg),
			WalletExpiresAt: mWalletExp,
		}
		if mUpdated != nil {
			m.UpdatedAt = *mUpdated
		}
		if len(mContent) > 0 {
			// broken content JSON degrades to structured columns only
			_ = json.Unmarshal(mContent, &m.Content)
		}
		b.Merchant = m
	}
	if uID != nil {
		b.User = &models.User{ID: *uID, DisplayName: deref(uName)}
	}
	return b, nil
}

// mintAuthTokenQuery пишет токен только в купон без токена; пустая строка платформы тоже считается отсутствием
const mintAuthTokenQuery = `UPDATE ` + tableCoupons + ` SET ` + colAuthToken + `=$2 WHERE ` + colSerialNumber + `=$1 AND (` +
	colAuthToken + ` IS NULL OR ` + colAuthToken + ` = '') RETURNING ` + colAuthToken

// EnsureAuthToken — условная запись (mintAuthTokenQuery), затем чтение победителя.
// Конкурентный UPDATE ждёт блокировку строки и перепроверяет условие, поэтому значение одно.
func (s *Store) EnsureAuthToken(ctx context.Context, serial, candidate string) (string, error) {
	var token string
	err := s.pool.QueryRow(ctx, mintAuthTokenQuery, serial, candidate).Scan(&token)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}
	var existing *string
	if err := s.pool.QueryRow(ctx, `SELECT `+colAuthToken+` FROM `+tableCoupons+` WHERE `+colSerialNumber+`=$1`, serial).Scan(&existing); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", service.ErrNotFound
		}
		return "", err
	}
	if existing == nil || *existing == "" {
		return "", errors.New("auth token vanished after conditional write")
	}
	return *existing, nil
}

// UpsertRegistration — ON CONFLICT по составному ключу; xmax=0 означает, что строка вставлена
func (s *Store) UpsertRegistration(ctx context.Context, r models.DeviceRegistration) (bool, error) {
	cmd := `INSERT INTO ` + tableRegistrations + ` (` + colDeviceID + `, ` + colPassTypeID + `, ` + colSerialNumber + `, ` + colPushToken + `, ` + colCreatedAt + `, ` + colUpdatedAt + `)
            VALUES ($1,$2,$3,$4,$5,$5)
            ON CONFLICT (` + colDeviceID + `, ` + colPassTypeID + `, ` + colSerialNumber + `)
            DO UPDATE SET ` + colPushToken + ` = EXCLUDED.` + colPushToken + `, ` + colUpdatedAt + ` = EXCLUDED.` + colUpdatedAt + `
            RETURNING (xmax = 0)`
	var inserted bool
	if err := s.pool.QueryRow(ctx, cmd, r.DeviceID, r.PassTypeID, r.SerialNumber, r.PushToken, r.UpdatedAt).Scan(&inserted); err != nil {
		return false, err
	}
	return inserted, nil
}

func (s *Store) DeleteRegistration(ctx context.Context, deviceID, passTypeID, serial string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM `+tableRegistrations+` WHERE `+colDeviceID+`=$1 AND `+colPassTypeID+`=$2 AND `+colSerialNumber+`=$3`,
		deviceID, passTypeID, serial)
	return err
}

func (s *Store) UpdatedSerials(ctx context.Context, deviceID, passTypeID string, since time.Time) ([]string, time.Time, error) {
	q := `SELECT r.` + colSerialNumber + `, GREATEST(c.` + colUpdatedAt + `, COALESCE(m.` + colUpdatedAt + `, c.` + colUpdatedAt + `)) AS changed
            FROM ` + tableRegistrations + ` r
            JOIN ` + tableCoupons + ` c ON c.` + colSerialNumber + ` = r.` + colSerialNumber + `
            LEFT JOIN ` + tableMerchants + ` m ON m.` + colID + ` = c.` + colMerchantID + `
           WHERE r.` + colDeviceID + ` = $1 AND r.` + colPassTypeID + ` = $2
             AND GREATEST(c.` + colUpdatedAt + `, COALESCE(m.` + colUpdatedAt + `, c.` + colUpdatedAt + `)) > $3
           ORDER BY r.` + colSerialNumber
	rows, err := s.pool.Query(ctx, q, deviceID, passTypeID, since)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()
	var (
		out  []string
		last time.Time
	)
	for rows.Next() {
		var (
			serial  string
			changed time.Time
		)
		if err := rows.Scan(&serial, &changed); err != nil {
			return nil, time.Time{}, err
		}
		out = append(out, serial)
		if changed.After(last) {
			last = changed
		}
	}
	return out, last, rows.Err()
}

func (s *Store) PushTokensForMerchant(ctx context.Context, merchantID, passTypeID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT r.`+colPushToken+` FROM `+tableRegistrations+` r
            JOIN `+tableCoupons+` c ON c.`+colSerialNumber+` = r.`+colSerialNumber+`
           WHERE c.`+colMerchantID+` = $1 AND r.`+colPassTypeID+` = $2
           ORDER BY 1`, merchantID, passTypeID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (s *Store) DeleteRegistrationsByPushToken(ctx context.Context, pushToken string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM `+tableRegistrations+` WHERE `+colPushToken+`=$1`, pushToken)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// UpdateWalletMessage — service.ErrNotFound, если мерчанта нет
func (s *Store) UpdateWalletMessage(ctx context.Context, merchantID, message string, expiresAt *time.Time) error {
	tag, err := s.pool.Exec(ctx, `UPDATE `+tableMerchants+` SET `+colWalletMessage+`=$2, `+colWalletExpiresAt+`=$3, `+colUpdatedAt+`=now() WHERE `+colID+`=$1`,
		merchantID, message, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
