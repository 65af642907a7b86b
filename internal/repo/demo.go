package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

// DemoSerial — код купона из демо-набора
const DemoSerial = "HOTP-A1B2"

// Demo — мерчант, пользователь и купон для локального запуска
type Demo struct {
	Merchant models.Merchant
	User     models.User
	Coupon   models.Coupon
}

func DemoData() Demo {
	expires := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return Demo{
		Merchant: models.Merchant{
			ID:         "merchant-hotpot-757",
			Name:       "Hot Pot 757",
			Offer:      "10% off your table",
			Address:    "1042 Temple Ave",
			BrandColor: "#b91c1c",
		},
		User:   models.User{ID: "user-demo", DisplayName: "Demo Customer"},
		Coupon: models.Coupon{SerialNumber: DemoSerial, MerchantID: "merchant-hotpot-757", UserID: "user-demo", ExpiresAt: &expires},
	}
}

// SeedMemory кладёт демо-набор в MemoryStore
func (d Demo) SeedMemory(s *MemoryStore) {
	s.PutMerchant(d.Merchant)
	s.PutUser(d.User)
	s.PutCoupon(d.Coupon)
}

// SeedPostgres — идемпотентная вставка демо-набора
func (d Demo) SeedPostgres(ctx context.Context, pool *pgxpool.Pool) error {
	m := d.Merchant
	_, err := pool.Exec(ctx, `INSERT INTO `+tableMerchants+` (`+colID+`, `+colName+`, `+colOffer+`, `+colAddress+`, `+colBrandColor+`)
VALUES ($1,$2,$3,$4,$5) ON CONFLICT (`+colID+`) DO NOTHING`, m.ID, m.Name, m.Offer, m.Address, m.BrandColor)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `INSERT INTO `+tableUsers+` (`+colID+`, `+colDisplayName+`) VALUES ($1,$2) ON CONFLICT (`+colID+`) DO NOTHING`,
		d.User.ID, d.User.DisplayName)
	if err != nil {
		return err
	}
	c := d.Coupon
	_, err = pool.Exec(ctx, `INSERT INTO `+tableCoupons+` (`+colSerialNumber+`, `+colMerchantID+`, `+colUserID+`, `+colExpiresAt+`)
VALUES ($1,$2,$3,$4) ON CONFLICT (`+colSerialNumber+`) DO NOTHING`, c.SerialNumber, c.MerchantID, c.UserID, c.ExpiresAt)
	return err
}
