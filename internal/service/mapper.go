package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/util"
)

const (
	defaultMerchantName = "Local Merchant"
	defaultOffer        = "Special offer"
	defaultCustomer     = "Customer"
	defaultBackground   = "rgb(220,38,38)"
	defaultForeground   = "rgb(255,255,255)"
)

// Descriptor собирает описание пасса по серийнику. Если у купона ещё нет токена,
// он выпускается условной записью: при гонке все получают победившее значение.
func (s *Service) Descriptor(ctx context.Context, serial string) (*models.Pass, time.Time, error) {
	bundle, err := s.store.GetCoupon(ctx, serial)
	if err != nil {
		return nil, time.Time{}, err
	}
	token := bundle.Coupon.AuthToken
	if token == "" {
		token, err = s.store.EnsureAuthToken(ctx, serial, s.tokens.NewToken())
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("ensure auth token: %w", err)
		}
		bundle.Coupon.AuthToken = token
	}
	return s.mapPass(bundle), bundle.LastUpdated(), nil
}

// merchantView — поля мерчанта после разрешения фолбэков
type merchantView struct {
	name     string
	offer    string
	address  string
	color    string
	message  string
	location *models.Location
	expires  *time.Time
}

func (s *Service) resolveMerchant(b models.CouponBundle) merchantView {
	m := b.Merchant
	if m == nil {
		m = &models.Merchant{}
	}
	c := m.Content

	v := merchantView{
		name: util.FirstNonEmpty(util.FirstNonEmpty(defaultMerchantName, s.opts.Style.OrganizationName),
			m.Name, util.Lookup(c, "name"), util.Lookup(c, "business", "name")),
		offer: util.FirstNonEmpty(defaultOffer,
			b.Coupon.OfferText, m.Offer, util.Lookup(c, "offer", "title"), util.Lookup(c, "offer")),
		address: util.FirstNonEmpty("",
			m.Address, util.Lookup(c, "address"), util.Lookup(c, "location", "address")),
		message: m.WalletMessage,
	}

	v.color = util.FirstNonEmpty(defaultBackground, s.opts.Style.BackgroundColor)
	for _, candidate := range []string{m.BrandColor, util.Lookup(c, "brand", "color"), util.Lookup(c, "brandColor")} {
		if rgb, ok := util.NormalizeColor(candidate); ok {
			v.color = rgb
			break
		}
	}

	if m.Latitude != nil && m.Longitude != nil {
		v.location = &models.Location{Latitude: *m.Latitude, Longitude: *m.Longitude}
	} else if lat, ok := util.LookupFloat(c, "location", "lat"); ok {
		if lng, ok := util.LookupFloat(c, "location", "lng"); ok {
			v.location = &models.Location{Latitude: lat, Longitude: lng}
		}
	}
	if v.location != nil {
		v.location.RelevantText = fmt.Sprintf("%s at %s", v.offer, v.name)
	}

	v.expires = b.Coupon.ExpiresAt
	if m.WalletExpiresAt != nil {
		v.expires = m.WalletExpiresAt
	}
	return v
}

func (s *Service) mapPass(b models.CouponBundle) *models.Pass {
	v := s.resolveMerchant(b)
	userName := defaultCustomer
	if b.User != nil {
		userName = util.FirstNonEmpty(defaultCustomer, b.User.DisplayName)
	}
	serial := b.Coupon.SerialNumber
	style := s.opts.Style

	barcode := models.Barcode{
		Message:         serial,
		Format:          models.BarcodeFormatQR,
		MessageEncoding: models.BarcodeEncodingLatin,
		AltText:         serial,
	}
	p := &models.Pass{
		FormatVersion:       1,
		PassTypeIdentifier:  s.opts.PassTypeID,
		SerialNumber:        serial,
		TeamIdentifier:      s.opts.TeamID,
		OrganizationName:    v.name,
		Description:         util.FirstNonEmpty(v.name+" coupon", style.Description),
		LogoText:            util.FirstNonEmpty(v.name, style.LogoText),
		ForegroundColor:     util.FirstNonEmpty(defaultForeground, style.ForegroundColor),
		BackgroundColor:     v.color,
		LabelColor:          util.FirstNonEmpty(defaultForeground, style.LabelColor, style.ForegroundColor),
		WebServiceURL:       s.opts.WebServiceURL,
		AuthenticationToken: b.Coupon.AuthToken,
		Barcode:             &barcode,
		Barcodes:            []models.Barcode{barcode},
		Coupon:              &models.Structure{},
	}
	if v.expires != nil {
		p.ExpirationDate = v.expires.UTC().Format(time.RFC3339)
	}
	if v.location != nil {
		p.Locations = []models.Location{*v.location}
	}

	st := p.Coupon
	st.PrimaryFields = []models.Field{{Key: "offer", Label: "OFFER", Value: v.offer}}
	st.SecondaryFields = []models.Field{{Key: "merchant", Label: "MERCHANT", Value: v.name}}
	if v.address != "" {
		st.SecondaryFields = append(st.SecondaryFields, models.Field{Key: "address", Label: "ADDRESS", Value: v.address})
	}
	st.AuxiliaryFields = []models.Field{{Key: "customer", Label: "CUSTOMER", Value: userName}}
	if v.expires != nil {
		st.AuxiliaryFields = append(st.AuxiliaryFields, models.Field{
			Key: "expires", Label: "EXPIRES", Value: v.expires.UTC().Format("Jan 2, 2006"), ChangeMessage: "Now expires %@",
		})
	}
	// the field is always present so Wallet can show a change banner on the first broadcast
	st.BackFields = []models.Field{
		{Key: models.FieldKeyWalletMessage, Label: "UPDATE", Value: v.message, ChangeMessage: "%@"},
		{Key: "code", Label: "REDEMPTION CODE", Value: serial},
	}
	if style.Terms != "" {
		st.BackFields = append(st.BackFields, models.Field{Key: "terms", Label: "TERMS", Value: style.Terms})
	}
	return p
}
