package models

// Pass — содержимое pass.json (Apple Wallet, стиль coupon)
type Pass struct {
	FormatVersion       int        `json:"formatVersion"`
	PassTypeIdentifier  string     `json:"passTypeIdentifier"`
	SerialNumber        string     `json:"serialNumber"`
	TeamIdentifier      string     `json:"teamIdentifier"`
	OrganizationName    string     `json:"organizationName"`
	Description         string     `json:"description"`
	LogoText            string     `json:"logoText,omitempty"`
	ForegroundColor     string     `json:"foregroundColor,omitempty"`
	BackgroundColor     string     `json:"backgroundColor,omitempty"`
	LabelColor          string     `json:"labelColor,omitempty"`
	ExpirationDate      string     `json:"expirationDate,omitempty"`
	WebServiceURL       string     `json:"webServiceURL,omitempty"`
	AuthenticationToken string     `json:"authenticationToken,omitempty"`
	Barcode             *Barcode   `json:"barcode,omitempty"`
	Barcodes            []Barcode  `json:"barcodes,omitempty"`
	Locations           []Location `json:"locations,omitempty"`
	Coupon              *Structure `json:"coupon,omitempty"`
}

type Barcode struct {
	Message         string `json:"message"`
	Format          string `json:"format"`
	MessageEncoding string `json:"messageEncoding"`
	AltText         string `json:"altText,omitempty"`
}

const (
	BarcodeFormatQR      = "PKBarcodeFormatQR"
	BarcodeEncodingLatin = "iso-8859-1"
)

// Location — точка релевантности для показа на экране блокировки
type Location struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RelevantText string  `json:"relevantText,omitempty"`
}

type Structure struct {
	HeaderFields    []Field `json:"headerFields,omitempty"`
	PrimaryFields   []Field `json:"primaryFields,omitempty"`
	SecondaryFields []Field `json:"secondaryFields,omitempty"`
	AuxiliaryFields []Field `json:"auxiliaryFields,omitempty"`
	BackFields      []Field `json:"backFields,omitempty"`
}

type Field struct {
	Key           string `json:"key"`
	Label         string `json:"label,omitempty"`
	Value         string `json:"value"`
	ChangeMessage string `json:"changeMessage,omitempty"`
}

// FieldKeyWalletMessage — ключ поля с сообщением мерчанта
const FieldKeyWalletMessage = "walletMessage"

// WalletMessage возвращает текущее сообщение мерчанта, встроенное в пасс
func (p Pass) WalletMessage() string {
	if p.Coupon == nil {
		return ""
	}
	for _, set := range [][]Field{p.Coupon.BackFields, p.Coupon.AuxiliaryFields, p.Coupon.SecondaryFields} {
		for _, f := range set {
			if f.Key == FieldKeyWalletMessage {
				return f.Value
			}
		}
	}
	return ""
}

// PassStyle — оформление пассов, общее для деплоя
type PassStyle struct {
	OrganizationName string `yaml:"organization_name"`
	Description      string `yaml:"description"`
	LogoText         string `yaml:"logo_text"`
	ForegroundColor  string `yaml:"foreground_color"`
	BackgroundColor  string `yaml:"background_color"`
	LabelColor       string `yaml:"label_color"`
	Terms            string `yaml:"terms"`
}
