package repo

const (
	tableMerchants     = "merchants"
	tableUsers         = "users"
	tableCoupons       = "coupons"
	tableRegistrations = "device_registrations"
)

const (
	colID              = "id"
	colName            = "name"
	colOffer           = "offer"
	colAddress         = "address"
	colLatitude        = "latitude"
	colLongitude       = "longitude"
	colBrandColor      = "brand_color"
	colContent         = "content"
	colWalletMessage   = "wallet_message"
	colWalletExpiresAt = "wallet_expires_at"
	colUpdatedAt       = "updated_at"
	colCreatedAt       = "created_at"
	colDisplayName     = "display_name"
	colSerialNumber    = "serial_number"
	colMerchantID      = "merchant_id"
	colUserID          = "user_id"
	colOfferText       = "offer_text"
	colExpiresAt       = "expires_at"
	colAuthToken       = "auth_token"
	colDeviceID        = "device_id"
	colPassTypeID      = "pass_type_id"
	colPushToken       = "push_token"
)
