package service

// QRCodeService defines the interface for QR code generation
type QRCodeService interface {
	// GenerateProfileQR generates a PNG QR code pointing at the public profile of username
	GenerateProfileQR(username string) ([]byte, error)
}
