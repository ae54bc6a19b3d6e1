// Package qrcode renders QR codes that point at public vendor profiles.
package qrcode

import (
	"net/url"
	"strings"

	"bazaar/config"
	"bazaar/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

type qrcodeService struct {
	baseURL              string
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a QR code service from the qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	var qrCfg config.QRCodeConfig
	if cfg.QRCode != nil {
		qrCfg = *cfg.QRCode
	}

	return newQRCodeService(qrCfg.BaseURL, qrCfg.Size, qrCfg.ErrorCorrectionLevel)
}

func newQRCodeService(baseURL string, size int, errorCorrectionLevel string) *qrcodeService {
	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}
	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		baseURL:              strings.TrimRight(baseURL, "/"),
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateProfileQR encodes <baseURL>/vender/c/<username> as a PNG.
func (s *qrcodeService) GenerateProfileQR(username string) ([]byte, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("username is required")
	}

	pngBytes, err := qrcode.Encode(s.ProfileURL(username), s.errorCorrectionLevel, s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate QR code")
	}

	return pngBytes, nil
}

// ProfileURL returns the public profile URL encoded in the QR code.
func (s *qrcodeService) ProfileURL(username string) string {
	return s.baseURL + "/vender/c/" + url.PathEscape(strings.ToLower(username))
}
