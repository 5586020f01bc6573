package config

import (
	"encoding/base64"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

var ErrInvalidIcon = errors.New("branding icon is not an image")

// ResolveIcon returns icon as data URI. data: and http(s) URIs are returned
// unchanged, anything else is read as image file.
func ResolveIcon(icon string) (string, error) {
	if icon == "" || strings.HasPrefix(icon, "data:") ||
		strings.HasPrefix(icon, "https://") || strings.HasPrefix(icon, "http://") {
		return icon, nil
	}

	raw, err := os.ReadFile(icon)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read branding icon %s", icon)
	}

	mime := mimetype.Detect(raw)
	// drop parameters such as charset
	contentType, _, _ := strings.Cut(mime.String(), ";")

	if !strings.HasPrefix(contentType, "image/") {
		// svg with a leading xml prolog is detected as text/xml
		if !mime.Is("text/xml") || !strings.Contains(string(raw), "<svg") {
			return "", errors.Wrapf(ErrInvalidIcon, "%s: %s", icon, mime.String())
		}
		contentType = "image/svg+xml"
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

// ResolveBrandingIcon replaces a branding icon file path by its data URI.
func (w *Wallet) ResolveBrandingIcon() error {
	icon, err := ResolveIcon(w.Branding.Icon)
	if err != nil {
		return err
	}
	w.Branding.Icon = icon

	return nil
}
