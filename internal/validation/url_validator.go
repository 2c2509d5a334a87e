package validation

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("fetch_url", validateFetchURL)
	_ = validate.RegisterValidation("public_url", validatePublicURL)
}

// Validator returns the shared validator instance with the custom URL tags registered.
func Validator() *validator.Validate {
	return validate
}

// ValidateFetchURL checks that u is an absolute http(s) URL. With
// blockPrivate set, loopback, private and metadata hosts are rejected too.
func ValidateFetchURL(u string, blockPrivate bool) error {
	tag := "required,fetch_url"
	if blockPrivate {
		tag = "required,public_url"
	}
	if err := validate.Var(u, tag); err != nil {
		return fmt.Errorf("invalid URL %q: %w", u, err)
	}
	return nil
}

func parseFetchURL(urlStr string) (*url.URL, bool) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	if u.Host == "" {
		return nil, false
	}
	return u, true
}

func validateFetchURL(fl validator.FieldLevel) bool {
	_, ok := parseFetchURL(fl.Field().String())
	return ok
}

func validatePublicURL(fl validator.FieldLevel) bool {
	u, ok := parseFetchURL(fl.Field().String())
	if !ok {
		return false
	}

	host := u.Hostname()

	forbiddenHosts := []string{
		"localhost",
		"127.0.0.1",
		"::1",
		"0.0.0.0",
		"169.254.169.254",
	}

	for _, forbidden := range forbiddenHosts {
		if strings.EqualFold(host, forbidden) {
			return false
		}
	}

	if ip := net.ParseIP(host); ip != nil {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			return false
		}
	}

	return true
}
