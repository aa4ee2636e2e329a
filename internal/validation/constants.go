package validation

import "regexp"

const (
	// Amount limits
	MinRechargeAmount = 1.00
	MaxRechargeAmount = 1000000.00

	// Password requirements
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// String lengths
	MaxNameLength    = 100
	MaxDetailsLength = 255
	MaxUTRLength     = 64
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// Login identifier is a bare 10-digit mobile number.
	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)
)
