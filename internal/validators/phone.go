package validators

import (
	"regexp"
	"strings"
)

// + opcional, um dígito e depois pelo menos 7 dígitos, espaços ou hífens.
var phonePattern = regexp.MustCompile(`^\+?\d[\d\s\-]{7,}$`)

func NormalizePhone(raw string) string {
	return strings.TrimSpace(raw)
}

func IsPhoneValid(raw string) bool {
	return phonePattern.MatchString(NormalizePhone(raw))
}
