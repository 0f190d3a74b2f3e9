package util

import (
	"regexp"
	"strings"
)

var isoDurationRe = regexp.MustCompile(`^P(?:[\d.]+[YMWD])*T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// HumanDuration converts an ISO-8601-style interval ("PT1H2M3S") to a
// compact human string ("1h 2m 3s"). Zero or absent components are
// omitted; when nothing is present the sentinel "0s" is returned.
func HumanDuration(iso string) string {
	m := isoDurationRe.FindStringSubmatch(strings.TrimSpace(iso))
	if m == nil {
		return "0s"
	}

	var parts []string
	units := []string{"h", "m", "s"}
	for i, unit := range units {
		v := m[i+1]
		if v == "" || strings.Trim(v, "0") == "" {
			continue
		}
		parts = append(parts, strings.TrimLeft(v, "0")+unit)
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}
