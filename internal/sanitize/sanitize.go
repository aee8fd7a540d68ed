// Package sanitize normalizes raw form values before they reach the store.
// The dashboard posts everything as strings, with French locale habits:
// decimal commas, "1"/"0" booleans, id lists as JSON arrays or CSV.
package sanitize

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var baliseRe = regexp.MustCompile(`<[^>]*>`)

// Texte trims, strips markup and truncates to max runes (0 = no limit).
func Texte(v string, max int) string {
	v = baliseRe.ReplaceAllString(v, "")
	v = strings.TrimSpace(v)
	if max > 0 {
		if r := []rune(v); len(r) > max {
			v = strings.TrimSpace(string(r[:max]))
		}
	}
	return v
}

// Decimal parses a locale-flexible numeric string ("10,50" or "10.50"),
// clamps to zero or above and rounds to 2 decimals. Unparseable input
// yields zero, matching how the dashboard treats blank price fields.
func Decimal(v string) decimal.Decimal {
	v = strings.TrimSpace(v)
	v = strings.ReplaceAll(v, " ", "")
	v = strings.ReplaceAll(v, ",", ".")
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(2)
}

// Entier parses an integer and clamps it to min.
func Entier(v string, min int) int {
	n := cast.ToInt(strings.TrimSpace(v))
	if n < min {
		return min
	}
	return n
}

// Booleen accepts "1", true and "true" as true; everything else is false.
func Booleen(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		s := strings.TrimSpace(strings.ToLower(t))
		return s == "1" || s == "true"
	default:
		return cast.ToBool(v)
	}
}

// ListeIDs accepts a JSON array ("[1,2]"), a comma-separated string ("1,2")
// or a native int slice and returns de-duplicated positive ids,
// order-preserving by first occurrence.
func ListeIDs(v interface{}) []uint {
	var bruts []int

	switch t := v.(type) {
	case []uint:
		return dedupliquer(t)
	case []int:
		bruts = t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if strings.HasPrefix(s, "[") {
			if err := json.Unmarshal([]byte(s), &bruts); err != nil {
				return nil
			}
		} else {
			for _, part := range strings.Split(s, ",") {
				bruts = append(bruts, cast.ToInt(strings.TrimSpace(part)))
			}
		}
	default:
		return nil
	}

	ids := make([]uint, 0, len(bruts))
	for _, n := range bruts {
		if n > 0 {
			ids = append(ids, uint(n))
		}
	}
	return dedupliquer(ids)
}

func dedupliquer(ids []uint) []uint {
	vus := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := vus[id]; ok {
			continue
		}
		vus[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
