package google

import (
	"fmt"
	"strconv"
	"strings"

	"budgettracker/internal/rates"
)

// parseRateRows converts a values matrix (as returned by the Sheets API) into
// a rate document. Column A is the currency code, column B the rate. Blank
// rows, comment rows and a leading header row are skipped.
func parseRateRows(values [][]interface{}) rates.Document {
	doc := rates.Document{Success: true, Rates: map[string]float64{}}

	for _, row := range values {
		if len(row) < 2 {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(fmt.Sprint(row[0])))
		if code == "" || strings.HasPrefix(code, "#") {
			continue
		}

		rate, ok := parseRate(row[1])
		if !ok {
			// Header rows ("Code", "Rate") land here.
			continue
		}
		doc.Rates[code] = rate
	}

	return doc
}

func parseRate(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(x, ",", "."))
		rate, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return rate, true
	default:
		return 0, false
	}
}
