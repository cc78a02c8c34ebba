package voucher

import (
	"fmt"
	"strings"
)

var onesWords = []string{
	"", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE",
	"TEN", "ELEVEN", "TWELVE", "THIRTEEN", "FOURTEEN", "FIFTEEN", "SIXTEEN",
	"SEVENTEEN", "EIGHTEEN", "NINETEEN",
}

var tensWords = []string{
	"", "", "TWENTY", "THIRTY", "FORTY", "FIFTY", "SIXTY", "SEVENTY", "EIGHTY", "NINETY",
}

var scaleWords = []string{"", "THOUSAND", "MILLION", "BILLION"}

// AmountInWords spells out a centavo amount the way it appears on the
// written line of a check, e.g. "ONE THOUSAND TWO HUNDRED FIFTY PESOS AND
// 25/100 ONLY".
func AmountInWords(cents int64) string {
	if cents < 0 {
		cents = -cents
	}
	pesos := cents / 100
	centavos := cents % 100

	var words string
	if pesos == 0 {
		words = "ZERO"
	} else {
		words = spellInteger(pesos)
	}

	return fmt.Sprintf("%s PESOS AND %02d/100 ONLY", words, centavos)
}

func spellInteger(n int64) string {
	var groups []string
	scale := 0
	for n > 0 {
		group := n % 1000
		if group > 0 {
			part := spellGroup(int(group))
			if scaleWords[scale] != "" {
				part += " " + scaleWords[scale]
			}
			groups = append([]string{part}, groups...)
		}
		n /= 1000
		scale++
	}
	return strings.Join(groups, " ")
}

func spellGroup(n int) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100]+" HUNDRED")
		n %= 100
	}
	if n >= 20 {
		if n%10 > 0 {
			parts = append(parts, tensWords[n/10]+"-"+onesWords[n%10])
		} else {
			parts = append(parts, tensWords[n/10])
		}
	} else if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
