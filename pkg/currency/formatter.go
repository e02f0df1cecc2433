package currency

import "fmt"

const symbol = "Rs."

// FormatCents renders an amount held in cents, e.g. 170050 -> "Rs. 1,700.50".
func FormatCents(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	whole := addThousandsSeparator(fmt.Sprintf("%d", cents/100), ",")
	result := fmt.Sprintf("%s %s.%02d", symbol, whole, cents%100)
	if negative {
		result = "-" + result
	}

	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
