package services

// maskPhone stars every digit except the last four, keeping separators, so
// public payloads never expose a full contact number.
func maskPhone(phone string) string {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits <= 4 {
		return phone
	}
	toMask := digits - 4
	out := []rune(phone)
	for i, r := range out {
		if toMask == 0 {
			break
		}
		if r >= '0' && r <= '9' {
			out[i] = '*'
			toMask--
		}
	}
	return string(out)
}
