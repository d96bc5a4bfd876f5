package playerbar

import "strconv"

// speedText renders a non-normal playback speed as "1.5×". Normal and
// unknown speeds render as "".
func speedText(speed float64) string {
	if speed <= 0 || speed == 1 {
		return ""
	}
	return strconv.FormatFloat(speed, 'f', -1, 64) + "×"
}
