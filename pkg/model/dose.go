package model

import (
	"fmt"
	"math"
)

// FormatDose renders a dose amount the way the registration form's stepper
// presents it: quarters and halves of a split tablet are spelled out, whole
// amounts are counted.
func FormatDose(v float64) string {
	switch v {
	case 0:
		return ""
	case 0.25:
		return "1/4 tablet"
	case 0.5:
		return "1/2 tablet"
	case 1:
		return "1 tablet"
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d tablets", int(v))
	}
	whole := int(math.Floor(v))
	if whole == 1 {
		return "1 and a half tablets"
	}
	return fmt.Sprintf("%d and a half tablets", whole)
}
