package school

import (
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/msms/core"
)

var (
	weekdayTag  = "weekday"
	weekdayText = "{0} must be a day of the week"

	clockTag    = "clock"
	clockText   = "{0} must be a 24h time like 16:30"
	clockLayout = "15:04"

	statusTag  = "status"
	statusText = "{0} must be one of present, late or absent"

	finiteTag  = "finite"
	finiteText = "{0} must be a finite number"
)

// register custom validators
func init() {
	_ = core.Validate.RegisterValidation(weekdayTag, weekdayValidation)
	core.RegisterCustomTranslation(weekdayTag, weekdayText)

	_ = core.Validate.RegisterValidation(clockTag, clockValidation)
	core.RegisterCustomTranslation(clockTag, clockText)

	_ = core.Validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(statusTag, statusText)

	_ = core.Validate.RegisterValidation(finiteTag, finiteValidation)
	core.RegisterCustomTranslation(finiteTag, finiteText)
}

// Custom Validators

func weekdayValidation(fl validator.FieldLevel) bool {
	day := fl.Field().String()
	for _, wd := range Weekdays {
		if day == wd {
			return true
		}
	}
	return false
}

func clockValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(clockLayout, fl.Field().String())
	return err == nil
}

func statusValidation(fl validator.FieldLevel) bool {
	status := fl.Field().String()
	for _, s := range AllStatuses {
		if status == s {
			return true
		}
	}
	return false
}

func finiteValidation(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// canonicalDay maps any casing of a weekday name to its canonical form ("monday" -> "Monday").
// Unknown values are only trimmed.
func canonicalDay(day string) string {
	day = core.CleanString(day)
	for _, wd := range Weekdays {
		if strings.EqualFold(day, wd) {
			return wd
		}
	}
	return day
}

// normalizeClock zero-pads a valid time ("9:05" -> "09:05").
func normalizeClock(s string) string {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return s
	}
	return t.Format(clockLayout)
}
