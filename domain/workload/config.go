package workload

import (
	"time"

	"github.com/go-playground/validator/v10"

	pilerr "pilot/internal/errors"
)

// WarmUpMethod selects how warm-up samples are stripped from a PI's
// unit-reading array before statistics are computed (spec.md §4.4).
type WarmUpMethod int

const (
	WarmUpNone WarmUpMethod = iota
	WarmUpFixedPercentage
	WarmUpEDM
)

// Config holds the workload-wide settings of spec.md §3's "Workload
// configuration". It is validated eagerly through go-playground/validator so
// that malformed input is rejected with ERR_WRONG_PARAM before it can
// corrupt a running session.
type Config struct {
	InitWorkAmount      uint64        `validate:"gte=0"`
	WorkAmountLimit      uint64       `validate:"gte=0"`
	AutocorrelationLimit float64      `validate:"gt=0,lte=1"`
	MinSampleSize        int          `validate:"gte=1"`
	SessionDesiredDuration time.Duration `validate:"gte=0"`
	SessionDurationLimit   time.Duration `validate:"gte=0"`
	ShortRoundThreshold    time.Duration `validate:"gte=0"`
	ShortWorkloadCheck     bool

	WarmUpMethod     WarmUpMethod `validate:"gte=0,lte=2"`
	WarmUpPercentage float64      `validate:"gte=0,lte=1"`

	WPSEnabled     bool
	WPSMustSatisfy bool

	// RequiredCIFractionOfMean and RequiredCIAbsolute implement spec.md
	// §4.7's "one of the two is active — negative means ignore".
	RequiredCIFractionOfMean float64
	RequiredCIAbsolute       float64
}

// DefaultConfig returns the settings spec.md §3 names as defaults.
func DefaultConfig() Config {
	return Config{
		AutocorrelationLimit:     0.1,
		MinSampleSize:            200,
		RequiredCIFractionOfMean: -1,
		RequiredCIAbsolute:       -1,
	}
}

var configValidator = validator.New()

// Validate runs the struct-tag validation and reports ERR_WRONG_PARAM on the
// first violation.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return pilerr.Codef(pilerr.WrongParam, "invalid workload config: %s", err.Error())
	}
	if c.RequiredCIFractionOfMean < 0 && c.RequiredCIAbsolute < 0 {
		return pilerr.Code(pilerr.WrongParam)
	}
	return nil
}

// RequiredCIWidth returns the required CI full width (not half-width) for
// the given PI mean, resolving which of the two required-CI knobs is active.
func (c Config) RequiredCIWidth(mean float64) float64 {
	if c.RequiredCIFractionOfMean >= 0 {
		return c.RequiredCIFractionOfMean * mean
	}
	return c.RequiredCIAbsolute
}
