package stellar

import (
	"math"
	"time"
)

// masPerLightYear converts a parallax in milliarcseconds directly to a
// distance in light years: ly = masPerLightYear / parallax_mas.
const masPerLightYear = 3261.56

// kmPerLightYear is used to project radial motion onto the line-of-sight
// distance.
const kmPerLightYear = 9.4607e12

const secondsPerJulianYear = 365.25 * 86400

// Rating grades an estimate by the relative parallax error.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingVeryGood  Rating = "very good"
	RatingGood      Rating = "good"
	RatingModerate  Rating = "moderate"
	RatingUncertain Rating = "uncertain"
)

// Estimate is the distance derived from one catalog record at one instant.
type Estimate struct {
	Star       Record
	LightYears float64
	// RangeMin and RangeMax bound the distance at one sigma of relative
	// parallax error, symmetric around the point estimate.
	RangeMin float64
	RangeMax float64
	Rating   Rating
	// Motion reports whether the star is approaching or receding, from the
	// sign of its catalog radial velocity.
	Motion string
	// ProperMotionMasYr is the total on-sky motion.
	ProperMotionMasYr float64
	// RadialAdjustLy is the line-of-sight distance change accumulated
	// between the astrometry epoch and the requested instant. Negative
	// means the star has moved closer.
	RadialAdjustLy float64
}

// Estimator converts catalog parallaxes into distances.
type Estimator struct {
	catalog *Catalog
}

// NewEstimator wraps a loaded catalog.
func NewEstimator(catalog *Catalog) *Estimator {
	return &Estimator{catalog: catalog}
}

// Catalog exposes the underlying catalog.
func (e *Estimator) Catalog() *Catalog {
	return e.catalog
}

// Estimate computes the distance to the identified star as of the given
// instant. The second return reports whether the id was found.
func (e *Estimator) Estimate(id string, at time.Time) (Estimate, bool) {
	rec, ok := e.catalog.Lookup(id)
	if !ok {
		return Estimate{}, false
	}
	return estimate(rec, at), true
}

func estimate(rec Record, at time.Time) Estimate {
	ly := masPerLightYear / rec.ParallaxMas
	relErr := rec.ParallaxErrorMas / rec.ParallaxMas

	years := at.Sub(rec.Epoch).Seconds() / secondsPerJulianYear
	radialKm := rec.RadialVelocity * secondsPerJulianYear * years

	return Estimate{
		Star:              rec,
		LightYears:        ly,
		RangeMin:          ly * (1 - relErr),
		RangeMax:          ly * (1 + relErr),
		Rating:            rate(relErr),
		Motion:            motion(rec.RadialVelocity),
		ProperMotionMasYr: math.Hypot(rec.PMRAMasYr, rec.PMDecMasYr),
		RadialAdjustLy:    radialKm / kmPerLightYear,
	}
}

// motion classifies the line-of-sight direction; negative radial velocity
// means the star is moving toward us.
func motion(radialVelocityKmS float64) string {
	switch {
	case radialVelocityKmS < 0:
		return "approaching"
	case radialVelocityKmS > 0:
		return "receding"
	default:
		return "stationary"
	}
}

// rate maps the relative parallax error onto the quality scale.
func rate(relErr float64) Rating {
	switch {
	case relErr < 0.001:
		return RatingExcellent
	case relErr < 0.01:
		return RatingVeryGood
	case relErr < 0.05:
		return RatingGood
	case relErr < 0.20:
		return RatingModerate
	default:
		return RatingUncertain
	}
}
