package geo

import (
	"math"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
)

// Bucket classifies the average speed of a trail segment.
type Bucket int

const (
	BucketLow Bucket = iota // below 60, not scored
	Bucket60to80
	Bucket80to100
	Bucket100Plus
)

func (b Bucket) String() string {
	switch b {
	case Bucket60to80:
		return "60-80"
	case Bucket80to100:
		return "80-100"
	case Bucket100Plus:
		return "100+"
	}
	return "low"
}

// pointsPerKm is the weight applied to each bucket's whole kilometres.
var pointsPerKm = map[Bucket]int{
	Bucket60to80:  1,
	Bucket80to100: 2,
	Bucket100Plus: 5,
}

// SpeedBucket maps an average speed onto its scoring bucket.
func SpeedBucket(avgSpeed float64) Bucket {
	switch {
	case avgSpeed < 60:
		return BucketLow
	case avgSpeed < 80:
		return Bucket60to80
	case avgSpeed < 100:
		return Bucket80to100
	default:
		return Bucket100Plus
	}
}

// Breakdown is the per-bucket distance of a scored trail.
type Breakdown struct {
	Km60to80  float64
	Km80to100 float64
	Km100Plus float64
	Points    int
}

// ScoreTrail returns the reward points for an ordered trail.
func ScoreTrail(samples []domain.TelemetrySample) int {
	return ScoreBreakdown(samples).Points
}

// ScoreBreakdown walks adjacent sample pairs, floors their average speed,
// and accumulates the segment distance into the matching bucket. Each bucket
// total is truncated to whole kilometres before weighting; truncating per
// segment instead would change scores.
func ScoreBreakdown(samples []domain.TelemetrySample) Breakdown {
	var km [4]float64
	for i := 0; i+1 < len(samples); i++ {
		avg := math.Floor((samples[i].Speed + samples[i+1].Speed) / 2)
		b := SpeedBucket(avg)
		if b == BucketLow {
			continue
		}
		km[b] += DistanceKm(samples[i].Point, samples[i+1].Point)
	}

	out := Breakdown{
		Km60to80:  km[Bucket60to80],
		Km80to100: km[Bucket80to100],
		Km100Plus: km[Bucket100Plus],
	}
	for b, weight := range pointsPerKm {
		out.Points += int(math.Floor(km[b])) * weight
	}
	return out
}
