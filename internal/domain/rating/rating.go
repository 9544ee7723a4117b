// Package rating maps a circle score to the thresholds used by the display
// layer: message text, colour tier and the celebration overlay.
package rating

// Tier is the colour band a score is shown in.
type Tier string

// Colour tiers.
const (
	TierGreen  Tier = "green"
	TierYellow Tier = "yellow"
	TierOrange Tier = "orange"
	TierRed    Tier = "red"
)

// CelebrateThreshold is the lowest score that triggers the celebration overlay.
const CelebrateThreshold = 90

// Rating is the presentation verdict for one score.
type Rating struct {
	Score     int    `json:"score"`
	Message   string `json:"message"`
	Tier      Tier   `json:"tier"`
	Celebrate bool   `json:"celebrate"`
}

type band struct {
	min     int
	message string
}

// Ordered highest first; the first band whose min the score reaches wins.
var messages = []band{
	{95, "Perfect!"},
	{90, "Amazing!"},
	{80, "Great job!"},
	{70, "Pretty good!"},
	{50, "Not bad!"},
	{30, "Keep practicing!"},
}

const fallbackMessage = "Try again!"

// Of returns the rating for score.
func Of(score int) Rating {
	return Rating{
		Score:     score,
		Message:   Message(score),
		Tier:      TierOf(score),
		Celebrate: score >= CelebrateThreshold,
	}
}

// Message returns the feedback line for score.
func Message(score int) string {
	for _, b := range messages {
		if score >= b.min {
			return b.message
		}
	}
	return fallbackMessage
}

// TierOf returns the colour tier for score.
func TierOf(score int) Tier {
	switch {
	case score >= 90:
		return TierGreen
	case score >= 70:
		return TierYellow
	case score >= 50:
		return TierOrange
	default:
		return TierRed
	}
}
