package domain

// SignalKind discriminates the three relayed negotiation message kinds.
// The relay never inspects the payload behind a kind.
type SignalKind string

const (
	KindOffer     SignalKind = "offer"
	KindAnswer    SignalKind = "answer"
	KindCandidate SignalKind = "ice_candidate"
)

// PayloadKey is the JSON field the payload travels under on the wire.
// The candidate event is named ice_candidate but carries its blob as
// "candidate".
func (k SignalKind) PayloadKey() string {
	if k == KindCandidate {
		return "candidate"
	}
	return string(k)
}

// DefaultMediaErrorMessage is echoed back when a client reports a media
// failure without a message of its own.
const DefaultMediaErrorMessage = "Media error occurred."
