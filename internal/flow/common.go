package flow

// Outcome classifies how a client operation ended. Every outcome other than
// Failed is an expected, user-facing result.
type Outcome int

const (
	Created Outcome = iota
	Found
	Invalid   // input failed the record rules; nothing was stored
	Duplicate // client_id already present; the stored record is untouched
	NotFound  // no record for the requested client_id
	Failed    // unexpected store error
)

var OutcomeTextMap = map[Outcome]string{
	Created:   "created",
	Found:     "found",
	Invalid:   "invalid",
	Duplicate: "duplicate",
	NotFound:  "not_found",
	Failed:    "failed",
}

func (o Outcome) String() string {
	return OutcomeTextMap[o]
}
