package annotate

// Outcome classifies a detection pass by face count.
type Outcome int

const (
	OutcomeNoFace Outcome = iota
	OutcomeOneFace
	OutcomeManyFaces
)

const (
	MessageNoFace    = "Hey, there's no face in this photo. You think this is a joke?"
	MessageOneFace   = "Okay. Thank you!"
	MessageManyFaces = "Hey, there's more than one face in this photo. Bet why?"

	MessageDetectorUnavailable = "Could not set up the face detector!"
	MessageResourceNotFound    = "Could not open the selected photo."
	MessageDecodeFailure       = "Could not read the selected photo."
	MessageDetectFailure       = "Face detection failed for this photo."
)

// Summarize maps a face count to its outcome.
func Summarize(count int) Outcome {
	switch {
	case count < 1:
		return OutcomeNoFace
	case count == 1:
		return OutcomeOneFace
	default:
		return OutcomeManyFaces
	}
}

// Message returns the dialog text for the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeOneFace:
		return MessageOneFace
	case OutcomeManyFaces:
		return MessageManyFaces
	default:
		return MessageNoFace
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeNoFace:
		return "none"
	case OutcomeOneFace:
		return "one"
	case OutcomeManyFaces:
		return "many"
	default:
		return "unknown"
	}
}
