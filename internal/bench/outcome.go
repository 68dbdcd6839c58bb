package bench

// FailureKind classifies why a single sample failed.
type FailureKind int

const (
	// FailureNone marks a successful sample.
	FailureNone FailureKind = iota
	// FailureInvalidInput means the input token could not be turned into a
	// request (unparseable txid, undecodable address). No call was made.
	FailureInvalidInput
	// FailureRemote means the server or the network returned an error.
	FailureRemote
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "ok"
	case FailureInvalidInput:
		return "invalid input"
	case FailureRemote:
		return "remote error"
	default:
		return "unknown"
	}
}

// Outcome is the result of one operation on one input.
type Outcome struct {
	// Detail is a short diagnostic description of a success. It is only
	// logged, never aggregated.
	Detail string
	Kind   FailureKind
	Err    error
}

// Success builds a successful outcome.
func Success(detail string) Outcome {
	return Outcome{Detail: detail}
}

// InvalidInput builds a failure for an input that could not be parsed.
func InvalidInput(err error) Outcome {
	return Outcome{Kind: FailureInvalidInput, Err: err}
}

// RemoteFailure builds a failure for an error returned by the remote call.
func RemoteFailure(err error) Outcome {
	return Outcome{Kind: FailureRemote, Err: err}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool { return o.Kind == FailureNone }
