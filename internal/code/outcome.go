package code

import "encoding/json"

// Kind tags an Outcome.
type Kind int

const (
	KindSuccess Kind = iota + 1
	KindRuntimeError
	KindCompileError
	KindEngineMessage
	KindNoOutput
	KindTimedOut
	KindTransportFailure
	KindCancelled
)

var kindNames = map[Kind]string{
	KindSuccess:          "success",
	KindRuntimeError:     "runtime_error",
	KindCompileError:     "compile_error",
	KindEngineMessage:    "engine_message",
	KindNoOutput:         "no_output",
	KindTimedOut:         "timed_out",
	KindTransportFailure: "transport_failure",
	KindCancelled:        "cancelled",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String. It returns 0 for unknown names.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return k
		}
	}
	return 0
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*k = ParseKind(s)
	return nil
}

// Outcome is the classified, decoded result of one run.
// Text holds the program output, the engine message or the failure reason
// depending on Kind; it is never base64.
type Outcome struct {
	Kind     Kind      `json:"outcome"`
	Text     string    `json:"output"`
	Token    JobHandle `json:"token,omitempty"`
	Attempts int       `json:"attempts"`
	// StatusID and Status echo the final engine status when one was observed.
	StatusID int    `json:"status_id,omitempty"`
	Status   string `json:"status,omitempty"`
}

// OK reports whether the program ran and printed to stdout.
func (o Outcome) OK() bool { return o.Kind == KindSuccess }

// Classify converts a finished JobStatus into an Outcome. Channels are
// checked in the fixed order stdout, stderr, compile output, message; a
// channel counts only when it is non-empty after decoding.
func Classify(st *JobStatus) Outcome {
	out := Outcome{StatusID: st.StatusID, Status: st.StatusDescription}

	channels := []struct {
		name string
		raw  string
		kind Kind
	}{
		{"stdout", st.Stdout, KindSuccess},
		{"stderr", st.Stderr, KindRuntimeError},
		{"compile_output", st.CompileOutput, KindCompileError},
	}
	for _, ch := range channels {
		if ch.raw == "" {
			continue
		}
		text, err := Decode(ch.raw)
		if err != nil {
			out.Kind = KindTransportFailure
			out.Text = ch.name + ": " + err.Error()
			return out
		}
		if text == "" {
			continue
		}
		out.Kind = ch.kind
		out.Text = text
		return out
	}

	if st.Message != "" {
		out.Kind = KindEngineMessage
		out.Text = st.Message
		return out
	}
	out.Kind = KindNoOutput
	out.Text = "No output"
	return out
}
