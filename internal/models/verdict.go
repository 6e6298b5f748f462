package models

// VerdictKind is the outbound action chosen for one inbound message.
type VerdictKind int

const (
	VerdictIgnore VerdictKind = iota
	VerdictDelete
	VerdictWarn
	VerdictReply
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictDelete:
		return "delete"
	case VerdictWarn:
		return "warn"
	case VerdictReply:
		return "reply"
	default:
		return "ignore"
	}
}

// Verdict is the pipeline's decision for one message. Text carries the warning
// or reply body; Reason is a short machine-readable cause used for logs and metrics.
type Verdict struct {
	Kind   VerdictKind
	Text   string
	Reason string
}

func Ignore(reason string) Verdict {
	return Verdict{Kind: VerdictIgnore, Reason: reason}
}

func Delete(reason string) Verdict {
	return Verdict{Kind: VerdictDelete, Reason: reason}
}

func Warn(text string) Verdict {
	return Verdict{Kind: VerdictWarn, Text: text, Reason: "profanity"}
}

func Reply(text, reason string) Verdict {
	return Verdict{Kind: VerdictReply, Text: text, Reason: reason}
}
