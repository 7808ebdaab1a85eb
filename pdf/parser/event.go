package parser

import "fmt"

type eventKind uint8

const (
	eventStart eventKind = iota
	eventFinish
	eventToken
	eventError
)

// Event is one entry of the parser's append-only log.
//
// A Start event with a non-zero forwardParent says that the node started
// here has a parent which starts forwardParent events later. This is how
// CompletedMarker.Precede wraps an already finished node without moving
// any event: given
//
//	START(a) ... FINISH(a) START(b)
//
// the first START gets forwardParent pointing at the second one, and
// process emits Enter(b) Enter(a) ... Exit(a).
type Event struct {
	kind          eventKind
	syntaxKind    SyntaxKind
	forwardParent uint32
	nRawTokens    uint8
	msg           string
}

func tombstone() Event {
	return Event{kind: eventStart, syntaxKind: KindTombstone}
}

func (e Event) isTombstone() bool {
	return e.kind == eventStart && e.syntaxKind == KindTombstone && e.forwardParent == 0
}

func (e Event) String() string {
	switch e.kind {
	case eventStart:
		if e.forwardParent != 0 {
			return fmt.Sprintf("Start(%s, +%d)", e.syntaxKind, e.forwardParent)
		}
		return fmt.Sprintf("Start(%s)", e.syntaxKind)
	case eventFinish:
		return fmt.Sprintf("Finish(%s)", e.syntaxKind)
	case eventToken:
		return fmt.Sprintf("Token(%s, %d)", e.syntaxKind, e.nRawTokens)
	case eventError:
		return fmt.Sprintf("Error(%q)", e.msg)
	}
	return "Invalid"
}

// process resolves forward parents and flattens the log into steps. It
// consumes events: every visited slot is replaced by a tombstone.
func process(events []Event) *Output {
	res := &Output{}
	var forwardParents []SyntaxKind

	for i := range events {
		ev := events[i]
		events[i] = tombstone()

		switch ev.kind {
		case eventStart:
			forwardParents = append(forwardParents[:0], ev.syntaxKind)
			idx, fp := i, ev.forwardParent
			for fp != 0 {
				idx += int(fp)
				parent := events[idx]
				events[idx] = tombstone()
				if parent.kind != eventStart {
					panic(fmt.Sprintf("forward parent of event %d is %s, want a Start event", i, parent))
				}
				forwardParents = append(forwardParents, parent.syntaxKind)
				fp = parent.forwardParent
			}
			for j := len(forwardParents) - 1; j >= 0; j-- {
				if kind := forwardParents[j]; kind != KindTombstone {
					res.enter(kind)
				}
			}
		case eventFinish:
			res.exit()
		case eventToken:
			res.token(ev.syntaxKind, ev.nRawTokens)
		case eventError:
			res.error(ev.msg)
		}
	}

	return res
}
