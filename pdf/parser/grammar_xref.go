package parser

import "fmt"

var (
	xrefEntryTypes = NewTokenSet(KindFKw, KindNKw)

	// A pair of integers followed by one of these is an entry or an
	// object, not a subsection header.
	xrefSubsectionStop = NewTokenSet(KindFKw, KindNKw, KindObjKw, KindRKw)
)

// xrefTable parses one or more consecutive sections. The first section is
// parsed on its own and then wrapped, so a lone section and a run of
// sections share one code path.
func xrefTable(p *Parser) CompletedMarker {
	first := xrefSection(p)
	m := first.Precede(p)
	for p.At(KindXrefKw) {
		xrefSection(p)
	}
	return m.Complete(p, KindXRefTable)
}

func xrefSection(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump(KindXrefKw)
	if !atXRefSubsection(p) {
		p.Error("expected a cross-reference subsection")
	}
	for atXRefSubsection(p) {
		xrefSubsection(p)
	}
	return m.Complete(p, KindXRefSection)
}

func atXRefSubsection(p *Parser) bool {
	return p.At(KindIntNumber) && p.NthAt(1, KindIntNumber) && !p.NthAtTS(2, xrefSubsectionStop)
}

// xrefSubsection parses a first-object/count header and then exactly
// count entries. A negative count parses no entries.
func xrefSubsection(p *Parser) CompletedMarker {
	m := p.Start()
	count := p.NthInt(1)
	literal(p)
	literal(p)
	for i := int64(0); i < count; i++ {
		if !atXRefEntry(p) {
			p.Error(fmt.Sprintf("subsection declares %d entries, found %d", count, i))
			break
		}
		xrefEntry(p)
	}
	return m.Complete(p, KindXRefSubsection)
}

// atXRefEntry: INT INT (f|n)
func atXRefEntry(p *Parser) bool {
	return p.At(KindIntNumber) && p.NthAt(1, KindIntNumber) && p.NthAtTS(2, xrefEntryTypes)
}

func xrefEntry(p *Parser) CompletedMarker {
	m := p.Start()
	literal(p)
	literal(p)
	t := p.Start()
	p.BumpAny()
	t.Complete(p, KindXRefEntryType)
	return m.Complete(p, KindXRefEntry)
}
