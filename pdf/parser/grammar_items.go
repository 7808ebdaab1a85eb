package parser

import "fmt"

func pdfItem(p *Parser) {
	switch {
	case atIndirectObject(p):
		indirectObject(p)
	case p.At(KindXrefKw):
		xrefTable(p)
	case p.At(KindTrailerKw):
		trailer(p)
	case p.At(KindStartxrefKw):
		startXRef(p)
	case p.At(KindStreamKw):
		p.Error("expected a stream dictionary")
		streamExpr(p)
	case p.AtTS(atomExprFirst):
		objectBody(p)
	default:
		if kind := p.Current(); kind.Text() != "" {
			p.ErrAndBump(fmt.Sprintf("unexpected %s", kind.describe()))
			return
		}
		p.ErrAndBump("expected an object")
	}
}

// atIndirectObject: INT INT obj
func atIndirectObject(p *Parser) bool {
	return p.At(KindIntNumber) && p.NthAt(1, KindIntNumber) && p.NthAt(2, KindObjKw)
}

// atItemBoundary reports whether the current token starts a new
// top-level item that an unterminated object must not swallow.
func atItemBoundary(p *Parser) bool {
	return atIndirectObject(p) || p.At(KindXrefKw) || p.At(KindTrailerKw) || p.At(KindStartxrefKw)
}

func atObjectJunk(p *Parser) bool {
	return !p.At(KindEOF) && !p.At(KindEndobjKw) && !atItemBoundary(p)
}

// objectBody parses an object, which is a stream when a dictionary is
// directly followed by `stream`.
func objectBody(p *Parser) {
	body, ok := expr(p)
	if ok && body.Kind() == KindDictionaryExpr && p.At(KindStreamKw) {
		streamExpr(p)
	}
}

func indirectObject(p *Parser) CompletedMarker {
	m := p.Start()
	indirectObjectID(p)

	hasBody := false
	switch {
	case p.AtTS(atomExprFirst):
		objectBody(p)
		hasBody = true
	case p.At(KindStreamKw):
		p.Error("expected a stream dictionary")
		streamExpr(p)
		hasBody = true
	}

	if atObjectJunk(p) {
		msg := "expected `endobj`"
		if !hasBody {
			msg = "expected an object body"
		}
		junk := p.Start()
		p.Error(msg)
		for atObjectJunk(p) {
			p.BumpAny()
		}
		junk.Complete(p, KindError)
		p.Eat(KindEndobjKw)
		return m.Complete(p, KindIndirectObjectExpr)
	}

	if !hasBody {
		p.Error("expected an object body")
	}
	p.Expect(KindEndobjKw)
	return m.Complete(p, KindIndirectObjectExpr)
}

func indirectObjectID(p *Parser) CompletedMarker {
	m := p.Start()
	literal(p)
	literal(p)
	p.Bump(KindObjKw)
	return m.Complete(p, KindIndirectObjectID)
}

// streamExpr parses `stream` RawStream? `endstream`. The stream
// dictionary, when there is one, has already been parsed and ends up
// wrapped by the caller's node.
func streamExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump(KindStreamKw)
	p.Eat(KindRawStream)
	p.Expect(KindEndstreamKw)
	return m.Complete(p, KindStreamExpr)
}

func trailer(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump(KindTrailerKw)
	if p.At(KindLDict) {
		dictionaryExpr(p)
	} else {
		p.Error("expected a trailer dictionary")
	}
	if p.At(KindStartxrefKw) {
		startXRef(p)
	} else {
		p.Error("expected `startxref`")
	}
	return m.Complete(p, KindTrailer)
}

func startXRef(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump(KindStartxrefKw)
	if p.At(KindIntNumber) {
		literal(p)
	} else {
		p.Error("expected a byte offset")
	}
	return m.Complete(p, KindStartXRef)
}
