package parser

// expr parses one object. The node is opened before the atom so that
// ExtendTo can reattach anything recorded ahead of it.
func expr(p *Parser) (CompletedMarker, bool) {
	m := p.Start()
	if !p.AtTS(atomExprFirst) {
		p.ErrRecover("expected an object", exprRecoverySet)
		m.Abandon(p)
		return CompletedMarker{}, false
	}
	cm, ok := atomExpr(p)
	if !ok {
		m.Abandon(p)
		return CompletedMarker{}, false
	}
	return cm.ExtendTo(p, m), true
}

func atomExpr(p *Parser) (CompletedMarker, bool) {
	if atIndirectReference(p) {
		return indirectReference(p), true
	}
	if p.AtTS(literalFirst) {
		return literal(p), true
	}
	switch p.Current() {
	case KindLBrack:
		return arrayExpr(p), true
	case KindLDict:
		return dictionaryExpr(p), true
	}
	p.ErrAndBump("expected an object")
	return CompletedMarker{}, false
}

func literal(p *Parser) CompletedMarker {
	m := p.Start()
	p.BumpAny()
	return m.Complete(p, KindLiteral)
}

// atIndirectReference: INT INT R
func atIndirectReference(p *Parser) bool {
	return p.At(KindIntNumber) && p.NthAt(1, KindIntNumber) && p.NthAt(2, KindRKw)
}

func indirectReference(p *Parser) CompletedMarker {
	m := p.Start()
	literal(p)
	literal(p)
	p.Bump(KindRKw)
	return m.Complete(p, KindIndirectReferenceExpr)
}

func arrayExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump(KindLBrack)
	for !p.At(KindEOF) && !p.At(KindRBrack) {
		if p.AtTS(exprRecoverySet) {
			break
		}
		expr(p)
	}
	p.Expect(KindRBrack)
	return m.Complete(p, KindArrayExpr)
}

// dictionaryExpr parses `<<` followed by objects and `>>`. Key/value
// pairing is checked later, on the tree.
func dictionaryExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump(KindLDict)
	for !p.At(KindEOF) && !p.At(KindRDict) {
		if p.AtTS(exprRecoverySet) {
			break
		}
		expr(p)
	}
	p.Expect(KindRDict)
	return m.Complete(p, KindDictionaryExpr)
}
