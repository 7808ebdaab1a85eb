package lsp

import (
	"net/url"
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/pdfc/pdf/syntax"
)

func toPosition(idx *syntax.LineIndex, offset int) protocol.Position {
	line, col := idx.LineColUTF16(offset)
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(col),
	}
}

func toRange(idx *syntax.LineIndex, r syntax.TextRange) protocol.Range {
	return protocol.Range{
		Start: toPosition(idx, r.Start),
		End:   toPosition(idx, r.End),
	}
}

func toOffset(idx *syntax.LineIndex, pos protocol.Position) int {
	return idx.OffsetUTF16(int(pos.Line), int(pos.Character))
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
