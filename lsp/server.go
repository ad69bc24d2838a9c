// Package lsp serves parse diagnostics for documents written in a
// language described by an EBNF grammar.
package lsp

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/descent/diag"
	"github.com/dhamidi/descent/ebnf"
	"github.com/dhamidi/descent/parser"
)

const lsName = "descent"

var log = commonlog.GetLogger("descent.lsp")

type Server struct {
	grammar *ebnf.Grammar
	start   string
	opts    []parser.Option
	handler protocol.Handler
	server  *server.Server
	version string
}

// NewServer creates a server that parses every open document with the
// production start of grammar. Opts are applied to each parse.
func NewServer(grammar *ebnf.Grammar, start, version string, opts ...parser.Option) *Server {
	ls := &Server{
		grammar: grammar,
		start:   start,
		opts:    opts,
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("serving diagnostics for production %s", ls.start)
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.publish(ctx, params.TextDocument.URI, ls.Diagnose(params.TextDocument.URI, params.TextDocument.Text))
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.publish(ctx, params.TextDocument.URI, ls.Diagnose(params.TextDocument.URI, textChange.Text))
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.publish(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.publish(ctx, params.TextDocument.URI, ls.Diagnose(params.TextDocument.URI, *params.Text))
	}
	return nil
}

func (ls *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// Diagnose parses text and returns at most one diagnostic describing why
// it is not a valid document. The result is empty, never nil, when text
// parses.
func (ls *Server) Diagnose(uri protocol.DocumentUri, text string) []protocol.Diagnostic {
	name := uriToPath(uri)
	opts := append([]parser.Option{parser.WithName(name)}, ls.opts...)
	_, err := ls.grammar.Parse(text, ls.start, opts...)
	if err == nil {
		return []protocol.Diagnostic{}
	}

	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		log.Errorf("%s: %s", uri, err)
		return []protocol.Diagnostic{newDiagnostic(text, diag.Locate(text, name, 0), err.Error())}
	}

	f := perr.Failure.Deepest()
	return []protocol.Diagnostic{newDiagnostic(text, f.Diagnostic.Position, f.Message())}
}

// newDiagnostic creates an error diagnostic that runs from pos to the end
// of its line. Characters are counted in runes, while LSP counts UTF-16
// code units, so the range is off by one per character outside the Basic
// Multilingual Plane that precedes it on the line.
func newDiagnostic(text string, pos diag.Position, message string) protocol.Diagnostic {
	line := diag.LineAt(text, pos.Offset)
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      protocol.UInteger(pos.Line - 1),
				Character: protocol.UInteger(diag.Width(line, pos.Column)),
			},
			End: protocol.Position{
				Line:      protocol.UInteger(pos.Line - 1),
				Character: protocol.UInteger(diag.Width(line, len(line))),
			},
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return uri
		}
		return filepath.Clean(parsed.Path)
	}
	return uri
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
