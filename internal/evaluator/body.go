package evaluator

import (
	"encoding/hex"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"github.com/za-lang/zkcc/internal/ast"
	"github.com/za-lang/zkcc/internal/scope"
	"github.com/za-lang/zkcc/internal/zkerr"
)

// evalBodyElements walks a file's top-level elements in source order,
// exactly as they were written — a declaration may only reference a
// template/function defined earlier in the same file or in an already
// processed include.
func (ev *Evaluator) evalBodyElements(elements []ast.BodyElement) error {
	for _, be := range elements {
		if err := be.Accept(ev); err != nil {
			return err
		}
	}
	return nil
}

func (ev *Evaluator) VisitInclude(b *ast.Include) error {
	return ev.evalInclude(b.M, b.Path)
}

func (ev *Evaluator) VisitFunctionDef(b *ast.FunctionDef) error {
	return ev.evalFunctionDef(b.M, b.Name, b.Params, b.Body)
}

func (ev *Evaluator) VisitTemplateDef(b *ast.TemplateDef) error {
	return ev.evalTemplateDef(b.M, b.Name, b.Params, b.Body)
}

func (ev *Evaluator) VisitTopLevelDeclaration(b *ast.TopLevelDeclaration) error {
	return ev.evalStmt(b.Decl)
}

func (ev *Evaluator) evalFunctionDef(m ast.Meta, name string, params []string, body *ast.Block) error {
	err := ev.Scopes.Insert(ev.curScope, name, scope.FunctionValue{
		Params: params, Body: body, Path: ev.CurrentFile,
	})
	return ev.wrap(m, err)
}

func (ev *Evaluator) evalTemplateDef(m ast.Meta, name string, params []string, body *ast.Block) error {
	err := ev.Scopes.Insert(ev.curScope, name, scope.TemplateValue{
		Attrs: m.Attrs, Params: params, Body: body, Path: ev.CurrentFile,
	})
	return ev.wrap(m, err)
}

// evalInclude loads filename (relative to the current include directory)
// and walks it once. Re-processing is guarded by a content hash rather
// than by path, so two different relative paths resolving to identical
// source only run once — and, conversely, editing a file invalidates the
// guard even if the path is reused across a run.
func (ev *Evaluator) evalInclude(m ast.Meta, filename string) error {
	err := ev.doInclude(filename)
	return ev.wrap(m, err)
}

func (ev *Evaluator) doInclude(filename string) error {
	fullPath := filepath.Join(ev.curDir, filename)

	file, src, err := ev.loader.Load(fullPath)
	if err != nil {
		return zkerr.Wrap(zkerr.IO, err, "including %q", fullPath)
	}

	digest := blake2b.Sum512(src)
	hashHex := hex.EncodeToString(digest[:])
	if ev.processedFiles[hashHex] {
		return nil
	}
	ev.processedFiles[hashHex] = true

	prevFile, prevDir := ev.CurrentFile, ev.curDir
	ev.CurrentFile = fullPath
	ev.curDir = filepath.Dir(fullPath)

	err = ev.evalBodyElements(file.Elements)

	ev.CurrentFile, ev.curDir = prevFile, prevDir
	return err
}
