package comments

import (
	"context"
	"fmt"
	"go/ast"
	"go/doc"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/tools/go/packages"
)

// LoadGoSource builds an XMLDoc from the doc comments of the Go package
// matching pattern. Types are documented by their declaration comment,
// fields by their field comment and properties by the comment of the getter
// method, or of the setter when the property is write-only.
//
// Comment text is parsed as the body of the <member> element, so it may use
// the same markup as a doc-comment file. Text that is not well-formed XML is
// kept as plain character data. Unqualified cref attributes are resolved
// against the package the way a compiler would when emitting a doc file.
func LoadGoSource(ctx context.Context, pattern string) (*XMLDoc, error) {
	pkg, err := loadPackage(ctx, pattern)
	if err != nil {
		return nil, err
	}
	docPkg, err := doc.NewFromFiles(pkg.Fset, pkg.Syntax, pkg.PkgPath, doc.AllDecls)
	if err != nil {
		return nil, err
	}
	return buildSourceDoc(pkg.PkgPath, docPkg), nil
}

func loadPackage(ctx context.Context, pattern string) (*packages.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName | packages.NeedCompiledGoFiles | packages.NeedFiles |
			packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo |
			packages.NeedTypesSizes | packages.NeedModule | packages.NeedImports,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages matched %q", pattern)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("%s", pkg.Errors[0])
	}
	return pkg, nil
}

// sourceType records the members of a declared type for cref resolution.
type sourceType struct {
	fields  map[string]bool
	methods map[string]bool
}

type sourceIndex struct {
	pkgPath string
	types   map[string]*sourceType
}

func buildSourceDoc(pkgPath string, pkg *doc.Package) *XMLDoc {
	idx := &sourceIndex{pkgPath: pkgPath, types: make(map[string]*sourceType)}
	for _, t := range pkg.Types {
		st := &sourceType{fields: make(map[string]bool), methods: make(map[string]bool)}
		for _, field := range structFields(t) {
			for _, name := range field.Names {
				st.fields[name.Name] = true
			}
		}
		for _, m := range t.Methods {
			st.methods[m.Name] = true
		}
		idx.types[t.Name] = st
	}

	out := NewXMLDoc(pkg.Name)
	for _, t := range pkg.Types {
		typeID := pkgPath + "." + t.Name
		idx.add(out, "T:"+typeID, t.Name, t.Doc)
		for _, field := range structFields(t) {
			text := commentText(field.Doc)
			if text == "" {
				text = commentText(field.Comment)
			}
			for _, name := range field.Names {
				idx.add(out, "F:"+typeID+"."+name.Name, t.Name, text)
			}
		}
		methods := make(map[string]*doc.Func, len(t.Methods))
		for _, m := range t.Methods {
			methods[m.Name] = m
		}
		for _, m := range t.Methods {
			if name, ok := strings.CutPrefix(m.Name, "Set"); ok && name != "" {
				if _, hasGetter := methods[name]; !hasGetter {
					idx.add(out, "P:"+typeID+"."+name, t.Name, m.Doc)
				}
				continue
			}
			idx.add(out, "P:"+typeID+"."+m.Name, t.Name, m.Doc)
		}
	}
	return out
}

func structFields(t *doc.Type) []*ast.Field {
	ts := findTypeSpec(t.Decl, t.Name)
	if ts == nil {
		return nil
	}
	st, ok := ts.Type.(*ast.StructType)
	if !ok || st.Fields == nil {
		return nil
	}
	return st.Fields.List
}

func findTypeSpec(decl *ast.GenDecl, name string) *ast.TypeSpec {
	if decl == nil {
		return nil
	}
	for _, spec := range decl.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		if ts.Name != nil && ts.Name.Name == name {
			return ts
		}
	}
	return nil
}

func commentText(group *ast.CommentGroup) string {
	if group == nil {
		return ""
	}
	return group.Text()
}

func (idx *sourceIndex) add(out *XMLDoc, id, owner, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	member := parseMemberBody(text)
	idx.qualifyCrefs(member, owner)
	out.Add(id, member)
}

func parseMemberBody(text string) *etree.Element {
	frag := etree.NewDocument()
	if err := frag.ReadFromString("<member>" + text + "</member>"); err == nil && frag.Root() != nil {
		return frag.Root().Copy()
	}
	member := etree.NewElement("member")
	member.SetText(text)
	return member
}

// qualifyCrefs rewrites cref="Name" and cref="Type.Member" into member ids.
// References that do not resolve get the "!:" prefix.
func (idx *sourceIndex) qualifyCrefs(member *etree.Element, owner string) {
	for _, see := range member.FindElements(".//see[@cref]") {
		cref := see.SelectAttr("cref")
		if len(cref.Value) > 1 && cref.Value[1] == ':' {
			continue
		}
		cref.Value = idx.qualify(cref.Value, owner)
	}
}

func (idx *sourceIndex) qualify(ref, owner string) string {
	typeName, memberName, hasMember := strings.Cut(ref, ".")
	if !hasMember {
		if _, ok := idx.types[ref]; ok {
			return "T:" + idx.pkgPath + "." + ref
		}
		typeName, memberName = owner, ref
	}
	if st, ok := idx.types[typeName]; ok {
		prefix := idx.pkgPath + "." + typeName + "." + memberName
		switch {
		case st.fields[memberName]:
			return "F:" + prefix
		case st.methods[memberName] || st.methods["Set"+memberName]:
			return "P:" + prefix
		}
	}
	return "!:" + ref
}
