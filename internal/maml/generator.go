// Package maml renders commands as a MAML help document, the XML format
// read by the shell's help viewer.
package maml

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/agentflare-ai/go-cmdletdoc/cmdlet"
	"github.com/agentflare-ai/go-cmdletdoc/internal/comments"
	"github.com/agentflare-ai/go-cmdletdoc/internal/domain"
)

// Generator assembles help elements. Documentation is read through the
// comments.Reader and missing pieces are reported through the warning func.
// A Generator is meant for one run and is not safe for concurrent use.
type Generator struct {
	comments comments.Reader
	warn     comments.WarningFunc
	excluded map[string]bool
}

// NewGenerator returns a Generator leaving out the syntax of the named
// parameter sets.
func NewGenerator(reader comments.Reader, warn comments.WarningFunc, excludedSets []string) *Generator {
	excluded := make(map[string]bool, len(excludedSets))
	for _, set := range excludedSets {
		excluded[set] = true
	}
	return &Generator{comments: reader, warn: warn, excluded: excluded}
}

func (g *Generator) report(member comments.Member, text string) {
	if g.warn != nil {
		g.warn(member, text)
	}
}

// Document renders cmds, in order, into a helpItems document.
func (g *Generator) Document(cmds []*domain.Command) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement("helpItems")
	root.CreateAttr("xmlns", MshNS)
	root.CreateAttr("schema", "maml")
	for _, cmd := range cmds {
		root.CreateComment("Cmdlet: " + cmd.Name())
		root.AddChild(g.Command(cmd))
	}
	return doc
}

// Command renders one command:command element.
func (g *Generator) Command(cmd *domain.Command) *etree.Element {
	e := etree.NewElement("command:command")
	e.CreateAttr("xmlns:maml", MamlNS)
	e.CreateAttr("xmlns:command", CommandNS)
	e.CreateAttr("xmlns:dev", DevNS)

	member := comments.TypeMember(cmd.Type)
	fragment := g.comments.TypeComments(cmd.Type)

	e.AddChild(g.details(cmd, member, fragment))
	addChild(e, g.description(member, fragment, "description"))
	e.AddChild(g.syntax(cmd))
	e.AddChild(g.parameters(cmd))
	e.AddChild(g.inputTypes(cmd))
	e.AddChild(g.returnValues(cmd))
	addChild(e, g.alertSet(fragment))
	addChild(e, g.examples(member, fragment))
	addChild(e, g.relatedLinks(fragment))
	return e
}

func (g *Generator) details(cmd *domain.Command, member comments.Member, fragment *etree.Element) *etree.Element {
	e := etree.NewElement("command:details")
	e.AddChild(textElement("command:name", cmd.Name()))
	e.AddChild(textElement("command:verb", cmd.Verb))
	e.AddChild(textElement("command:noun", cmd.Noun))
	addChild(e, g.description(member, fragment, "synopsis"))
	return e
}

// syntaxSets lists the parameter sets that get a syntax item. The
// all-sets pseudo set is dropped when real sets exist and used alone when
// there are none.
func (g *Generator) syntaxSets(cmd *domain.Command) []string {
	sets := cmd.ParameterSetNames()
	if len(sets) > 1 {
		filtered := sets[:0]
		for _, set := range sets {
			if set != cmdlet.AllParameterSets {
				filtered = append(filtered, set)
			}
		}
		sets = filtered
	}
	if len(sets) == 0 {
		sets = []string{cmdlet.AllParameterSets}
	}
	var out []string
	for _, set := range sets {
		if !g.excluded[set] {
			out = append(out, set)
		}
	}
	return out
}

func (g *Generator) syntax(cmd *domain.Command) *etree.Element {
	e := etree.NewElement("command:syntax")
	for _, set := range g.syntaxSets(cmd) {
		e.CreateComment("Parameter set: " + set)
		item := e.CreateElement("command:syntaxItem")
		item.AddChild(textElement("maml:name", cmd.Name()))
		for _, p := range syntaxOrder(cmd.GetParameters(set), set) {
			item.AddChild(g.parameter(p, set))
		}
	}
	return e
}

// syntaxOrder sorts by position text, then required before optional, then
// name. Positions compare as strings, so "named" sorts after every digit
// and "10" before "2".
func syntaxOrder(params []*domain.Parameter, set string) []*domain.Parameter {
	type keyed struct {
		p        *domain.Parameter
		position string
		optional string
	}
	keys := make([]keyed, len(params))
	for i, p := range params {
		pos, _ := p.Position(set)
		optional := "1"
		if p.IsRequired(set) {
			optional = "0"
		}
		keys[i] = keyed{p: p, position: pos, optional: optional}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.position != b.position {
			return a.position < b.position
		}
		if a.optional != b.optional {
			return a.optional < b.optional
		}
		return a.p.Name < b.p.Name
	})
	out := make([]*domain.Parameter, len(keys))
	for i, k := range keys {
		out[i] = k.p
	}
	return out
}

func (g *Generator) parameters(cmd *domain.Command) *etree.Element {
	e := etree.NewElement("command:parameters")
	for _, p := range cmd.Parameters() {
		param := g.parameter(p, cmdlet.AllParameterSets)
		e.AddChild(param)
		for _, alias := range p.Aliases() {
			e.AddChild(aliasParameter(param, p.Name, alias))
		}
	}
	return e
}

func (g *Generator) parameterAttrs(e *etree.Element, p *domain.Parameter, set string) {
	e.CreateAttr("required", strconv.FormatBool(p.IsRequired(set)))
	e.CreateAttr("globbing", strconv.FormatBool(p.SupportsWildcards()))
	e.CreateAttr("pipelineInput", p.PipelineInput(set))
	if pos, ok := p.Position(set); ok {
		e.CreateAttr("position", pos)
	}
}

func (g *Generator) parameter(p *domain.Parameter, set string) *etree.Element {
	e := etree.NewElement("command:parameter")
	g.parameterAttrs(e, p, set)
	e.AddChild(textElement("maml:name", p.Name))
	addChild(e, g.parameterDescription(p))
	e.AddChild(parameterValue(p))
	e.AddChild(g.typeElement(p.Type, true))
	addChild(e, g.defaultValue(p))
	addChild(e, parameterValueGroup(p))
	return e
}

// aliasParameter copies the rendered parameter under the alias name and
// appends a paragraph pointing back at the parameter it names.
func aliasParameter(param *etree.Element, name, alias string) *etree.Element {
	e := param.Copy()
	nameElem := e.SelectElement("maml:name")
	nameElem.SetText(alias)
	desc := e.SelectElement("maml:description")
	if desc == nil {
		desc = etree.NewElement("maml:description")
		e.InsertChildAt(nameElem.Index()+1, desc)
	}
	desc.AddChild(textElement("maml:para", "This is an alias of the "+name+" parameter."))
	return e
}

// parameterDescription is the parameter's description followed, for
// enumerations, by a paragraph listing the possible values.
func (g *Generator) parameterDescription(p *domain.Parameter) *etree.Element {
	member := p.Member()
	desc := g.description(member, comments.Lookup(g.comments, member), "description")
	if values := p.EnumValues(); len(values) > 0 {
		if desc == nil {
			desc = etree.NewElement("maml:description")
		}
		desc.AddChild(textElement("maml:para", "Possible values: "+strings.Join(values, ", ")))
	}
	return desc
}

func parameterValue(p *domain.Parameter) *etree.Element {
	e := textElement("command:parameterValue", SimpleTypeName(p.Type))
	e.CreateAttr("required", "true")
	return e
}

func parameterValueGroup(p *domain.Parameter) *etree.Element {
	values := p.EnumValues()
	if len(values) == 0 {
		return nil
	}
	e := etree.NewElement("command:parameterValueGroup")
	for _, v := range values {
		pv := textElement("command:parameterValue", v)
		pv.CreateAttr("required", "false")
		pv.CreateAttr("variableLength", "false")
		e.AddChild(pv)
	}
	return e
}

func (g *Generator) defaultValue(p *domain.Parameter) *etree.Element {
	v, ok := p.DefaultValue(g.warn)
	if !ok {
		return nil
	}
	text := FormatDefault(v)
	if text == "" {
		return nil
	}
	return textElement("dev:defaultValue", text)
}

// typeElement renders dev:type, optionally with the type's own description.
func (g *Generator) typeElement(t reflect.Type, withDescription bool) *etree.Element {
	e := etree.NewElement("dev:type")
	e.AddChild(textElement("maml:name", FullTypeName(t)))
	e.CreateElement("maml:uri")
	if withDescription {
		addChild(e, g.description(comments.TypeMember(t), g.comments.TypeComments(t), "description"))
	}
	return e
}

func (g *Generator) inputTypes(cmd *domain.Command) *etree.Element {
	e := etree.NewElement("command:inputTypes")
	for _, p := range cmd.GetParameters(cmdlet.AllParameterSets) {
		if !p.IsPipeline(cmdlet.AllParameterSets) {
			continue
		}
		member := p.Member()
		fragment := comments.Lookup(g.comments, member)
		desc := findDescription(fragment, "inputType")
		if desc == nil {
			desc = findDescription(fragment, "description")
		}
		if desc == nil {
			g.report(member, "No inputType comment found.")
		}
		it := e.CreateElement("command:inputType")
		it.AddChild(g.typeElement(p.Type, desc == nil))
		addChild(it, desc)
	}
	return e
}

func (g *Generator) returnValues(cmd *domain.Command) *etree.Element {
	e := etree.NewElement("command:returnValues")
	for _, t := range cmd.OutputTypes() {
		rv := etree.NewElement("command:returnValue")
		if t == cmdlet.VoidType() {
			e.CreateComment("OutputType: None")
			dt := rv.CreateElement("dev:type")
			dt.AddChild(textElement("maml:name", "None"))
			dt.CreateElement("maml:uri")
		} else {
			e.CreateComment("OutputType: " + cmdlet.ShortName(t))
			desc := g.description(comments.TypeMember(t), g.comments.TypeComments(t), "description")
			rv.AddChild(g.typeElement(t, false))
			addChild(rv, desc)
		}
		e.AddChild(rv)
	}
	return e
}
