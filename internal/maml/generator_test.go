package maml_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/go-cmdletdoc/cmdlet"
	"github.com/agentflare-ai/go-cmdletdoc/internal/comments"
	"github.com/agentflare-ai/go-cmdletdoc/internal/domain"
	"github.com/agentflare-ai/go-cmdletdoc/internal/maml"
)

const pkg = "github.com/agentflare-ai/go-cmdletdoc/internal/maml_test"

type Color int

const (
	Red Color = iota
	Green
	Blue
)

func (Color) EnumValues() []string { return []string{"Red", "Green", "Blue"} }

type GetWidgetCommand struct {
	cmdlet.Cmdlet `verb:"Get" noun:"Widget"`

	Name  string   `param:"set=ByName,mandatory,position=0" alias:"n"`
	Id    int      `param:"set=ById,mandatory,position=0,pipelinebyname" alias:"ident"`
	Color Color    `param:""`
	Tags  []string `param:"position=1,pipeline"`
}

func (c *GetWidgetCommand) SetDefaults() {
	c.Name = "dflt"
	c.Color = Blue
	c.Tags = []string{"a", "b"}
}

func (GetWidgetCommand) OutputTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeOf(Widget{}), cmdlet.VoidType()}
}

type SetMamlCommand struct {
	cmdlet.Cmdlet `verb:"Set" noun:"Maml"`

	Value string `param:""`
}

type MoveOrderCommand struct {
	cmdlet.Cmdlet `verb:"Move" noun:"Order"`

	Ten   string `param:"position=10"`
	Two   string `param:"position=2"`
	Named string `param:""`
	Req   string `param:"mandatory"`
}

type StopAllCommand struct {
	cmdlet.Cmdlet `verb:"Stop" noun:"All"`
}

const sidecar = `<?xml version="1.0"?>
<doc xmlns:maml="http://schemas.microsoft.com/maml/2004/10">
  <members>
    <member name="T:` + pkg + `.GetWidgetCommand">
      <para type="synopsis">Gets   widgets.</para>
      <para type="description">Gets widgets
          from the <see cref="T:` + pkg + `.Widget"/> store.</para>
      <example>
        <para>Intro</para>
        <code>
            Get-Widget -Name x
              | Format-List
        </code>
        <para>Remark</para>
      </example>
      <example/>
      <example>
        <code>Get-Widget</code>
      </example>
      <example>
        <para>Only an introduction.</para>
      </example>
      <example>
        <code>Get-Widget -Id 1</code>
        <para>Then a remark.</para>
      </example>
      <para type="link" uri="https://example.com/widgets">Online   help</para>
      <para type="link">Plain</para>
    </member>
    <member name="F:` + pkg + `.GetWidgetCommand.Name">
      <para type="description">The name.</para>
    </member>
    <member name="F:` + pkg + `.GetWidgetCommand.Tags">
      <para type="inputType">Tag strings.</para>
      <para type="description">Tags to match.</para>
    </member>
    <member name="T:` + pkg + `.Widget">
      <para type="description">A widget.</para>
    </member>
    <member name="T:` + pkg + `.SetMamlCommand">
      <maml:description type="synopsis" extra="dropped">
        <maml:para>Sets MAML.</maml:para>
      </maml:description>
      <para type="synopsis">Ignored in favor of the embedded element.</para>
      <maml:alertSet>
        <maml:title>Note</maml:title>
        <maml:alert><maml:para>Careful.</maml:para></maml:alert>
      </maml:alertSet>
      <list type="alertSet"><item><term>Ignored</term><description><para>x</para></description></item></list>
    </member>
    <member name="T:` + pkg + `.MoveOrderCommand">
      <list type="alertSet">
        <item><term>First</term><description><para>One.</para><para>Two.</para></description></item>
        <item><term>Incomplete</term></item>
        <item><term>Heads up</term><description>Plain   text
          alert.</description></item>
      </list>
    </member>
  </members>
</doc>`

type warnings map[string][]string

func (w warnings) add(m comments.Member, text string) {
	w[m.String()] = append(w[m.String()], text)
}

type fixture struct {
	gen      *maml.Generator
	warnings warnings
}

func newFixture(t *testing.T, excluded ...string) *fixture {
	t.Helper()
	doc, err := comments.ParseXMLDoc(strings.NewReader(sidecar))
	require.NoError(t, err)
	w := warnings{}
	index := comments.NewTypeIndex(reflect.TypeOf(GetWidgetCommand{}), reflect.TypeOf(Widget{}))
	reader := comments.NewCaching(comments.NewLogging(comments.NewRewriting(comments.NewXMLDocReader(doc), index), w.add))
	return &fixture{gen: maml.NewGenerator(reader, w.add, excluded), warnings: w}
}

func (f *fixture) command(t *testing.T, v any) *etree.Element {
	t.Helper()
	cmd, err := domain.NewCommand(reflect.TypeOf(v))
	require.NoError(t, err)
	return f.gen.Command(cmd)
}

func textAt(t *testing.T, e *etree.Element, path string) string {
	t.Helper()
	found := e.FindElement(path)
	require.NotNil(t, found, "missing %s", path)
	return found.Text()
}

func texts(e *etree.Element, path string) []string {
	var out []string
	for _, found := range e.FindElements(path) {
		out = append(out, found.Text())
	}
	return out
}

func commentTexts(e *etree.Element) []string {
	var out []string
	for _, tok := range e.Child {
		if c, ok := tok.(*etree.Comment); ok {
			out = append(out, c.Data)
		}
	}
	return out
}

func paramByName(t *testing.T, parent *etree.Element, name string) *etree.Element {
	t.Helper()
	for _, p := range parent.SelectElements("command:parameter") {
		if p.SelectElement("maml:name").Text() == name {
			return p
		}
	}
	t.Fatalf("no parameter %s", name)
	return nil
}

func childTags(e *etree.Element) []string {
	var out []string
	for _, c := range e.ChildElements() {
		out = append(out, c.FullTag())
	}
	return out
}

func TestDocumentRoot(t *testing.T) {
	f := newFixture(t)
	cmd, err := domain.NewCommand(reflect.TypeOf(StopAllCommand{}))
	require.NoError(t, err)
	doc := f.gen.Document([]*domain.Command{cmd})

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "helpItems", root.Tag)
	assert.Equal(t, maml.MshNS, root.SelectAttrValue("xmlns", ""))
	assert.Equal(t, "maml", root.SelectAttrValue("schema", ""))
	assert.Equal(t, []string{"Cmdlet: Stop-All"}, commentTexts(root))

	out, err := doc.WriteToString()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="utf-8"?>`))
	assert.Contains(t, out, `<!--Cmdlet: Stop-All-->`)
	assert.Contains(t, out, `<command:command xmlns:maml="`+maml.MamlNS+`" xmlns:command="`+maml.CommandNS+`" xmlns:dev="`+maml.DevNS+`">`)
}

func TestCommandSections(t *testing.T) {
	f := newFixture(t)
	e := f.command(t, GetWidgetCommand{})

	assert.Equal(t, []string{
		"command:details",
		"maml:description",
		"command:syntax",
		"command:parameters",
		"command:inputTypes",
		"command:returnValues",
		"command:examples",
		"maml:relatedLinks",
	}, childTags(e), "no alert set without a source")

	assert.Equal(t, "Get-Widget", textAt(t, e, "command:details/command:name"))
	assert.Equal(t, "Get", textAt(t, e, "command:details/command:verb"))
	assert.Equal(t, "Widget", textAt(t, e, "command:details/command:noun"))
	assert.Equal(t, "Gets widgets.", textAt(t, e, "command:details/maml:description/maml:para"))
	assert.Equal(t, "Gets widgets from the Widget store.", textAt(t, e, "maml:description/maml:para"))
}

func TestSyntax(t *testing.T) {
	f := newFixture(t)
	syntax := f.command(t, GetWidgetCommand{}).SelectElement("command:syntax")

	assert.Equal(t, []string{"Parameter set: ByName", "Parameter set: ById"}, commentTexts(syntax))
	items := syntax.SelectElements("command:syntaxItem")
	require.Len(t, items, 2)
	assert.Equal(t, "Get-Widget", textAt(t, items[0], "maml:name"))
	assert.Equal(t, []string{"Name", "Tags", "Color"}, texts(items[0], "command:parameter/maml:name"))
	assert.Equal(t, []string{"Id", "Tags", "Color"}, texts(items[1], "command:parameter/maml:name"))

	id := paramByName(t, items[1], "Id")
	assert.Equal(t, "true", id.SelectAttrValue("required", ""))
	assert.Equal(t, "0", id.SelectAttrValue("position", ""))
	assert.Equal(t, "true (ByPropertyName)", id.SelectAttrValue("pipelineInput", ""))
}

func TestSyntaxExcludesSets(t *testing.T) {
	f := newFixture(t, "ById")
	syntax := f.command(t, GetWidgetCommand{}).SelectElement("command:syntax")
	assert.Equal(t, []string{"Parameter set: ByName"}, commentTexts(syntax))
	assert.Len(t, syntax.SelectElements("command:syntaxItem"), 1)
}

func TestSyntaxOrderComparesPositionsAsText(t *testing.T) {
	f := newFixture(t)
	syntax := f.command(t, MoveOrderCommand{}).SelectElement("command:syntax")
	assert.Equal(t, []string{"Parameter set: " + cmdlet.AllParameterSets}, commentTexts(syntax))
	item := syntax.SelectElement("command:syntaxItem")
	assert.Equal(t, []string{"Ten", "Two", "Req", "Named"}, texts(item, "command:parameter/maml:name"))
}

func TestParameterlessCommand(t *testing.T) {
	f := newFixture(t)
	e := f.command(t, StopAllCommand{})
	items := e.FindElements("command:syntax/command:syntaxItem")
	require.Len(t, items, 1)
	assert.Equal(t, []string{"maml:name"}, childTags(items[0]))
	assert.Empty(t, e.SelectElement("command:parameters").ChildElements())
	assert.Empty(t, e.SelectElement("command:inputTypes").ChildElements())
	assert.Empty(t, e.SelectElement("command:returnValues").ChildElements())
}

func TestParameters(t *testing.T) {
	f := newFixture(t)
	params := f.command(t, GetWidgetCommand{}).SelectElement("command:parameters")
	assert.Equal(t, []string{"Name", "n", "Id", "ident", "Color", "Tags"}, texts(params, "command:parameter/maml:name"))

	name := paramByName(t, params, "Name")
	assert.Equal(t, []string{
		"maml:name", "maml:description", "command:parameterValue", "dev:type", "dev:defaultValue",
	}, childTags(name))
	assert.Equal(t, "true", name.SelectAttrValue("required", ""))
	assert.Equal(t, "false", name.SelectAttrValue("globbing", ""))
	assert.Equal(t, "false", name.SelectAttrValue("pipelineInput", ""))
	assert.Equal(t, "0", name.SelectAttrValue("position", ""))
	assert.Equal(t, "The name.", textAt(t, name, "maml:description/maml:para"))
	assert.Equal(t, "string", textAt(t, name, "command:parameterValue"))
	assert.Equal(t, "true", name.SelectElement("command:parameterValue").SelectAttrValue("required", ""))
	assert.Equal(t, "string", textAt(t, name, "dev:type/maml:name"))
	assert.NotNil(t, name.FindElement("dev:type/maml:uri"))

	assert.Equal(t, "dflt", textAt(t, name, "dev:defaultValue"))

	alias := paramByName(t, params, "n")
	assert.Equal(t, childTags(name), childTags(alias))
	for _, attr := range []string{"required", "globbing", "pipelineInput", "position"} {
		assert.Equal(t, name.SelectAttrValue(attr, ""), alias.SelectAttrValue(attr, ""), attr)
	}
	assert.Equal(t, []string{"The name.", "This is an alias of the Name parameter."}, texts(alias, "maml:description/maml:para"))
	assert.Equal(t, "string", textAt(t, alias, "command:parameterValue"))
	assert.Equal(t, "dflt", textAt(t, alias, "dev:defaultValue"))
	assert.Equal(t, []string{"The name."}, texts(name, "maml:description/maml:para"), "the parameter itself is untouched")

	ident := paramByName(t, params, "ident")
	assert.Equal(t, []string{
		"maml:name", "maml:description", "command:parameterValue", "dev:type", "dev:defaultValue",
	}, childTags(ident))
	assert.Equal(t, []string{"This is an alias of the Id parameter."}, texts(ident, "maml:description/maml:para"))

	color := paramByName(t, params, "Color")
	assert.Equal(t, []string{"Possible values: Red, Green, Blue"}, texts(color, "maml:description/maml:para"))
	assert.Equal(t, "Color", textAt(t, color, "command:parameterValue"))
	assert.Equal(t, pkg+".Color", textAt(t, color, "dev:type/maml:name"))
	assert.Equal(t, "Blue", textAt(t, color, "dev:defaultValue"))
	values := color.FindElements("command:parameterValueGroup/command:parameterValue")
	require.Len(t, values, 3)
	assert.Equal(t, "Red", values[0].Text())
	assert.Equal(t, "false", values[0].SelectAttrValue("required", ""))
	assert.Equal(t, "false", values[0].SelectAttrValue("variableLength", ""))

	tags := paramByName(t, params, "Tags")
	assert.Equal(t, "1", tags.SelectAttrValue("position", ""))
	assert.Equal(t, "true (ByValue)", tags.SelectAttrValue("pipelineInput", ""))
	assert.Equal(t, "string[]", textAt(t, tags, "command:parameterValue"))
	assert.Equal(t, "string[]", textAt(t, tags, "dev:type/maml:name"))
	assert.Equal(t, "a, b", textAt(t, tags, "dev:defaultValue"))

	id := paramByName(t, params, "Id")
	assert.Nil(t, id.SelectElement("maml:description"))
	assert.Equal(t, "0", textAt(t, id, "dev:defaultValue"))
}

func TestInputTypes(t *testing.T) {
	f := newFixture(t)
	inputs := f.command(t, GetWidgetCommand{}).FindElements("command:inputTypes/command:inputType")
	require.Len(t, inputs, 2)

	assert.Equal(t, "int", textAt(t, inputs[0], "dev:type/maml:name"))
	assert.Nil(t, inputs[0].SelectElement("maml:description"))

	assert.Equal(t, []string{"dev:type", "maml:description"}, childTags(inputs[1]))
	assert.Equal(t, "Tag strings.", textAt(t, inputs[1], "maml:description/maml:para"))
	assert.Nil(t, inputs[1].FindElement("dev:type/maml:description"))
}

type InputFallbackCommand struct {
	cmdlet.Cmdlet `verb:"Test" noun:"InputFallback"`

	Described Widget `param:"pipeline"`
	Bare      Widget `param:"pipeline"`
}

func TestInputTypeFallsBackToTypeDescription(t *testing.T) {
	doc, err := comments.ParseXMLDoc(strings.NewReader(fmt.Sprintf(`<doc><members>
<member name="F:%[1]s.InputFallbackCommand.Described"><para type="description">Described.</para></member>
<member name="T:%[1]s.Widget"><para type="description">A widget.</para></member>
</members></doc>`, pkg)))
	require.NoError(t, err)
	w := warnings{}
	gen := maml.NewGenerator(comments.NewXMLDocReader(doc), w.add, nil)
	cmd, err := domain.NewCommand(reflect.TypeOf(InputFallbackCommand{}))
	require.NoError(t, err)

	inputs := gen.Command(cmd).FindElements("command:inputTypes/command:inputType")
	require.Len(t, inputs, 2)
	assert.Equal(t, "Described.", textAt(t, inputs[0], "maml:description/maml:para"))
	assert.Nil(t, inputs[0].FindElement("dev:type/maml:description"))
	assert.Nil(t, inputs[1].SelectElement("maml:description"))
	assert.Equal(t, "A widget.", textAt(t, inputs[1], "dev:type/maml:description/maml:para"))

	assert.NotContains(t, w[pkg+".InputFallbackCommand.Described"], "No inputType comment found.",
		"a parameter description is enough for the input type")
	assert.Equal(t, 1, countOf(w[pkg+".InputFallbackCommand.Bare"], "No inputType comment found."))
}

func countOf(list []string, s string) int {
	n := 0
	for _, v := range list {
		if v == s {
			n++
		}
	}
	return n
}

func TestDocumentRoundTrip(t *testing.T) {
	f := newFixture(t)
	cmd, err := domain.NewCommand(reflect.TypeOf(GetWidgetCommand{}))
	require.NoError(t, err)
	out := f.gen.Document([]*domain.Command{cmd})
	out.Indent(2)
	written, err := out.WriteToString()
	require.NoError(t, err)

	reread := etree.NewDocument()
	require.NoError(t, reread.ReadFromString(written))
	params := reread.FindElement("//command:command/command:parameters")
	require.NotNil(t, params)
	name := paramByName(t, params, "Name")
	assert.Equal(t, "true", name.SelectAttrValue("required", ""))
	assert.Equal(t, "The name.", textAt(t, name, "maml:description/maml:para"))
	assert.Equal(t, "Gets widgets from the Widget store.",
		textAt(t, reread.Root(), "command:command/maml:description/maml:para"))
}

func TestReturnValues(t *testing.T) {
	f := newFixture(t)
	returns := f.command(t, GetWidgetCommand{}).SelectElement("command:returnValues")
	assert.Equal(t, []string{"OutputType: None", "OutputType: Widget"}, commentTexts(returns))

	values := returns.SelectElements("command:returnValue")
	require.Len(t, values, 2)
	assert.Equal(t, "None", textAt(t, values[0], "dev:type/maml:name"))
	assert.Equal(t, pkg+".Widget", textAt(t, values[1], "dev:type/maml:name"))
	assert.Equal(t, "A widget.", textAt(t, values[1], "maml:description/maml:para"))
	assert.Nil(t, values[1].FindElement("dev:type/maml:description"))
}

func TestExamples(t *testing.T) {
	f := newFixture(t)
	examples := f.command(t, GetWidgetCommand{}).FindElements("command:examples/command:example")
	require.Len(t, examples, 4)

	first := examples[0]
	assert.Equal(t, []string{"maml:title", "maml:introduction", "dev:code", "dev:remarks"}, childTags(first))
	assert.Equal(t, "----------  EXAMPLE 1  ----------", textAt(t, first, "maml:title"))
	assert.Equal(t, "Intro", textAt(t, first, "maml:introduction/maml:para"))
	assert.Equal(t, "Get-Widget -Name x\n  | Format-List", textAt(t, first, "dev:code"))
	assert.Equal(t, "Remark", textAt(t, first, "dev:remarks/maml:para"))

	second := examples[1]
	assert.Equal(t, "----------  EXAMPLE 2  ----------", textAt(t, second, "maml:title"))
	assert.Equal(t, []string{"maml:title", "dev:code"}, childTags(second))

	third := examples[2]
	assert.Equal(t, "----------  EXAMPLE 3  ----------", textAt(t, third, "maml:title"))
	assert.Equal(t, []string{"maml:title", "maml:introduction"}, childTags(third))

	fourth := examples[3]
	assert.Equal(t, "----------  EXAMPLE 4  ----------", textAt(t, fourth, "maml:title"))
	assert.Equal(t, []string{"maml:title", "dev:code", "dev:remarks"}, childTags(fourth))
	assert.Equal(t, "Then a remark.", textAt(t, fourth, "dev:remarks/maml:para"))

	var exampleWarnings []string
	for _, w := range f.warnings[pkg+".GetWidgetCommand"] {
		if strings.HasPrefix(w, "No para or code elements") {
			exampleWarnings = append(exampleWarnings, w)
		}
	}
	assert.Equal(t, []string{"No para or code elements found for example 2."}, exampleWarnings)
}

func TestRelatedLinks(t *testing.T) {
	f := newFixture(t)
	links := f.command(t, GetWidgetCommand{}).FindElements("maml:relatedLinks/maml:navigationLink")
	require.Len(t, links, 2)
	assert.Equal(t, "Online help", textAt(t, links[0], "maml:linkText"))
	assert.Equal(t, "https://example.com/widgets", textAt(t, links[0], "maml:uri"))
	assert.Equal(t, "Plain", textAt(t, links[1], "maml:linkText"))
	assert.Nil(t, links[1].SelectElement("maml:uri"))
}

func TestEmbeddedMamlElements(t *testing.T) {
	f := newFixture(t)
	e := f.command(t, SetMamlCommand{})

	synopsis := e.FindElement("command:details/maml:description")
	require.NotNil(t, synopsis)
	assert.Empty(t, synopsis.Attr, "attributes are stripped")
	assert.Equal(t, []string{"Sets MAML."}, texts(synopsis, "maml:para"))

	alerts := e.SelectElement("maml:alertSet")
	require.NotNil(t, alerts)
	assert.Equal(t, "Note", textAt(t, alerts, "maml:title"))
	assert.Equal(t, "Careful.", textAt(t, alerts, "maml:alert/maml:para"))

	assert.Nil(t, e.SelectElement("command:examples"))
	assert.Nil(t, e.SelectElement("maml:relatedLinks"))
	assert.Contains(t, f.warnings[pkg+".SetMamlCommand"], "No description comment found.")
}

func TestAlertSetFromList(t *testing.T) {
	f := newFixture(t)
	alerts := f.command(t, MoveOrderCommand{}).SelectElement("maml:alertSet")
	require.NotNil(t, alerts)
	assert.Equal(t, []string{"First", "Heads up"}, texts(alerts, "maml:title"), "incomplete items are skipped")
	alertElems := alerts.SelectElements("maml:alert")
	require.Len(t, alertElems, 2)
	assert.Equal(t, []string{"One.", "Two."}, texts(alertElems[0], "maml:para"))
	assert.Equal(t, []string{"Plain text alert."}, texts(alertElems[1], "maml:para"), "a description without paras becomes one para")
}

func TestWarnings(t *testing.T) {
	f := newFixture(t)
	f.command(t, StopAllCommand{})
	assert.Equal(t, []string{
		comments.MissingComment,
		"No synopsis comment found.",
		"No description comment found.",
	}, f.warnings[pkg+".StopAllCommand"])

	f.command(t, GetWidgetCommand{})
	assert.Contains(t, f.warnings[pkg+".GetWidgetCommand.Id"], "No inputType comment found.")
	assert.Contains(t, f.warnings[pkg+".GetWidgetCommand.Id"], comments.MissingComment)
	assert.NotContains(t, f.warnings, pkg+".GetWidgetCommand.Tags")
}
