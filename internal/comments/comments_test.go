package comments_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/go-cmdletdoc/cmdlet"
	"github.com/agentflare-ai/go-cmdletdoc/internal/comments"
)

const testPkg = "github.com/agentflare-ai/go-cmdletdoc/internal/comments_test"

type sampleCommand struct {
	cmdlet.Cmdlet `verb:"Get" noun:"Sample"`

	Name string `param:""`
}

type sampleValue struct{}

var (
	commandType = reflect.TypeOf(sampleCommand{})
	valueType   = reflect.TypeOf(sampleValue{})
)

const sampleDoc = `<?xml version="1.0"?>
<doc>
  <assembly><name>sample</name></assembly>
  <members>
    <member name="T:` + testPkg + `.sampleCommand">
      <para type="synopsis">Gets a <see cref="T:` + testPkg + `.sampleValue"/>.</para>
    </member>
    <member name="F:` + testPkg + `.sampleCommand.Name">
      <para type="description">The name.</para>
    </member>
    <member name="F:` + testPkg + `.sampleCommand.Name">
      <para type="description">Duplicate ids keep the first member.</para>
    </member>
    <member name="P:` + testPkg + `.sampleCommand.Size">
      <para type="description">The size.</para>
    </member>
  </members>
</doc>`

func parseSample(t *testing.T) *comments.XMLDoc {
	t.Helper()
	doc, err := comments.ParseXMLDoc(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	return doc
}

func TestMemberIDs(t *testing.T) {
	tests := []struct {
		member comments.Member
		id     string
		name   string
	}{
		{comments.TypeMember(commandType), "T:" + testPkg + ".sampleCommand", testPkg + ".sampleCommand"},
		{comments.FieldMember(commandType, "Name"), "F:" + testPkg + ".sampleCommand.Name", testPkg + ".sampleCommand.Name"},
		{comments.PropertyMember(commandType, "Size"), "P:" + testPkg + ".sampleCommand.Size", testPkg + ".sampleCommand.Size"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.id, tt.member.ID())
		assert.Equal(t, tt.name, tt.member.String())
	}
}

func TestParseXMLDoc(t *testing.T) {
	doc := parseSample(t)
	assert.Equal(t, "sample", doc.Assembly())
	assert.Equal(t, 3, doc.Len())

	r := comments.NewXMLDocReader(doc)
	require.NotNil(t, r.TypeComments(commandType))
	field := r.FieldComments(commandType, "Name")
	require.NotNil(t, field)
	assert.Equal(t, "The name.", field.FindElement("para").Text())
	assert.NotNil(t, r.PropertyComments(commandType, "Size"))
	assert.Nil(t, r.PropertyComments(commandType, "Name"), "kinds are distinct")
	assert.Nil(t, r.TypeComments(valueType))
}

func TestParseXMLDocRejectsOtherRoots(t *testing.T) {
	_, err := comments.ParseXMLDoc(strings.NewReader(`<helpItems/>`))
	require.Error(t, err)
}

func TestLoadXMLDocMissingFile(t *testing.T) {
	_, err := comments.LoadXMLDoc(t.TempDir() + "/missing.xml")
	require.Error(t, err)
}

func TestXMLDocRoundTrip(t *testing.T) {
	doc := comments.NewXMLDoc("built")
	member := etree.NewElement("anything")
	member.CreateElement("para").SetText("hello")
	doc.Add(comments.TypeMember(valueType).ID(), member)

	var buf bytes.Buffer
	_, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `<member name="T:`+testPkg+`.sampleValue">`)

	reread, err := comments.ParseXMLDoc(&buf)
	require.NoError(t, err)
	assert.Equal(t, "built", reread.Assembly())
	got := comments.NewXMLDocReader(reread).TypeComments(valueType)
	require.NotNil(t, got)
	assert.Equal(t, "hello", got.FindElement("para").Text())
}

func TestTypeIndex(t *testing.T) {
	idx := comments.NewTypeIndex(commandType, reflect.TypeOf(&sampleValue{}), nil)
	got, ok := idx.Lookup(testPkg + ".sampleValue")
	require.True(t, ok)
	assert.Equal(t, valueType, got)
	_, ok = idx.Lookup("sampleValue")
	assert.False(t, ok)
}

func TestInnerText(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(`<p>a <b>b <i>c</i></b> d</p>`))
	assert.Equal(t, "a b c d", comments.InnerText(doc.Root()))
	assert.Empty(t, comments.InnerText(nil))
}
