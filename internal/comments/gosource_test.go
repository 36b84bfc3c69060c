package comments_test

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/go-cmdletdoc/internal/comments"
	"github.com/agentflare-ai/go-cmdletdoc/internal/testmodule"
)

func loadTestModule(t *testing.T) *comments.XMLDoc {
	t.Helper()
	doc, err := comments.LoadGoSource(context.Background(), "../testmodule")
	require.NoError(t, err)
	return doc
}

func TestLoadGoSource(t *testing.T) {
	doc := loadTestModule(t)
	assert.Equal(t, "testmodule", doc.Assembly())
	r := comments.NewXMLDocReader(doc)

	manual := reflect.TypeOf(testmodule.TestManualElementsCommand{})
	typeDoc := r.TypeComments(manual)
	require.NotNil(t, typeDoc)
	assert.Len(t, typeDoc.SelectElements("example"), 4)
	assert.Len(t, typeDoc.FindElements("./para[@type='synopsis']"), 2)

	field := r.FieldComments(manual, "MandatoryParameter")
	require.NotNil(t, field)
	assert.Len(t, field.SelectElements("para"), 2)
	assert.Nil(t, r.FieldComments(manual, "Cmdlet"), "embedded marker has no doc")

	props := reflect.TypeOf(testmodule.TestPropertyParametersCommand{})
	getter := r.PropertyComments(props, "ReadWriteParameter")
	require.NotNil(t, getter)
	assert.Equal(t, "This is the ReadWriteParameter description.", getter.FindElement("para").Text())
	setter := r.PropertyComments(props, "WriteOnlyParameter")
	require.NotNil(t, setter, "write-only properties are documented on the setter")
	assert.Equal(t, "This is the WriteOnlyParameter description.", setter.FindElement("para").Text())

	assert.Nil(t, r.TypeComments(reflect.TypeOf(testmodule.TestUndocumentedCommand{})))
}

func TestLoadGoSourceQualifiesCrefs(t *testing.T) {
	doc := loadTestModule(t)
	refs := reflect.TypeOf(testmodule.TestReferencesCommand{})
	member := comments.NewXMLDocReader(doc).TypeComments(refs)
	require.NotNil(t, member)

	var crefs []string
	for _, see := range member.FindElements(".//see") {
		crefs = append(crefs, see.SelectAttrValue("cref", ""))
	}
	const pkg = "github.com/agentflare-ai/go-cmdletdoc/internal/testmodule"
	assert.Equal(t, []string{
		"T:" + pkg + ".TestReferencesCommand",
		"T:" + pkg + ".ManualClass",
		"F:" + pkg + ".TestReferencesCommand.ParameterOne",
		"!:strings.Builder",
		"T:" + pkg + ".TestMamlElementsCommand",
	}, crefs)
}

func TestLoadGoSourceWritesSidecar(t *testing.T) {
	doc := loadTestModule(t)
	var buf bytes.Buffer
	_, err := doc.WriteTo(&buf)
	require.NoError(t, err)

	reread, err := comments.ParseXMLDoc(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc.Len(), reread.Len())
}

func TestLoadGoSourceUnknownPackage(t *testing.T) {
	_, err := comments.LoadGoSource(context.Background(), "./does-not-exist")
	require.Error(t, err)
}
