// Package testmodule is a module of sample commands exercising every help
// element the generator emits. Its doc comments are the documentation
// source for the generator tests.
package testmodule

import (
	"reflect"

	"github.com/agentflare-ai/go-cmdletdoc/cmdlet"
)

// Module registers the sample commands and the value types they reference.
var Module = cmdlet.NewModule("testmodule",
	TestManualElementsCommand{},
	TestMamlElementsCommand{},
	TestReferencesCommand{},
	TestInputTypesCommand{},
	TestDynamicParametersCommand{},
	TestRuntimeDynamicParametersCommand{},
	TestDefaultValueCommand{},
	TestPositionedParametersCommand{},
	TestPropertyParametersCommand{},
	TestWildcardSupportCommand{},
	TestParameterlessCommand{},
	TestUndocumentedCommand{},
	hiddenCommand{},
	ManualClass{},
	MamlClass{},
	InputTypeClass1{},
	InputTypeClass2{},
	InputTypeClass3{},
	Color(0),
)

// Color is a primary color.
//
// <para type="description">One of the three primary colors.</para>
type Color int

const (
	Red Color = iota
	Green
	Blue
)

// EnumValues lists the color names in declaration order.
func (Color) EnumValues() []string { return []string{"Red", "Green", "Blue"} }

// ManualClass is the output of Test-ManualElements.
//
// <para type="description">This is the description for ManualClass.</para>
type ManualClass struct {
	Name string
}

// MamlClass is the output of Test-MamlElements.
//
// <maml:description xmlns:maml="http://schemas.microsoft.com/maml/2004/10" type="description">
// <maml:para>This is the description for MamlClass.</maml:para>
// </maml:description>
type MamlClass struct {
	Name string
}

// TestManualElementsCommand is documented with hand-written help elements.
//
// <para type="synopsis">This is part of the Test-ManualElements synopsis.</para>
// <para type="synopsis">This is also part of the Test-ManualElements synopsis.</para>
// <para type="description">This is part of the Test-ManualElements description.</para>
// <para type="description">This is also part of the Test-ManualElements description.</para>
// <list type="alertSet">
// <item>
// <term>First Note</term>
// <description>
// <para>This is the description for the first note.</para>
// </description>
// </item>
// <item>
// <term>Second Note</term>
// <description>
// <para>This is part of the description for the second note.</para>
// <para>This is also part of the description for the second note.</para>
// </description>
// </item>
// </list>
// <example>
// <para>This is part of the example 1 introduction.</para>
// <para>This is also part of the example 1 introduction.</para>
// <code>New-Thingy | Write-Host</code>
// <para>This is part of the example 1 remarks.</para>
// <para>This is also part of the example 1 remarks.</para>
// </example>
// <example>
// <para>This is the example 2 introduction.</para>
// <code>Get-Thingy | Write-Host</code>
// </example>
// <example>
// </example>
// <example>
// <code>Remove-Thingy</code>
// <para>This is the example 3 remarks.</para>
// </example>
// <para type="link">This is the text of the first link.</para>
// <para type="link" uri="https://example.com/go-cmdletdoc">This is the text of the second link.</para>
type TestManualElementsCommand struct {
	cmdlet.Cmdlet `verb:"Test" noun:"ManualElements"`

	// <para type="description">This is part of the MandatoryParameter description.</para>
	// <para type="description">This is also part of the MandatoryParameter description.</para>
	MandatoryParameter string `param:"mandatory"`

	// <para type="description">This is the OptionalParameter description.</para>
	OptionalParameter string `param:""`

	// <para type="description">This is the PositionedParameter description.</para>
	PositionedParameter string `param:"position=1"`

	// <para type="description">This is the ValueFromPipelineParameter description.</para>
	// <para type="inputType">This is the ValueFromPipelineParameter input type description.</para>
	ValueFromPipelineParameter ManualClass `param:"pipeline"`

	// <para type="description">This is the ValueFromPipelineByPropertyNameParameter description.</para>
	ValueFromPipelineByPropertyNameParameter string `param:"pipelinebyname"`

	// <para type="description">This is the ArrayParameter description.</para>
	ArrayParameter []string `param:""`

	// <para type="description">This is the AliasedParameter description.</para>
	AliasedParameter string `param:"" alias:"AliasOne,AliasTwo"`

	// <para type="description">This is the EnumParameter description.</para>
	EnumParameter Color `param:""`
}

// OutputTypes declares the pipeline output.
func (TestManualElementsCommand) OutputTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeOf(ManualClass{})}
}

// TestMamlElementsCommand is documented with embedded MAML elements.
//
// <maml:description xmlns:maml="http://schemas.microsoft.com/maml/2004/10" type="synopsis">
// <maml:para>This is the Test-MamlElements synopsis.</maml:para>
// </maml:description>
// <maml:description xmlns:maml="http://schemas.microsoft.com/maml/2004/10" type="description">
// <maml:para>This is part of the Test-MamlElements description.</maml:para>
// <maml:para>This is also part of the Test-MamlElements description.</maml:para>
// </maml:description>
// <maml:alertSet xmlns:maml="http://schemas.microsoft.com/maml/2004/10">
// <maml:title>Notes</maml:title>
// <maml:alert>
// <maml:para>This is an embedded alert.</maml:para>
// </maml:alert>
// </maml:alertSet>
type TestMamlElementsCommand struct {
	cmdlet.Cmdlet `verb:"Test" noun:"MamlElements"`

	// <maml:description xmlns:maml="http://schemas.microsoft.com/maml/2004/10" type="description">
	// <maml:para>This is the ParameterOne description.</maml:para>
	// </maml:description>
	ParameterOne string `param:"set=One,mandatory,position=0"`

	// <maml:description xmlns:maml="http://schemas.microsoft.com/maml/2004/10" type="description">
	// <maml:para>This is the ParameterTwo description.</maml:para>
	// </maml:description>
	ParameterTwo string `param:"set=Two,mandatory,position=0"`

	// <para type="description">This is the CommonParameter description.</para>
	CommonParameter string `param:"set=One;set=Two"`
}

// OutputTypes declares the pipeline output. Duplicates are collapsed.
func (TestMamlElementsCommand) OutputTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeOf(MamlClass{}), reflect.TypeOf(ManualClass{}), reflect.TypeOf(MamlClass{})}
}

// TestReferencesCommand refers to other members.
//
// <para type="synopsis">This is the Test-References synopsis.</para>
// <para type="description">This command is <see cref="TestReferencesCommand"/>.</para>
// <para type="description">It returns <see cref="ManualClass"/> values.</para>
// <para type="description">It reads <see cref="ParameterOne"/> and <see cref="strings.Builder"/>.</para>
// <para type="description">It is unrelated to <see cref="TestMamlElementsCommand">the MAML command</see>.</para>
type TestReferencesCommand struct {
	cmdlet.Cmdlet `verb:"Test" noun:"References"`

	// <para type="description">This parameter is documented on <see cref="TestReferencesCommand"/>.</para>
	ParameterOne string `param:""`
}

// TestInputTypesCommand accepts pipeline input documented three ways.
//
// <para type="synopsis">This is the Test-InputTypes synopsis.</para>
type TestInputTypesCommand struct {
	cmdlet.Cmdlet `verb:"Test" noun:"InputTypes"`

	// <para type="inputType">This is the ParameterOne input type description.</para>
	// <para type="description">This is the ParameterOne description.</para>
	ParameterOne InputTypeClass1 `param:"pipeline"`

	// <para type="description">This is the ParameterTwo description.</para>
	ParameterTwo InputTypeClass2 `param:"pipeline"`

	ParameterThree InputTypeClass3 `param:"pipelinebyname"`
}

// InputTypeClass1 is piped to Test-InputTypes.
//
// <para type="description">This is the InputTypeClass1 description.</para>
type InputTypeClass1 struct{}

// InputTypeClass2 is piped to Test-InputTypes.
//
// <para type="description">This is the InputTypeClass2 description.</para>
type InputTypeClass2 struct{}

// InputTypeClass3 is piped to Test-InputTypes.
//
// <para type="description">This is the InputTypeClass3 description.</para>
type InputTypeClass3 struct{}

// TestDynamicParametersCommand declares its parameters at runtime.
//
// <para type="synopsis">This is the Test-DynamicParameters synopsis.</para>
type TestDynamicParametersCommand struct {
	cmdlet.Cmdlet `verb:"Test" noun:"DynamicParameters"`

	// <para type="description">This is the StaticParameter description.</para>
	StaticParameter string `param:""`
}

// DynamicParameters returns the struct declaring the dynamic parameters.
func (TestDynamicParametersCommand) DynamicParameters() any {
	return &dynamicParameters{}
}

type dynamicParameters struct {
	// <para type="description">This is the DynamicParameter description.</para>
	DynamicParameter string `param:"mandatory"`

	Ignored string
}

// TestRuntimeDynamicParametersCommand declares runtime parameters.
//
// <para type="synopsis">This is the Test-RuntimeDynamicParameters synopsis.</para>
type TestRuntimeDynamicParametersCommand struct {
	cmdlet.Cmdlet `verb:"Test" noun:"RuntimeDynamicParameters"`
}

// DynamicParameters returns one declared and one undeclared runtime parameter.
func (TestRuntimeDynamicParametersCommand) DynamicParameters() any {
	var params cmdlet.RuntimeParameters
	params = params.Add("RuntimeParameter", reflect.TypeOf(""),
		cmdlet.Parameter{ParameterSetName: cmdlet.AllParameterSets, Position: cmdlet.Named, ValueFromPipeline: true},
		cmdlet.Alias{Names: []string{"rp"}},
	)
	params = params.Add("UndeclaredParameter", reflect.TypeOf(0))
	return params
}

// TestDefaultValueCommand has parameters with default values.
//
// <para type="synopsis">This is the Test-DefaultValue synopsis.</para>
type TestDefaultValueCommand struct {
	cmdlet.Cmdlet `verb:"Test" noun:"DefaultValue"`

	// <para type="description">This is the ArrayParameter description.</para>
	ArrayParameter []int `param:""`

	// <para type="description">This is the StringParameter description.</para>
	StringParameter string `param:""`

	// <para type="description">This is the EmptyArrayParameter description.</para>
	EmptyArrayParameter []string `param:""`

	// <para type="description">This is the EmptyStringParameter description.</para>
	EmptyStringParameter string `param:""`

	// <para type="description">This is the NilParameter description.</para>
	NilParameter *int `param:""`

	// <para type="description">This is the PointerParameter description.</para>
	PointerParameter *int `param:""`
}

// SetDefaults initializes the default values.
func (c *TestDefaultValueCommand) SetDefaults() {
	c.ArrayParameter = []int{1, 2, 3}
	c.StringParameter = "default"
	c.EmptyArrayParameter = []string{}
	n := 42
	c.PointerParameter = &n
}

// TestPositionedParametersCommand has positioned and named parameters.
//
// <para type="synopsis">This is the Test-PositionedParameters synopsis.</para>
type TestPositionedParametersCommand struct {
	cmdlet.Cmdlet `verb:"Test" noun:"PositionedParameters"`

	ParameterA string `param:"position=3"`
	ParameterB string `param:"position=2"`
	ParameterC string `param:"position=0"`
	ParameterD string `param:"position=1"`
	ParameterE string `param:""`
	ParameterF string `param:"mandatory"`
}

// TestPropertyParametersCommand has parameters backed by accessor methods.
//
// <para type="synopsis">This is the Test-PropertyParameters synopsis.</para>
type TestPropertyParametersCommand struct {
	cmdlet.Cmdlet `verb:"Test" noun:"PropertyParameters"`

	readWrite string
	writeOnly string
}

// Properties declares the accessor-backed parameters.
func (TestPropertyParametersCommand) Properties() []cmdlet.Property {
	return []cmdlet.Property{
		{Name: "ReadWriteParameter", Attributes: []cmdlet.Attribute{cmdlet.NewParameter(), cmdlet.SupportsWildcards{}}},
		{Name: "WriteOnlyParameter", Attributes: []cmdlet.Attribute{cmdlet.NewParameter()}},
		{Name: "UndeclaredProperty"},
	}
}

// SetDefaults initializes the default values.
func (c *TestPropertyParametersCommand) SetDefaults() {
	c.readWrite = "initial"
}

// ReadWriteParameter is readable and writable.
//
// <para type="description">This is the ReadWriteParameter description.</para>
func (c *TestPropertyParametersCommand) ReadWriteParameter() string { return c.readWrite }

// SetReadWriteParameter sets ReadWriteParameter.
func (c *TestPropertyParametersCommand) SetReadWriteParameter(v string) { c.readWrite = v }

// SetWriteOnlyParameter can only be set.
//
// <para type="description">This is the WriteOnlyParameter description.</para>
func (c *TestPropertyParametersCommand) SetWriteOnlyParameter(v string) { c.writeOnly = v }

// TestWildcardSupportCommand has a parameter accepting wildcards.
//
// <para type="synopsis">This is the Test-WildcardSupport synopsis.</para>
type TestWildcardSupportCommand struct {
	cmdlet.Cmdlet `verb:"Test" noun:"WildcardSupport"`

	// <para type="description">This is the WildcardParameter description.</para>
	WildcardParameter string `param:"" wildcards:""`

	// <para type="description">This is the LiteralParameter description.</para>
	LiteralParameter string `param:""`
}

// TestParameterlessCommand has no parameters.
//
// <para type="synopsis">This is the Test-Parameterless synopsis.</para>
type TestParameterlessCommand struct {
	cmdlet.Cmdlet `verb:"Test" noun:"Parameterless"`
}

type TestUndocumentedCommand struct {
	cmdlet.Cmdlet `verb:"Test" noun:"Undocumented"`

	Parameter string `param:""`
}

// hiddenCommand is not exported and is left out of the help.
type hiddenCommand struct {
	cmdlet.Cmdlet `verb:"Test" noun:"Hidden"`
}
