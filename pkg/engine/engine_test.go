package engine_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placegen/placegen/pkg/engine"
	"github.com/placegen/placegen/pkg/placeholder"
	"github.com/placegen/placegen/pkg/plugin"
	"github.com/placegen/placegen/pkg/plugins"
	"github.com/placegen/placegen/pkg/value"
)

// mockPlugin resolves deterministically so document-level assertions can be
// exact.
type mockPlugin struct{}

func (mockPlugin) Name() string { return "mock" }

func (mockPlugin) Resolve(_ context.Context, ph *placeholder.Parsed, _ *plugin.Context) (value.Value, error) {
	switch ph.Action {
	case "number":
		n, err := value.NumFromLiteral(ph.Args[0])
		if err != nil {
			return nil, err
		}
		return n, nil
	case "string":
		return value.String(strings.Join(ph.Args, ":")), nil
	case "boolean":
		b, err := strconv.ParseBool(ph.Args[0])
		if err != nil {
			return nil, err
		}
		return value.Bool(b), nil
	case "null":
		return value.Null{}, nil
	case "object":
		return value.Object{
			{Key: "id", Val: value.Num(1)},
			{Key: "name", Val: value.String("thing")},
		}, nil
	case "array":
		return value.Array{value.Num(1), value.Num(2)}, nil
	case "chain":
		n, err := strconv.Atoi(ph.Args[0])
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return value.String("done"), nil
		}
		return value.String(fmt.Sprintf("{{mock:chain:%d}}", n-1)), nil
	case "fail":
		return nil, errors.New("boom")
	default:
		return nil, fmt.Errorf("mock: unknown action %q", ph.Action)
	}
}

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.New()
	require.NoError(t, plugins.RegisterDefaults(eng.Registry()))
	require.NoError(t, eng.RegisterPlugin(mockPlugin{}))
	return eng
}

func process(t *testing.T, input string, opts engine.Options) string {
	t.Helper()
	out, err := newTestEngine(t).Process(context.Background(), input, opts)
	require.NoError(t, err)
	return out
}

func TestPurePlaceholderPreservesType(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"number", `{"count":"{{mock:number:42}}"}`, `{"count":42}`},
		{"float literal", `{"price":"{{mock:number:1.50}}"}`, `{"price":1.50}`},
		{"boolean", `{"ok":"{{mock:boolean:true}}"}`, `{"ok":true}`},
		{"null", `{"gone":"{{mock:null}}"}`, `{"gone":null}`},
		{"object", `{"item":"{{mock:object}}"}`, `{"item":{"id":1,"name":"thing"}}`},
		{"array", `{"ids":"{{mock:array}}"}`, `{"ids":[1,2]}`},
		{"string stays string", `{"s":"{{mock:string:abc}}"}`, `{"s":"abc"}`},
		{"whitespace around token", `{"count":"  {{mock:number:5}}  "}`, `{"count":5}`},
		{"root scalar document", `"{{mock:number:3}}"`, `3`},
		{"inside array", `{"a":[1,"{{mock:number:2}}",3]}`, `{"a":[1,2,3]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, process(t, tt.in, engine.Options{}))
		})
	}
}

func TestInterpolationCollapsesToString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading text", `{"label":"Count: {{mock:number:42}}"}`, `{"label":"Count: 42"}`},
		{"two tokens", `{"s":"{{mock:number:1}}-{{mock:number:2}}"}`, `{"s":"1-2"}`},
		{"duplicate token", `{"s":"{{mock:number:1}} {{mock:number:1}}"}`, `{"s":"1 1"}`},
		{"boolean in text", `{"s":"is {{mock:boolean:true}}"}`, `{"s":"is true"}`},
		{"object stringified", `{"s":"got {{mock:object}}"}`, `{"s":"got {\"id\":1,\"name\":\"thing\"}"}`},
		{"two pure-looking tokens", `{"s":"{{mock:number:1}} and {{mock:number:2}}"}`, `{"s":"1 and 2"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, process(t, tt.in, engine.Options{}))
		})
	}
}

func TestTokenFreeRoundTrip(t *testing.T) {
	doc := `{"zeta":1,"alpha":"text","list":[true,null,2.50],"nested":{"k":"v"}}`
	assert.Equal(t, doc, process(t, doc, engine.Options{}))
}

func TestNestedResolutionInnerFirst(t *testing.T) {
	nested := `{"d":"{{time:format:{{mock:number:1710508545}}:dd.MM.yyyy}}"}`
	flat := `{"d":"{{time:format:1710508545:dd.MM.yyyy}}"}`

	want := `{"d":"15.03.2024"}`
	assert.Equal(t, want, process(t, nested, engine.Options{}))
	// Resolving the pre-substituted flat form must agree.
	assert.Equal(t, want, process(t, flat, engine.Options{}))
}

func TestNestedTypedOuterResult(t *testing.T) {
	// The outer token resolves through a nested pass but still lands typed.
	doc := `{"ts":"{{time:format:{{mock:number:1710508545}}:yyyy}}"}`
	out := process(t, doc, engine.Options{})
	assert.Equal(t, `{"ts":"2024"}`, out)

	doc = `{"n":"{{mock:number:{{mock:number:7}}}}"}`
	assert.Equal(t, `{"n":7}`, process(t, doc, engine.Options{}))
}

func TestEscapedColonReachesPlugin(t *testing.T) {
	c := plugin.NewContext()
	c.SetNumber(plugin.KeyBaseTime, 1710508545)
	out := process(t, `{"t":"{{time:calc:0:HH\\:mm\\:ss}}"}`, engine.Options{Context: c})
	assert.Equal(t, `{"t":"13:15:45"}`, out)
}

func TestSelectivePhaseFiltering(t *testing.T) {
	doc := `{"a":"{{mock:number:1}}","b":"{{time:calc:0:seconds}}"}`

	phase1 := process(t, doc, engine.Options{IncludePlugins: []string{"mock"}})
	assert.Equal(t, `{"a":1,"b":"{{time:calc:0:seconds}}"}`, phase1)

	c := plugin.NewContext()
	c.SetNumber(plugin.KeyBaseTime, 1710508545)
	phase2 := process(t, phase1, engine.Options{IncludePlugins: []string{"time"}, Context: c})
	assert.Equal(t, `{"a":1,"b":1710508545}`, phase2)
}

func TestExcludeFiltering(t *testing.T) {
	doc := `{"a":"{{mock:number:1}}"}`
	out := process(t, doc, engine.Options{ExcludePlugins: []string{"mock"}})
	assert.Equal(t, doc, out)

	// A module in both lists ends up excluded.
	out = process(t, doc, engine.Options{
		IncludePlugins: []string{"mock"},
		ExcludePlugins: []string{"mock"},
	})
	assert.Equal(t, doc, out)
}

func TestFilteredNestedTokenBlocksOuter(t *testing.T) {
	// The inner token resolves, the outer time token stays for a later
	// phase with its argument already substituted.
	doc := `{"d":"{{time:format:{{mock:number:1710508545}}:yyyy}}"}`
	out := process(t, doc, engine.Options{IncludePlugins: []string{"mock"}})
	assert.Equal(t, `{"d":"{{time:format:1710508545:yyyy}}"}`, out)
}

func TestTransformPipelineOrder(t *testing.T) {
	assert.Equal(t, `{"v":"42"}`,
		process(t, `{"v":"{{mock:string:42|toNumber|toString}}"}`, engine.Options{}))
	assert.Equal(t, `{"v":42}`,
		process(t, `{"v":"{{mock:string:42|toNumber}}"}`, engine.Options{}))
	assert.Equal(t, `{"v":true}`,
		process(t, `{"v":"{{mock:string:yes|toBoolean}}"}`, engine.Options{}))
}

func TestIdempotenceOfResolvedOutput(t *testing.T) {
	doc := `{"count":"{{mock:number:42}}","item":"{{mock:object}}","s":"n={{mock:number:1}}"}`
	once := process(t, doc, engine.Options{})
	twice := process(t, once, engine.Options{})
	assert.Equal(t, once, twice)
}

func TestUnknownModuleFailsDocument(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.Process(context.Background(), `{"a":"{{unknown:x:y}}"}`, engine.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, plugin.ErrPluginNotFound)
	// Error names the missing module and the registered ones.
	assert.Contains(t, err.Error(), "unknown")
	assert.Contains(t, err.Error(), "gen")
	assert.Contains(t, err.Error(), "mock")

	var subErr *engine.SubstituteError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "{{unknown:x:y}}", subErr.Token)
	assert.Equal(t, "$.a", subErr.Path)
}

func TestUnknownTransformFails(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.Process(context.Background(), `{"a":"{{mock:number:1|halve}}"}`, engine.Options{})
	assert.ErrorIs(t, err, plugin.ErrTransformNotFound)
}

func TestMalformedPlaceholderFails(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.Process(context.Background(), `{"a":"{{mock}}"}`, engine.Options{})
	assert.ErrorIs(t, err, placeholder.ErrMalformed)
}

func TestFailurePathInNestedDocument(t *testing.T) {
	eng := newTestEngine(t)
	doc := `{"orders":[{"id":1},{"id":"{{mock:fail}}"}]}`
	_, err := eng.Process(context.Background(), doc, engine.Options{})
	require.Error(t, err)

	var subErr *engine.SubstituteError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "{{mock:fail}}", subErr.Token)
	assert.Equal(t, "$.orders[1].id", subErr.Path)
	assert.Contains(t, err.Error(), "boom")
}

func TestInvalidJSONDocument(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.Process(context.Background(), `{"a":`, engine.Options{})
	assert.Error(t, err)
}

func TestTextMode(t *testing.T) {
	opts := engine.Options{Format: engine.FormatText}

	assert.Equal(t, "id=7 ok", process(t, "id={{mock:number:7}} ok", opts))
	// Text mode has no types to preserve; a lone token becomes plain text.
	assert.Equal(t, "7", process(t, "{{mock:number:7}}", opts))
	assert.Equal(t, "15.03.2024",
		process(t, "{{time:format:{{mock:number:1710508545}}:dd.MM.yyyy}}", opts))
	// Token-free text is untouched.
	assert.Equal(t, "no tokens { here }", process(t, "no tokens { here }", opts))
}

func TestMaxPassesCapIsSilent(t *testing.T) {
	opts := engine.Options{Format: engine.FormatText, MaxPasses: 3}
	out := process(t, "x {{mock:chain:5}}", opts)
	assert.Equal(t, "x {{mock:chain:2}}", out)

	// Default bound is deep enough for the chain to finish.
	assert.Equal(t, "x done", process(t, "x {{mock:chain:5}}", engine.Options{Format: engine.FormatText}))
}

func TestContextValuesFlowThrough(t *testing.T) {
	c, err := plugin.ContextFromMap(map[string]any{
		"order": map[string]any{"id": 7.0, "sku": "A-1"},
	})
	require.NoError(t, err)

	out := process(t, `{"o":"{{ctx:value:order}}","sku":"{{ctx:jsonpath:order:$.sku}}"}`,
		engine.Options{Context: c})
	assert.Equal(t, `{"o":{"id":7,"sku":"A-1"},"sku":"A-1"}`, out)
}

func TestXMLFormatUnimplemented(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.Process(context.Background(), "<a/>", engine.Options{Format: engine.FormatXML})
	assert.ErrorIs(t, err, engine.ErrUnimplemented)
}

func TestProcessPhasedCompareUnimplemented(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.ProcessPhased(context.Background(),
		`{"a":"{{mock:number:1}}","b":"{{time:calc:0:seconds}}"}`,
		[]string{"mock"}, []string{"time"},
		engine.Options{Context: anchoredContext()})
	assert.ErrorIs(t, err, engine.ErrUnimplemented)
}

func anchoredContext() *plugin.Context {
	c := plugin.NewContext()
	c.SetNumber(plugin.KeyBaseTime, 1710508545)
	return c
}

func TestUnknownFormat(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.Process(context.Background(), "{}", engine.Options{Format: "csv"})
	assert.Error(t, err)
}

func TestDefaultFormatIsJSON(t *testing.T) {
	// Empty format behaves as json: the input must parse as a document.
	eng := newTestEngine(t)
	_, err := eng.Process(context.Background(), "not json", engine.Options{})
	assert.Error(t, err)
}
