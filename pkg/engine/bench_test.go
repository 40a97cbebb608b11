package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/placegen/placegen/pkg/engine"
	"github.com/placegen/placegen/pkg/plugins"
)

func benchEngine(b *testing.B) *engine.Engine {
	b.Helper()
	eng := engine.New()
	require.NoError(b, plugins.RegisterDefaults(eng.Registry()))
	require.NoError(b, eng.RegisterPlugin(mockPlugin{}))
	return eng
}

func BenchmarkProcessTokenFree(b *testing.B) {
	eng := benchEngine(b)
	doc := `{"a":1,"b":"text","c":[true,null,2.5],"d":{"k":"v"}}`
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eng.Process(context.Background(), doc, engine.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkProcessPurePlaceholders(b *testing.B) {
	eng := benchEngine(b)
	doc := `{"count":"{{mock:number:42}}","item":"{{mock:object}}","flag":"{{mock:boolean:true}}"}`
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eng.Process(context.Background(), doc, engine.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkProcessNested(b *testing.B) {
	eng := benchEngine(b)
	doc := `{"d":"{{time:format:{{mock:number:1710508545}}:dd.MM.yyyy}}"}`
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eng.Process(context.Background(), doc, engine.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkProcessText(b *testing.B) {
	eng := benchEngine(b)
	input := "order {{mock:number:1}} for {{mock:string:acme}} at {{mock:number:1710508545}}"
	opts := engine.Options{Format: engine.FormatText}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eng.Process(context.Background(), input, opts); err != nil {
			b.Fatal(err)
		}
	}
}
