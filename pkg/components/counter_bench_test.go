package components

import (
	"testing"

	"github.com/vango-dev/tally/pkg/reactive"
	"github.com/vango-dev/tally/pkg/render"
)

func BenchmarkCounterActivate(b *testing.B) {
	c := NewCounter(CounterProps{Message: "Count"})
	c.Subscribe(reactive.ListenerFunc(func() {}))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Activate()
	}
}

func BenchmarkCounterActivateAndRender(b *testing.B) {
	c := NewCounter(CounterProps{Message: "Count"})
	r := render.NewRenderer(render.RendererConfig{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Activate()
		if _, err := r.RenderToString(c.Render()); err != nil {
			b.Fatal(err)
		}
	}
}
