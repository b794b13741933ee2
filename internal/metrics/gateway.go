package metrics

import (
	"context"
	"time"

	"github.com/harentsoaR/doctor-portfolio-api/internal/store"
)

type instrumentedGateway struct {
	next    store.Gateway
	metrics *Metrics
}

// InstrumentGateway wraps g so every call is counted and timed.
func InstrumentGateway(g store.Gateway, m *Metrics) store.Gateway {
	return &instrumentedGateway{next: g, metrics: m}
}

func (g *instrumentedGateway) Insert(ctx context.Context, coll store.Collection, record any) (string, error) {
	start := time.Now()
	id, err := g.next.Insert(ctx, coll, record)
	g.metrics.ObserveStore("insert", coll.Name, start, err)
	return id, err
}

func (g *instrumentedGateway) Query(ctx context.Context, coll store.Collection, filter store.Filter, out any) error {
	start := time.Now()
	err := g.next.Query(ctx, coll, filter, out)
	g.metrics.ObserveStore("query", coll.Name, start, err)
	return err
}

func (g *instrumentedGateway) ReplaceFields(ctx context.Context, coll store.Collection, id string, fields any) error {
	start := time.Now()
	err := g.next.ReplaceFields(ctx, coll, id, fields)
	g.metrics.ObserveStore("replace", coll.Name, start, err)
	return err
}

func (g *instrumentedGateway) Ping(ctx context.Context) error {
	start := time.Now()
	err := g.next.Ping(ctx)
	g.metrics.ObserveStore("ping", "", start, err)
	return err
}

func (g *instrumentedGateway) CollectionNames(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := g.next.CollectionNames(ctx)
	g.metrics.ObserveStore("list_collections", "", start, err)
	return names, err
}
