package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/otvplus/internal/domain/model"
	"github.com/okian/otvplus/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func testStore(opts ...Option) *MemoryStore {
	m := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
	return NewMemoryStore(append([]Option{WithMetrics(m)}, opts...)...)
}

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := testStore(WithCapacity(2))

		Convey("Latest and Get should report not found", func() {
			_, err := store.Latest(ctx)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			_, err = store.Get(ctx, "missing")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			So(store.Count(ctx), ShouldEqual, 0)
		})

		Convey("A run without an id should be rejected", func() {
			_, err := store.Put(ctx, Run{})
			So(errors.Is(err, ErrInvalidRun), ShouldBeTrue)
		})

		Convey("When runs are stored", func() {
			for i := 1; i <= 3; i++ {
				_, err := store.Put(ctx, Run{ID: fmt.Sprintf("r%d", i), OrgID: "4"})
				So(err, ShouldBeNil)
			}

			Convey("The oldest run should be evicted past capacity", func() {
				So(store.Count(ctx), ShouldEqual, 2)
				_, err := store.Get(ctx, "r1")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})

			Convey("Latest should return the newest", func() {
				run, err := store.Latest(ctx)
				So(err, ShouldBeNil)
				So(run.ID, ShouldEqual, "r3")
			})

			Convey("List should be newest first", func() {
				runs := store.List(ctx)
				So(len(runs), ShouldEqual, 2)
				So(runs[0].ID, ShouldEqual, "r3")
				So(runs[1].ID, ShouldEqual, "r2")
			})

			Convey("Re-putting an id should not evict", func() {
				_, err := store.Put(ctx, Run{ID: "r2", Skipped: 5})
				So(err, ShouldBeNil)
				So(store.Count(ctx), ShouldEqual, 2)
				run, _ := store.Get(ctx, "r2")
				So(run.Skipped, ShouldEqual, 5)
			})
		})
	})

	Convey("Given concurrent writers and readers", t, func() {
		ctx := context.Background()
		store := testStore(WithCapacity(50))
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				_, _ = store.Put(ctx, Run{ID: fmt.Sprintf("run-%d", i)})
			}(i)
			go func() {
				defer wg.Done()
				_, _ = store.Latest(ctx)
				_ = store.List(ctx)
			}()
		}
		wg.Wait()
		So(store.Count(ctx), ShouldEqual, 20)
	})
}

func TestRank(t *testing.T) {
	Convey("Given an unordered result table", t, func() {
		results := []model.PitcherResult{
			{First: "A", Last: "Zed", Level: "AA", StuffPlus: 101.2, Source: model.SourceStatcast},
			{First: "B", Last: "Young", Level: "AAA", StuffPlus: 105.0, Source: model.SourceScouting},
			{First: "C", Last: "Abel", Level: "A", StuffPlus: 101.2, Source: model.SourceStatcast},
			{First: "D", Last: "Moss", Level: "A+", StuffPlus: 98.4, Source: model.SourceScouting},
		}

		entries := Rank(results)

		Convey("It should sort by score and break ties by name", func() {
			So(entries[0].Last, ShouldEqual, "Young")
			So(entries[1].Last, ShouldEqual, "Abel")
			So(entries[2].Last, ShouldEqual, "Zed")
			So(entries[3].Last, ShouldEqual, "Moss")
		})

		Convey("Tied scores should share a rank", func() {
			So(entries[0].Rank, ShouldEqual, 1)
			So(entries[1].Rank, ShouldEqual, 2)
			So(entries[2].Rank, ShouldEqual, 2)
			So(entries[3].Rank, ShouldEqual, 3)
		})

		Convey("The input should be left untouched", func() {
			So(results[0].Last, ShouldEqual, "Zed")
		})
	})
}
