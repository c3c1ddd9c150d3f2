package standardize_test

import (
	"math"
	"testing"

	"github.com/okian/otvplus/internal/domain/standardize"
	. "github.com/smartystreets/goconvey/convey"
)

func ptrs(vs ...float64) []*float64 {
	out := make([]*float64, len(vs))
	for i := range vs {
		v := vs[i]
		out[i] = &v
	}
	return out
}

func meanStd(values []*float64) (float64, float64) {
	var n, sum float64
	for _, v := range values {
		if v != nil {
			n++
			sum += *v
		}
	}
	mean := sum / n
	var ss float64
	for _, v := range values {
		if v != nil {
			ss += (*v - mean) * (*v - mean)
		}
	}
	return mean, math.Sqrt(ss / (n - 1))
}

func TestStandardize(t *testing.T) {
	Convey("Given samples with at least two distinct values", t, func() {
		samples := [][]*float64{
			ptrs(1, 2),
			ptrs(20, 20, 5, -3.5, 0),
			ptrs(0.001, 0.002, 0.0035, 0.0001),
			ptrs(-15, 15, 7, 7, 7, 2),
		}

		Convey("Then every standardized sample has mean 100 and stdev 10", func() {
			for _, s := range samples {
				out, stats := standardize.Standardize(s)
				So(stats.Degenerate, ShouldBeFalse)
				mean, std := meanStd(out)
				So(mean, ShouldAlmostEqual, 100.0, 1e-9)
				So(std, ShouldAlmostEqual, 10.0, 1e-9)
			}
		})
	})

	Convey("Given samples with zero or undefined variance", t, func() {
		samples := [][]*float64{
			ptrs(20, 20, 20),
			ptrs(-4.2),
			ptrs(0, 0),
		}

		Convey("Then every standardized value is exactly 100", func() {
			for _, s := range samples {
				out, stats := standardize.Standardize(s)
				So(stats.Degenerate, ShouldBeTrue)
				for _, v := range out {
					So(v, ShouldNotBeNil)
					So(*v, ShouldEqual, 100.0)
				}
			}
		})
	})

	Convey("Given a sample with undefined scores", t, func() {
		values := ptrs(1, 3)
		values = append(values, nil)

		Convey("When standardizing", func() {
			out, stats := standardize.Standardize(values)

			Convey("Then undefined values are excluded from the fit", func() {
				So(stats.N, ShouldEqual, 2)
				So(stats.Mean, ShouldEqual, 2.0)
			})

			Convey("And they stay undefined in the output", func() {
				So(out[2], ShouldBeNil)
				So(*out[0], ShouldAlmostEqual, 100-10*(1/math.Sqrt2), 1e-9)
			})
		})
	})

	Convey("Given an empty sample", t, func() {
		out, stats := standardize.Standardize(nil)

		Convey("Then the fit is degenerate and nothing is produced", func() {
			So(stats.Degenerate, ShouldBeTrue)
			So(len(out), ShouldEqual, 0)
		})
	})

	Convey("Given non-finite inputs", t, func() {
		out, stats := standardize.Standardize(ptrs(math.NaN(), math.Inf(1), 5))

		Convey("Then they never leak into the output", func() {
			So(stats.N, ShouldEqual, 1)
			So(out[0], ShouldBeNil)
			So(out[1], ShouldBeNil)
			So(*out[2], ShouldEqual, 100.0)
		})
	})
}

func TestStatsApplyShared(t *testing.T) {
	Convey("Given stats fitted on a pooled sample", t, func() {
		stats := standardize.Fit(ptrs(0, 10, 20))

		Convey("When applied to a value outside the pool", func() {
			v := 30.0
			out := stats.Apply(&v)

			Convey("Then it is rescaled with the pooled mean and spread", func() {
				So(*out, ShouldAlmostEqual, 120.0, 1e-9)
			})
		})
	})
}
