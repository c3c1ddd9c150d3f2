package fallback_test

import (
	"testing"

	"github.com/okian/otvplus/internal/domain/fallback"
	"github.com/okian/otvplus/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given scouting grades", t, func() {
		So(fallback.Normalize(50), ShouldEqual, 0.0)
		So(fallback.Normalize(60), ShouldEqual, 10.0)
		So(fallback.Normalize(45), ShouldEqual, -5.0)
		So(fallback.Normalize(80), ShouldEqual, 30.0)
	})
}

func TestAggregatorScore(t *testing.T) {
	Convey("Given a fallback aggregator", t, func() {
		agg := fallback.New()

		Convey("When a single family is graded 60 and no usage is given", func() {
			Convey("Then the score is exactly 110", func() {
				So(agg.Score(model.GradeTable{model.Fastball: 60}, nil), ShouldEqual, 110.0)
			})
		})

		Convey("When the org default grades are used without usage", func() {
			grades := model.GradeTable{
				model.Fastball:  60,
				model.Slider:    55,
				model.Curveball: 55,
				model.Changeup:  50,
			}

			Convey("Then the score is 100 plus the mean normalized grade", func() {
				So(agg.Score(grades, nil), ShouldEqual, 105.0)
			})
		})

		Convey("When usage is supplied", func() {
			grades := model.GradeTable{model.Fastball: 60, model.Slider: 70}
			usage := model.Usage{model.Fastball: 0.6}

			Convey("Then each normalized grade is weighted by usage, defaulting to 0.25", func() {
				// (10*0.6 + 20*0.25) / 2
				So(agg.Score(grades, usage), ShouldAlmostEqual, 105.5, 1e-12)
			})
		})

		Convey("When the usage table is empty", func() {
			Convey("Then the unweighted mean is used", func() {
				So(agg.Score(model.GradeTable{model.Slider: 40}, model.Usage{}), ShouldEqual, 90.0)
			})
		})

		Convey("When the grade table is empty", func() {
			So(agg.Score(nil, nil), ShouldEqual, 100.0)
		})

		Convey("When a custom default usage share is configured", func() {
			custom := fallback.New(fallback.WithDefaultUsage(0.5))
			score := custom.Score(model.GradeTable{model.Changeup: 70}, model.Usage{model.Fastball: 1})

			Convey("Then absent families use that share", func() {
				So(score, ShouldEqual, 110.0)
			})
		})
	})
}
