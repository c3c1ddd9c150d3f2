package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/otvplus/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntry(t *testing.T) {
	Convey("Given an Entry struct", t, func() {
		Convey("When creating a new entry", func() {
			entry := types.Entry{
				Rank:      1,
				First:     "Grayson",
				Last:      "Rodriguez",
				Level:     "MLB",
				StuffPlus: 104.2,
				Source:    "Statcast",
			}

			Convey("Then it should have the correct values", func() {
				So(entry.Rank, ShouldEqual, 1)
				So(entry.Last, ShouldEqual, "Rodriguez")
				So(entry.StuffPlus, ShouldEqual, 104.2)
			})

			Convey("And it should marshal with snake case keys", func() {
				data, err := json.Marshal(entry)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"stuff_plus":104.2`)
				So(string(data), ShouldContainSubstring, `"source":"Statcast"`)
			})
		})

		Convey("When creating an entry with zero values", func() {
			entry := types.Entry{}

			Convey("Then it should have default values", func() {
				So(entry.Rank, ShouldEqual, 0)
				So(entry.First, ShouldEqual, "")
				So(entry.StuffPlus, ShouldEqual, 0.0)
			})
		})
	})
}

func TestLevelSummary(t *testing.T) {
	Convey("Given a LevelSummary", t, func() {
		s := types.LevelSummary{Level: "AA", Count: 3, Mean: 101, Median: 100, Min: 95, Max: 108}

		Convey("Then it should marshal every field", func() {
			data, err := json.Marshal(s)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"level":"AA","count":3,"mean":101,"median":100,"min":95,"max":108}`)
		})
	})
}

func TestComparison(t *testing.T) {
	Convey("Given a comparison with a family only one pitcher throws", t, func() {
		v := 0.8
		cmp := types.Comparison{
			First:  types.PlayerSummary{First: "Jacob", Last: "Misiorowski", StuffPlus: 112.1},
			Second: types.PlayerSummary{First: "Robert", Last: "Gasser", StuffPlus: 101.3},
			Families: []types.FamilyComparison{
				{Family: "Slider", First: &v},
			},
		}

		Convey("The missing side should encode as null", func() {
			data, err := json.Marshal(cmp)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `{"family":"Slider","first":0.8,"second":null}`)
		})
	})
}
