package result_test

import (
	"encoding/json"
	"testing"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/event"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/result"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDecodeTimed(t *testing.T) {
	Convey("Given centisecond codes for a timed event", t, func() {
		cases := []struct {
			code int64
			want string
		}{
			{0, "0.00"},
			{754, "7.54"},
			{5999, "59.99"},
			{6000, "1:00.00"},
			{6543, "1:05.43"},
			{359999, "59:59.99"},
			{360000, "1:00:00.00"},
			{372345, "1:02:03.45"},
		}

		for _, tc := range cases {
			So(result.Decode(result.Some(tc.code), event.Cube3x3), ShouldEqual, tc.want)
		}

		Convey("Then averages of timed events decode the same way", func() {
			So(result.DecodeAverage(result.Some(6543), event.Cube4x4), ShouldEqual, "1:05.43")
		})
	})
}

func TestDecodeAbsent(t *testing.T) {
	Convey("Given an absent code", t, func() {
		Convey("Then every event decodes to an empty string", func() {
			for _, k := range event.All() {
				So(result.Decode(result.None(), k), ShouldEqual, "")
				So(result.DecodeAverage(result.None(), k), ShouldEqual, "")
			}
		})
	})
}

func TestDecodeMoves(t *testing.T) {
	Convey("Given fewest moves codes", t, func() {
		Convey("Then singles are move counts rendered verbatim", func() {
			So(result.Decode(result.Some(24), event.FewestMove), ShouldEqual, "24")
		})

		Convey("Then means are fixed point with two decimals", func() {
			So(result.DecodeAverage(result.Some(2433), event.FewestMove), ShouldEqual, "24.33")
			So(result.DecodeAverage(result.Some(3000), event.FewestMove), ShouldEqual, "30.00")
			So(result.DecodeAverage(result.Some(2705), event.FewestMove), ShouldEqual, "27.05")
		})
	})
}

func TestDecodeMulti(t *testing.T) {
	Convey("Given packed multi-blind codes", t, func() {
		Convey("When the time is under an hour", func() {
			// 0580325400: DD=58, TTTTT=03254, MM=00
			So(result.Decode(result.Some(580325400), event.MultiBlind), ShouldEqual, "41/41 54:14")
		})

		Convey("When the time is at least an hour", func() {
			// 0970360001: DD=97, TTTTT=03600, MM=01 -> solved 2+1, attempted 3+1
			So(result.Decode(result.Some(970360001), event.MultiBlind), ShouldEqual, "3/4 1:00:00")
			// 0005000002: DD=00, TTTTT=50000, MM=02
			So(result.Decode(result.Some(5000002), event.MultiBlind), ShouldEqual, "101/103 13:53:20")
		})

		Convey("When the time field is the unknown marker", func() {
			// 0009999900: DD=00, TTTTT=99999, MM=00
			So(result.Decode(result.Some(9999900), event.MultiBlind), ShouldEqual, "99/99 Unknown")
		})

		Convey("When all fields are zero", func() {
			m, ok := result.DecodeMulti(result.Some(0))
			So(ok, ShouldBeTrue)
			So(m, ShouldResemble, result.MultiResult{Solved: 99, Attempted: 99})
			So(m.String(), ShouldEqual, "99/99 0:00")
		})

		Convey("When the code is wider than ten digits", func() {
			_, ok := result.DecodeMulti(result.Some(12345678901))
			So(ok, ShouldBeFalse)
			So(result.Decode(result.Some(12345678901), event.MultiBlind), ShouldEqual, "12345678901")
		})
	})
}

func TestDecodeIsPure(t *testing.T) {
	Convey("Given the same input twice", t, func() {
		for _, k := range event.All() {
			c := result.Some(580325400)
			So(result.Decode(c, k), ShouldEqual, result.Decode(c, k))
			So(result.DecodeAverage(c, k), ShouldEqual, result.DecodeAverage(c, k))
		}
	})
}

func TestCode(t *testing.T) {
	Convey("Given optional codes", t, func() {
		Convey("Then absent sorts after present and zero is a real value", func() {
			So(result.Some(0).Present(), ShouldBeTrue)
			So(result.Some(0).Less(result.None()), ShouldBeTrue)
			So(result.None().Less(result.Some(0)), ShouldBeFalse)
			So(result.None().Less(result.None()), ShouldBeFalse)
			So(result.Some(1).Less(result.Some(2)), ShouldBeTrue)
			So(result.Some(-5).Present(), ShouldBeFalse)
		})

		Convey("Then JSON uses null for absent", func() {
			b, err := json.Marshal([]result.Code{result.Some(754), result.None()})
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, "[754,null]")

			var back []result.Code
			So(json.Unmarshal(b, &back), ShouldBeNil)
			So(back[0].Equal(result.Some(754)), ShouldBeTrue)
			So(back[1].Present(), ShouldBeFalse)
		})
	})
}
