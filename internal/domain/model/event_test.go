package model_test

import (
	"testing"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/identifier"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFailed(t *testing.T) {
	Convey("Given a failed lookup", t, func() {
		rec := model.Failed("2015ABCD12")

		Convey("Then only the identifier is retained", func() {
			So(rec.ID, ShouldEqual, identifier.ID("2015ABCD12"))
			So(rec.Fetched, ShouldBeFalse)
			So(rec.Name, ShouldBeEmpty)
			So(rec.Single.Present(), ShouldBeFalse)
			So(rec.Average.Present(), ShouldBeFalse)
		})
	})
}
