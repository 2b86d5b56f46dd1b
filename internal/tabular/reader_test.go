package tabular_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tabular "github.com/unzippd/portfolio/internal/tabular"
	. "github.com/smartystreets/goconvey/convey"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead(t *testing.T) {
	ctx := context.Background()

	Convey("Given a well-formed table with a header row", t, func() {
		path := writeFile(t, "users.csv", "Users,Times\nUser1,12:00:00\nUser2,08:45:12\n")

		Convey("When reading with the header flag set", func() {
			records, err := tabular.Read(ctx, path, true)

			Convey("Then the header is stripped and data rows survive", func() {
				So(err, ShouldBeNil)
				So(len(records), ShouldEqual, 2)
				So(records[0].UserID, ShouldEqual, "User1")
				So(records[0].Clock, ShouldEqual, "12:00:00")
				So(records[1].UserID, ShouldEqual, "User2")
			})
		})

		Convey("When reading without the header flag", func() {
			records, err := tabular.Read(ctx, path, false)

			Convey("Then the header row is returned as data", func() {
				So(err, ShouldBeNil)
				So(len(records), ShouldEqual, 3)
				So(records[0].UserID, ShouldEqual, "Users")
			})
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := tabular.Read(ctx, filepath.Join(t.TempDir(), "absent.csv"), true)
		So(errors.Is(err, tabular.ErrBadFormat), ShouldBeTrue)
	})

	Convey("Given a table with a three-column row", t, func() {
		path := writeFile(t, "wide.csv", "User1,12:00:00\nUser2,08:00:00,extra\n")
		_, err := tabular.Read(ctx, path, false)
		So(errors.Is(err, tabular.ErrBadFormat), ShouldBeTrue)
	})

	Convey("Given a header-only file", t, func() {
		path := writeFile(t, "empty.csv", "Users,Times\n")
		_, err := tabular.Read(ctx, path, true)
		So(errors.Is(err, tabular.ErrBadFormat), ShouldBeTrue)
	})

	Convey("Given an entirely empty file", t, func() {
		path := writeFile(t, "zero.csv", "")
		_, err := tabular.Read(ctx, path, false)
		So(errors.Is(err, tabular.ErrBadFormat), ShouldBeTrue)
	})
}
