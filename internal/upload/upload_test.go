package upload_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	upload "github.com/unzippd/portfolio/internal/upload"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSave(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store rooted in a temp dir", t, func() {
		dir := t.TempDir()
		store := upload.NewStore(upload.WithDir(dir), upload.WithMaxBytes(64))

		Convey("When saving a payload within the cap", func() {
			path, cleanup, err := store.Save(ctx, strings.NewReader("User1,12:00:00\n"))

			Convey("Then the file exists with the payload", func() {
				So(err, ShouldBeNil)
				defer cleanup()
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldEqual, "User1,12:00:00\n")
			})

			Convey("And cleanup removes it, repeatedly and safely", func() {
				So(err, ShouldBeNil)
				cleanup()
				cleanup()
				_, statErr := os.Stat(path)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})

		Convey("When saving a payload exactly at the cap", func() {
			path, cleanup, err := store.Save(ctx, strings.NewReader(strings.Repeat("a", 64)))
			So(err, ShouldBeNil)
			defer cleanup()
			So(path, ShouldNotBeEmpty)
		})

		Convey("When saving a payload over the cap", func() {
			_, _, err := store.Save(ctx, strings.NewReader(strings.Repeat("a", 65)))

			Convey("Then it fails with the too-large kind and leaves no file", func() {
				So(errors.Is(err, upload.ErrTooLarge), ShouldBeTrue)
				entries, readErr := os.ReadDir(dir)
				So(readErr, ShouldBeNil)
				So(len(entries), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		store := upload.NewStore(upload.WithDir(t.TempDir()))

		Convey("When saving", func() {
			_, _, err := store.Save(ctx, strings.NewReader("x"))
			So(err, ShouldNotBeNil)
		})
	})
}
