package qr_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	qr "github.com/unzippd/portfolio/internal/qr"
	. "github.com/smartystreets/goconvey/convey"
)

// pngMagic is the PNG file signature.
var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestGenerator(t *testing.T) {
	ctx := context.Background()

	Convey("Given a generator rooted in a temp dir", t, func() {
		dir := t.TempDir()
		gen := qr.NewGenerator(qr.WithDir(dir), qr.WithSize(128))

		Convey("When encoding a URL inline", func() {
			png, err := gen.PNG(ctx, "unzippd.co.uk")

			Convey("Then it returns PNG bytes", func() {
				So(err, ShouldBeNil)
				So(len(png), ShouldBeGreaterThan, len(pngMagic))
				So(bytes.HasPrefix(png, pngMagic), ShouldBeTrue)
			})
		})

		Convey("When saving a named code", func() {
			webPath, err := gen.Save(ctx, "unzippd.co.uk", "unzippd")

			Convey("Then the file lands under QR/ and the web path points at it", func() {
				So(err, ShouldBeNil)
				So(webPath, ShouldEqual, "QR/unzippd.png")
				data, readErr := os.ReadFile(filepath.Join(dir, "QR", "unzippd.png"))
				So(readErr, ShouldBeNil)
				So(bytes.HasPrefix(data, pngMagic), ShouldBeTrue)
			})
		})

		Convey("When saving without a name", func() {
			webPath, err := gen.Save(ctx, "unzippd.co.uk", "")

			Convey("Then a generated name is used", func() {
				So(err, ShouldBeNil)
				So(webPath, ShouldStartWith, "QR/")
				So(webPath, ShouldEndWith, ".png")
			})
		})

		Convey("When encoding an empty URL", func() {
			_, err := gen.PNG(ctx, "")
			So(errors.Is(err, qr.ErrEmptyURL), ShouldBeTrue)
		})
	})
}
