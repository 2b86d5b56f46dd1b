package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerRegistersOnCustomRegistry(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		reg := prometheus.NewRegistry()
		NewManager(WithPrometheusRegistry(reg), WithNamespace("test"), WithSubsystem("suite"))

		Convey("When gathering", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)

			Convey("Then the service metrics are present under the configured names", func() {
				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				for _, want := range []string{
					"test_suite_analysis_duration_milliseconds",
					"test_suite_rows_parsed_total",
					"test_suite_uploads_total",
					"test_suite_mail_sent_total",
					"test_suite_qr_generated_total",
					"test_suite_system_goroutines",
				} {
					So(names[want], ShouldBeTrue)
				}
			})
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording through the package helpers", func() {
			RecordAnalysis("distance", "ok")
			RecordAnalysisDuration(12.5)
			AddRowsParsed(4)
			UpdateUsersCompared(3)
			UpdateHistorySize(1)
			RecordUpload(256)
			RecordUploadRejected()
			RecordMailSent()
			RecordMailError()
			RecordMailDuplicate()
			RecordQRGenerated()
			RecordHTTPRequest("analysis", "POST", "200")
			RecordHTTPRequestDuration("analysis", "POST", "200", 3.2)
			UpdateSystemMemoryUsage(1 << 20)
			UpdateSystemGoroutineCount(8)
			RecordSystemGCPauseTime(0.4)

			Convey("Then the custom registry exposes them", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if strings.HasSuffix(f.GetName(), "analyses_total") {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}
