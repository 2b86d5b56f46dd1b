package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/unzippd/portfolio/internal/adapters/http/api"
	"github.com/unzippd/portfolio/internal/adapters/repository"
	"github.com/unzippd/portfolio/internal/app"
	"github.com/unzippd/portfolio/internal/domain/model"
	"github.com/unzippd/portfolio/internal/domain/pair"
	"github.com/unzippd/portfolio/internal/mail"
	"github.com/unzippd/portfolio/internal/qr"
	"github.com/unzippd/portfolio/internal/upload"
)

// Mock implementations for testing
type mockService struct {
	run        repository.Run
	runErr     error
	contactErr error
	contacts   []mail.Message
	png        []byte
	savedPath  string
	qrErr      error
	runs       []repository.Run
}

func (m *mockService) Analyze(_ context.Context, payload io.Reader, _ string) (repository.Run, error) {
	_, _ = io.Copy(io.Discard, payload)
	if m.runErr != nil {
		return repository.Run{}, m.runErr
	}
	return m.run, nil
}

func (m *mockService) SendContact(_ context.Context, msg mail.Message) error {
	if m.contactErr != nil {
		return m.contactErr
	}
	m.contacts = append(m.contacts, msg)
	return nil
}

func (m *mockService) QRInline(_ context.Context, url string) ([]byte, error) {
	if m.qrErr != nil {
		return nil, m.qrErr
	}
	if url == "" {
		return nil, qr.ErrEmptyURL
	}
	return m.png, nil
}

func (m *mockService) QRSave(_ context.Context, url, _ string) (string, error) {
	if m.qrErr != nil {
		return "", m.qrErr
	}
	if url == "" {
		return "", qr.ErrEmptyURL
	}
	return m.savedPath, nil
}

func (m *mockService) RecentRuns(_ context.Context, n int) ([]repository.Run, error) {
	if n > len(m.runs) {
		n = len(m.runs)
	}
	return m.runs[:n], nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func multipartBody(t *testing.T, metric, table string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "times.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(table)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if metric != "" {
		if err := mw.WriteField("metric", metric); err != nil {
			t.Fatalf("write metric field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		svc := &mockService{
			run: repository.Run{
				ID:     "run-1",
				Metric: "distance",
				Match:  model.Match{UserA: "alice", UserB: "bob", Score: 0.01},
				Rows:   3,
				Users:  3,
			},
			png: []byte{0x89, 'P', 'N', 'G'},
		}
		statsProvider := &mockStatsProvider{stats: map[string]interface{}{"started": true}}
		server := api.NewServer(svc, statsProvider)
		mux := http.NewServeMux()

		Convey("When registering routes", func() {
			server.Register(context.Background(), mux)

			Convey("Then health endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/healthz", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And stats endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/stats", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And analysis endpoint should accept an upload", func() {
				body, contentType := multipartBody(t, "distance", "user,time\nalice,01:00:00\nbob,02:00:00\n")
				req := httptest.NewRequest("POST", "/analysis", body)
				req.Header.Set("Content-Type", contentType)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And qr endpoint should stream a PNG", func() {
				req := httptest.NewRequest("GET", "/qr?url=https://example.com", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")
			})

			Convey("And dashboard endpoint should serve HTML with refresh control", func() {
				req := httptest.NewRequest("GET", "/dashboard", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				body := w.Body.String()
				So(body, ShouldContainSubstring, "id=\"refresh-interval\"")
				So(body, ShouldContainSubstring, "id=\"refresh-control\"")
			})

			Convey("And unknown routes should 404", func() {
				req := httptest.NewRequest("GET", "/unknown", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestAnalysisHandler_HandlePostAnalysis(t *testing.T) {
	Convey("Given an analysis handler", t, func() {
		svc := &mockService{
			run: repository.Run{
				ID:     "run-1",
				Metric: "similarity",
				Match:  model.Match{UserA: "alice", UserB: "carol", Score: 0.998},
				Rows:   5,
				Users:  3,
			},
		}
		handler := api.NewAnalysisHandler(svc)

		Convey("When handling a valid upload", func() {
			body, contentType := multipartBody(t, "similarity", "user,time\nalice,01:00:00\n")
			req := httptest.NewRequest("POST", "/analysis", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			Convey("Then it should return the winning pair", func() {
				handler.HandlePostAnalysis(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var resp map[string]interface{}
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp["user_a"], ShouldEqual, "alice")
				So(resp["user_b"], ShouldEqual, "carol")
				So(resp["metric"], ShouldEqual, "similarity")
				So(resp["score"], ShouldAlmostEqual, 0.998, 1e-9)
			})
		})

		Convey("When the file field is missing", func() {
			req := httptest.NewRequest("POST", "/analysis", strings.NewReader("not multipart"))
			req.Header.Set("Content-Type", "text/plain")
			w := httptest.NewRecorder()

			Convey("Then it should return bad request", func() {
				handler.HandlePostAnalysis(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the pipeline rejects the table", func() {
			svc.runErr = pair.ErrInsufficientUsers
			body, contentType := multipartBody(t, "", "user,time\nalice,01:00:00\n")
			req := httptest.NewRequest("POST", "/analysis", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			Convey("Then the typed code lands in the body", func() {
				handler.HandlePostAnalysis(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp map[string]interface{}
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "insufficient_users")
			})
		})

		Convey("When the payload exceeds the upload cap", func() {
			svc.runErr = upload.ErrTooLarge
			body, contentType := multipartBody(t, "", "user,time\nalice,01:00:00\n")
			req := httptest.NewRequest("POST", "/analysis", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			Convey("Then it should return 413", func() {
				handler.HandlePostAnalysis(w, req)
				So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
			})
		})

		Convey("When handling a non-POST request", func() {
			req := httptest.NewRequest("GET", "/analysis", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return not found status", func() {
				handler.HandlePostAnalysis(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestContactHandler_HandlePostContact(t *testing.T) {
	Convey("Given a contact handler", t, func() {
		svc := &mockService{}
		handler := api.NewContactHandler(svc)

		validJSON := `{"name":"Ada","email":"ada@example.com","subject":"hello","message":"nice site"}`

		Convey("When handling a valid JSON submission", func() {
			req := httptest.NewRequest("POST", "/contact", strings.NewReader(validJSON))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			Convey("Then it should acknowledge the send", func() {
				handler.HandlePostContact(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(svc.contacts, ShouldHaveLength, 1)
				So(svc.contacts[0].Body, ShouldEqual, "nice site")
			})
		})

		Convey("When handling a classic form submission", func() {
			form := "name=Ada&email=ada%40example.com&subject=hello&message=nice+site"
			req := httptest.NewRequest("POST", "/contact", strings.NewReader(form))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()

			Convey("Then the fields map onto the message", func() {
				handler.HandlePostContact(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(svc.contacts, ShouldHaveLength, 1)
				So(svc.contacts[0].Email, ShouldEqual, "ada@example.com")
			})
		})

		Convey("When the message is invalid", func() {
			svc.contactErr = mail.ErrInvalidMessage
			req := httptest.NewRequest("POST", "/contact", strings.NewReader(validJSON))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			Convey("Then it should return bad request", func() {
				handler.HandlePostContact(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the submission is a duplicate", func() {
			svc.contactErr = app.ErrDuplicateSubmission
			req := httptest.NewRequest("POST", "/contact", strings.NewReader(validJSON))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			Convey("Then it should return conflict", func() {
				handler.HandlePostContact(w, req)
				So(w.Code, ShouldEqual, http.StatusConflict)
			})
		})

		Convey("When the relay fails", func() {
			svc.contactErr = mail.ErrSend
			req := httptest.NewRequest("POST", "/contact", strings.NewReader(validJSON))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			Convey("Then it should return bad gateway", func() {
				handler.HandlePostContact(w, req)
				So(w.Code, ShouldEqual, http.StatusBadGateway)
			})
		})

		Convey("When the JSON body is malformed", func() {
			req := httptest.NewRequest("POST", "/contact", strings.NewReader(`{broken`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			Convey("Then it should return bad request", func() {
				handler.HandlePostContact(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When handling a non-POST request", func() {
			req := httptest.NewRequest("GET", "/contact", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return not found status", func() {
				handler.HandlePostContact(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestQRHandler_HandleGetQR(t *testing.T) {
	Convey("Given a QR handler", t, func() {
		svc := &mockService{
			png:       []byte{0x89, 'P', 'N', 'G'},
			savedPath: "QR/front-door.png",
		}
		handler := api.NewQRHandler(svc)

		Convey("When requesting an inline code", func() {
			req := httptest.NewRequest("GET", "/qr?url=https://example.com", nil)
			w := httptest.NewRecorder()

			Convey("Then PNG bytes stream back", func() {
				handler.HandleGetQR(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")
				So(w.Body.Bytes(), ShouldResemble, svc.png)
			})
		})

		Convey("When requesting a download", func() {
			req := httptest.NewRequest("GET", "/qr?url=https://example.com&name=front-door&download=1", nil)
			w := httptest.NewRecorder()

			Convey("Then the saved web path is returned", func() {
				handler.HandleGetQR(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var resp map[string]string
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp["path"], ShouldEqual, "QR/front-door.png")
			})
		})

		Convey("When the url parameter is empty", func() {
			req := httptest.NewRequest("GET", "/qr", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return bad request", func() {
				handler.HandleGetQR(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestStatsHandler_HandleStats(t *testing.T) {
	Convey("Given a stats handler", t, func() {
		svc := &mockService{
			runs: []repository.Run{
				{ID: "run-2", Metric: "similarity"},
				{ID: "run-1", Metric: "distance"},
			},
		}
		statsProvider := &mockStatsProvider{
			stats: map[string]interface{}{
				"started":  true,
				"runCount": 2,
			},
		}
		handler := api.NewStatsHandler(statsProvider, svc)

		Convey("When handling a stats request", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()

			Convey("Then the snapshot includes recent runs", func() {
				handler.HandleStats(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var resp map[string]interface{}
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp["started"], ShouldEqual, true)
				So(resp["runCount"], ShouldEqual, 2)

				runs, ok := resp["recentRuns"].([]interface{})
				So(ok, ShouldBeTrue)
				So(runs, ShouldHaveLength, 2)
			})
		})
	})
}
