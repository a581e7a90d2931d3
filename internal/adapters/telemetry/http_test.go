package telemetry_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/raidsight/raidsight/internal/adapters/telemetry"
	"github.com/raidsight/raidsight/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReportMetadata(t *testing.T) {
	Convey("Given a server that answers the fights endpoint", t, func() {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"title": "Weekly Clear",
				"fights": []map[string]any{
					{"id": 1, "name": "Gruul", "boss": 709, "kill": true, "start_time": 0, "end_time": 300000},
				},
				"friendlies": []map[string]any{
					{"id": 7, "name": "Aeris", "type": "Priest", "icon": "Shadow"},
				},
			})
		}))
		defer srv.Close()
		client := telemetry.NewHTTPClient(srv.URL, "sekrit")

		Convey("When metadata is fetched", func() {
			meta, err := client.ReportMetadata(context.Background(), "RPT-1")

			Convey("Then the response maps onto the domain model", func() {
				So(err, ShouldBeNil)
				So(meta.Title, ShouldEqual, "Weekly Clear")
				So(meta.Actors[7].Name, ShouldEqual, "Aeris")
				So(meta.Actors[7].Class, ShouldEqual, "Priest")
				So(meta.Fights, ShouldHaveLength, 1)
				So(meta.Fights[0].Encounter, ShouldEqual, 709)
				So(meta.Fights[0].Kill, ShouldBeTrue)
			})

			Convey("And the token rides as a bearer header", func() {
				So(gotAuth, ShouldEqual, "Bearer sekrit")
			})
		})
	})
}

func TestEventsPagination(t *testing.T) {
	Convey("Given a server that pages the event stream", t, func() {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n := atomic.AddInt32(&calls, 1)
			if n == 1 {
				next := int64(150_000)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"events":            []map[string]any{{"timestamp": 1000, "type": "cast", "sourceID": 7}},
					"nextPageTimestamp": next,
				})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"events": []map[string]any{{"timestamp": 151_000, "type": "cast", "sourceID": 7}},
			})
		}))
		defer srv.Close()
		client := telemetry.NewHTTPClient(srv.URL, "")
		fight := model.FightWindow{FightID: 1, StartTime: 0, EndTime: 300_000}

		Convey("When events are fetched for one kind", func() {
			raw, err := client.Events(context.Background(), "RPT-1", fight, []string{"cast"})

			Convey("Then the cursor is followed until exhausted", func() {
				So(err, ShouldBeNil)
				So(raw, ShouldHaveLength, 2)
				So(atomic.LoadInt32(&calls), ShouldEqual, 2)
			})
		})
	})
}

func TestRetries(t *testing.T) {
	Convey("Given a server that fails twice before succeeding", t, func() {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) <= 2 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_ = json.NewEncoder(w).Encode(telemetry.Summary{Deaths: 1})
		}))
		defer srv.Close()
		client := telemetry.NewHTTPClient(srv.URL, "",
			telemetry.WithRetry(3, time.Millisecond))

		Convey("When the call is made", func() {
			summary, err := client.FightSummary(context.Background(), "RPT-1", 1)

			Convey("Then transient failures are retried through", func() {
				So(err, ShouldBeNil)
				So(summary.Deaths, ShouldEqual, 1)
				So(atomic.LoadInt32(&calls), ShouldEqual, 3)
			})
		})
	})

	Convey("Given a server that always returns 404", t, func() {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()
		client := telemetry.NewHTTPClient(srv.URL, "",
			telemetry.WithRetry(3, time.Millisecond))

		Convey("When the call is made", func() {
			_, err := client.ReportMetadata(context.Background(), "RPT-404")

			Convey("Then the failure propagates without a retry", func() {
				So(errors.Is(err, telemetry.ErrNotFound), ShouldBeTrue)
				So(atomic.LoadInt32(&calls), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a server that never recovers", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()
		client := telemetry.NewHTTPClient(srv.URL, "",
			telemetry.WithRetry(2, time.Millisecond))

		Convey("When retries run out", func() {
			_, err := client.FightSummary(context.Background(), "RPT-1", 1)

			Convey("Then the last transient error is reported", func() {
				So(err, ShouldNotBeNil)
				var status *telemetry.StatusError
				So(errors.As(err, &status), ShouldBeTrue)
				So(status.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(err.Error(), ShouldContainSubstring, "retries exhausted")
			})
		})
	})
}
