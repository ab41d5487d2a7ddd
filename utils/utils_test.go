package utils

import (
	"bytes"
	"cafeapi/logger"
	"cafeapi/metrics"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTruthy(t *testing.T) {
	Convey("Truthy treats any non-empty string as true", t, func() {
		for _, v := range []string{"1", "on", "true", "yes", "false", "0", " "} {
			So(Truthy(v), ShouldBeTrue)
		}
		So(Truthy(""), ShouldBeFalse)
	})
}

func TestFormHelpers(t *testing.T) {
	Convey("Given a form request", t, func() {
		var got struct {
			flag, missingFlag bool
			price, missing    *string
			query, noQuery    *string
		}
		r := gin.New()
		r.POST("/f", func(c *gin.Context) {
			got.flag = PostFormFlag(c, "wifi")
			got.missingFlag = PostFormFlag(c, "calls")
			got.price = OptionalPostForm(c, "coffee_price")
			got.missing = OptionalPostForm(c, "nothing")
			got.query = OptionalQuery(c, "new_price")
			got.noQuery = OptionalQuery(c, "other")
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/f?new_price=", strings.NewReader("wifi=on&coffee_price="))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.ServeHTTP(httptest.NewRecorder(), req)

		Convey("Then present fields are returned even when empty", func() {
			So(got.flag, ShouldBeTrue)
			So(got.missingFlag, ShouldBeFalse)
			So(got.price, ShouldNotBeNil)
			So(*got.price, ShouldEqual, "")
			So(got.query, ShouldNotBeNil)
			So(*got.query, ShouldEqual, "")
		})

		Convey("And absent fields are nil", func() {
			So(got.missing, ShouldBeNil)
			So(got.noQuery, ShouldBeNil)
		})
	})
}

func TestMiddleware(t *testing.T) {
	Convey("Given a router with the request middleware", t, func() {
		var buf bytes.Buffer
		m := metrics.NewManager()
		r := gin.New()
		r.Use(RequestIDMiddleware(), AccessLogMiddleware(logger.New(&buf)), MetricsMiddleware(m))
		r.GET("/ok/:id", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

		Convey("When no request id is sent", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok/1", nil))

			Convey("Then one is generated and echoed", func() {
				id := w.Header().Get(RequestIDHeader)
				So(id, ShouldHaveLength, 36)
				So(w.Body.String(), ShouldEqual, id)
			})

			Convey("And the request is logged", func() {
				So(buf.String(), ShouldContainSubstring, "path=/ok/1")
				So(buf.String(), ShouldContainSubstring, "status=200")
			})

			Convey("And metrics use the route template", func() {
				n, err := testutil.GatherAndCount(m.Registry(), "cafe_http_requests_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When the caller sends a request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/ok/2", nil)
			req.Header.Set(RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			Convey("Then it is kept", func() {
				So(w.Header().Get(RequestIDHeader), ShouldEqual, "abc-123")
			})
		})

		Convey("When the route is unknown", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

			Convey("Then it is logged as a warning", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(buf.String(), ShouldContainSubstring, "level=WARN")
			})
		})
	})
}
