package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		path   string
		header string
		want   string
	}{
		{name: "query param wins", path: "/x?token=abc", header: "Bearer def", want: "abc"},
		{name: "bearer header", path: "/x", header: "Bearer def", want: "def"},
		{name: "malformed header ignored", path: "/x", header: "def", want: ""},
		{name: "nothing", path: "/x", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}
			if got := extractToken(c); got != tc.want {
				t.Fatalf("extractToken = %q, want %q", got, tc.want)
			}
		})
	}
}
