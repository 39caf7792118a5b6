package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studytrack-backend/internal/apperrors"
)

func TestRespondServiceError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: fmt.Errorf("%w: course", apperrors.ErrNotFound), want: http.StatusNotFound},
		{name: "invalid argument", err: fmt.Errorf("%w: bad level", apperrors.ErrInvalidArgument), want: http.StatusBadRequest},
		{name: "unauthorized", err: apperrors.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "conflict", err: fmt.Errorf("%w: email taken", apperrors.ErrConflict), want: http.StatusConflict},
		{name: "upstream", err: fmt.Errorf("%w: model call failed", apperrors.ErrUpstream), want: http.StatusBadGateway},
		{name: "unclassified", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			RespondServiceError(c, tc.err)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
