package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prismpay/prism/internal/config"
	prismdomain "github.com/prismpay/prism/internal/prism/domain"
	"github.com/stretchr/testify/assert"
)

type stubPrismService struct {
	prismdomain.Service
	prisms []prismdomain.Prism
}

func (s stubPrismService) List(ctx context.Context) ([]prismdomain.Prism, error) {
	return s.prisms, nil
}

func TestListPrisms_PageSize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	prisms := make([]prismdomain.Prism, 60)
	for i := range prisms {
		prisms[i].Name = fmt.Sprintf("prism-%d", i)
	}

	r := gin.New()
	r.Use(ErrorHandlingMiddleware())
	s := &Server{engine: r, cfg: config.Config{}, prismSvc: stubPrismService{prisms: prisms}}
	r.GET("/api/prisms", s.ListPrisms)

	cases := []struct {
		name string
		url  string
		want int
	}{
		{name: "display default", url: "/api/prisms", want: config.DefaultDisplayConfig().DefaultPageSize},
		{name: "explicit limit", url: "/api/prisms?limit=5", want: 5},
		{name: "bad limit falls back", url: "/api/prisms?limit=-3", want: config.DefaultDisplayConfig().DefaultPageSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)

			var resp struct {
				Prisms []json.RawMessage `json:"prisms"`
			}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Len(t, resp.Prisms, tc.want)
		})
	}
}

func TestCapRows(t *testing.T) {
	rows := []int{1, 2, 3}
	assert.Equal(t, []int{1, 2}, capRows(rows, 2))
	assert.Equal(t, rows, capRows(rows, 3))
	assert.Equal(t, rows, capRows(rows, 10))
	assert.Equal(t, rows, capRows(rows, 0))
}
