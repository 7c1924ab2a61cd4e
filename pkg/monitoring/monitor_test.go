package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMetricsMiddleware_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()
	Init()

	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/quests/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	before := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "/quests/:id", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/quests/7", nil))
	after := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "/quests/:id", "404"))

	assert.Equal(t, before+1, after)
}

func TestDBStatsCollector(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	db, err := gdb.DB()
	require.NoError(t, err)
	defer db.Close()

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(newDBStatsCollector(db)))

	expected := `
# HELP db_open_connections Established connections, in use and idle
# TYPE db_open_connections gauge
db_open_connections 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "db_open_connections"))
}
