package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeWrites(t *testing.T) {
	m := New()
	m.RecipeWrite("create", nil)
	m.RecipeWrite("create", nil)
	m.RecipeWrite("create", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.recipeWrites.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recipeWrites.WithLabelValues("create", "error")))
}

func TestHandlerExposesRequests(t *testing.T) {
	m := New()
	m.RequestStarted()
	m.RequestFinished(http.MethodGet, "/api/recipes", "200", 15*time.Millisecond)
	m.RecipeViewed()

	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/api/recipes"`)
}
