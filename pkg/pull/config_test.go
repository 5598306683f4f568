package pull

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/go-drift/pullrefresh/pkg/errors"
)

type captureHandler struct {
	errs []*errors.PullError
}

func (h *captureHandler) HandleError(err *errors.PullError) { h.errs = append(h.errs, err) }

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	assert.Equal(t, float64(DefaultPullDistance), cfg.PullDistance)
	assert.Equal(t, float64(DefaultFooterHeight), cfg.FooterHeight)
	assert.Zero(t, cfg.MaxShowTime)
	assert.False(t, cfg.loadedAll())

	cfg = Config{PullDistance: 3, FooterHeight: 1, MaxShowTime: time.Second}.WithDefaults()
	assert.Equal(t, 3.0, cfg.PullDistance)
	assert.Equal(t, 1.0, cfg.FooterHeight)
	assert.Equal(t, time.Second, cfg.MaxShowTime)
}

func TestConfigWithDefaultsReportsInvalidValues(t *testing.T) {
	h := &captureHandler{}
	defer errors.SetHandler(errors.SetHandler(h))

	cfg := Config{PullDistance: -1, FooterHeight: math.NaN(), MaxShowTime: -time.Second}.WithDefaults()

	assert.Equal(t, float64(DefaultPullDistance), cfg.PullDistance)
	assert.Equal(t, float64(DefaultFooterHeight), cfg.FooterHeight)
	assert.Zero(t, cfg.MaxShowTime)
	assert.Len(t, h.errs, 3)
	for _, err := range h.errs {
		assert.Equal(t, errors.KindConfig, err.Kind)
	}
}
