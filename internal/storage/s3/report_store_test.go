package s3_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capprice/internal/config"
	"capprice/internal/storage/s3"
)

func TestReportStore_PresignedURL(t *testing.T) {
	store, err := s3.NewReportStore(context.Background(), &config.S3Config{
		Region:        "sa-east-1",
		Bucket:        "reports",
		Endpoint:      "http://localhost:9000",
		AccessKey:     "minio",
		SecretKey:     "minio-secret",
		PresignExpiry: 600,
	})
	require.NoError(t, err)

	raw, err := store.PresignedURL(context.Background(), "simulations/abc/report.html")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/reports/simulations/abc/report.html"), u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}
