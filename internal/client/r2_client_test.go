package client

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genaimarketing/api/internal/config"
)

func TestNewR2Client_Incomplete(t *testing.T) {
	_, err := NewR2Client(context.Background(), &config.R2Config{AccountID: "acct", AccessKeyID: "key"})
	assert.ErrorIs(t, err, ErrR2Incomplete)
}

func TestNewR2Client(t *testing.T) {
	c, err := NewR2Client(context.Background(), &config.R2Config{
		AccountID:       "acct",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "creatives",
		PublicURL:       "https://cdn.example.com/",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/creatives/a1/images.url.png", c.PublicURL("creatives/a1/images.url.png"))
}

func TestR2Client_PublicURLWithoutCDN(t *testing.T) {
	c := newR2Client(s3.New(s3.Options{Region: "auto"}), &config.R2Config{BucketName: "creatives"})
	assert.Equal(t, "https://creatives.r2.cloudflarestorage.com/k", c.PublicURL("k"))
}
