package s3

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		Bucket:          "campaign-assets",
		Region:          "us-east-1",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
		Endpoint:        "http://localhost:9000/",
		Expiry:          15 * time.Minute,
	}
}

func TestNewPresigner_RequiresSettings(t *testing.T) {
	for name, mutate := range map[string]func(*Options){
		"bucket": func(o *Options) { o.Bucket = "" },
		"region": func(o *Options) { o.Region = "" },
		"key":    func(o *Options) { o.AccessKeyID = "" },
		"secret": func(o *Options) { o.SecretAccessKey = "" },
	} {
		t.Run(name, func(t *testing.T) {
			opts := testOptions()
			mutate(&opts)
			_, err := NewPresigner(opts)
			assert.Error(t, err)
		})
	}
}

func TestPresigner_SignedURL(t *testing.T) {
	p, err := NewPresigner(testOptions())
	require.NoError(t, err)

	raw, err := p.SignedURL(context.Background(), "profile/u1.png")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/campaign-assets/profile/u1.png", u.Path)

	q := u.Query()
	assert.Equal(t, "900", q.Get("X-Amz-Expires"))
	assert.Equal(t, "AWS4-HMAC-SHA256", q.Get("X-Amz-Algorithm"))
	assert.Contains(t, q.Get("X-Amz-Credential"), "AKIDEXAMPLE/")
	assert.NotEmpty(t, q.Get("X-Amz-Signature"))
}

func TestPresigner_DefaultExpiryAndEmptyKey(t *testing.T) {
	opts := testOptions()
	opts.Expiry = 0
	p, err := NewPresigner(opts)
	require.NoError(t, err)
	assert.Equal(t, DefaultExpiry, p.expiry)

	_, err = p.SignedURL(context.Background(), " ")
	assert.Error(t, err)
}
