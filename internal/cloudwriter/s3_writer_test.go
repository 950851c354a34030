package cloudwriter

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	bucket, key string
	body        []byte
	calls       int
	err         error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls++
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Writer(t *testing.T) {
	putter := &fakePutter{}
	factory := &S3WriterFactory{client: putter}

	w, err := factory.NewWriter("results", "staffing/data.parquet")
	require.NoError(t, err)

	_, err = w.Write([]byte("PAR1"))
	require.NoError(t, err)
	_, err = w.Write([]byte("body"))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.Equal(t, 1, putter.calls)
	assert.Equal(t, "results", putter.bucket)
	assert.Equal(t, "staffing/data.parquet", putter.key)
	assert.Equal(t, []byte("PAR1body"), putter.body)

	_, err = w.Write([]byte("late"))
	assert.Error(t, err)
}

func TestS3Writer_Errors(t *testing.T) {
	factory := &S3WriterFactory{client: &fakePutter{err: errors.New("denied")}}

	_, err := factory.NewWriter("", "x")
	assert.Error(t, err)

	w, err := factory.NewWriter("bucket", "x")
	require.NoError(t, err)
	assert.ErrorContains(t, w.Close(), "denied")
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "results/staffing/year=2024/data.parquet", ObjectKey("/results/", "staffing", `year=2024\`, "", "data.parquet"))
}
