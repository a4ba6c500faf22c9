package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dimafomin/chef-site-backend/errs"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"S":     "value",
		"EMPTY": "",
		"N":     " 42 ",
		"BAD_N": "x",
		"B":     "true",
		"L":     " a, ,b ,",
	}

	require.Equal(t, "value", GetString(c, "S", "d"))
	require.Equal(t, "d", GetString(c, "EMPTY", "d"))
	require.Equal(t, "d", GetString(nil, "S", "d"))
	require.Equal(t, 42, GetInt(c, "N", 1))
	require.Equal(t, 1, GetInt(c, "BAD_N", 1))
	require.True(t, GetBool(c, "B", false))
	require.True(t, GetBool(c, "MISSING", true))
	require.Equal(t, []string{"a", "b"}, GetList(c, "L", nil))
	require.Equal(t, []string{"x"}, GetList(c, "MISSING", []string{"x"}))
}

func TestFromMap_Defaults(t *testing.T) {
	s, err := FromMap(map[string]string{})
	require.NoError(t, err)

	require.Equal(t, "8080", s.Port)
	require.Equal(t, 180*time.Second, s.ReadTimeout)
	require.Equal(t, []string{".mdx", ".md"}, s.ContentExtensions)
	require.True(t, s.ContentCache)
	require.Equal(t, "https://dima-fomin.pl", s.SiteURL)
	require.Equal(t, zerolog.InfoLevel, s.LogLevel)
	require.Equal(t, LogFormatConsole, s.LogFormat)
	require.Equal(t, "0.0.0.0:8080", s.Address())
}

func TestFromMap_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"PORT":                 {"PORT": "http"},
		"SITE_URL":             {"SITE_URL": "dima-fomin.pl"},
		"LOG_LEVEL":            {"LOG_LEVEL": "loud"},
		"LOG_FORMAT":           {"LOG_FORMAT": "xml"},
		"READ_TIMEOUT_SECONDS": {"READ_TIMEOUT_SECONDS": "0"},
		"S3_BUCKET":            {"PUBLISH_SCHEDULE": "1h"},
	}
	for field, c := range cases {
		_, err := FromMap(c)
		require.Error(t, err, field)
		require.True(t, errs.IsConfigError(err), field)

		var apiErr *errs.ApiErr
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, field, apiErr.Field)
	}
}

func TestLoadDotenv_DoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("CHEFSITE_TEST_A=from-file\nCHEFSITE_TEST_B=from-file\n"), 0o600))
	t.Setenv("CHEFSITE_TEST_A", "from-env")
	t.Cleanup(func() { os.Unsetenv("CHEFSITE_TEST_B") })

	require.NoError(t, LoadDotenv(file, filepath.Join(dir, "missing.env")))
	require.Equal(t, "from-env", os.Getenv("CHEFSITE_TEST_A"))
	require.Equal(t, "from-file", os.Getenv("CHEFSITE_TEST_B"))
}

type fakeSSM struct {
	pages [][]types.Parameter
	calls int
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestFetchParametersAndOverlay(t *testing.T) {
	client := &fakeSSM{pages: [][]types.Parameter{
		{{Name: aws.String("/chefsite/prod/SITE_URL"), Value: aws.String("https://example.com")}},
		{{Name: aws.String("/chefsite/prod/S3_BUCKET"), Value: aws.String("bucket")}},
	}}

	params, err := FetchParameters(context.Background(), client, "/chefsite/prod")
	require.NoError(t, err)
	require.Equal(t, 2, client.calls)
	require.Equal(t, map[string]string{"SITE_URL": "https://example.com", "S3_BUCKET": "bucket"}, params)

	merged := Overlay(params, map[string]string{"SITE_URL": "https://env.example"})
	require.Equal(t, "https://env.example", merged["SITE_URL"])
	require.Equal(t, "bucket", merged["S3_BUCKET"])
}
