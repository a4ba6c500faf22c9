package config

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/dimafomin/chef-site-backend/errs"
)

// LoadDotenv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debug().Str("file", f).Msg("no env file")
				continue
			}
			return errs.NewConfigSourceError(f, err)
		}
	}
	return nil
}

// Load returns the environment map, overlaid on parameters from AWS SSM
// Parameter Store when SSM_PARAMETER_PATH is set. Environment variables win
// over stored parameters.
func Load(ctx context.Context) (map[string]string, error) {
	env := New()
	prefix := GetString(env, "SSM_PARAMETER_PATH", "")
	if prefix == "" {
		return env, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errs.NewConfigSourceError("aws", err)
	}
	params, err := FetchParameters(ctx, ssm.NewFromConfig(awsCfg), prefix)
	if err != nil {
		return nil, err
	}
	return Overlay(params, env), nil
}

// FetchParameters reads every parameter below prefix. The key of each
// parameter is the last element of its name, so /chefsite/prod/SITE_URL
// becomes SITE_URL.
func FetchParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, prefix string) (map[string]string, error) {
	out := make(map[string]string)
	pager := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, errs.NewConfigSourceError("ssm:"+prefix, err)
		}
		for _, p := range page.Parameters {
			name := strings.TrimSuffix(aws.ToString(p.Name), "/")
			if name == "" {
				continue
			}
			out[path.Base(name)] = aws.ToString(p.Value)
		}
	}
	log.Info().Str("path", prefix).Int("count", len(out)).Msg("loaded parameters from ssm")
	return out, nil
}

// Overlay merges maps left to right; later maps win.
func Overlay(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
