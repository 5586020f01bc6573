package probe

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-mock-wallet/internal/config"
)

var ErrProbeFailed = errors.New("probe failed")

func probe(ctx context.Context, cfg config.Server, path string, verbose bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Management.ProbeReadinessTimeout)
	defer cancel()

	url := strings.TrimRight(probeBaseURL(cfg), "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build probe request")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to reach %s", url)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read probe response")
	}

	if verbose {
		log.Info().Str("url", url).Int("status", res.StatusCode).Str("body", string(body)).Msg("Probe answered")
	}

	if res.StatusCode != http.StatusOK {
		return errors.Wrapf(ErrProbeFailed, "%s answered %d: %s", url, res.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}

// probeBaseURL prefers the listen address, since BaseURL may point at a proxy.
func probeBaseURL(cfg config.Server) string {
	if addr := cfg.Echo.ListenAddress; addr != "" {
		if strings.HasPrefix(addr, ":") {
			addr = "127.0.0.1" + addr
		}
		return "http://" + addr
	}

	return cfg.Echo.BaseURL
}
