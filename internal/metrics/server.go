// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/minimail/internal/log"
)

const metricsPath = "/metrics"

func init() {
	viper.SetDefault("metrics.address", "")
}

// Handler returns the http handler serving all metrics.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.Handler())

	return mux
}

// ListenFromViper serves the metrics on `metrics.address` until the context is cancelled. An
// empty address disables the endpoint.
func ListenFromViper(ctx context.Context) error {
	addr := viper.GetString("metrics.address")
	if addr == "" {
		return nil
	}

	return Listen(ctx, addr)
}

// Listen serves the metrics on addr until the context is cancelled.
func Listen(ctx context.Context, addr string) error {
	server := http.Server{
		Addr:    addr,
		Handler: Handler(),
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn().
				Err(err).
				Msg("could not shut down metrics server")
		}
	}()

	log.Info().
		Str("address", addr).
		Str("path", metricsPath).
		Msg("serving metrics")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
