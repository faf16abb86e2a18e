package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/Jacobbrewer1/helpdesk/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
	"github.com/Jacobbrewer1/helpdesk/pkg/request"
	"github.com/gorilla/mux"
)

type Controller func(w http.ResponseWriter, r *http.Request)

func middlewareHttp(handler Controller, a IApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				if err := request.Encode(cw, http.StatusInternalServerError, request.NewMessage(request.ErrInternalServer.Error())); err != nil {
					a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}

		// Measured once the handler has written the status code.
		defer func() {
			code := strconv.Itoa(cw.StatusCode())
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, code).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, code).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}
