package api

import (
	"errors"

	"SignalLog/internal/domain/models"
	domrepo "SignalLog/internal/domain/repository"
	"SignalLog/internal/service/schema"
	"SignalLog/internal/usecase"
	xhttp "SignalLog/pkg/http"
	xlogger "SignalLog/pkg/logger"
	xutil "SignalLog/pkg/util"

	"github.com/labstack/echo/v4"
)

// SignalsEchoHandler exposes the signal logger over HTTP.
type SignalsEchoHandler struct {
	logger  *xlogger.Logger
	signals *usecase.SignalLogger
	store   domrepo.SignalStore
}

func NewSignalsEchoHandler(logger *xlogger.Logger, signals *usecase.SignalLogger, store domrepo.SignalStore) *SignalsEchoHandler {
	return &SignalsEchoHandler{logger: logger, signals: signals, store: store}
}

func (h *SignalsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/signals", h.LogSignal)
	e.GET("/healthz", h.Health)
}

// LogSignal appends the JSON object in the request body to the signal log.
func (h *SignalsEchoHandler) LogSignal(c echo.Context) error {
	q := &models.LogSignalQuery{}
	if verr := xhttp.ReadAndValidateQuery(c, q); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	body, err := xhttp.ReadJSONObject(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	res := h.signals.LogSignal(models.Signal(body),
		usecase.WithValidate(xutil.ParseBoolDefault(q.Validate, true)),
		usecase.WithAutoRotate(xutil.ParseBoolDefault(q.AutoRotate, true)),
	)
	if res.OK() {
		return xhttp.CreatedResponse(c, res)
	}
	return xhttp.AppErrorResponse(c, resultError(res))
}

// Health reports the store location and current record count.
func (h *SignalsEchoHandler) Health(c echo.Context) error {
	n, err := h.store.Count()
	if err != nil {
		h.logger.Error("health check failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("store unavailable").WithError(err))
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status":     "ok",
		"log_path":   h.store.Path(),
		"total_logs": n,
	})
}

func resultError(res models.LogResult) *xhttp.AppError {
	switch {
	case errors.Is(res.Err, domrepo.ErrInvalidSignal):
		var field, reason string
		var fe *schema.FieldError
		if errors.As(res.Err, &fe) {
			field, reason = fe.Field, fe.Reason
		}
		return xhttp.InvalidSignalError(res.Message, field, reason).WithError(res.Err)
	case errors.Is(res.Err, domrepo.ErrCorruptedLog):
		return xhttp.StorageError(xhttp.CodeCorruptedLog, res.Message).WithError(res.Err)
	case errors.Is(res.Err, domrepo.ErrFileSystem):
		return xhttp.StorageError(xhttp.CodeFileSystem, res.Message).WithError(res.Err)
	default:
		return xhttp.InternalError(res.Message).WithError(res.Err)
	}
}
