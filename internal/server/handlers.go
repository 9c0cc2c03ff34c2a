package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/metrics"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/submit"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const backendUnavailable = "No fue posible enviar la solicitud. Intente nuevamente."

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// page carries what one response renders besides the wizard state.
type page struct {
	status  int
	notices []wizard.Notice
	errors  render.ErrorMapping
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Sessions: s.sessions.len()})
}

// handleStart opens a session and redirects to it.
func (s *Server) handleStart(c echo.Context) error {
	sess, err := s.sessions.create(func(id string) (*wizard.Controller, error) {
		opts := []wizard.Option{wizard.WithLogger(s.logger.With(zap.String("session", id)))}
		if s.metrics != nil {
			opts = append(opts, wizard.WithRecorder(s.metrics))
		}
		return wizard.New(s.def, opts...)
	})
	if err != nil {
		s.logger.Error("create wizard", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "no se pudo iniciar la solicitud")
	}
	s.trackSessions()

	s.logger.Debug("session started", zap.String("session", sess.id))
	return c.Redirect(http.StatusSeeOther, sessionPath(sess.id))
}

func (s *Server) handleShow(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	p := page{status: http.StatusOK}
	if sess.created != nil {
		p.notices = s.acceptedNotices()
	}
	return s.render(c, sess, p)
}

// handleEvent applies the posted values, then dispatches the _event field.
func (s *Server) handleEvent(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.created != nil {
		return s.render(c, sess, page{status: http.StatusOK, notices: s.acceptedNotices()})
	}

	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "formulario inválido")
	}
	s.applyValues(sess, form)

	event, ok, err := render.DecodeEvent(form.Get(render.EventFieldName), form.Get(render.FocusFieldName))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p := page{status: http.StatusOK}
	if ok {
		ctx := c.Request().Context()
		out, err := sess.controller.HandleEvent(ctx, event)
		if err != nil {
			s.logger.Warn("event rejected",
				zap.String("session", sess.id),
				zap.String("event", string(event.Type)),
				zap.Error(err),
			)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		p.notices = out.Notices
		if out.Result != nil {
			s.deliver(ctx, sess, *out.Result, &p)
		}
	}
	return s.render(c, sess, p)
}

func (s *Server) session(c echo.Context) (*session, error) {
	sess, ok := s.sessions.get(c.Param("id"))
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "solicitud no encontrada")
	}
	return sess, nil
}

// applyValues records every posted field. Repeated names keep the last
// value, so a checkbox posted after its hidden fallback wins. Names that no
// longer match a live field are skipped.
func (s *Server) applyValues(sess *session, form url.Values) {
	for key, values := range form {
		if strings.HasPrefix(key, "_") || len(values) == 0 {
			continue
		}
		if err := sess.controller.SetValue(key, values[len(values)-1]); err != nil {
			s.logger.Debug("posted value ignored",
				zap.String("session", sess.id),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}

// deliver posts an accepted submission. Rejections replace the success
// notice with field and form errors.
func (s *Server) deliver(ctx context.Context, sess *session, result wizard.Result, p *page) {
	if s.submitter == nil {
		s.logger.Info("solicitud accepted",
			zap.String("session", sess.id),
			zap.Int("values", len(result.Values)),
		)
		sess.created = &submit.Created{Message: result.Message}
		return
	}

	payload, err := submit.Assemble(s.def, result)
	var created submit.Created
	if err == nil {
		created, err = s.submitter.Submit(ctx, payload)
	}
	if err == nil {
		sess.created = &created
		s.recordBackend(metrics.BackendCreated)
		s.logger.Info("solicitud created",
			zap.String("session", sess.id),
			zap.String("message", created.Message),
		)
		return
	}

	p.notices = withoutSuccess(p.notices)
	view := sess.controller.View()

	var cerr *submit.ContractError
	var berr *submit.BackendError
	switch {
	case errors.As(err, &cerr):
		s.recordBackend(metrics.BackendRejected)
		p.errors = render.MapErrorPayload(view, cerr.Payload(), s.aliases)
		p.status = http.StatusUnprocessableEntity
	case errors.As(err, &berr):
		s.recordBackend(metrics.BackendRejected)
		p.errors = render.MapErrorPayload(view, berr.Payload(), s.aliases)
		p.status = http.StatusUnprocessableEntity
	default:
		s.recordBackend(metrics.BackendFailed)
		p.errors = render.ErrorMapping{Form: []string{backendUnavailable}}
		p.status = http.StatusBadGateway
	}
	s.logger.Warn("solicitud not delivered", zap.String("session", sess.id), zap.Error(err))
}

func (s *Server) render(c echo.Context, sess *session, p page) error {
	renderer, err := s.renderers.Negotiate(c.Request().Header.Get(echo.HeaderAccept))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotAcceptable, err.Error())
	}

	options := render.RenderOptions{
		Action:     sessionPath(sess.id),
		Errors:     p.errors.Fields,
		FormErrors: p.errors.Form,
		Theme:      s.theme,
	}
	if token, ok := c.Get(csrfContextKey).(string); ok && token != "" {
		options.Hidden = render.MergeHiddenFields(nil, render.CSRFToken(token))
	}

	out, err := renderer.Render(c.Request().Context(), sess.controller.View(p.notices...), options)
	if err != nil {
		s.logger.Error("render wizard", zap.String("renderer", renderer.Name()), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "no se pudo mostrar la solicitud")
	}
	return c.Blob(p.status, renderer.ContentType(), out)
}

func (s *Server) acceptedNotices() []wizard.Notice {
	return []wizard.Notice{{Level: wizard.NoticeSuccess, Message: s.def.Messages.SubmitSuccess}}
}

func (s *Server) recordBackend(result string) {
	if s.metrics != nil {
		s.metrics.Backend(result)
	}
}

func withoutSuccess(notices []wizard.Notice) []wizard.Notice {
	out := notices[:0:0]
	for _, notice := range notices {
		if notice.Level != wizard.NoticeSuccess {
			out = append(out, notice)
		}
	}
	return out
}

func sessionPath(id string) string {
	return BasePath + "/" + id
}
