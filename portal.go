// Package caa is the client SDK for the Colegio Agustiniano school
// community portal. It wraps the legacy form-POST backend behind typed
// services: session and biometric login, the home dashboard feed, the
// virtual agenda, circulars with their authorization workflow and the
// nursing visit log.
package caa

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rrrodriguezc83/caa/internal/gateway"
	"github.com/rrrodriguezc83/caa/internal/repository"
	"github.com/rrrodriguezc83/caa/internal/secure"
	"github.com/rrrodriguezc83/caa/internal/service"
	"github.com/rrrodriguezc83/caa/pkg/config"
)

// Portal is the composition root: one shared gateway client, one repository
// per backend subsystem and the services the UI layer talks to.
type Portal struct {
	Auth          *service.AuthService
	Users         *service.UserService
	Agenda        *service.AgendaService
	Circulars     *service.CircularService
	Notifications *service.NotificationService
	Nursing       *service.NursingService

	gateway *gateway.Client
	metrics *gateway.Metrics
}

// Option tweaks Portal construction.
type Option func(*options)

type options struct {
	gate secure.BiometricGate
}

// WithBiometricGate installs the platform biometric implementation. Without
// it the biometric flows report the hardware as unavailable.
func WithBiometricGate(gate secure.BiometricGate) Option {
	return func(o *options) { o.gate = gate }
}

// New wires the portal from configuration. The logger may be nil.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) *Portal {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	metrics := gateway.NewMetrics(cfg.Metrics.Namespace)
	client := gateway.New(cfg.HTTP.Timeout, logger, metrics)

	authRepo := repository.NewAuthRepository(client, cfg.Endpoints.Main, logger)
	userRepo := repository.NewUserRepository(client, cfg.Endpoints.Main)
	studentRepo := repository.NewStudentRepository(client, cfg.Endpoints.WorkClass)
	circularRepo := repository.NewCircularRepository(client, cfg.Endpoints.Notices)
	notificationRepo := repository.NewNotificationRepository(client, cfg.Endpoints.Main, cfg.Endpoints.Communications)
	nursingRepo := repository.NewNursingRepository(client, cfg.Endpoints.Nursing)

	creds := secure.NewStore(cfg.Credentials.Path, cfg.Credentials.Secret)

	return &Portal{
		Auth:          service.NewAuthService(authRepo, creds, o.gate, logger),
		Users:         service.NewUserService(userRepo, logger),
		Agenda:        service.NewAgendaService(studentRepo, logger, cfg.Agenda.LegacyTodayOffset),
		Circulars:     service.NewCircularService(circularRepo, userRepo, logger),
		Notifications: service.NewNotificationService(notificationRepo, logger),
		Nursing:       service.NewNursingService(nursingRepo, logger),
		gateway:       client,
		metrics:       metrics,
	}
}

// SessionActive reports whether the gateway currently holds a session token.
func (p *Portal) SessionActive() bool {
	return p.gateway.SessionID() != ""
}

// MetricsHandler exposes the gateway's request metrics for scraping.
func (p *Portal) MetricsHandler() http.Handler {
	return p.metrics.Handler()
}
