// Package classification EventHub Service.
//
// Event enrollment and attendance service
//
// Terms Of Service:
//
// there are no TOS at this moment, use at your own risk we take no responsibility
//
//    Version: 0.1.0
//    License: TODO
//    Contact: <contato@eventhub-br.dev> https://github.com/eventhub-br/eventhub
//
//    Consumes:
//      - application/json
//
//    Produces:
//      - application/json
//
//    SecurityDefinitions:
//      basicAuth:
//        type: basic
//      oauth2:
//        type: oauth2
//        tokenUrl: /tokens
//        flow: password
// swagger:meta
package main

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"

	"github.com/eventhub-br/eventhub/internal/handler"
	"github.com/eventhub-br/eventhub/internal/log"
	"github.com/eventhub-br/eventhub/internal/middleware"
	"github.com/eventhub-br/eventhub/internal/server"
	"github.com/eventhub-br/eventhub/pkg/attendance"
	"github.com/eventhub-br/eventhub/pkg/audit"
	"github.com/eventhub-br/eventhub/pkg/config"
	"github.com/eventhub-br/eventhub/pkg/enrollment"
	"github.com/eventhub-br/eventhub/pkg/event"
	"github.com/eventhub-br/eventhub/pkg/notification"
	"github.com/eventhub-br/eventhub/pkg/storage"
	"github.com/eventhub-br/eventhub/pkg/token"
	"github.com/eventhub-br/eventhub/pkg/user"

	"github.com/go-mail/mail"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

func main() {
	logger := slog.New(log.New(slog.NewJSONHandler(os.Stdout, nil)))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Exiting", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg := config.ProvideConfig()
	ctx := context.Background()

	err := handler.RegisterValidation()
	if err != nil {
		return err
	}

	tracerProvider, err := newTracerProvider(cfg.JaegerEndpoint)
	if err != nil {
		return err
	}
	otel.SetTracerProvider(tracerProvider)
	defer func() {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			logger.Error("Failed to shut down tracer provider", "error", err)
		}
	}()

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	privateKey, err := readPrivateKey(cfg.PrivateKeyFile)
	if err != nil {
		return err
	}

	amqpConnection, err := amqp.Dial(cfg.RabbitMq.GetUrl())
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}
	defer amqpConnection.Close()

	amqpChannel, err := amqpConnection.Channel()
	if err != nil {
		return fmt.Errorf("failed to open AMQP channel: %v", err)
	}
	defer amqpChannel.Close()

	publisher, err := notification.NewPublisher(logger, amqpChannel)
	if err != nil {
		return err
	}

	dialer := mail.NewDialer(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username, cfg.Smtp.Password)
	mailConsumer := notification.NewMailConsumer(logger, amqpChannel, dialer, cfg.Smtp.From)
	err = mailConsumer.Consume()
	if err != nil {
		return err
	}

	auditRepository := audit.NewRepository(db)
	auditRecorder := audit.NewRecorder(logger, auditRepository)
	defer auditRecorder.Close()
	auditService := audit.NewService(auditRepository)

	userRepository := user.NewRepository(db)
	userService := user.NewService(userRepository, publisher)

	err = user.CreateAdminUser(ctx, cfg.AdminUser.Email, cfg.AdminUser.Password, userService)
	if err != nil {
		return err
	}

	tokenService := token.NewService(privateKey, cfg.AccessTokenExpirationSeconds)

	eventRepository := event.NewRepository(db)
	eventService := event.NewService(eventRepository)

	enrollmentRepository := enrollment.NewRepository(db)
	enrollmentService := enrollment.NewService(enrollmentRepository, eventService, auditRecorder, publisher)

	attendanceRepository := attendance.NewRepository(db)
	attendanceService := attendance.NewService(attendanceRepository, eventService, userService, auditRecorder, publisher)

	authenticationMiddleware := middleware.NewAuthentication(logger, tokenService, userService)
	authorizationMiddleware := middleware.NewAuthorization(logger)

	handlers := server.Handlers{
		User:       user.NewHandler(userService, tokenService, auditRecorder),
		Event:      event.NewHandler(eventService),
		Enrollment: enrollment.NewHandler(enrollmentService),
		Attendance: attendance.NewHandler(attendanceService),
		Audit:      audit.NewHandler(auditService),
	}

	r := server.GetEngine(logger, cfg.BasePath, cfg.AllowedOrigin, authenticationMiddleware, authorizationMiddleware, handlers)
	return r.Run()
}

func newTracerProvider(endpoint string) (*tracesdk.TracerProvider, error) {
	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Jaeger exporter: %v", err)
	}

	return tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exporter),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("eventhub"),
		)),
	), nil
}

func readPrivateKey(file string) (*rsa.PrivateKey, error) {
	keyBytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file: %v", err)
	}

	block, _ := pem.Decode(keyBytes)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block from %q", file)
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err == nil {
		return privateKey, nil
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %v", err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key in %q is not an RSA key", file)
	}

	return rsaKey, nil
}
