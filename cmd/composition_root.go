package cmd

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"swiftdrop/internal/adapters/out/kafkapub"
	"swiftdrop/internal/adapters/out/postgres"
	"swiftdrop/internal/adapters/out/postgres/deliveryrepo"
	"swiftdrop/internal/adapters/out/postgres/userrepo"
	"swiftdrop/internal/adapters/out/rediscache"
	"swiftdrop/internal/adapters/out/whatsapp"
	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/application/usecases/queries"
	"swiftdrop/internal/core/domain/services"
	"swiftdrop/internal/core/ports"
	"swiftdrop/internal/pkg/observability"
)

// CompositionRoot wires every adapter and hands out use-case handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	pricer    *services.Pricer
	notifier  ports.Notifier
	publisher ports.EventPublisher
	cache     ports.TrackingCache
	recorder  observability.TransitionRecorder
	log       commands.NotificationLog
	logger    *slog.Logger
}

// NewCompositionRoot builds the dependency graph from the configuration. The
// Twilio and Kafka adapters degrade to log-only stand-ins when their settings
// are absent.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	twilioConfig := whatsapp.Config{
		AccountSID: config.TwilioAccountSID,
		AuthToken:  config.TwilioAuthToken,
		FromNumber: config.TwilioFromNumber,
	}
	var notifier ports.Notifier
	if twilioConfig.IsConfigured() {
		notifier = whatsapp.NewNotifier(twilioConfig, logger)
	} else {
		notifier = whatsapp.NewLogNotifier(logger)
	}

	var publisher ports.EventPublisher
	if config.KafkaHost != "" {
		publisher = kafkapub.NewPublisher([]string{config.KafkaHost}, config.KafkaStatusChangedTopic)
	} else {
		publisher = kafkapub.NewLogPublisher(logger)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		pricer:     services.NewPricer(services.DefaultTariff()),
		notifier:   notifier,
		publisher:  publisher,
		cache:      rediscache.New(config.RedisAddr, config.RedisPassword, logger),
		recorder:   observability.TransitionRecorder{},
		log:        deliveryrepo.NewGormDeliveryRepository(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) crossUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(
		c.deliveryUoWFactory(), c.pricer, c.notifier, c.log, c.logger)
}

func (c *CompositionRoot) CreateChangeStatusCommandHandler() commands.ChangeStatusCommandHandler {
	return commands.NewChangeStatusCommandHandler(
		c.crossUoWFactory(), c.notifier, c.publisher, c.cache, c.recorder, c.log, c.logger)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(
		c.crossUoWFactory(), c.notifier, c.publisher, c.cache, c.recorder, c.log, c.logger)
}

func (c *CompositionRoot) CreateAttachProofCommandHandler() commands.AttachProofCommandHandler {
	return commands.NewAttachProofCommandHandler(
		c.crossUoWFactory(), c.notifier, c.publisher, c.cache, c.recorder, c.log, c.logger)
}

func (c *CompositionRoot) CreateDeleteDeliveryCommandHandler() commands.DeleteDeliveryCommandHandler {
	return commands.NewDeleteDeliveryCommandHandler(c.deliveryUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateToggleAvailabilityCommandHandler() commands.ToggleAvailabilityCommandHandler {
	return commands.NewToggleAvailabilityCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateChangePasswordCommandHandler() commands.ChangePasswordCommandHandler {
	return commands.NewChangePasswordCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateListDeliveriesQueryHandler() queries.ListDeliveriesQueryHandler {
	return queries.NewListDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(deliveryrepo.NewGormDeliveryRepository(c.gormDB))
}

func (c *CompositionRoot) CreateTrackDeliveryQueryHandler() queries.TrackDeliveryQueryHandler {
	return queries.NewTrackDeliveryQueryHandler(
		deliveryrepo.NewGormDeliveryRepository(c.gormDB), c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetDeliveryStatsQueryHandler() queries.GetDeliveryStatsQueryHandler {
	return queries.NewGetDeliveryStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateLoginQueryHandler() queries.LoginQueryHandler {
	return queries.NewLoginQueryHandler(userrepo.NewGormUserRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetAccountQueryHandler() queries.GetAccountQueryHandler {
	return queries.NewGetAccountQueryHandler(userrepo.NewGormUserRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetOverdueDeliveriesQueryHandler() queries.GetOverdueDeliveriesQueryHandler {
	return queries.NewGetOverdueDeliveriesQueryHandler(c.gormDB)
}

// JWTTTL converts the configured token lifetime into a duration, defaulting
// to 24 hours when unset or unparsable.
func JWTTTL(config Config) time.Duration {
	hours, err := time.ParseDuration(config.JWTTTLHours + "h")
	if config.JWTTTLHours == "" || err != nil {
		return 24 * time.Hour
	}
	return hours
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
